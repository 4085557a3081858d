// internal/layout/layout.go
package layout

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/boxflow/internal/observability"
	"github.com/xkilldash9x/boxflow/internal/style"
)

var (
	// ErrRootNotRendered is returned when the root node has display: none.
	ErrRootNotRendered = errors.New("layout: root node has display: none")
	// ErrNilRoot is returned when no root node is given.
	ErrNilRoot = errors.New("layout: nil root node")
)

// TextMeasurer sizes the text of a text node wrapped at availableWidth. A
// non-positive availableWidth asks for the unwrapped size.
type TextMeasurer interface {
	MeasureText(n style.Node, availableWidth float64) (width, height float64)
}

// Options tune an Engine. The zero value is usable.
type Options struct {
	// AutoTrackSize sizes `auto` grid tracks; zero means DefaultAutoTrackSize.
	AutoTrackSize float64
	// Measurer sizes text nodes. Without one, text boxes have no height and
	// row flex items default to a zero basis.
	Measurer TextMeasurer
	Logger   *zap.Logger
}

// Engine lays out styled trees. It holds no per-pass state, so a single
// Engine may lay out independent trees concurrently.
type Engine struct {
	viewportWidth  float64
	viewportHeight float64
	opts           Options
	logger         *zap.Logger
}

// NewEngine creates an engine whose initial containing block is the viewport.
func NewEngine(viewportWidth, viewportHeight float64, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = observability.GetLogger()
	}
	return &Engine{
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
		opts:           opts,
		logger:         logger.Named("layout"),
	}
}

// Viewport returns the initial containing block.
func (e *Engine) Viewport() Dimensions {
	return Dimensions{Content: Rect{Width: e.viewportWidth, Height: e.viewportHeight}}
}

// Layout lays out root against the engine's viewport.
func (e *Engine) Layout(root style.Node) (*LayoutBox, error) {
	return e.LayoutTree(root, e.Viewport())
}

// LayoutTree builds the box tree for root and lays it out inside
// containingBlock. The containing block's height is the viewport height used
// by fixed and root-level absolute boxes; normal flow starts at its top.
func (e *Engine) LayoutTree(root style.Node, containingBlock Dimensions) (*LayoutBox, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	if root.Display() == style.DisplayNone {
		return nil, ErrRootNotRendered
	}

	start := time.Now()
	box := e.buildLayoutTree(root)

	flow := containingBlock
	flow.Content.Height = 0
	e.layoutBox(box, flow)
	e.applyPositioning(box, containingBlock, containingBlock, containingBlock.Content)

	if ce := e.logger.Check(zap.DebugLevel, "Layout pass complete"); ce != nil {
		count := 0
		box.Walk(func(*LayoutBox) bool { count++; return true })
		ce.Write(zap.Int("boxes", count), zap.Duration("elapsed", time.Since(start)))
	}
	return box, nil
}

// LayoutTree lays out root with a default engine.
func LayoutTree(root style.Node, containingBlock Dimensions) (*LayoutBox, error) {
	e := NewEngine(containingBlock.Content.Width, containingBlock.Content.Height, Options{})
	return e.LayoutTree(root, containingBlock)
}

// -- Box Tree Construction --

func (e *Engine) buildLayoutTree(n style.Node) *LayoutBox {
	display := n.Display()
	box := &LayoutBox{Kind: BlockNode, Style: n}
	if display == style.DisplayInline {
		box.Kind = InlineNode
	}

	var children []*LayoutBox
	for _, child := range n.Children() {
		if child.Display() == style.DisplayNone {
			continue
		}
		children = append(children, e.buildLayoutTree(child))
	}

	if display == style.DisplayFlex || display == style.DisplayGrid {
		box.Children = children
		return box
	}
	box.Children = wrapInlineRuns(children)
	return box
}

// wrapInlineRuns puts consecutive inline children in anonymous blocks when
// they are mixed with block-level siblings.
func wrapInlineRuns(children []*LayoutBox) []*LayoutBox {
	hasBlock, hasInline := false, false
	for _, c := range children {
		if c.Kind == InlineNode {
			hasInline = true
		} else {
			hasBlock = true
		}
	}
	if !hasBlock || !hasInline {
		return children
	}

	out := make([]*LayoutBox, 0, len(children))
	var anon *LayoutBox
	for _, c := range children {
		if c.Kind != InlineNode {
			anon = nil
			out = append(out, c)
			continue
		}
		if anon == nil {
			anon = &LayoutBox{Kind: AnonymousBlock}
			out = append(out, anon)
		}
		anon.Children = append(anon.Children, c)
	}
	return out
}

// -- Block Layout --

// layoutBox lays out b in normal flow. cb.Content.Height is the height
// already used by preceding siblings.
func (e *Engine) layoutBox(b *LayoutBox, cb Dimensions) {
	e.calculateWidth(b, cb)
	e.calculatePosition(b, cb)
	b.Dimensions.Content.Height = e.layoutContents(b)
	if h, ok := explicitHeight(b); ok {
		b.Dimensions.Content.Height = h
	}
}

// layoutContents lays out b's children inside its (already sized and
// positioned) content box and returns the height they occupy.
func (e *Engine) layoutContents(b *LayoutBox) float64 {
	switch b.display() {
	case style.DisplayFlex:
		return e.layoutFlexContainer(b)
	case style.DisplayGrid:
		return e.layoutGridContainer(b)
	}
	if len(b.Children) == 0 {
		return e.measureText(b)
	}
	return e.layoutBlockChildren(b)
}

func (e *Engine) layoutBlockChildren(b *LayoutBox) float64 {
	running := 0.0
	for _, child := range b.Children {
		cb := b.Dimensions
		cb.Content.Height = running
		e.layoutBox(child, cb)
		if !outOfFlow(child) {
			running += child.Dimensions.MarginBox().Height
		}
	}
	return running
}

// calculateWidth resolves edges and the content width. An auto width takes
// whatever the containing block has left; auto margins count as zero.
func (e *Engine) calculateWidth(b *LayoutBox, cb Dimensions) {
	d := &b.Dimensions
	available := cb.Content.Width
	if b.Style == nil {
		*d = Dimensions{Content: Rect{Width: max(0, available)}}
		return
	}

	calculateEdges(b, available)
	width := b.Style.Lookup("width", "", style.Auto)
	if size := definiteSize(width, available); size != nil {
		d.Content.Width = *size
	} else {
		d.Content.Width = max(0, available-d.Edges().Sum(Horizontal))
	}

	var lo, hi *float64
	if v, ok := b.Style.Value("min-width"); ok {
		lo = definiteSize(v, available)
	}
	if v, ok := b.Style.Value("max-width"); ok {
		hi = definiteSize(v, available)
	}
	d.Content.Width = max(0, clampSize(d.Content.Width, lo, hi))
}

func (e *Engine) calculatePosition(b *LayoutBox, cb Dimensions) {
	d := &b.Dimensions
	d.Content.X = cb.Content.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = cb.Content.Y + cb.Content.Height + d.Margin.Top + d.Border.Top + d.Padding.Top
}

// calculateEdges resolves margins, borders and paddings. Percentages refer to
// the containing block's width on every side.
func calculateEdges(b *LayoutBox, reference float64) {
	d := &b.Dimensions
	n := b.Style
	if n == nil {
		d.Margin, d.Border, d.Padding = EdgeSizes{}, EdgeSizes{}, EdgeSizes{}
		return
	}

	edge := func(name, fallback string) float64 {
		v := n.Lookup(name, fallback, style.Zero)
		if v.IsAuto() {
			return 0
		}
		return v.Resolve(reference)
	}

	d.Margin = EdgeSizes{
		Left:   edge("margin-left", "margin"),
		Right:  edge("margin-right", "margin"),
		Top:    edge("margin-top", "margin"),
		Bottom: edge("margin-bottom", "margin"),
	}
	d.Border = EdgeSizes{
		Left:   max(0, edge("border-left-width", "border-width")),
		Right:  max(0, edge("border-right-width", "border-width")),
		Top:    max(0, edge("border-top-width", "border-width")),
		Bottom: max(0, edge("border-bottom-width", "border-width")),
	}
	d.Padding = EdgeSizes{
		Left:   max(0, edge("padding-left", "padding")),
		Right:  max(0, edge("padding-right", "padding")),
		Top:    max(0, edge("padding-top", "padding")),
		Bottom: max(0, edge("padding-bottom", "padding")),
	}
}

// explicitHeight returns a definite `height`. Percentages are ignored since
// flow containers have no definite height.
func explicitHeight(b *LayoutBox) (float64, bool) {
	if b.Style == nil {
		return 0, false
	}
	v, ok := b.Style.Value("height")
	if !ok {
		return 0, false
	}
	switch v.Kind {
	case style.KindLength, style.KindNumber:
		return max(0, v.ToPx()), true
	}
	return 0, false
}

func (e *Engine) measureText(b *LayoutBox) float64 {
	if e.opts.Measurer == nil || b.Style == nil {
		return 0
	}
	if _, ok := b.Style.Text(); !ok {
		return 0
	}
	_, h := e.opts.Measurer.MeasureText(b.Style, b.Dimensions.Content.Width)
	return h
}

// outOfFlow reports whether b is absolutely or fixed positioned.
func outOfFlow(b *LayoutBox) bool {
	return PositionedElementFromStyle(b.Style, Rect{}).OutOfFlow()
}

// layoutOutOfFlow lays out the absolutely positioned children of a flex or
// grid container at the container's content origin; the positioning pass
// moves them afterwards.
func (e *Engine) layoutOutOfFlow(b *LayoutBox) {
	for _, child := range b.Children {
		if !outOfFlow(child) {
			continue
		}
		cb := b.Dimensions
		cb.Content.Height = 0
		e.layoutBox(child, cb)
	}
}

// -- Positioning Pass --

// applyPositioning walks the tree top-down so that a box is moved before its
// descendants are resolved against it.
func (e *Engine) applyPositioning(b *LayoutBox, parent, positioned Dimensions, viewport Rect) {
	if b.Style != nil {
		cb := parent
		switch keyword(b.Style, "position") {
		case "absolute":
			cb = positioned
		case "fixed":
			cb = Dimensions{Content: viewport}
		}

		pe := PositionedElementFromStyle(b.Style, cb.Content)
		before := b.Dimensions.Content
		pe.Apply(&b.Dimensions, cb, viewport)
		dx, dy := b.Dimensions.Content.X-before.X, b.Dimensions.Content.Y-before.Y
		b.Dimensions.Content = before
		b.translate(dx, dy)

		b.Position, b.ZIndex = pe.Position, pe.ZIndex
		if pe.IsPositioned() {
			positioned = b.Dimensions
		}
	}
	for _, child := range b.Children {
		e.applyPositioning(child, b.Dimensions, positioned, viewport)
	}
}
