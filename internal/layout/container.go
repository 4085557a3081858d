// internal/layout/container.go
package layout

import "github.com/xkilldash9x/boxflow/internal/style"

// -- Flex and Grid Containers --
//
// The engines work on outer (margin box) sizes. Items are converted on the
// way in and their content boxes recovered from the engine's rectangles on
// the way out.

func (e *Engine) layoutFlexContainer(b *LayoutBox) float64 {
	fc := FlexContainerFromStyle(b.Style)
	mainAxis := fc.Direction.MainAxis()

	container := b.Dimensions
	height, hasHeight := explicitHeight(b)
	container.Content.Height = height

	var inFlow []*LayoutBox
	var items []FlexItem
	for _, child := range b.Children {
		if outOfFlow(child) {
			continue
		}
		calculateEdges(child, container.Content.Width)
		item := FlexItemFromStyle(child.Style, mainAxis, container.Content)
		if item.Basis == nil {
			item.Basis = e.contentBasis(child, mainAxis, container.Content)
		}
		inFlow = append(inFlow, child)
		items = append(items, outerFlexItem(item, child.Dimensions.Edges(), mainAxis))
	}

	if !hasHeight && mainAxis == Vertical {
		// Column containers without a height hug their items.
		total := 0.0
		for _, item := range items {
			total += clampSize(*item.Basis, item.MinSize, item.MaxSize)
		}
		container.Content.Height = total
	}

	results := fc.Layout(container, items)
	contentHeights := make([]float64, len(inFlow))
	hugging := false
	for i, child := range inFlow {
		d := &child.Dimensions
		d.Content = results[i].Content.ShrunkBy(d.Edges())
		contentHeights[i] = e.layoutContents(child)
		if !hasHeight && mainAxis == Horizontal && items[i].CrossSize == nil {
			items[i].ContentCrossSize = Float(contentHeights[i] + d.Edges().Sum(Vertical))
			hugging = true
		}
	}

	if hugging {
		// Lines of an auto-height row container are as tall as their
		// contents. Main sizes do not depend on cross sizes, so the laid out
		// items only move.
		results = fc.Layout(container, items)
		for i, child := range inFlow {
			d := &child.Dimensions
			target := results[i].Content.ShrunkBy(d.Edges())
			child.translate(target.X-d.Content.X, target.Y-d.Content.Y)
			d.Content.Height = target.Height
		}
	}

	bottom := container.Content.Y
	for i, child := range inFlow {
		d := &child.Dimensions
		if items[i].ContentCrossSize != nil {
			d.Content.Height = max(d.Content.Height, contentHeights[i])
		}
		mb := d.MarginBox()
		bottom = max(bottom, mb.Y+mb.Height)
	}
	e.layoutOutOfFlow(b)

	if hasHeight {
		return height
	}
	return max(container.Content.Height, bottom-container.Content.Y)
}

// contentBasis sizes an item without flex-basis or a main size from its
// contents. Heights come from laying the item out at the container width;
// widths need a text measurer and are zero without one.
func (e *Engine) contentBasis(child *LayoutBox, mainAxis Axis, container Rect) *float64 {
	d := &child.Dimensions
	if mainAxis == Vertical {
		width := max(0, container.Width-d.Edges().Sum(Horizontal))
		if v, ok := styleValue(child.Style, "width"); ok {
			if size := definiteSize(v, container.Width); size != nil {
				width = *size
			}
		}
		d.Content = Rect{X: container.X, Y: container.Y, Width: width}
		return Float(e.layoutContents(child))
	}
	if e.opts.Measurer == nil {
		return nil
	}
	return Float(e.maxContentWidth(child))
}

// maxContentWidth is the unwrapped width of b's content box.
func (e *Engine) maxContentWidth(b *LayoutBox) float64 {
	if b.Style != nil {
		if _, ok := b.Style.Text(); ok {
			w, _ := e.opts.Measurer.MeasureText(b.Style, 0)
			return w
		}
		if v, ok := b.Style.Value("width"); ok && (v.Kind == style.KindLength || v.Kind == style.KindNumber) {
			return max(0, v.ToPx())
		}
	}

	rowFlex := b.display() == style.DisplayFlex && FlexContainerFromStyle(b.Style).Direction.MainAxis() == Horizontal
	total := 0.0
	for _, c := range b.Children {
		calculateEdges(c, 0)
		w := e.maxContentWidth(c) + c.Dimensions.Edges().Sum(Horizontal)
		if rowFlex {
			total += w
		} else {
			total = max(total, w)
		}
	}
	return total
}

// outerFlexItem converts content-box sizes to margin-box sizes. A missing
// basis becomes zero.
func outerFlexItem(item FlexItem, edges EdgeSizes, mainAxis Axis) FlexItem {
	mainEdges := edges.Sum(mainAxis)
	crossEdges := edges.Sum(mainAxis.Cross())

	basis := 0.0
	if item.Basis != nil {
		basis = *item.Basis
	}
	item.Basis = Float(basis + mainEdges)
	if item.MinSize != nil {
		item.MinSize = Float(*item.MinSize + mainEdges)
	}
	if item.MaxSize != nil {
		item.MaxSize = Float(*item.MaxSize + mainEdges)
	}
	if item.CrossSize != nil {
		item.CrossSize = Float(*item.CrossSize + crossEdges)
	}
	return item
}

func (e *Engine) layoutGridContainer(b *LayoutBox) float64 {
	container := b.Dimensions
	height, hasHeight := explicitHeight(b)
	container.Content.Height = height
	gc := GridContainerFromStyle(b.Style, container.Content, e.opts.AutoTrackSize, e.logger)

	var inFlow []*LayoutBox
	var items []GridItem
	for _, child := range b.Children {
		if outOfFlow(child) {
			continue
		}
		calculateEdges(child, container.Content.Width)
		inFlow = append(inFlow, child)
		items = append(items, GridItemFromStyle(child.Style))
	}

	results := gc.Layout(container, items)
	bottom := container.Content.Y
	for i, child := range inFlow {
		area := results[i].Content
		d := &child.Dimensions
		d.Content = area.ShrunkBy(d.Edges())

		// Items stretch to their area unless sized explicitly.
		if v, ok := styleValue(child.Style, "width"); ok {
			if size := definiteSize(v, area.Width); size != nil {
				d.Content.Width = *size
			}
		}
		contentHeight := e.layoutContents(child)
		if h, ok := explicitHeight(child); ok {
			d.Content.Height = h
		} else {
			d.Content.Height = max(d.Content.Height, contentHeight)
		}

		mb := d.MarginBox()
		bottom = max(bottom, mb.Y+mb.Height)
	}
	e.layoutOutOfFlow(b)

	if hasHeight {
		return height
	}
	return bottom - container.Content.Y
}

func styleValue(n style.Node, name string) (style.Value, bool) {
	if n == nil {
		return style.Value{}, false
	}
	return n.Value(name)
}
