// internal/layout/box.go
package layout

import "github.com/xkilldash9x/boxflow/internal/style"

// -- Core Structures: Box Model and Dimensions --

// Axis represents a layout direction.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Cross returns the perpendicular axis.
func (a Axis) Cross() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ExpandedBy returns a new rectangle grown outward by the edge sizes.
func (r Rect) ExpandedBy(e EdgeSizes) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// ShrunkBy is the inverse of ExpandedBy, with sizes floored at zero.
func (r Rect) ShrunkBy(e EdgeSizes) Rect {
	return Rect{
		X:      r.X + e.Left,
		Y:      r.Y + e.Top,
		Width:  max(0, r.Width-e.Left-e.Right),
		Height: max(0, r.Height-e.Top-e.Bottom),
	}
}

// Size returns the extent along axis.
func (r Rect) Size(axis Axis) float64 {
	if axis == Horizontal {
		return r.Width
	}
	return r.Height
}

// Start returns the origin coordinate along axis.
func (r Rect) Start(axis Axis) float64 {
	if axis == Horizontal {
		return r.X
	}
	return r.Y
}

// Translate moves the rectangle by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// EdgeSizes holds the widths of the four sides of a margin, border or padding.
type EdgeSizes struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Add sums two sets of edges side by side.
func (e EdgeSizes) Add(o EdgeSizes) EdgeSizes {
	return EdgeSizes{
		Left:   e.Left + o.Left,
		Right:  e.Right + o.Right,
		Top:    e.Top + o.Top,
		Bottom: e.Bottom + o.Bottom,
	}
}

// Sum returns the total edge size along axis.
func (e EdgeSizes) Sum(axis Axis) float64 {
	if axis == Horizontal {
		return e.Left + e.Right
	}
	return e.Top + e.Bottom
}

// Dimensions defines the geometry of a layout box. Content is in absolute
// coordinates; the other boxes are derived from it.
type Dimensions struct {
	Content Rect      `json:"content"`
	Padding EdgeSizes `json:"padding"`
	Border  EdgeSizes `json:"border"`
	Margin  EdgeSizes `json:"margin"`
}

// PaddingBox returns the rectangle enclosing the padding area.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox returns the rectangle enclosing the border area.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox returns the rectangle enclosing the margin area.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// Edges returns margin, border and padding combined.
func (d Dimensions) Edges() EdgeSizes {
	return d.Margin.Add(d.Border).Add(d.Padding)
}

// Translate moves the content rectangle by (dx, dy).
func (d *Dimensions) Translate(dx, dy float64) {
	d.Content = d.Content.Translate(dx, dy)
}

// -- Box Tree --

// BoxKind classifies a layout box.
type BoxKind int

const (
	BlockNode BoxKind = iota
	InlineNode
	AnonymousBlock
)

func (k BoxKind) String() string {
	switch k {
	case InlineNode:
		return "inline"
	case AnonymousBlock:
		return "anonymous"
	}
	return "block"
}

// LayoutBox is one node of the box tree. Style is nil for anonymous boxes.
type LayoutBox struct {
	Dimensions Dimensions
	Kind       BoxKind
	Style      style.Node
	Children   []*LayoutBox

	// Set by the positioning pass.
	Position Position
	ZIndex   int
}

// display returns the display used to lay out the box's contents.
func (b *LayoutBox) display() style.Display {
	if b.Style == nil {
		return style.DisplayBlock
	}
	return b.Style.Display()
}

// translate moves the box and all of its descendants.
func (b *LayoutBox) translate(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	b.Dimensions.Translate(dx, dy)
	for _, c := range b.Children {
		c.translate(dx, dy)
	}
}

// Walk visits b and its descendants in document order until fn returns false.
func (b *LayoutBox) Walk(fn func(*LayoutBox) bool) bool {
	if !fn(b) {
		return false
	}
	for _, c := range b.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
