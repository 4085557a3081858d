// internal/layout/position.go
package layout

// -- Positioning --

type Position int

const (
	Static Position = iota
	Relative
	Absolute
	Fixed
	Sticky
)

func (p Position) String() string {
	switch p {
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	case Fixed:
		return "fixed"
	case Sticky:
		return "sticky"
	}
	return "static"
}

// Offsets are the resolved top/right/bottom/left properties; nil is auto.
type Offsets struct {
	Top    *float64
	Right  *float64
	Bottom *float64
	Left   *float64
}

// PositionedElement carries the positioning properties of one box.
type PositionedElement struct {
	Position Position
	Offsets  Offsets
	ZIndex   int
}

// IsPositioned reports whether the element establishes a containing block
// for absolutely positioned descendants.
func (p PositionedElement) IsPositioned() bool {
	return p.Position != Static
}

// OutOfFlow reports whether the element is removed from normal flow.
func (p PositionedElement) OutOfFlow() bool {
	return p.Position == Absolute || p.Position == Fixed
}

// Apply moves dims according to the element's scheme. Relative and sticky
// offsets shift the box from its flow position; absolute boxes are placed
// against containingBlock's content box and fixed boxes against viewport.
// Left and top win when both sides of an axis are set.
func (p PositionedElement) Apply(dims *Dimensions, containingBlock Dimensions, viewport Rect) {
	switch p.Position {
	case Static:
		return
	case Relative, Sticky:
		dx, dy := 0.0, 0.0
		if p.Offsets.Left != nil {
			dx = *p.Offsets.Left
		} else if p.Offsets.Right != nil {
			dx = -*p.Offsets.Right
		}
		if p.Offsets.Top != nil {
			dy = *p.Offsets.Top
		} else if p.Offsets.Bottom != nil {
			dy = -*p.Offsets.Bottom
		}
		dims.Translate(dx, dy)
	case Absolute:
		p.place(dims, containingBlock.Content)
	case Fixed:
		p.place(dims, viewport)
	}
}

// place anchors the box's margin box inside cb. An axis with neither offset
// set starts at the containing block's origin.
func (p PositionedElement) place(dims *Dimensions, cb Rect) {
	edges := dims.Edges()
	c := &dims.Content

	switch {
	case p.Offsets.Left != nil:
		c.X = cb.X + *p.Offsets.Left + edges.Left
	case p.Offsets.Right != nil:
		c.X = cb.X + cb.Width - *p.Offsets.Right - edges.Right - c.Width
	default:
		c.X = cb.X + edges.Left
	}

	switch {
	case p.Offsets.Top != nil:
		c.Y = cb.Y + *p.Offsets.Top + edges.Top
	case p.Offsets.Bottom != nil:
		c.Y = cb.Y + cb.Height - *p.Offsets.Bottom - edges.Bottom - c.Height
	default:
		c.Y = cb.Y + edges.Top
	}
}
