// internal/layout/grid.go
package layout

// -- Grid --

// DefaultAutoTrackSize is the allowance given to `auto` tracks.
const DefaultAutoTrackSize = 100.0

// MaxGridLines bounds grid line numbers and spans.
const MaxGridLines = 1000

type TrackKind int

const (
	TrackFixed TrackKind = iota
	TrackFr
	TrackAuto
)

// TrackSize is one entry of a grid track list.
type TrackSize struct {
	Kind  TrackKind
	Value float64
}

func FixedTrack(px float64) TrackSize { return TrackSize{Kind: TrackFixed, Value: px} }
func FrTrack(weight float64) TrackSize { return TrackSize{Kind: TrackFr, Value: weight} }
func AutoTrack() TrackSize { return TrackSize{Kind: TrackAuto} }

// GridContainer holds the explicit grid definition.
type GridContainer struct {
	Columns   []TrackSize
	Rows      []TrackSize
	ColumnGap float64
	RowGap    float64
	// AutoTrackSize is the size of auto tracks; zero selects
	// DefaultAutoTrackSize.
	AutoTrackSize float64
}

// NewGridContainer returns a single auto column and row grid.
func NewGridContainer() GridContainer {
	return GridContainer{
		Columns: []TrackSize{AutoTrack()},
		Rows:    []TrackSize{AutoTrack()},
	}
}

// GridItem places an item on the grid. Lines are 0-indexed; nil fields are
// auto-placed or default to a span of one.
type GridItem struct {
	ColumnStart *int
	RowStart    *int
	ColumnSpan  *int
	RowSpan     *int
}

type gridPlacement struct {
	col, row         int
	colSpan, rowSpan int
}

// Layout returns one Dimensions per item, in input order, whose Content is
// the grid area the item occupies.
func (g GridContainer) Layout(container Dimensions, items []GridItem) []Dimensions {
	results := make([]Dimensions, len(items))
	if len(items) == 0 {
		return results
	}

	colSizes := g.resolveTracks(g.Columns, container.Content.Width, g.ColumnGap)
	placements := g.placeItems(items, len(colSizes))

	needed := 0
	for _, p := range placements {
		needed = max(needed, p.row+1)
	}
	rows := append([]TrackSize(nil), g.Rows...)
	if len(rows) > 0 {
		for len(rows) < needed {
			rows = append(rows, AutoTrack())
		}
	}
	rowSizes := g.resolveTracks(rows, container.Content.Height, g.RowGap)
	for len(rowSizes) < needed {
		// Implicit rows past an empty template.
		rowSizes = append(rowSizes, g.autoTrackSize())
	}

	for i, p := range placements {
		p.colSpan = clampSpan(p.colSpan, p.col, len(colSizes))
		p.rowSpan = clampSpan(p.rowSpan, p.row, len(rowSizes))

		x, w := trackExtent(colSizes, g.ColumnGap, p.col, p.colSpan)
		y, h := trackExtent(rowSizes, g.RowGap, p.row, p.rowSpan)
		results[i] = Dimensions{Content: Rect{
			X:      container.Content.X + x,
			Y:      container.Content.Y + y,
			Width:  w,
			Height: h,
		}}
	}
	return results
}

// placeItems auto-places items without an explicit start in row-major order.
// Column starts past the last track are clamped to it; explicit row starts
// are clamped to MaxGridLines.
func (g GridContainer) placeItems(items []GridItem, numCols int) []gridPlacement {
	numCols = max(1, numCols)
	out := make([]gridPlacement, len(items))
	for i, item := range items {
		p := gridPlacement{col: i % numCols, row: i / numCols, colSpan: 1, rowSpan: 1}
		if item.ColumnStart != nil {
			p.col = *item.ColumnStart
		}
		if item.RowStart != nil {
			p.row = min(*item.RowStart, MaxGridLines-1)
		}
		p.col = min(max(0, p.col), numCols-1)
		p.row = max(0, p.row)
		if item.ColumnSpan != nil {
			p.colSpan = *item.ColumnSpan
		}
		if item.RowSpan != nil {
			p.rowSpan = *item.RowSpan
		}
		out[i] = p
	}
	return out
}

// resolveTracks sizes a track list: fixed tracks take their size, auto tracks
// the auto allowance, and fr tracks share what is left by weight.
func (g GridContainer) resolveTracks(tracks []TrackSize, available, gap float64) []float64 {
	if len(tracks) == 0 {
		return []float64{available}
	}

	autoSize := g.autoTrackSize()
	sizes := make([]float64, len(tracks))
	used := gap * float64(len(tracks)-1)
	totalFr := 0.0
	for i, t := range tracks {
		switch t.Kind {
		case TrackFixed:
			sizes[i] = max(0, t.Value)
			used += sizes[i]
		case TrackAuto:
			sizes[i] = autoSize
			used += autoSize
		case TrackFr:
			totalFr += max(0, t.Value)
		}
	}

	if totalFr > 0 {
		remaining := max(0, available-used)
		for i, t := range tracks {
			if t.Kind == TrackFr {
				sizes[i] = remaining * max(0, t.Value) / totalFr
			}
		}
	}
	return sizes
}

func (g GridContainer) autoTrackSize() float64 {
	if g.AutoTrackSize <= 0 {
		return DefaultAutoTrackSize
	}
	return g.AutoTrackSize
}

func clampSpan(span, start, count int) int {
	return max(1, min(span, count-start))
}

// trackExtent returns the offset of track start and the size of span tracks
// including the gaps between them.
func trackExtent(sizes []float64, gap float64, start, span int) (offset, size float64) {
	for i := 0; i < start; i++ {
		offset += sizes[i] + gap
	}
	for i := start; i < start+span; i++ {
		size += sizes[i]
	}
	size += gap * float64(span-1)
	return offset, size
}
