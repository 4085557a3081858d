// internal/layout/flex.go
package layout

import "math"

// -- Flexbox --

type FlexDirection int

const (
	Row FlexDirection = iota
	RowReverse
	Column
	ColumnReverse
)

// MainAxis returns the axis items are laid out along.
func (d FlexDirection) MainAxis() Axis {
	if d == Column || d == ColumnReverse {
		return Vertical
	}
	return Horizontal
}

// IsReverse reports whether the main axis runs from end to start.
func (d FlexDirection) IsReverse() bool {
	return d == RowReverse || d == ColumnReverse
}

type FlexWrap int

const (
	NoWrap FlexWrap = iota
	Wrap
	WrapReverse
)

type JustifyContent int

const (
	JustifyFlexStart JustifyContent = iota
	JustifyFlexEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// AlignItems places items on the cross axis within their line. The zero
// value is AlignStretch, the CSS initial value.
type AlignItems int

const (
	AlignStretch AlignItems = iota
	AlignFlexStart
	AlignFlexEnd
	AlignCenter
	AlignBaseline
)

// FlexContainer holds the container-level flex properties.
type FlexContainer struct {
	Direction      FlexDirection
	Wrap           FlexWrap
	JustifyContent JustifyContent
	AlignItems     AlignItems
}

// FlexItem holds the item-level flex properties. Sizes are outer (margin box)
// sizes; nil means unset.
type FlexItem struct {
	Grow   float64
	Shrink float64
	Basis  *float64
	// MinSize and MaxSize bound the main size.
	MinSize *float64
	MaxSize *float64
	// CrossSize is a definite cross size. Items without one are stretched
	// when the container aligns with AlignStretch.
	CrossSize *float64
	// ContentCrossSize is the cross size an item's contents need when it has
	// no CrossSize. It sizes the item's line but the item still stretches.
	ContentCrossSize *float64
}

// NewFlexItem returns an item with the CSS initial values (grow 0, shrink 1).
func NewFlexItem() FlexItem {
	return FlexItem{Shrink: 1}
}

// Float returns a pointer to f, for the optional fields of engine inputs.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to i.
func Int(i int) *int { return &i }

// flexItemState is the per-call working state for one item.
type flexItemState struct {
	hypothetical float64
	main         float64
	cross        float64
	crossDefined bool
	mainPos      float64
	crossPos     float64
}

type flexLine struct {
	items     []int
	mainSize  float64
	crossSize float64
}

// Layout positions items inside container and returns one Dimensions per
// item, in input order. Each result's Content is the item's outer rectangle
// in the container's coordinate space.
func (fc FlexContainer) Layout(container Dimensions, items []FlexItem) []Dimensions {
	results := make([]Dimensions, len(items))
	if len(items) == 0 {
		return results
	}

	mainAxis := fc.Direction.MainAxis()
	crossAxis := mainAxis.Cross()
	availableMain := container.Content.Size(mainAxis)
	availableCross := container.Content.Size(crossAxis)

	states := fc.calculateBaseSizes(items)
	lines := fc.collectLines(states, availableMain)
	for _, line := range lines {
		resolveFlexibleLengths(line, states, items, availableMain)
	}
	fc.determineCrossSizes(lines, states, availableCross)
	fc.alignMainAxis(lines, states, availableMain)
	fc.alignCrossAxis(lines, states, availableCross)

	originMain := container.Content.Start(mainAxis)
	originCross := container.Content.Start(crossAxis)
	for i, st := range states {
		var r Rect
		if mainAxis == Horizontal {
			r = Rect{X: originMain + st.mainPos, Y: originCross + st.crossPos, Width: st.main, Height: st.cross}
		} else {
			r = Rect{X: originCross + st.crossPos, Y: originMain + st.mainPos, Width: st.cross, Height: st.main}
		}
		results[i] = Dimensions{Content: r}
	}
	return results
}

// calculateBaseSizes: hypothetical main size is the basis clamped to
// [min, max].
func (fc FlexContainer) calculateBaseSizes(items []FlexItem) []flexItemState {
	states := make([]flexItemState, len(items))
	for i, item := range items {
		basis := 0.0
		if item.Basis != nil {
			basis = *item.Basis
		}
		hyp := clampSize(basis, item.MinSize, item.MaxSize)
		states[i] = flexItemState{hypothetical: hyp, main: hyp}
		if item.CrossSize != nil {
			states[i].cross = max(0, *item.CrossSize)
			states[i].crossDefined = true
		} else if item.ContentCrossSize != nil {
			states[i].cross = max(0, *item.ContentCrossSize)
		}
	}
	return states
}

// collectLines breaks items into lines. An item that does not fit on its own
// still gets a line to itself.
func (fc FlexContainer) collectLines(states []flexItemState, availableMain float64) []*flexLine {
	current := &flexLine{}
	lines := []*flexLine{current}

	if fc.Wrap == NoWrap {
		for i, st := range states {
			current.items = append(current.items, i)
			current.mainSize += st.hypothetical
		}
		return lines
	}

	for i, st := range states {
		if len(current.items) > 0 && current.mainSize+st.hypothetical > availableMain {
			current = &flexLine{}
			lines = append(lines, current)
		}
		current.items = append(current.items, i)
		current.mainSize += st.hypothetical
	}
	return lines
}

const flexEpsilon = 0.001

// resolveFlexibleLengths distributes a line's free space. Positive space is
// shared by flex-grow, negative space by flex-shrink; min/max are applied
// last.
func resolveFlexibleLengths(line *flexLine, states []flexItemState, items []FlexItem, availableMain float64) {
	free := availableMain - line.mainSize
	growing := free > flexEpsilon
	shrinking := free < -flexEpsilon

	total := 0.0
	for _, i := range line.items {
		if growing {
			total += max(0, items[i].Grow)
		} else if shrinking {
			total += max(0, items[i].Shrink)
		}
	}

	line.mainSize = 0
	for _, i := range line.items {
		st := &states[i]
		size := st.hypothetical
		if total > 0 {
			if growing {
				size += free * max(0, items[i].Grow) / total
			} else if shrinking {
				size += free * max(0, items[i].Shrink) / total
			}
		}
		size = max(0, clampSize(max(0, size), items[i].MinSize, items[i].MaxSize))
		st.main = size
		line.mainSize += size
	}
}

// determineCrossSizes sizes each line to its largest item. A single
// unwrapped line fills the container; wrapped lines with only empty items
// share the container's cross size equally.
func (fc FlexContainer) determineCrossSizes(lines []*flexLine, states []flexItemState, availableCross float64) {
	for _, line := range lines {
		largest := 0.0
		for _, i := range line.items {
			largest = max(largest, states[i].cross)
		}
		switch {
		case fc.Wrap == NoWrap:
			line.crossSize = max(availableCross, largest)
		case largest > 0:
			line.crossSize = largest
		default:
			line.crossSize = max(0, availableCross) / float64(len(lines))
		}
	}
}

func (fc FlexContainer) alignMainAxis(lines []*flexLine, states []flexItemState, availableMain float64) {
	for _, line := range lines {
		offset, spacing := justifyOffsets(fc.JustifyContent, availableMain-line.mainSize, len(line.items))
		pos := offset
		for _, i := range line.items {
			st := &states[i]
			st.mainPos = pos
			pos += st.main + spacing
			if fc.Direction.IsReverse() {
				st.mainPos = availableMain - st.mainPos - st.main
			}
		}
	}
}

func (fc FlexContainer) alignCrossAxis(lines []*flexLine, states []flexItemState, availableCross float64) {
	total := 0.0
	for _, line := range lines {
		total += line.crossSize
	}
	extent := max(availableCross, total)

	lineStart := 0.0
	for _, line := range lines {
		start := lineStart
		if fc.Wrap == WrapReverse {
			start = extent - lineStart - line.crossSize
		}
		for _, i := range line.items {
			st := &states[i]
			offset := 0.0
			switch fc.AlignItems {
			case AlignFlexEnd:
				offset = line.crossSize - st.cross
			case AlignCenter:
				offset = (line.crossSize - st.cross) / 2
			case AlignStretch:
				if !st.crossDefined {
					st.cross = line.crossSize
				}
			case AlignFlexStart, AlignBaseline:
				// Baselines are not tracked; baseline aligns like flex-start.
			}
			st.crossPos = start + offset
		}
		lineStart += line.crossSize
	}
}

// justifyOffsets returns the leading offset and the space between adjacent
// items for a line with the given free space. Negative free space gives
// negative spacing, so overflowing items overlap.
func justifyOffsets(j JustifyContent, free float64, n int) (start, spacing float64) {
	if n == 0 {
		return 0, 0
	}
	switch j {
	case JustifyFlexEnd:
		return free, 0
	case JustifyCenter:
		return free / 2, 0
	case JustifySpaceBetween:
		if n == 1 {
			return 0, 0
		}
		return 0, free / float64(n-1)
	case JustifySpaceAround:
		gap := free / float64(n)
		return gap / 2, gap
	case JustifySpaceEvenly:
		gap := free / float64(n+1)
		return gap, gap
	}
	return 0, 0
}

func clampSize(v float64, lo, hi *float64) float64 {
	if hi != nil && !math.IsNaN(*hi) && v > *hi {
		v = *hi
	}
	if lo != nil && !math.IsNaN(*lo) && v < *lo {
		v = *lo
	}
	return v
}
