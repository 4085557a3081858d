// internal/layout/properties.go
package layout

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/boxflow/internal/observability"
	"github.com/xkilldash9x/boxflow/internal/style"
)

// -- Style to engine inputs --

func keyword(n style.Node, name string) string {
	if n == nil {
		return ""
	}
	v, ok := n.Value(name)
	if !ok || v.Kind != style.KindKeyword {
		return ""
	}
	return strings.ToLower(v.Keyword)
}

// FlexContainerFromStyle reads flex-direction, flex-wrap, justify-content
// and align-items.
func FlexContainerFromStyle(n style.Node) FlexContainer {
	var fc FlexContainer

	switch keyword(n, "flex-direction") {
	case "row-reverse":
		fc.Direction = RowReverse
	case "column":
		fc.Direction = Column
	case "column-reverse":
		fc.Direction = ColumnReverse
	}

	switch keyword(n, "flex-wrap") {
	case "wrap":
		fc.Wrap = Wrap
	case "wrap-reverse":
		fc.Wrap = WrapReverse
	}

	switch keyword(n, "justify-content") {
	case "flex-end", "end", "right":
		fc.JustifyContent = JustifyFlexEnd
	case "center":
		fc.JustifyContent = JustifyCenter
	case "space-between":
		fc.JustifyContent = JustifySpaceBetween
	case "space-around":
		fc.JustifyContent = JustifySpaceAround
	case "space-evenly":
		fc.JustifyContent = JustifySpaceEvenly
	}

	switch keyword(n, "align-items") {
	case "flex-start", "start", "self-start":
		fc.AlignItems = AlignFlexStart
	case "flex-end", "end", "self-end":
		fc.AlignItems = AlignFlexEnd
	case "center":
		fc.AlignItems = AlignCenter
	case "baseline", "first baseline", "last baseline":
		fc.AlignItems = AlignBaseline
	}
	return fc
}

// FlexItemFromStyle reads the item's flex factors and sizes. Sizes are
// content-box sizes; percentages resolve against the container's size along
// the same axis. flex-basis falls back to the main size property.
func FlexItemFromStyle(n style.Node, mainAxis Axis, container Rect) FlexItem {
	item := NewFlexItem()
	if n == nil {
		return item
	}

	if v, ok := n.Value("flex-grow"); ok {
		if f, ok := v.Float(); ok {
			item.Grow = max(0, f)
		}
	}
	if v, ok := n.Value("flex-shrink"); ok {
		if f, ok := v.Float(); ok {
			item.Shrink = max(0, f)
		}
	}

	mainProp, crossProp := "width", "height"
	if mainAxis == Vertical {
		mainProp, crossProp = "height", "width"
	}
	mainRef := container.Size(mainAxis)
	crossRef := container.Size(mainAxis.Cross())

	if basis, ok := n.Value("flex-basis"); ok {
		item.Basis = definiteSize(basis, mainRef)
	}
	if item.Basis == nil {
		if size, ok := n.Value(mainProp); ok {
			item.Basis = definiteSize(size, mainRef)
		}
	}
	if v, ok := n.Value("min-" + mainProp); ok {
		item.MinSize = definiteSize(v, mainRef)
	}
	if v, ok := n.Value("max-" + mainProp); ok {
		item.MaxSize = definiteSize(v, mainRef)
	}
	if v, ok := n.Value(crossProp); ok {
		item.CrossSize = definiteSize(v, crossRef)
	}
	return item
}

// definiteSize resolves lengths, bare numbers and percentages; keywords
// (auto, content, none) are indefinite.
func definiteSize(v style.Value, reference float64) *float64 {
	switch v.Kind {
	case style.KindLength, style.KindNumber, style.KindPercentage:
		return Float(max(0, v.Resolve(reference)))
	}
	return nil
}

// GridContainerFromStyle reads the grid template and gaps. Percentages in
// tracks and gaps resolve against the container's content size.
func GridContainerFromStyle(n style.Node, container Rect, autoTrackSize float64, logger *zap.Logger) GridContainer {
	g := NewGridContainer()
	g.AutoTrackSize = autoTrackSize
	if n == nil {
		return g
	}
	if v, ok := n.Value("grid-template-columns"); ok {
		g.Columns = ParseTrackList(v, container.Width, logger)
	}
	if v, ok := n.Value("grid-template-rows"); ok {
		g.Rows = ParseTrackList(v, container.Height, logger)
	}
	g.ColumnGap = max(0, n.Lookup("column-gap", "grid-column-gap", style.Zero).Resolve(container.Width))
	g.RowGap = max(0, n.Lookup("row-gap", "grid-row-gap", style.Zero).Resolve(container.Height))
	return g
}

var repeatRegex = regexp.MustCompile(`repeat\(\s*(\d+)\s*,\s*([^)]+)\)`)

var minmaxRegex = regexp.MustCompile(`^minmax\(\s*([^,]+?)\s*,\s*([^)]+?)\s*\)$`)

// maxRepeat caps the count of a repeat() notation.
const maxRepeat = 10000

// ParseTrackList turns a grid-template value into track sizes. `none` yields
// an empty list; line names are skipped and malformed tracks are dropped
// with a warning on logger, or on the global logger when it is nil.
func ParseTrackList(v style.Value, reference float64, logger *zap.Logger) []TrackSize {
	switch v.Kind {
	case style.KindLength, style.KindNumber:
		return []TrackSize{FixedTrack(v.ToPx())}
	case style.KindPercentage:
		return []TrackSize{FixedTrack(v.Resolve(reference))}
	case style.KindKeyword:
	default:
		return nil
	}

	value := strings.TrimSpace(v.Keyword)
	if value == "" || strings.EqualFold(value, "none") {
		return nil
	}

	if logger == nil {
		logger = observability.GetLogger()
	}
	expanded := repeatRegex.ReplaceAllStringFunc(value, func(match string) string {
		sub := repeatRegex.FindStringSubmatch(match)
		count, err := strconv.Atoi(sub[1])
		if errors.Is(err, strconv.ErrRange) {
			count, err = maxRepeat+1, nil
		}
		if err != nil || count <= 0 {
			logger.Warn("Invalid count in repeat()", zap.String("match", match))
			return ""
		}
		if count > maxRepeat {
			logger.Warn("Clamping count in repeat()", zap.String("match", match), zap.Int("max", maxRepeat))
			count = maxRepeat
		}
		return strings.TrimSpace(strings.Repeat(sub[2]+" ", count))
	})

	var tracks []TrackSize
	for _, token := range tokenizeGridTracks(expanded) {
		if strings.HasPrefix(token, "[") {
			continue
		}
		track, ok := parseTrack(token, reference)
		if !ok {
			logger.Warn("Ignoring unsupported grid track", zap.String("track", token))
			continue
		}
		tracks = append(tracks, track)
	}
	return tracks
}

func parseTrack(token string, reference float64) (TrackSize, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	switch token {
	case "auto", "min-content", "max-content":
		return AutoTrack(), true
	}
	if m := minmaxRegex.FindStringSubmatch(token); m != nil {
		// The maximum decides how the track grows.
		if t, ok := parseTrack(m[2], reference); ok {
			return t, true
		}
		return parseTrack(m[1], reference)
	}
	if strings.HasSuffix(token, "fr") {
		w, err := strconv.ParseFloat(strings.TrimSuffix(token, "fr"), 64)
		if err != nil || w < 0 {
			return TrackSize{}, false
		}
		return FrTrack(w), true
	}
	v := style.ParseValue(token, style.Units{FontSize: style.BaseFontSize, RootFontSize: style.BaseFontSize})
	switch v.Kind {
	case style.KindLength, style.KindNumber:
		return FixedTrack(max(0, v.ToPx())), true
	case style.KindPercentage:
		return FixedTrack(max(0, v.Resolve(reference))), true
	}
	return TrackSize{}, false
}

func tokenizeGridTracks(value string) []string {
	var tokens []string
	for i := 0; i < len(value); {
		if isSpace(value[i]) {
			i++
			continue
		}
		start := i
		if value[i] == '[' {
			end := strings.IndexByte(value[start:], ']')
			if end == -1 {
				tokens = append(tokens, value[start:])
				break
			}
			tokens = append(tokens, value[start:start+end+1])
			i = start + end + 1
			continue
		}
		depth := 0
		for ; i < len(value); i++ {
			c := value[i]
			if c == '(' {
				depth++
			} else if c == ')' {
				depth--
			} else if isSpace(c) && depth == 0 {
				break
			}
		}
		tokens = append(tokens, value[start:i])
	}
	return tokens
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

// GridItemFromStyle converts 1-indexed grid lines to 0-indexed starts and
// spans. `span N` may appear on either side; an end line before the start
// yields a span of one.
func GridItemFromStyle(n style.Node) GridItem {
	var item GridItem
	if n == nil {
		return item
	}
	item.ColumnStart, item.ColumnSpan = gridLines(n, "grid-column-start", "grid-column-end")
	item.RowStart, item.RowSpan = gridLines(n, "grid-row-start", "grid-row-end")
	return item
}

func gridLines(n style.Node, startProp, endProp string) (start, span *int) {
	var startLine, endLine *int
	if v, ok := n.Value(startProp); ok {
		startLine, span = parseGridLine(v)
	}
	if v, ok := n.Value(endProp); ok {
		line, s := parseGridLine(v)
		if s != nil && span == nil {
			span = s
		}
		endLine = line
	}

	if startLine != nil && *startLine >= 1 {
		start = Int(*startLine - 1)
	}
	if start != nil && endLine != nil && span == nil {
		span = Int(max(1, *endLine-1-*start))
	}
	return start, span
}

// parseGridLine returns either a line number or a span count. Both are
// clamped to MaxGridLines.
func parseGridLine(v style.Value) (line, span *int) {
	switch v.Kind {
	case style.KindNumber:
		if v.Number == math.Trunc(v.Number) {
			n := max(-MaxGridLines, min(MaxGridLines, v.Number))
			return Int(int(n)), nil
		}
	case style.KindKeyword:
		fields := strings.Fields(strings.ToLower(v.Keyword))
		if len(fields) == 2 && fields[0] == "span" {
			k, err := strconv.Atoi(fields[1])
			if errors.Is(err, strconv.ErrRange) {
				k, err = MaxGridLines, nil
			}
			if err == nil && k > 0 {
				return nil, Int(min(k, MaxGridLines))
			}
		}
	}
	return nil, nil
}

// PositionedElementFromStyle reads position, the four offsets and z-index.
// Horizontal offset percentages resolve against the containing block's width
// and vertical ones against its height.
func PositionedElementFromStyle(n style.Node, containingBlock Rect) PositionedElement {
	var p PositionedElement
	if n == nil {
		return p
	}
	switch keyword(n, "position") {
	case "relative":
		p.Position = Relative
	case "absolute":
		p.Position = Absolute
	case "fixed":
		p.Position = Fixed
	case "sticky", "-webkit-sticky":
		p.Position = Sticky
	}

	offset := func(name string, reference float64) *float64 {
		v, ok := n.Value(name)
		if !ok || !(v.IsDefinite() || v.Kind == style.KindNumber) {
			return nil
		}
		return Float(v.Resolve(reference))
	}
	p.Offsets = Offsets{
		Top:    offset("top", containingBlock.Height),
		Right:  offset("right", containingBlock.Width),
		Bottom: offset("bottom", containingBlock.Height),
		Left:   offset("left", containingBlock.Width),
	}

	if v, ok := n.Value("z-index"); ok && v.Kind == style.KindNumber {
		p.ZIndex = int(v.Number)
	}
	return p
}
