// internal/style/measure.go
package style

import (
	"math"
	"unicode/utf8"
)

const (
	// DefaultLineHeight is the multiplier used for `line-height: normal`.
	DefaultLineHeight = 1.2
	// averageGlyphWidth approximates glyph advance as a fraction of font size.
	averageGlyphWidth = 0.6
)

// EstimateMeasurer sizes text runs with a fixed-advance approximation. It
// stands in for a real shaper and is good enough for block-level geometry.
type EstimateMeasurer struct{}

// MeasureText returns the size of n's text when wrapped at availableWidth.
// Non-text nodes measure as zero.
func (EstimateMeasurer) MeasureText(n Node, availableWidth float64) (width, height float64) {
	text, ok := n.Text()
	if !ok {
		return 0, 0
	}
	glyphs := utf8.RuneCountInString(collapseWhitespace(text))
	if glyphs == 0 {
		return 0, 0
	}

	fontSize := n.Lookup("font-size", "", Px(BaseFontSize)).ToPx()
	lineHeight := fontSize * DefaultLineHeight
	if lh, ok := n.Value("line-height"); ok && lh.Kind == KindLength {
		lineHeight = lh.Number
	}

	natural := float64(glyphs) * fontSize * averageGlyphWidth
	if availableWidth <= 0 || natural <= availableWidth {
		return natural, lineHeight
	}
	lines := math.Ceil(natural / availableWidth)
	return availableWidth, lines * lineHeight
}

func collapseWhitespace(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !space && len(out) > 0 {
				out = append(out, ' ')
			}
			space = true
			continue
		}
		space = false
		out = append(out, r)
	}
	if len(out) > 0 && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}
	return string(out)
}
