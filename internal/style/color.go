// internal/style/color.go
package style

import (
	"regexp"
	"strconv"
	"strings"
)

// Color is an sRGB color with alpha, each channel in [0, 255].
type Color struct {
	R, G, B, A uint8
}

var cssColors = map[string]Color{
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"orange":      {255, 165, 0, 255},
	"purple":      {128, 0, 128, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseColor understands named colors, #rgb/#rgba/#rrggbb/#rrggbbaa and
// rgb()/rgba().
func ParseColor(value string) (Color, bool) {
	value = strings.TrimSpace(strings.ToLower(value))

	if c, ok := cssColors[value]; ok {
		return c, true
	}
	if strings.HasPrefix(value, "#") {
		return parseHexColor(value)
	}
	if strings.HasPrefix(value, "rgb") {
		return parseRGBColor(value)
	}
	return Color{}, false
}

func parseHexColor(hex string) (Color, bool) {
	hex = strings.TrimPrefix(hex, "#")
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return Color{}, false
		}
	}

	digit := func(i int) uint8 { d, _ := hexDigit(hex[i]); return d }
	pair := func(i int) uint8 { return digit(i)<<4 | digit(i+1) }

	c := Color{A: 255}
	switch len(hex) {
	case 3, 4:
		c.R, c.G, c.B = digit(0)*17, digit(1)*17, digit(2)*17
		if len(hex) == 4 {
			c.A = digit(3) * 17
		}
	case 6, 8:
		c.R, c.G, c.B = pair(0), pair(2), pair(4)
		if len(hex) == 8 {
			c.A = pair(6)
		}
	default:
		return Color{}, false
	}
	return c, true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

var rgbRegex = regexp.MustCompile(`^rgba?\((.*?)\)$`)

func parseRGBColor(value string) (Color, bool) {
	matches := rgbRegex.FindStringSubmatch(value)
	if len(matches) != 2 {
		return Color{}, false
	}

	parts := strings.FieldsFunc(matches[1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(parts) < 3 || len(parts) > 4 {
		return Color{}, false
	}

	c := Color{
		R: parseColorComponent(parts[0], false),
		G: parseColorComponent(parts[1], false),
		B: parseColorComponent(parts[2], false),
		A: 255,
	}
	if len(parts) == 4 {
		c.A = parseColorComponent(parts[3], true)
	}
	return c, true
}

func parseColorComponent(value string, isAlpha bool) uint8 {
	value = strings.TrimSpace(value)

	if strings.HasSuffix(value, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		if err != nil {
			return 0
		}
		return uint8(clamp(pct/100*255+0.5, 0, 255))
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		if isAlpha {
			return 255
		}
		return 0
	}
	if isAlpha {
		return uint8(clamp(f*255+0.5, 0, 255))
	}
	return uint8(clamp(f+0.5, 0, 255))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
