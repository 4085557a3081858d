// internal/style/value.go
package style

import (
	"fmt"
	"strconv"
	"strings"
)

// -- Computed Values --

// ValueKind discriminates the variants of a computed Value.
type ValueKind int

const (
	KindKeyword ValueKind = iota
	KindLength
	KindPercentage
	KindColor
	KindNumber
)

// Value is a computed style value. Lengths are already resolved to pixels;
// percentages stay relative until layout resolves them against a reference.
type Value struct {
	Kind    ValueKind
	Keyword string
	Number  float64
	Color   Color
}

func Keyword(k string) Value { return Value{Kind: KindKeyword, Keyword: k} }
func Px(px float64) Value { return Value{Kind: KindLength, Number: px} }
func Percent(pct float64) Value { return Value{Kind: KindPercentage, Number: pct} }
func Number(n float64) Value { return Value{Kind: KindNumber, Number: n} }
func ColorValue(c Color) Value { return Value{Kind: KindColor, Color: c} }

var (
	// Auto is the `auto` keyword.
	Auto = Keyword("auto")
	// Zero is a zero length, the usual default for box-model lookups.
	Zero = Px(0)
)

// IsKeyword reports whether v is the keyword k (case-insensitive).
func (v Value) IsKeyword(k string) bool {
	return v.Kind == KindKeyword && strings.EqualFold(v.Keyword, k)
}

// IsAuto reports whether v is `auto`.
func (v Value) IsAuto() bool { return v.IsKeyword("auto") }

// IsDefinite reports whether v is a length or percentage.
func (v Value) IsDefinite() bool {
	return v.Kind == KindLength || v.Kind == KindPercentage
}

// ToPx returns the pixel value of a length (or bare number), and 0 for every
// other kind.
func (v Value) ToPx() float64 {
	switch v.Kind {
	case KindLength, KindNumber:
		return v.Number
	}
	return 0
}

// Resolve is ToPx with percentages resolved against reference.
func (v Value) Resolve(reference float64) float64 {
	if v.Kind == KindPercentage {
		return reference * v.Number / 100
	}
	return v.ToPx()
}

// Float returns the numeric payload of numbers and lengths.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindNumber, KindLength:
		return v.Number, true
	}
	return 0, false
}

func (v Value) String() string {
	switch v.Kind {
	case KindLength:
		return strconv.FormatFloat(v.Number, 'f', -1, 64) + "px"
	case KindPercentage:
		return strconv.FormatFloat(v.Number, 'f', -1, 64) + "%"
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindColor:
		return fmt.Sprintf("rgba(%d, %d, %d, %d)", v.Color.R, v.Color.G, v.Color.B, v.Color.A)
	}
	return v.Keyword
}

// -- Parsing --

// Units is the context needed to turn relative lengths into pixels.
type Units struct {
	FontSize       float64
	RootFontSize   float64
	ViewportWidth  float64
	ViewportHeight float64
}

// ParseValue converts a declared value into its computed form. Unknown or
// multi-token input is kept as a keyword so that property-specific parsers
// (grid track lists, `span N`) can interpret it later.
func ParseValue(raw string, u Units) Value {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Keyword("")
	}
	if strings.ContainsAny(raw, " \t\n") {
		// rgb() and rgba() are the only multi-token values with a computed form.
		if c, ok := ParseColor(raw); ok {
			return ColorValue(c)
		}
		return Keyword(raw)
	}
	if strings.HasSuffix(raw, "%") {
		if n, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64); err == nil {
			return Percent(n)
		}
		return Keyword(raw)
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return Number(n)
	}
	if px, ok := parseLength(raw, u); ok {
		return Px(px)
	}
	if c, ok := ParseColor(raw); ok {
		return ColorValue(c)
	}
	return Keyword(strings.ToLower(raw))
}

type unitScale struct {
	suffix string
	scale  func(Units) float64
}

// Longer suffixes first: "rem" before "em", "vmin" before "in".
var lengthUnits = []unitScale{
	{"vmin", func(u Units) float64 { return min(u.ViewportWidth, u.ViewportHeight) / 100 }},
	{"vmax", func(u Units) float64 { return max(u.ViewportWidth, u.ViewportHeight) / 100 }},
	{"rem", func(u Units) float64 { return u.RootFontSize }},
	{"px", func(Units) float64 { return 1 }},
	{"em", func(u Units) float64 { return u.FontSize }},
	{"vw", func(u Units) float64 { return u.ViewportWidth / 100 }},
	{"vh", func(u Units) float64 { return u.ViewportHeight / 100 }},
	{"pt", func(Units) float64 { return 96.0 / 72.0 }},
	{"pc", func(Units) float64 { return 16 }},
	{"in", func(Units) float64 { return 96 }},
	{"cm", func(Units) float64 { return 96 / 2.54 }},
	{"mm", func(Units) float64 { return 96 / 25.4 }},
}

func parseLength(raw string, u Units) (float64, bool) {
	lower := strings.ToLower(raw)
	for _, unit := range lengthUnits {
		if !strings.HasSuffix(lower, unit.suffix) {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSuffix(lower, unit.suffix), 64)
		if err != nil {
			return 0, false
		}
		return n * unit.scale(u), true
	}
	return 0, false
}
