// internal/style/value_test.go
package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	u := Units{FontSize: 20, RootFontSize: 16, ViewportWidth: 1000, ViewportHeight: 500}

	tests := []struct {
		raw  string
		want Value
	}{
		{"", Keyword("")},
		{"auto", Keyword("auto")},
		{"AUTO", Keyword("auto")},
		{"12px", Px(12)},
		{"1.5em", Px(30)},
		{"2rem", Px(32)},
		{"10vw", Px(100)},
		{"10vh", Px(50)},
		{"10vmin", Px(50)},
		{"10vmax", Px(100)},
		{"1in", Px(96)},
		{"50%", Percent(50)},
		{"2", Number(2)},
		{"-3.5", Number(-3.5)},
		{"#fff", ColorValue(Color{255, 255, 255, 255})},
		{"red", ColorValue(Color{255, 0, 0, 255})},
		{"rgb(1, 2, 3)", ColorValue(Color{1, 2, 3, 255})},
		{"span 2", Keyword("span 2")},
		{"100px 1fr", Keyword("100px 1fr")},
		{"1fr", Keyword("1fr")},
		{"abc%", Keyword("abc%")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseValue(tt.raw, u))
		})
	}
}

func TestValue_Resolve(t *testing.T) {
	assert.InDelta(t, 50.0, Percent(25).Resolve(200), 0.001)
	assert.InDelta(t, 12.0, Px(12).Resolve(200), 0.001)
	assert.InDelta(t, 3.0, Number(3).Resolve(200), 0.001)
	assert.Zero(t, Auto.Resolve(200))
	assert.Zero(t, Percent(25).ToPx(), "percentages have no pixel value on their own")
	assert.InDelta(t, 16.0, ParseValue("12pt", Units{}).ToPx(), 0.001)
	assert.InDelta(t, 37.795, ParseValue("1cm", Units{}).ToPx(), 0.001)
}

func TestValue_Predicates(t *testing.T) {
	assert.True(t, Keyword("Auto").IsAuto())
	assert.False(t, Px(0).IsAuto())
	assert.True(t, Px(1).IsDefinite())
	assert.True(t, Percent(1).IsDefinite())
	assert.False(t, Number(1).IsDefinite())

	f, ok := Number(2).Float()
	assert.True(t, ok)
	assert.Equal(t, 2.0, f)
	_, ok = Percent(2).Float()
	assert.False(t, ok)
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "12.5px", Px(12.5).String())
	assert.Equal(t, "50%", Percent(50).String())
	assert.Equal(t, "3", Number(3).String())
	assert.Equal(t, "auto", Auto.String())
	assert.Equal(t, "rgba(1, 2, 3, 255)", ColorValue(Color{1, 2, 3, 255}).String())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  Color
		ok    bool
	}{
		{"black", Color{0, 0, 0, 255}, true},
		{"Transparent", Color{0, 0, 0, 0}, true},
		{"#abc", Color{0xaa, 0xbb, 0xcc, 255}, true},
		{"#abcd", Color{0xaa, 0xbb, 0xcc, 0xdd}, true},
		{"#102030", Color{0x10, 0x20, 0x30, 255}, true},
		{"#10203040", Color{0x10, 0x20, 0x30, 0x40}, true},
		{"rgba(255, 0, 0, 0.5)", Color{255, 0, 0, 128}, true},
		{"rgb(100% 0% 0%)", Color{255, 0, 0, 255}, true},
		{"rgb(300, -5, 0)", Color{255, 0, 0, 255}, true},
		{"#12", Color{}, false},
		{"#xyz", Color{}, false},
		{"rgb(1, 2)", Color{}, false},
		{"chartreuse-ish", Color{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseColor(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
