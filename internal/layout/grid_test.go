// internal/layout/grid_test.go
package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/boxflow/internal/layout"
)

func TestGrid_EmptyItems(t *testing.T) {
	got := layout.NewGridContainer().Layout(container(800, 600), nil)
	assert.Empty(t, got)
}

func TestGrid_FixedTracksWithGap(t *testing.T) {
	g := layout.GridContainer{
		Columns:   []layout.TrackSize{layout.FixedTrack(100), layout.FixedTrack(200)},
		Rows:      []layout.TrackSize{layout.FixedTrack(50), layout.FixedTrack(50)},
		ColumnGap: 10,
		RowGap:    10,
	}
	got := g.Layout(container(800, 600), make([]layout.GridItem, 3))
	require.Len(t, got, 3)

	assert.Equal(t, layout.Rect{X: 0, Y: 0, Width: 100, Height: 50}, got[0].Content)
	assert.Equal(t, layout.Rect{X: 110, Y: 0, Width: 200, Height: 50}, got[1].Content)
	assert.Equal(t, layout.Rect{X: 0, Y: 60, Width: 100, Height: 50}, got[2].Content)
}

func TestGrid_FrTracksAreProportional(t *testing.T) {
	g := layout.GridContainer{
		Columns: []layout.TrackSize{layout.FrTrack(1), layout.FrTrack(2)},
		Rows:    []layout.TrackSize{layout.FixedTrack(50)},
	}
	got := g.Layout(container(600, 600), make([]layout.GridItem, 2))

	assert.InDelta(t, 200.0, got[0].Content.Width, 0.01)
	assert.InDelta(t, 400.0, got[1].Content.Width, 0.01)
	assert.InDelta(t, 200.0, got[1].Content.X, 0.01)
}

func TestGrid_FrShareFloorsAtZero(t *testing.T) {
	g := layout.GridContainer{
		Columns: []layout.TrackSize{layout.FixedTrack(500), layout.FrTrack(1)},
		Rows:    []layout.TrackSize{layout.FixedTrack(50)},
	}
	got := g.Layout(container(300, 100), make([]layout.GridItem, 2))
	assert.Zero(t, got[1].Content.Width)
}

func TestGrid_FrAfterFixedAndAuto(t *testing.T) {
	g := layout.GridContainer{
		Columns:   []layout.TrackSize{layout.FixedTrack(100), layout.AutoTrack(), layout.FrTrack(1)},
		Rows:      []layout.TrackSize{layout.FixedTrack(50)},
		ColumnGap: 10,
	}
	got := g.Layout(container(600, 100), make([]layout.GridItem, 3))

	// 600 - 100 - 100 (auto) - 2*10
	assert.InDelta(t, 100.0, got[1].Content.Width, 0.01)
	assert.InDelta(t, 380.0, got[2].Content.Width, 0.01)
	assert.InDelta(t, 220.0, got[2].Content.X, 0.01)
}

func TestGrid_CustomAutoTrackSize(t *testing.T) {
	g := layout.GridContainer{
		Columns:       []layout.TrackSize{layout.AutoTrack()},
		Rows:          []layout.TrackSize{layout.AutoTrack()},
		AutoTrackSize: 40,
	}
	got := g.Layout(container(600, 100), make([]layout.GridItem, 1))
	assert.Equal(t, layout.Rect{Width: 40, Height: 40}, got[0].Content)
}

func TestGrid_Spanning(t *testing.T) {
	g := layout.GridContainer{
		Columns:   []layout.TrackSize{layout.FixedTrack(100), layout.FixedTrack(100), layout.FixedTrack(100)},
		Rows:      []layout.TrackSize{layout.FixedTrack(50)},
		ColumnGap: 10,
	}
	item := layout.GridItem{ColumnStart: layout.Int(0), RowStart: layout.Int(0), ColumnSpan: layout.Int(2)}
	got := g.Layout(container(800, 600), []layout.GridItem{item})

	assert.InDelta(t, 210.0, got[0].Content.Width, 0.01)
}

func TestGrid_SpanClampedToLastTrack(t *testing.T) {
	g := layout.GridContainer{
		Columns: []layout.TrackSize{layout.FixedTrack(100), layout.FixedTrack(100), layout.FixedTrack(100)},
		Rows:    []layout.TrackSize{layout.FixedTrack(50)},
	}
	item := layout.GridItem{ColumnStart: layout.Int(2), RowStart: layout.Int(0), ColumnSpan: layout.Int(5)}
	got := g.Layout(container(800, 600), []layout.GridItem{item})

	assert.InDelta(t, 200.0, got[0].Content.X, 0.01)
	assert.InDelta(t, 100.0, got[0].Content.Width, 0.01)
}

func TestGrid_ColumnStartClamped(t *testing.T) {
	g := layout.GridContainer{
		Columns: []layout.TrackSize{layout.FixedTrack(100), layout.FixedTrack(100)},
		Rows:    []layout.TrackSize{layout.FixedTrack(50)},
	}
	item := layout.GridItem{ColumnStart: layout.Int(7), RowStart: layout.Int(0)}
	got := g.Layout(container(800, 600), []layout.GridItem{item})
	assert.InDelta(t, 100.0, got[0].Content.X, 0.01)
}

func TestGrid_AutoPlacementIsRowMajor(t *testing.T) {
	g := layout.GridContainer{
		Columns: []layout.TrackSize{layout.FixedTrack(100), layout.FixedTrack(100)},
		Rows:    []layout.TrackSize{layout.FixedTrack(50), layout.FixedTrack(50)},
	}
	got := g.Layout(container(800, 600), make([]layout.GridItem, 4))

	wantXY := [][2]float64{{0, 0}, {100, 0}, {0, 50}, {100, 50}}
	for i, xy := range wantXY {
		assert.InDelta(t, xy[0], got[i].Content.X, 0.01, "item %d x", i)
		assert.InDelta(t, xy[1], got[i].Content.Y, 0.01, "item %d y", i)
	}
}

func TestGrid_ImplicitRows(t *testing.T) {
	rows := []layout.TrackSize{layout.FixedTrack(50)}
	g := layout.GridContainer{
		Columns: []layout.TrackSize{layout.FixedTrack(100)},
		Rows:    rows,
	}
	got := g.Layout(container(800, 600), make([]layout.GridItem, 3))

	assert.InDelta(t, 50.0, got[1].Content.Y, 0.01)
	assert.InDelta(t, layout.DefaultAutoTrackSize, got[1].Content.Height, 0.01)
	assert.InDelta(t, 50.0+layout.DefaultAutoTrackSize, got[2].Content.Y, 0.01)
	assert.Len(t, rows, 1, "the caller's track list must not grow")
}

func TestGrid_EmptyTemplateFillsContainer(t *testing.T) {
	g := layout.GridContainer{}
	got := g.Layout(container(300, 200), make([]layout.GridItem, 1))
	assert.Equal(t, layout.Rect{Width: 300, Height: 200}, got[0].Content)
}

func TestGrid_OffsetsByContainerOrigin(t *testing.T) {
	g := layout.GridContainer{
		Columns: []layout.TrackSize{layout.FixedTrack(100), layout.FixedTrack(100)},
		Rows:    []layout.TrackSize{layout.FixedTrack(50)},
	}
	c := layout.Dimensions{Content: layout.Rect{X: 8, Y: 16, Width: 400, Height: 100}}
	got := g.Layout(c, make([]layout.GridItem, 2))
	assert.Equal(t, layout.Rect{X: 108, Y: 16, Width: 100, Height: 50}, got[1].Content)
}

func TestGrid_ExplicitRowStartIsBounded(t *testing.T) {
	g := layout.GridContainer{
		Columns:       []layout.TrackSize{layout.FrTrack(1)},
		Rows:          []layout.TrackSize{layout.FixedTrack(10)},
		AutoTrackSize: 10,
	}
	got := g.Layout(container(100, 0), []layout.GridItem{{RowStart: layout.Int(3_000_000_000)}})
	require.Len(t, got, 1)

	assert.InDelta(t, float64(layout.MaxGridLines-1)*10, got[0].Content.Y, 0.01)
	assert.InDelta(t, 10.0, got[0].Content.Height, 0.01)
}
