// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/boxflow/internal/config"
	"github.com/xkilldash9x/boxflow/internal/layout"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const page = `<html>
<body style="margin: 0">
  <div id="header" style="height: 40px"></div>
  <div id="row" style="display: flex; height: 100px">
    <div id="left" style="flex: 1"></div>
    <div id="right" style="flex: 3"></div>
  </div>
  <div id="hidden" style="display: none"></div>
  <p id="text">some words</p>
</body>
</html>`

func newTestPipeline(t *testing.T, mutate func(*config.LayoutConfig)) *Pipeline {
	t.Helper()
	cfg := config.NewDefaultConfig().Layout()
	if mutate != nil {
		mutate(&cfg)
	}
	return New(cfg, zaptest.NewLogger(t))
}

func TestPipeline_LayoutHTML(t *testing.T) {
	p := newTestPipeline(t, nil)
	doc, err := p.LayoutHTML(context.Background(), "inline", strings.NewReader(page))
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "inline", doc.Source)
	require.NotNil(t, doc.Styled)
	require.NotNil(t, doc.Tree)
	assert.Equal(t, "html", doc.Tree.View().Tag)
	assert.InDelta(t, 800.0, doc.Tree.Dimensions.Content.Width, 0.01)

	right, err := doc.Select("//div[@id='right']")
	require.NoError(t, err)
	assert.Equal(t, layout.Rect{X: 200, Y: 40, Width: 600, Height: 100}, right.Dimensions.Content)

	// The estimate measurer gives the paragraph one line of text.
	text, err := doc.Select("//p[@id='text']")
	require.NoError(t, err)
	assert.InDelta(t, 140.0, text.Dimensions.Content.Y, 0.01)
	assert.InDelta(t, 16*1.2, text.Dimensions.Content.Height, 0.01)
}

func TestPipeline_MeasureTextDisabled(t *testing.T) {
	p := newTestPipeline(t, func(c *config.LayoutConfig) { c.MeasureText = false })
	doc, err := p.LayoutHTML(context.Background(), "inline", strings.NewReader(page))
	require.NoError(t, err)

	text, err := doc.Select("//p[@id='text']")
	require.NoError(t, err)
	assert.Zero(t, text.Dimensions.Content.Height)
}

func TestDocument_Select(t *testing.T) {
	doc, err := newTestPipeline(t, nil).LayoutHTML(context.Background(), "inline", strings.NewReader(page))
	require.NoError(t, err)

	_, err = doc.Select("//section")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = doc.Select("//div[@id='hidden']")
	assert.ErrorIs(t, err, ErrNotRendered)
	assert.Contains(t, err.Error(), "div#hidden")

	_, err = doc.Select("//div[")
	assert.Error(t, err)
}

func TestPipeline_Budget(t *testing.T) {
	t.Run("depth", func(t *testing.T) {
		p := newTestPipeline(t, func(c *config.LayoutConfig) { c.MaxDepth = 2 })
		_, err := p.LayoutHTML(context.Background(), "deep", strings.NewReader(page))
		assert.ErrorIs(t, err, ErrBudgetExceeded)
	})

	t.Run("nodes", func(t *testing.T) {
		p := newTestPipeline(t, func(c *config.LayoutConfig) { c.MaxNodes = 3 })
		_, err := p.LayoutHTML(context.Background(), "wide", strings.NewReader(page))
		assert.ErrorIs(t, err, ErrBudgetExceeded)
	})
}

func TestPipeline_Errors(t *testing.T) {
	p := newTestPipeline(t, nil)

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := p.LayoutHTML(ctx, "inline", strings.NewReader(page))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("root not rendered", func(t *testing.T) {
		_, err := p.LayoutHTML(context.Background(), "none", strings.NewReader(`<html style="display: none"></html>`))
		assert.ErrorIs(t, err, layout.ErrRootNotRendered)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := p.LayoutFile(context.Background(), filepath.Join(t.TempDir(), "nope.html"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestPipeline_LayoutFiles(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 1; i <= 6; i++ {
		path := filepath.Join(dir, fmt.Sprintf("doc%d.html", i))
		body := fmt.Sprintf(`<html><body style="margin:0"><div style="height: %dpx"></div></body></html>`, i*10)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		paths = append(paths, path)
	}

	p := newTestPipeline(t, nil)
	docs, err := p.LayoutFiles(context.Background(), paths, 2)
	require.NoError(t, err)
	require.Len(t, docs, len(paths))

	ids := make(map[string]bool)
	for i, doc := range docs {
		assert.Equal(t, paths[i], doc.Source, "results keep input order")
		assert.InDelta(t, float64((i+1)*10), doc.Tree.Dimensions.Content.Height, 0.01)
		ids[doc.ID] = true
	}
	assert.Len(t, ids, len(paths), "every pass gets its own ID")

	t.Run("first error fails the batch", func(t *testing.T) {
		bad := append([]string{filepath.Join(dir, "missing.html")}, paths...)
		_, err := p.LayoutFiles(context.Background(), bad, 0)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestFindBox(t *testing.T) {
	assert.Nil(t, FindBox(nil, nil))
}
