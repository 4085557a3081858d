// File: cmd/root_test.go
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `<!DOCTYPE html>
<html>
  <head><title>ignored</title></head>
  <body style="margin: 0">
    <div id="a" style="height: 50px"></div>
    <div id="b" style="height: 30px; padding: 5px"></div>
  </body>
</html>`

// executeCommand runs a fresh command tree with args and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTempHTML(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func decodeOutput(t *testing.T, raw []byte) documentOutput {
	t.Helper()
	var doc documentOutput
	require.NoError(t, json.Unmarshal(raw, &doc))
	return doc
}

func TestRootCmd_VersionFlag(t *testing.T) {
	out, err := executeCommand(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "boxflow version "+Version)
}

func TestVersionCmd(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "boxflow "+Version)
}

func TestLayoutCmd(t *testing.T) {
	path := writeTempHTML(t, "page.html", testDocument)

	t.Run("prints the whole tree", func(t *testing.T) {
		out, err := executeCommand(t, "layout", path)
		require.NoError(t, err)

		doc := decodeOutput(t, []byte(out))
		assert.NotEmpty(t, doc.ID)
		assert.Equal(t, path, doc.Source)
		assert.Equal(t, "html", doc.Box.Tag)
		assert.InDelta(t, 800.0, doc.Box.Content.Width, 0.01)
		// 50 + (30 + 2*5)
		assert.InDelta(t, 90.0, doc.Box.Content.Height, 0.01)
	})

	t.Run("selects a single element", func(t *testing.T) {
		out, err := executeCommand(t, "layout", path, "--select", "//div[@id='b']", "--viewport-width", "400")
		require.NoError(t, err)

		doc := decodeOutput(t, []byte(out))
		assert.Equal(t, "div", doc.Box.Tag)
		assert.InDelta(t, 55.0, doc.Box.Content.Y, 0.01)
		assert.InDelta(t, 390.0, doc.Box.Content.Width, 0.01)
		assert.InDelta(t, 30.0, doc.Box.Content.Height, 0.01)
	})

	t.Run("writes to an output file", func(t *testing.T) {
		outPath := filepath.Join(t.TempDir(), "out.json")
		_, err := executeCommand(t, "layout", path, "-o", outPath)
		require.NoError(t, err)

		raw, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Equal(t, "html", decodeOutput(t, raw).Box.Tag)
	})

	t.Run("unrendered selection fails", func(t *testing.T) {
		_, err := executeCommand(t, "layout", path, "--select", "//title")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not rendered")
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := executeCommand(t, "layout", filepath.Join(t.TempDir(), "missing.html"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open document")
	})

	t.Run("rejects a bad viewport", func(t *testing.T) {
		_, err := executeCommand(t, "layout", path, "--viewport-width", "0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("requires exactly one file", func(t *testing.T) {
		_, err := executeCommand(t, "layout")
		require.Error(t, err)
	})
}

func TestBatchCmd(t *testing.T) {
	first := writeTempHTML(t, "first.html", testDocument)
	second := writeTempHTML(t, "second.html", `<html><body style="margin:0"><p style="height:10px"></p></body></html>`)
	outDir := t.TempDir()

	_, err := executeCommand(t, "batch", first, second, "-j", "2", "--output-dir", outDir)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(outDir, "first.layout.json"))
	require.NoError(t, err)
	assert.InDelta(t, 90.0, decodeOutput(t, raw).Box.Content.Height, 0.01)

	raw, err = os.ReadFile(filepath.Join(outDir, "second.layout.json"))
	require.NoError(t, err)
	assert.InDelta(t, 10.0, decodeOutput(t, raw).Box.Content.Height, 0.01)
}
