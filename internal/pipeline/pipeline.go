// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/antchfx/htmlquery"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/boxflow/internal/config"
	"github.com/xkilldash9x/boxflow/internal/layout"
	"github.com/xkilldash9x/boxflow/internal/style"
)

var (
	// ErrBudgetExceeded is returned for documents larger than the configured
	// depth or node limits.
	ErrBudgetExceeded = errors.New("pipeline: document exceeds layout budget")
	// ErrNotFound is returned when a selector matches no element.
	ErrNotFound = errors.New("pipeline: no element matches selector")
	// ErrNotRendered is returned when the selected element produced no box.
	ErrNotRendered = errors.New("pipeline: selected element is not rendered")
)

// Document is one laid out HTML document.
type Document struct {
	// ID identifies the layout pass in logs and output.
	ID     string
	Source string
	Root   *html.Node
	Styled *style.StyledNode
	Tree   *layout.LayoutBox
}

// Pipeline turns HTML into box trees.
type Pipeline struct {
	cfg     config.LayoutConfig
	engine  *layout.Engine
	builder *style.Builder
	logger  *zap.Logger
}

// New creates a pipeline for the given layout configuration.
func New(cfg config.LayoutConfig, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := layout.Options{AutoTrackSize: cfg.AutoTrackSize, Logger: logger}
	if cfg.MeasureText {
		opts.Measurer = style.EstimateMeasurer{}
	}
	return &Pipeline{
		cfg:     cfg,
		engine:  layout.NewEngine(cfg.ViewportWidth, cfg.ViewportHeight, opts),
		builder: style.NewBuilder(cfg.ViewportWidth, cfg.ViewportHeight),
		logger:  logger.Named("pipeline"),
	}
}

// LayoutHTML parses r and lays out the resulting document.
func (p *Pipeline) LayoutHTML(ctx context.Context, source string, r io.Reader) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}
	return p.LayoutNode(ctx, source, root)
}

// LayoutFile reads and lays out the HTML file at path.
func (p *Pipeline) LayoutFile(ctx context.Context, path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()
	return p.LayoutHTML(ctx, path, f)
}

// LayoutNode styles and lays out an already parsed document.
func (p *Pipeline) LayoutNode(ctx context.Context, source string, root *html.Node) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := &Document{ID: uuid.New().String(), Source: source, Root: root}
	logger := p.logger.With(zap.String("pass_id", doc.ID), zap.String("source", source))
	start := time.Now()

	styled, err := p.builder.Build(root)
	if err != nil {
		return nil, fmt.Errorf("failed to style %s: %w", source, err)
	}
	if err := p.checkBudget(styled); err != nil {
		logger.Warn("Rejecting document", zap.Error(err))
		return nil, err
	}
	doc.Styled = styled

	tree, err := p.engine.Layout(styled)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out %s: %w", source, err)
	}
	doc.Tree = tree

	logger.Info("Document laid out", zap.Duration("elapsed", time.Since(start)))
	return doc, nil
}

func (p *Pipeline) checkBudget(root *style.StyledNode) error {
	depth, count := style.Stats(root)
	if p.cfg.MaxDepth > 0 && depth > p.cfg.MaxDepth {
		return fmt.Errorf("%w: depth %d > %d", ErrBudgetExceeded, depth, p.cfg.MaxDepth)
	}
	if p.cfg.MaxNodes > 0 && count > p.cfg.MaxNodes {
		return fmt.Errorf("%w: %d nodes > %d", ErrBudgetExceeded, count, p.cfg.MaxNodes)
	}
	return nil
}

// LayoutFiles lays out paths with at most concurrency documents in flight.
// Results are returned in input order; the first error cancels the rest.
func (p *Pipeline) LayoutFiles(ctx context.Context, paths []string, concurrency int) ([]*Document, error) {
	docs := make([]*Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, concurrency))

	for i, path := range paths {
		g.Go(func() error {
			doc, err := p.LayoutFile(gctx, path)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Select returns the box generated for the first element matching the XPath
// expression.
func (d *Document) Select(expr string) (*layout.LayoutBox, error) {
	node, err := htmlquery.Query(d.Root, expr)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", expr, err)
	}
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, expr)
	}
	box := FindBox(d.Tree, node)
	if box == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotRendered, describe(node))
	}
	return box, nil
}

// FindBox returns the box generated for node, or nil.
func FindBox(tree *layout.LayoutBox, node *html.Node) *layout.LayoutBox {
	if tree == nil {
		return nil
	}
	var found *layout.LayoutBox
	tree.Walk(func(b *layout.LayoutBox) bool {
		if sn, ok := b.Style.(*style.StyledNode); ok && sn.Node == node {
			found = b
			return false
		}
		return true
	})
	return found
}

func describe(n *html.Node) string {
	if n.Type != html.ElementNode {
		return strings.TrimSpace(n.Data)
	}
	if id := htmlquery.SelectAttr(n, "id"); id != "" {
		return n.Data + "#" + id
	}
	return n.Data
}
