// internal/style/builder.go
package style

import (
	"errors"
	"strings"

	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/xkilldash9x/boxflow/internal/observability"
)

// BaseFontSize is the root font size used for `rem` and as the initial
// inherited font size.
const BaseFontSize = 16.0

// ErrNoRootElement is returned when a document contains no element to style.
var ErrNoRootElement = errors.New("style: document has no root element")

// Builder produces styled trees from parsed HTML. Only inline `style`
// attributes and per-tag display defaults are applied; there is no cascade.
type Builder struct {
	viewportWidth  float64
	viewportHeight float64
	logger         *zap.Logger
}

// NewBuilder creates a Builder resolving viewport units against the given size.
func NewBuilder(viewportWidth, viewportHeight float64) *Builder {
	return &Builder{
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
		logger:         observability.GetLogger().Named("style"),
	}
}

// Build styles the tree rooted at node. A document node is styled from its
// first element child (normally <html>).
func (b *Builder) Build(node *html.Node) (*StyledNode, error) {
	root := node
	if node != nil && node.Type == html.DocumentNode {
		root = nil
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				root = c
				break
			}
		}
	}
	if root == nil || root.Type != html.ElementNode {
		return nil, ErrNoRootElement
	}
	return b.build(root, BaseFontSize), nil
}

func (b *Builder) build(n *html.Node, parentFontSize float64) *StyledNode {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return &StyledNode{Node: n, ComputedStyles: Properties{"font-size": Px(parentFontSize)}}
	case html.ElementNode:
	default:
		// Comments, doctypes and raw nodes never produce boxes.
		return nil
	}

	declared := map[string]string{"display": defaultDisplay(n.Data)}
	for name, value := range parseInlineStyles(htmlquery.SelectAttr(n, "style")) {
		declared[name] = value
	}
	expandShorthands(declared)

	fontSize := b.resolveFontSize(declared["font-size"], parentFontSize)
	units := Units{
		FontSize:       fontSize,
		RootFontSize:   BaseFontSize,
		ViewportWidth:  b.viewportWidth,
		ViewportHeight: b.viewportHeight,
	}

	props := make(Properties, len(declared)+1)
	for name, raw := range declared {
		props[name] = ParseValue(raw, units)
	}
	props["font-size"] = Px(fontSize)

	sn := &StyledNode{Node: n, ComputedStyles: props}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := b.build(c, fontSize); child != nil {
			sn.ChildNodes = append(sn.ChildNodes, child)
		}
	}
	return sn
}

// resolveFontSize computes font-size, where em and % refer to the parent.
func (b *Builder) resolveFontSize(raw string, parent float64) float64 {
	if raw == "" {
		return parent
	}
	v := ParseValue(raw, Units{
		FontSize:       parent,
		RootFontSize:   BaseFontSize,
		ViewportWidth:  b.viewportWidth,
		ViewportHeight: b.viewportHeight,
	})
	switch v.Kind {
	case KindLength, KindNumber:
		return v.Number
	case KindPercentage:
		return parent * v.Number / 100
	}
	b.logger.Debug("Ignoring unsupported font-size", zap.String("value", raw))
	return parent
}

func defaultDisplay(tag string) string {
	switch strings.ToLower(tag) {
	case "html", "body", "div", "p", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "form", "header", "footer", "section", "article",
		"nav", "main", "aside", "blockquote", "pre", "figure", "hr", "dl", "dt", "dd",
		"table", "tr", "td", "th":
		return "block"
	case "head", "script", "style", "title", "meta", "link", "template", "noscript", "base":
		return "none"
	}
	return "inline"
}

// parseInlineStyles splits a style attribute into property/value pairs.
// `!important` is accepted and dropped; later declarations win.
func parseInlineStyles(styleAttr string) map[string]string {
	decls := make(map[string]string)
	for _, part := range strings.Split(styleAttr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])
		if strings.HasSuffix(strings.ToLower(val), "!important") {
			val = strings.TrimSpace(val[:len(val)-len("!important")])
		}
		if prop == "" || val == "" {
			continue
		}
		decls[prop] = val
	}
	return decls
}
