// internal/style/node.go
package style

import (
	"strings"

	"golang.org/x/net/html"
)

// Display is the subset of the display property the layout engine acts on.
type Display int

const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayFlex
	DisplayGrid
	DisplayNone
)

func (d Display) String() string {
	switch d {
	case DisplayBlock:
		return "block"
	case DisplayFlex:
		return "flex"
	case DisplayGrid:
		return "grid"
	case DisplayNone:
		return "none"
	}
	return "inline"
}

// Node is the read-only view of a styled document node that layout consumes.
type Node interface {
	// Display is derived from the `display` property; nodes without one are
	// inline.
	Display() Display
	// Value returns the computed value of name, if it is set.
	Value(name string) (Value, bool)
	// Lookup returns the value of name, then fallback, then def.
	Lookup(name, fallback string, def Value) Value
	TagName() string
	// Text returns the character data of a text node.
	Text() (string, bool)
	Children() []Node
}

// Properties maps property names to computed values.
type Properties map[string]Value

// StyledNode pairs a DOM node with its computed styles.
type StyledNode struct {
	Node           *html.Node
	ComputedStyles Properties
	ChildNodes     []*StyledNode
}

// Element creates a styled element node that is not attached to any document.
func Element(tag string, props Properties, children ...*StyledNode) *StyledNode {
	if props == nil {
		props = Properties{}
	}
	return &StyledNode{
		Node:           &html.Node{Type: html.ElementNode, Data: tag},
		ComputedStyles: props,
		ChildNodes:     children,
	}
}

// TextNode creates a styled text node.
func TextNode(text string, props Properties) *StyledNode {
	if props == nil {
		props = Properties{}
	}
	return &StyledNode{
		Node:           &html.Node{Type: html.TextNode, Data: text},
		ComputedStyles: props,
	}
}

func (sn *StyledNode) Display() Display {
	if sn.Node != nil && sn.Node.Type == html.TextNode {
		return DisplayInline
	}
	v, ok := sn.ComputedStyles["display"]
	if !ok || v.Kind != KindKeyword {
		return DisplayInline
	}
	switch strings.ToLower(v.Keyword) {
	case "block", "list-item", "flow-root", "table", "table-row", "table-cell":
		return DisplayBlock
	case "flex", "inline-flex":
		return DisplayFlex
	case "grid", "inline-grid":
		return DisplayGrid
	case "none":
		return DisplayNone
	}
	return DisplayInline
}

func (sn *StyledNode) Value(name string) (Value, bool) {
	v, ok := sn.ComputedStyles[name]
	return v, ok
}

func (sn *StyledNode) Lookup(name, fallback string, def Value) Value {
	if v, ok := sn.ComputedStyles[name]; ok {
		return v
	}
	if fallback != "" {
		if v, ok := sn.ComputedStyles[fallback]; ok {
			return v
		}
	}
	return def
}

func (sn *StyledNode) TagName() string {
	if sn.Node == nil || sn.Node.Type != html.ElementNode {
		return ""
	}
	return sn.Node.Data
}

func (sn *StyledNode) Text() (string, bool) {
	if sn.Node == nil || sn.Node.Type != html.TextNode {
		return "", false
	}
	return sn.Node.Data, true
}

func (sn *StyledNode) Children() []Node {
	out := make([]Node, len(sn.ChildNodes))
	for i, c := range sn.ChildNodes {
		out[i] = c
	}
	return out
}

// Stats returns the depth and node count of the tree rooted at sn.
func Stats(sn *StyledNode) (depth, count int) {
	if sn == nil {
		return 0, 0
	}
	maxChild := 0
	count = 1
	for _, c := range sn.ChildNodes {
		d, n := Stats(c)
		if d > maxChild {
			maxChild = d
		}
		count += n
	}
	return maxChild + 1, count
}
