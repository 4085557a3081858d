// internal/layout/view.go
package layout

// BoxView is a serializable snapshot of a box tree.
type BoxView struct {
	Kind     string    `json:"kind"`
	Tag      string    `json:"tag,omitempty"`
	Text     string    `json:"text,omitempty"`
	Position string    `json:"position,omitempty"`
	ZIndex   int       `json:"z_index,omitempty"`
	Content  Rect      `json:"content"`
	Padding  EdgeSizes `json:"padding"`
	Border   EdgeSizes `json:"border"`
	Margin   EdgeSizes `json:"margin"`
	Children []BoxView `json:"children,omitempty"`
}

// View snapshots the tree rooted at b.
func (b *LayoutBox) View() BoxView {
	v := BoxView{
		Kind:    b.Kind.String(),
		Content: b.Dimensions.Content,
		Padding: b.Dimensions.Padding,
		Border:  b.Dimensions.Border,
		Margin:  b.Dimensions.Margin,
		ZIndex:  b.ZIndex,
	}
	if b.Position != Static {
		v.Position = b.Position.String()
	}
	if b.Style != nil {
		v.Tag = b.Style.TagName()
		if text, ok := b.Style.Text(); ok {
			v.Text = text
		}
	}
	if len(b.Children) > 0 {
		v.Children = make([]BoxView, len(b.Children))
		for i, c := range b.Children {
			v.Children[i] = c.View()
		}
	}
	return v
}
