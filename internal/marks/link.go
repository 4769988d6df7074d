package marks

import (
	"github.com/seldinet/tui.editor/internal/editor"
	"github.com/seldinet/tui.editor/internal/model"
)

// Link carries the destination in linkUrl and the markdown title in
// linkText.
type Link struct{}

func (Link) Name() string { return "link" }

func (Link) DefaultSchema() model.MarkSpec {
	return model.MarkSpec{
		Attrs: map[string]model.AttributeSpec{
			"linkUrl":    {Required: true},
			"linkText":   {Default: nil},
			"htmlString": {Default: false},
		},
		ParseDOM: rules("a"),
		ToDOM: func(m *model.Mark) model.DOMOutputSpec {
			attrs := map[string]string{"href": m.Attrs.String("linkUrl")}
			if title := m.Attrs.String("linkText"); title != "" {
				attrs["title"] = title
			}
			return model.DOMOutputSpec{Tag: "a", Attrs: attrs}
		},
	}
}

func (Link) Commands() map[string]editor.CommandFactory { return nil }

func (Link) Keymaps() map[string]editor.Command { return nil }
