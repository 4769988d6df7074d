package marks

import (
	"github.com/seldinet/tui.editor/internal/editor"
	"github.com/seldinet/tui.editor/internal/model"
)

// Strike is strikethrough; htmlString holds the source tag (s, del, strike).
type Strike struct{}

func (Strike) Name() string { return "strike" }

func (Strike) DefaultSchema() model.MarkSpec {
	return model.MarkSpec{
		Attrs: map[string]model.AttributeSpec{
			"htmlString": {Default: nil},
		},
		ParseDOM: rules("s", "del"),
		ToDOM: func(m *model.Mark) model.DOMOutputSpec {
			if tagName := m.Attrs.String("htmlString"); tagName != "" {
				return model.DOMOutputSpec{Tag: tagName}
			}
			return model.DOMOutputSpec{Tag: "del"}
		},
	}
}

func (s Strike) Commands() map[string]editor.CommandFactory {
	return map[string]editor.CommandFactory{s.Name(): editor.ToggleMarkNamed(s.Name())}
}

func (s Strike) Keymaps() map[string]editor.Command {
	return bind(editor.ToggleMarkNamed(s.Name())(nil), "Mod-s", "Mod-S")
}
