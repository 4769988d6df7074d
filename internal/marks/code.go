package marks

import (
	"github.com/seldinet/tui.editor/internal/editor"
	"github.com/seldinet/tui.editor/internal/model"
)

// Code is inline code. htmlToken keeps the tag the code came from in raw
// HTML so it renders back unchanged.
type Code struct{}

func (Code) Name() string { return "code" }

func (Code) DefaultSchema() model.MarkSpec {
	return model.MarkSpec{
		Attrs: map[string]model.AttributeSpec{
			"htmlToken": {Default: nil},
		},
		ParseDOM: rules("code"),
		ToDOM: func(m *model.Mark) model.DOMOutputSpec {
			if token := m.Attrs.String("htmlToken"); token != "" {
				return model.DOMOutputSpec{Tag: token}
			}
			return model.DOMOutputSpec{Tag: "code"}
		},
	}
}

func (c Code) Commands() map[string]editor.CommandFactory {
	return map[string]editor.CommandFactory{c.Name(): editor.ToggleMarkNamed(c.Name())}
}

func (c Code) Keymaps() map[string]editor.Command {
	return bind(editor.ToggleMarkNamed(c.Name())(nil), "Shift-Mod-c", "Shift-Mod-C")
}
