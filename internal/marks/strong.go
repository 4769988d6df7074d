package marks

import (
	"github.com/seldinet/tui.editor/internal/editor"
	"github.com/seldinet/tui.editor/internal/model"
)

// Strong is bold text.
type Strong struct{}

func (Strong) Name() string { return "strong" }

func (Strong) DefaultSchema() model.MarkSpec {
	return model.MarkSpec{
		Attrs: map[string]model.AttributeSpec{
			"htmlString": {Default: false},
		},
		ParseDOM: rules("b", "strong"),
		ToDOM:    passThrough("strong"),
	}
}

func (s Strong) bold() editor.CommandFactory { return editor.ToggleMarkNamed(s.Name()) }

func (s Strong) Commands() map[string]editor.CommandFactory {
	return map[string]editor.CommandFactory{"bold": s.bold()}
}

func (s Strong) Keymaps() map[string]editor.Command {
	return bind(s.bold()(nil), "Mod-b", "Mod-B")
}

// Emph is italic text.
type Emph struct{}

func (Emph) Name() string { return "emph" }

func (Emph) DefaultSchema() model.MarkSpec {
	return model.MarkSpec{
		Attrs: map[string]model.AttributeSpec{
			"htmlString": {Default: false},
		},
		ParseDOM: rules("i", "em"),
		ToDOM:    passThrough("em"),
	}
}

func (e Emph) italic() editor.CommandFactory { return editor.ToggleMarkNamed(e.Name()) }

func (e Emph) Commands() map[string]editor.CommandFactory {
	return map[string]editor.CommandFactory{"italic": e.italic()}
}

func (e Emph) Keymaps() map[string]editor.Command {
	return bind(e.italic()(nil), "Mod-i", "Mod-I")
}

// passThrough renders tagName, flagged with data-pass when the mark came
// from raw HTML.
func passThrough(tagName string) func(*model.Mark) model.DOMOutputSpec {
	return func(m *model.Mark) model.DOMOutputSpec {
		if m.Attrs.Bool("htmlString") {
			return model.DOMOutputSpec{Tag: tagName, Attrs: map[string]string{"data-pass": "true"}}
		}
		return model.DOMOutputSpec{Tag: tagName}
	}
}
