// Package marks defines the inline formatting marks of the WYSIWYG schema
// together with their commands and key bindings.
package marks

import (
	"github.com/seldinet/tui.editor/internal/editor"
	"github.com/seldinet/tui.editor/internal/model"
)

// Component is a mark definition: its schema fragment, the named commands
// toggling it and the keys bound to those commands.
type Component interface {
	Name() string
	DefaultSchema() model.MarkSpec
	Commands() map[string]editor.CommandFactory
	Keymaps() map[string]editor.Command
}

// Defaults returns the built-in marks in rank order.
func Defaults() []Component {
	return []Component{Strong{}, Emph{}, Strike{}, Code{}, Link{}}
}

// Specs returns the schema fragments of components, in order.
func Specs(components []Component) []model.MarkSpec {
	specs := make([]model.MarkSpec, 0, len(components))
	for _, c := range components {
		spec := c.DefaultSchema()
		spec.Name = c.Name()
		specs = append(specs, spec)
	}
	return specs
}

func rules(tags ...string) []model.ParseRule {
	out := make([]model.ParseRule, 0, len(tags))
	for _, t := range tags {
		out = append(out, model.ParseRule{Tag: t})
	}
	return out
}

// bind maps both the primary and the shifted key to cmd.
func bind(cmd editor.Command, keys ...string) map[string]editor.Command {
	out := make(map[string]editor.Command, len(keys))
	for _, key := range keys {
		out[key] = cmd
	}
	return out
}
