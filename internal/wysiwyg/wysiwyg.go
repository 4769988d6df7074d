// Package wysiwyg assembles the WYSIWYG schema from the node specs and the
// mark components, and collects their commands and key bindings.
package wysiwyg

import (
	"errors"
	"fmt"
	"sort"

	"github.com/seldinet/tui.editor/internal/editor"
	"github.com/seldinet/tui.editor/internal/marks"
	"github.com/seldinet/tui.editor/internal/model"
	"github.com/seldinet/tui.editor/internal/nodes"
)

var (
	ErrUnknownCommand   = errors.New("wysiwyg: unknown command")
	ErrDuplicateCommand = errors.New("wysiwyg: duplicate command")
)

// Assembly is the schema plus the command and key registries built from
// the mark components. It is read-only once built.
type Assembly struct {
	Schema   *model.Schema
	Keymap   *editor.Keymap
	commands map[string]editor.CommandFactory
}

// Options tune the assembly.
type Options struct {
	Platform editor.Platform
	// Marks replaces the default mark components when set.
	Marks []marks.Component
}

// New builds the schema and registers every component command and key.
func New(opts Options) (*Assembly, error) {
	components := opts.Marks
	if len(components) == 0 {
		components = marks.Defaults()
	}

	schema, err := model.NewSchema(model.SchemaSpec{
		Nodes: nodes.Specs(),
		Marks: marks.Specs(components),
	})
	if err != nil {
		return nil, err
	}

	a := &Assembly{
		Schema:   schema,
		Keymap:   editor.NewKeymap(opts.Platform),
		commands: map[string]editor.CommandFactory{},
	}
	for _, c := range components {
		for name, factory := range c.Commands() {
			if _, exists := a.commands[name]; exists {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateCommand, name)
			}
			a.commands[name] = factory
		}
		if err := a.Keymap.BindAll(c.Keymaps()); err != nil {
			return nil, fmt.Errorf("mark %s: %w", c.Name(), err)
		}
	}
	return a, nil
}

// Command builds the named command with payload.
func (a *Assembly) Command(name string, payload map[string]any) (editor.Command, error) {
	factory, ok := a.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return factory(payload), nil
}

// CommandNames lists the registered command names, sorted.
func (a *Assembly) CommandNames() []string {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSession opens an editor session over doc with the assembled keymap.
func (a *Assembly) NewSession(doc *model.Node) (*editor.Session, error) {
	state, err := editor.NewState(doc)
	if err != nil {
		return nil, err
	}
	return editor.NewSession(state, a.Keymap), nil
}
