package editorcmd

import (
	"errors"

	"github.com/seldinet/tui.editor/internal/commands"
	"github.com/seldinet/tui.editor/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers built by RegisterEditorCommands.
type HandlerSet struct {
	Run    *RunCommandHandler
	Key    *KeyPressHandler
	Select *SetSelectionHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	runOpts    []commands.HandlerOption[RunCommand]
	keyOpts    []commands.HandlerOption[KeyPress]
	selectOpts []commands.HandlerOption[SetSelection]
}

// WithRunHandlerOptions forwards options to the RunCommandHandler constructor.
func WithRunHandlerOptions(opts ...commands.HandlerOption[RunCommand]) Option {
	return func(cfg *options) {
		cfg.runOpts = append(cfg.runOpts, opts...)
	}
}

// WithKeyHandlerOptions forwards options to the KeyPressHandler constructor.
func WithKeyHandlerOptions(opts ...commands.HandlerOption[KeyPress]) Option {
	return func(cfg *options) {
		cfg.keyOpts = append(cfg.keyOpts, opts...)
	}
}

// WithSelectHandlerOptions forwards options to the SetSelectionHandler constructor.
func WithSelectHandlerOptions(opts ...commands.HandlerOption[SetSelection]) Option {
	return func(cfg *options) {
		cfg.selectOpts = append(cfg.selectOpts, opts...)
	}
}

// RegisterEditorCommands builds the editor command handlers and registers
// them with reg when it is non-nil.
func RegisterEditorCommands(reg CommandRegistry, sessions *Sessions, source CommandSource, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if sessions == nil {
		return nil, errors.New("editor command registration: sessions is nil")
	}
	if source == nil {
		return nil, errors.New("editor command registration: command source is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "editor")

	set := &HandlerSet{
		Run:    NewRunCommandHandler(sessions, source, logger, cfg.runOpts...),
		Key:    NewKeyPressHandler(sessions, logger, cfg.keyOpts...),
		Select: NewSetSelectionHandler(sessions, logger, cfg.selectOpts...),
	}

	if reg != nil {
		for _, h := range []any{set.Run, set.Key, set.Select} {
			if err := reg.RegisterCommand(h); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
