package editorcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/seldinet/tui.editor/internal/commands"
	"github.com/seldinet/tui.editor/internal/editor"
	"github.com/seldinet/tui.editor/internal/logging"
	"github.com/seldinet/tui.editor/pkg/interfaces"
)

const (
	runOperation    = "editor.run_command"
	keyOperation    = "editor.key_press"
	selectOperation = "editor.set_selection"
)

// ErrNotApplicable is returned when a named command does not apply to the
// current selection.
var ErrNotApplicable = errors.New("editor command: not applicable")

var (
	_ command.Commander[RunCommand]   = (*RunCommandHandler)(nil)
	_ command.Commander[KeyPress]     = (*KeyPressHandler)(nil)
	_ command.Commander[SetSelection] = (*SetSelectionHandler)(nil)
)

// CommandSource builds editor commands by name. *wysiwyg.Assembly satisfies it.
type CommandSource interface {
	Command(name string, payload map[string]any) (editor.Command, error)
}

// RunCommandHandler executes named editor commands.
type RunCommandHandler struct {
	inner *commands.Handler[RunCommand]
}

// NewRunCommandHandler binds the handler to the open sessions and the command source.
func NewRunCommandHandler(sessions *Sessions, source CommandSource, logger interfaces.Logger, opts ...commands.HandlerOption[RunCommand]) *RunCommandHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg RunCommand) error {
		session, err := sessions.Get(msg.SessionID)
		if err != nil {
			return err
		}
		cmd, err := source.Command(msg.Name, msg.Payload)
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !session.Run(cmd) {
			return ErrNotApplicable
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[RunCommand]{
		commands.WithLogger[RunCommand](baseLogger),
		commands.WithOperation[RunCommand](runOperation),
		commands.WithMessageFields(func(msg RunCommand) map[string]any {
			fields := map[string]any{
				"session_id": msg.SessionID,
				"name":       msg.Name,
			}
			if len(msg.Payload) > 0 {
				fields["payload_keys"] = len(msg.Payload)
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RunCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RunCommandHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[RunCommand].
func (h *RunCommandHandler) Execute(ctx context.Context, msg RunCommand) error {
	return h.inner.Execute(ctx, msg)
}

// KeyPressHandler routes key presses through the session keymap.
type KeyPressHandler struct {
	inner *commands.Handler[KeyPress]
}

// NewKeyPressHandler binds the handler to the open sessions. A bound key
// whose command does not apply is not an error.
func NewKeyPressHandler(sessions *Sessions, logger interfaces.Logger, opts ...commands.HandlerOption[KeyPress]) *KeyPressHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg KeyPress) error {
		session, err := sessions.Get(msg.SessionID)
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		applied, err := session.HandleKey(msg.Key)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"session_id": msg.SessionID,
			"key":        msg.Key,
			"applied":    applied,
		}).Debug("editor.command.key_press.handled")
		return nil
	}

	handlerOpts := []commands.HandlerOption[KeyPress]{
		commands.WithLogger[KeyPress](baseLogger),
		commands.WithOperation[KeyPress](keyOperation),
		commands.WithMessageFields(func(msg KeyPress) map[string]any {
			return map[string]any{
				"session_id": msg.SessionID,
				"key":        msg.Key,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[KeyPress](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &KeyPressHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[KeyPress].
func (h *KeyPressHandler) Execute(ctx context.Context, msg KeyPress) error {
	return h.inner.Execute(ctx, msg)
}

// SetSelectionHandler moves session selections.
type SetSelectionHandler struct {
	inner *commands.Handler[SetSelection]
}

// NewSetSelectionHandler binds the handler to the open sessions.
func NewSetSelectionHandler(sessions *Sessions, logger interfaces.Logger, opts ...commands.HandlerOption[SetSelection]) *SetSelectionHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SetSelection) error {
		session, err := sessions.Get(msg.SessionID)
		if err != nil {
			return err
		}
		return session.Select(msg.From, msg.To)
	}

	handlerOpts := []commands.HandlerOption[SetSelection]{
		commands.WithLogger[SetSelection](baseLogger),
		commands.WithOperation[SetSelection](selectOperation),
		commands.WithMessageFields(func(msg SetSelection) map[string]any {
			return map[string]any{
				"session_id": msg.SessionID,
				"from":       msg.From,
				"to":         msg.To,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SetSelection](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SetSelectionHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[SetSelection].
func (h *SetSelectionHandler) Execute(ctx context.Context, msg SetSelection) error {
	return h.inner.Execute(ctx, msg)
}
