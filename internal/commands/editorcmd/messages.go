package editorcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	runCommandMessageType = "editor.command.run"
	keyPressMessageType   = "editor.key.press"
	selectMessageType     = "editor.selection.set"
)

func requireSession(code string) validation.Rule {
	return validation.By(func(value any) error {
		if id, _ := value.(uuid.UUID); id == uuid.Nil {
			return validation.NewError(code, "session id is required")
		}
		return nil
	})
}

func requireText(code, message string) validation.Rule {
	return validation.By(func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError(code, message)
		}
		return nil
	})
}

// RunCommand runs a named editor command (bold, italic, strike, code)
// against an open session.
type RunCommand struct {
	SessionID uuid.UUID `json:"session_id"`
	// Name is the registered command name.
	Name string `json:"name"`
	// Payload becomes the mark attributes.
	Payload map[string]any `json:"payload,omitempty"`
}

// Type implements command.Message.
func (RunCommand) Type() string { return runCommandMessageType }

// Validate requires a session and a command name.
func (cmd RunCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.SessionID, requireSession("editor.command.run.session_required")),
		validation.Field(&cmd.Name, validation.Required,
			requireText("editor.command.run.name_required", "command name is required")),
	)
}

// KeyPress runs the command bound to Key in the session keymap.
type KeyPress struct {
	SessionID uuid.UUID `json:"session_id"`
	Key       string    `json:"key"`
}

// Type implements command.Message.
func (KeyPress) Type() string { return keyPressMessageType }

// Validate requires a session and a key.
func (cmd KeyPress) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.SessionID, requireSession("editor.key.press.session_required")),
		validation.Field(&cmd.Key, validation.Required,
			requireText("editor.key.press.key_required", "key is required")),
	)
}

// SetSelection moves the session selection to [From, To].
type SetSelection struct {
	SessionID uuid.UUID `json:"session_id"`
	From      int       `json:"from"`
	To        int       `json:"to"`
}

// Type implements command.Message.
func (SetSelection) Type() string { return selectMessageType }

// Validate requires a session and an ordered, non-negative range.
func (cmd SetSelection) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.SessionID, requireSession("editor.selection.set.session_required")),
		validation.Field(&cmd.From, validation.Min(0)),
		validation.Field(&cmd.To, validation.Min(cmd.From)),
	)
}
