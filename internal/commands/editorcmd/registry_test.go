package editorcmd

import (
	"errors"
	"testing"

	"github.com/seldinet/tui.editor/internal/commands"
	"github.com/seldinet/tui.editor/internal/commands/fixtures"
)

func TestRegisterEditorCommandsRegistersHandlers(t *testing.T) {
	sessions, a, _ := openSession(t)
	reg := fixtures.NewRecordingRegistry()

	set, err := RegisterEditorCommands(reg, sessions, a, nil)
	if err != nil {
		t.Fatalf("register editor commands: %v", err)
	}
	if set.Run == nil || set.Key == nil || set.Select == nil {
		t.Fatalf("expected all handlers, got %#v", set)
	}
	if len(reg.Handlers) != 3 {
		t.Fatalf("expected three handlers registered, got %d", len(reg.Handlers))
	}
	if reg.Handlers[0] != set.Run || reg.Handlers[1] != set.Key || reg.Handlers[2] != set.Select {
		t.Fatalf("unexpected registration order %#v", reg.Handlers)
	}
}

func TestRegisterEditorCommandsHandlerOptionsApplied(t *testing.T) {
	sessions, a, _ := openSession(t)
	var run, key, sel bool
	_, err := RegisterEditorCommands(nil, sessions, a, nil,
		WithRunHandlerOptions(func(*commands.Handler[RunCommand]) { run = true }),
		WithKeyHandlerOptions(func(*commands.Handler[KeyPress]) { key = true }),
		WithSelectHandlerOptions(func(*commands.Handler[SetSelection]) { sel = true }),
	)
	if err != nil {
		t.Fatalf("register editor commands: %v", err)
	}
	if !run || !key || !sel {
		t.Fatalf("expected all handler options applied, got run=%v key=%v select=%v", run, key, sel)
	}
}

func TestRegisterEditorCommandsErrors(t *testing.T) {
	sessions, a, _ := openSession(t)
	if _, err := RegisterEditorCommands(nil, nil, a, nil); err == nil {
		t.Fatal("expected error for nil sessions")
	}
	if _, err := RegisterEditorCommands(nil, sessions, nil, nil); err == nil {
		t.Fatal("expected error for nil command source")
	}

	reg := fixtures.NewRecordingRegistry()
	reg.Err = errors.New("registry closed")
	if _, err := RegisterEditorCommands(reg, sessions, a, nil); err == nil {
		t.Fatal("expected registry error to propagate")
	}
}
