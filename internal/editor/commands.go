package editor

import "github.com/seldinet/tui.editor/internal/model"

// Dispatch receives the state produced by a command.
type Dispatch func(next *State)

// Command inspects state and, when applicable, dispatches a new state. It
// reports whether it applied. A nil dispatch asks whether the command could
// apply without running it.
type Command func(state *State, dispatch Dispatch) bool

// CommandFactory builds a command from an optional payload.
type CommandFactory func(payload map[string]any) Command

// ToggleMark toggles t over the selection. With a cursor it flips the
// stored marks; otherwise it removes t when any markable text in the range
// carries it and adds it everywhere in the range when none does.
func ToggleMark(t *model.MarkType, attrs model.Attrs) Command {
	return func(state *State, dispatch Dispatch) bool {
		if t == nil || state == nil || state.Doc == nil {
			return false
		}
		sel := state.Selection
		if !markApplies(state.Doc, sel.From, sel.To) {
			return false
		}
		if dispatch == nil {
			return true
		}

		if sel.Empty() {
			marks := state.CursorMarks()
			if t.IsInSet(marks) != nil {
				marks = t.RemoveFromSet(marks)
			} else {
				marks = t.Create(attrs).AddToSet(marks)
			}
			if marks == nil {
				marks = []*model.Mark{}
			}
			dispatch(&State{Doc: state.Doc, Selection: sel, StoredMarks: marks})
			return true
		}

		var doc *model.Node
		if rangeHasMark(state.Doc, sel.From, sel.To, t) {
			doc = removeMark(state.Doc, sel.From, sel.To, t)
		} else {
			doc = addMark(state.Doc, sel.From, sel.To, t.Create(attrs))
		}
		dispatch(&State{Doc: doc, Selection: sel})
		return true
	}
}

// ToggleMarkNamed resolves the mark type from the state's schema when the
// command runs.
func ToggleMarkNamed(name string) CommandFactory {
	return func(payload map[string]any) Command {
		return func(state *State, dispatch Dispatch) bool {
			if state == nil || state.Doc == nil {
				return false
			}
			return ToggleMark(state.Schema().Mark(name), payload)(state, dispatch)
		}
	}
}

// Chain runs commands in order until one applies.
func Chain(commands ...Command) Command {
	return func(state *State, dispatch Dispatch) bool {
		for _, cmd := range commands {
			if cmd(state, dispatch) {
				return true
			}
		}
		return false
	}
}
