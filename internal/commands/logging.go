package commands

import (
	"strings"

	"github.com/seldinet/tui.editor/internal/logging"
	"github.com/seldinet/tui.editor/pkg/interfaces"
)

// CommandLogger returns the commands logger tagged for the named command
// module ("editor" when empty).
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "editor"
	}
	return logging.WithFields(logging.CommandsLogger(provider), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
