package commands

import (
	"strings"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// CommandLogger returns the logger for one family of command handlers, tagged
// with the component and family fields.
func CommandLogger(provider interfaces.LoggerProvider, family string) interfaces.Logger {
	name := strings.TrimSpace(family)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.CommandsLogger(provider, name), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
