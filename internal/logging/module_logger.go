package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

const (
	rootModule      = "pagebuilder"
	editorModule    = "pagebuilder.editor"
	templatesModule = "pagebuilder.templates"
	storageModule   = "pagebuilder.storage"
	commandsModule  = "pagebuilder.commands"
)

const (
	fieldPageID    = "page_id"
	fieldBlockID   = "block_id"
	fieldOperation = "operation"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module name is attached as
// a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}
	return logger
}

// EditorLogger returns the logger for editor sessions.
func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

// TemplatesLogger returns the logger for the template catalog and loaders.
func TemplatesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, templatesModule)
}

// StorageLogger returns the logger for page stores.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// CommandsLogger returns the logger for a command handler family, e.g.
// CommandsLogger(p, "editor") logs under pagebuilder.commands.editor.
func CommandsLogger(provider interfaces.LoggerProvider, family string) interfaces.Logger {
	family = strings.TrimSpace(family)
	if family == "" {
		return ModuleLogger(provider, commandsModule)
	}
	return ModuleLogger(provider, commandsModule+"."+family)
}

// WithPageContext annotates logger with page, block and operation fields.
// Empty values are skipped.
func WithPageContext(logger interfaces.Logger, pageID, blockID, operation string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(pageID); trimmed != "" {
		fields[fieldPageID] = trimmed
	}
	if trimmed := strings.TrimSpace(blockID); trimmed != "" {
		fields[fieldBlockID] = trimmed
	}
	if trimmed := strings.TrimSpace(operation); trimmed != "" {
		fields[fieldOperation] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
