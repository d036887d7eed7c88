package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// WithFields attaches structured fields when the logger supports the optional
// FieldsLogger extension. Nil or empty maps return logger unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// FromContext binds ctx to logger and applies any fields stored on ctx with
// ContextWithFields.
func FromContext(logger interfaces.Logger, ctx context.Context) interfaces.Logger {
	if logger == nil {
		logger = NoOp()
	}
	if ctx == nil {
		return logger
	}
	return WithFields(logger.WithContext(ctx), ContextFields(ctx))
}
