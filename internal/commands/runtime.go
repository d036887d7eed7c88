package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// DefaultCommandTimeout bounds one editor command, including the page store
// round trip made by save and publish.
const DefaultCommandTimeout = 15 * time.Second

// EnsureContext returns ctx, or context.Background when a host passes nil.
func EnsureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// WithCommandTimeout bounds ctx by timeout. A non-positive timeout, or a
// caller deadline that expires first, leaves ctx untouched.
func WithCommandTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= timeout {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureLogger returns logger, or the no-op logger so handlers can log
// unconditionally.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
