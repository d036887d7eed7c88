package editor

import (
	"time"

	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/metrics"
	"github.com/goliatone/go-pagebuilder/internal/render"
	"github.com/goliatone/go-pagebuilder/internal/templates"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// Option configures a Controller.
type Option func(*options)

type options struct {
	store             interfaces.PageStore
	media             interfaces.MediaPicker
	logger            interfaces.Logger
	registry          *blocks.Registry
	catalog           *templates.Catalog
	compiler          *render.Compiler
	metrics           metrics.Recorder
	newID             func() string
	clock             func() time.Time
	coalesceWindow    time.Duration
	historyLimit      int
	addAfterSelection bool
}

// WithStore sets the persistence collaborator used by Save and Publish.
func WithStore(store interfaces.PageStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithMedia sets the collaborator asked for assets by AttachMedia.
func WithMedia(picker interfaces.MediaPicker) Option {
	return func(o *options) {
		o.media = picker
	}
}

// WithLogger overrides the controller logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegistry supplies default content and patch validation.
func WithRegistry(registry *blocks.Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithCatalog enables ApplyTemplateID.
func WithCatalog(catalog *templates.Catalog) Option {
	return func(o *options) {
		o.catalog = catalog
	}
}

// WithCompiler overrides the preview compiler.
func WithCompiler(compiler *render.Compiler) Option {
	return func(o *options) {
		o.compiler = compiler
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(recorder metrics.Recorder) Option {
	return func(o *options) {
		o.metrics = recorder
	}
}

// WithIDGenerator overrides the block id source.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) {
		o.newID = gen
	}
}

// WithClock overrides the time source used for coalescing and timings.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithCoalesceWindow merges UpdateBlock calls that touch the same keys of the
// same block within window into one snapshot. Zero disables coalescing.
func WithCoalesceWindow(window time.Duration) Option {
	return func(o *options) {
		if window >= 0 {
			o.coalesceWindow = window
		}
	}
}

// WithHistoryLimit caps retained snapshots, see history.WithLimit.
func WithHistoryLimit(limit int) Option {
	return func(o *options) {
		o.historyLimit = limit
	}
}

// WithAddAfterSelection inserts new blocks after the selected block.
func WithAddAfterSelection(enabled bool) Option {
	return func(o *options) {
		o.addAfterSelection = enabled
	}
}
