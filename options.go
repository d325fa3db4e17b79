package rubidium

import (
	"go.uber.org/zap"
)

type Option func(*options)

type options struct {
	logger   *zap.Logger
	reporter Reporter
	filter   *Filter
	runner   Runner
}

func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	mergeDefaultOptions(o)
	return o
}

func mergeDefaultOptions(o *options) {
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.reporter == nil {
		o.reporter = NopReporter{}
	}
	if o.filter == nil {
		o.filter = MatchAll()
	}
	if o.runner == nil {
		o.runner = DefaultTimeRunner()
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithReporter(reporter Reporter) Option {
	return func(o *options) {
		o.reporter = reporter
	}
}

// WithFilter sets the process-wide selection pattern, matched against flat
// names for benchmarks and full paths for tests.
func WithFilter(filter *Filter) Option {
	return func(o *options) {
		o.filter = filter
	}
}

// WithRunner sets the default runner used for benchmarks registered without
// an override.
func WithRunner(rn Runner) Option {
	return func(o *options) {
		o.runner = rn
	}
}
