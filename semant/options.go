package semant

import (
	"log/slog"

	"github.com/Yumenio/cool-compiler-2021/observability"
)

type Options struct {
	// StrictMain additionally requires Main.main to take no parameters.
	StrictMain bool
	// AllowCompatibleOverrides accepts a redeclared method whose parameter
	// and return types match the inherited one exactly.
	AllowCompatibleOverrides bool

	Logger  *slog.Logger
	Metrics *observability.Metrics
}

type Option func(*Options)

func WithStrictMain(strict bool) Option {
	return func(o *Options) { o.StrictMain = strict }
}

func WithCompatibleOverrides(allow bool) Option {
	return func(o *Options) { o.AllowCompatibleOverrides = allow }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

func newOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
