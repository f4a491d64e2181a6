package pipeline

import (
	"log/slog"

	"github.com/gogpu/blit"
)

// Option configures a Converter during creation.
type Option func(*options)

type options struct {
	blitter  *blit.Blitter
	workers  int
	poolSize int
	logger   *slog.Logger
}

func defaultOptions() options {
	return options{
		workers:  0, // GOMAXPROCS
		poolSize: 8,
	}
}

// WithBlitter sets the blitter used for every frame. Defaults to blit.Default().
func WithBlitter(b *blit.Blitter) Option {
	return func(o *options) {
		o.blitter = b
	}
}

// WithWorkers sets the number of frames converted in parallel.
// Zero or negative means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithPoolSize sets how many idle frames of each size and format the
// converter keeps for reuse.
func WithPoolSize(n int) Option {
	return func(o *options) {
		o.poolSize = n
	}
}

// WithLogger sets the converter's logger. Defaults to blit.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
