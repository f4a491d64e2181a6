package blit

import (
	"log/slog"
	"sync"
)

// Blitter converts pixel data using the routes of one Table.
//
// A Blitter holds no mutable state and is safe for concurrent use, provided
// callers do not write a buffer that another call is reading or writing.
type Blitter struct {
	table  *Table
	logger *slog.Logger
}

// NewBlitter creates a blitter. Without options it uses TierReference and
// the package logger.
func NewBlitter(opts ...Option) *Blitter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Blitter{
		table:  NewTable(o.tier),
		logger: o.logger,
	}
}

// Default returns the process-wide blitter. It is built on first use from
// the tier reported by DetectTier, or the BLIT_TIER environment variable
// when set, and cached for the life of the process.
var Default = sync.OnceValue(func() *Blitter {
	t, source := selectTier()
	b := NewBlitter(WithTier(t))
	Logger().Info("blit: default table selected",
		"tier", b.table.Tier(),
		"source", source,
		"routes", b.table.Routes())
	return b
})

// Table returns the blitter's route table.
func (b *Blitter) Table() *Table { return b.table }

// Tier returns the kernel tier of the blitter's table.
func (b *Blitter) Tier() Tier { return b.table.Tier() }

func (b *Blitter) log() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return Logger()
}
