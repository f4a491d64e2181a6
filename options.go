package blit

import "log/slog"

// Option configures a Blitter during creation.
//
// Example:
//
//	// Portable scalar kernels only
//	b := blit.NewBlitter(blit.WithTier(blit.TierReference))
//
//	// Route this blitter's diagnostics to a dedicated logger
//	b := blit.NewBlitter(blit.WithLogger(myLogger))
type Option func(*blitterOptions)

// blitterOptions holds optional configuration for Blitter creation.
type blitterOptions struct {
	tier   Tier
	logger *slog.Logger
}

// defaultOptions returns the default blitter options.
func defaultOptions() blitterOptions {
	return blitterOptions{
		tier:   TierReference,
		logger: nil, // falls back to the package logger at call time
	}
}

// WithTier selects the kernel tier backing the blitter's table.
// Unknown tiers fall back to TierReference.
func WithTier(t Tier) Option {
	return func(o *blitterOptions) {
		o.tier = t
	}
}

// WithLogger sets a logger for this blitter, overriding the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *blitterOptions) {
		o.logger = l
	}
}
