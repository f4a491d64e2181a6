// Package blit converts and copies raster pixel data between pixel formats.
//
// # Overview
//
// blit sits on the per-frame hot path of a video pipeline. It converts
// between packed RGB, packed and planar YCbCr, and 1/2/4/8-bit paletted
// formats from a fixed registry, and resamples frames by nearest neighbor
// or bilinear filtering.
//
// # Quick Start
//
//	import "github.com/gogpu/blit"
//
//	src, _ := blit.New(640, 480, blit.FormatYUV420Planar)
//	dst, _ := blit.New(640, 480, blit.FormatXRGB8888)
//
//	if !blit.Blt(dst, src) {
//	    // no conversion path between the two formats
//	}
//
// # Routing
//
// A Table holds the direct conversion routine for each source and
// destination format pair. BltDirect copies identical formats byte for byte
// and otherwise uses the table. BltFast adds a two-stage fallback through
// XVYU or XRGB8888, one row at a time. Blt and BltRect clip rectangles and
// call BltFast. CanBlt reports whether BltFast has a route.
//
// Paletted sources are expanded through a palette first converted to the
// destination format, so every route out of a paletted format shares the
// conversion rules of XRGB8888.
//
// # Tiers
//
// Tables come in kernel tiers. TierReference is portable per-pixel code.
// TierWide swaps the hot 32-bit RGB and YCbCr routes for plain Go kernels
// that work on 16 pixels per iteration. All tiers produce identical bytes. Default picks a tier from the
// host CPU once per process; BLIT_TIER=reference or BLIT_TIER=wide
// overrides the choice.
//
// # Color
//
// YCbCr is Rec. 601 studio range (Y 16-235, Cb/Cr 16-240) in integer
// fixed point. No gamma or color management is applied.
//
// # Memory
//
// A Pixmap is a view of caller-owned memory. Blits never allocate pixmap
// memory; BltFast allocates one scratch row when it needs two stages.
// Pitches may be negative for bottom-up frames (see Pixmap.FlipV).
package blit
