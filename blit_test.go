package blit

import (
	"bytes"
	"math/rand/v2"
	"testing"
)

// allFormats lists every registered format except FormatNull.
func allFormats() []Format {
	fs := make([]Format, 0, FormatMaxStandard-1)
	for f := FormatNull + 1; f < FormatMaxStandard; f++ {
		fs = append(fs, f)
	}
	return fs
}

// newFilled allocates a pixmap and fills every plane and palette entry with
// deterministic pseudo-random data.
func newFilled(tb testing.TB, w, h int, f Format, seed uint64) *Pixmap {
	tb.Helper()
	pm, err := New(w, h, f)
	if err != nil {
		tb.Fatalf("New(%d, %d, %v): %v", w, h, f, err)
	}
	rng := rand.New(rand.NewPCG(seed, uint64(f)))
	for i := range pm.Planes {
		for j := range pm.Planes[i].Data {
			pm.Planes[i].Data[j] = byte(rng.Uint32())
		}
	}
	for i := range pm.Palette {
		pm.Palette[i] = rng.Uint32() | 0xff000000
	}
	return pm
}

// newBlank allocates a zeroed pixmap.
func newBlank(tb testing.TB, w, h int, f Format) *Pixmap {
	tb.Helper()
	pm, err := New(w, h, f)
	if err != nil {
		tb.Fatalf("New(%d, %d, %v): %v", w, h, f, err)
	}
	return pm
}

// planesEqual compares every plane of two tightly packed pixmaps.
func planesEqual(a, b *Pixmap) bool {
	for i := range a.Planes {
		if !bytes.Equal(a.Planes[i].Data, b.Planes[i].Data) {
			return false
		}
	}
	return true
}

// blitters returns one blitter per tier.
func blitters() map[string]*Blitter {
	return map[string]*Blitter{
		"reference": NewBlitter(WithTier(TierReference)),
		"wide":      NewBlitter(WithTier(TierWide)),
	}
}

func absDiff(a, b byte) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func allZero(p []byte) bool {
	for _, v := range p {
		if v != 0 {
			return false
		}
	}
	return true
}
