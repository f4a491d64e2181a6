// Package convert implements the row kernels behind the blitter table.
//
// Kernels are format-agnostic building blocks: they know byte layouts and
// sample geometry, but not the format registry. The blit package composes
// them into table cells.
//
// Three kernel shapes exist:
//
//   - ChunkyFunc converts between two single-plane packed layouts.
//   - PalettedFunc expands packed palette indices through a palette that has
//     already been converted to the destination layout.
//   - PlanarFunc converts whenever either side carries auxiliary planes.
package convert

// Plane is a view of one plane of caller-owned pixel memory.
//
// Row y begins at Data[Offset+y*Pitch]. Pitch may be negative for bottom-up
// layouts, in which case Offset points at the top row near the end of Data.
type Plane struct {
	Data   []byte
	Offset int
	Pitch  int
}

// Row returns the bytes of row y through the end of Data.
func (p Plane) Row(y int) []byte {
	return p.Data[p.Offset+y*p.Pitch:]
}

// Advance returns the plane shifted down by n rows.
func (p Plane) Advance(n int) Plane {
	p.Offset += n * p.Pitch
	return p
}

// Frame is a planar image view: the primary plane followed by up to two
// auxiliary planes (Cb, Cr).
type Frame struct {
	W, H   int
	Planes [3]Plane
}

// RowFunc converts w pixels of a single row from src into dst.
type RowFunc func(dst, src []byte, w int)

// ChunkyFunc converts a w×h rectangle between two packed layouts.
type ChunkyFunc func(dst, src Plane, w, h int)

// PalettedFunc expands a w×h rectangle of palette indices. pal holds the
// palette in destination layout, one destination pixel per entry.
type PalettedFunc func(dst, src Plane, w, h int, pal []byte)

// PlanarFunc converts a full frame where either side has auxiliary planes.
type PlanarFunc func(dst, src *Frame)

// Rows lifts a row converter to a rectangle converter.
func Rows(fn RowFunc) ChunkyFunc {
	return func(dst, src Plane, w, h int) {
		for y := 0; y < h; y++ {
			fn(dst.Row(y), src.Row(y), w)
		}
	}
}

// CopyRect copies h rows of n bytes between two planes.
func CopyRect(dst, src Plane, n, h int) {
	if n <= 0 {
		return
	}
	for y := 0; y < h; y++ {
		copy(dst.Row(y)[:n], src.Row(y)[:n])
	}
}

// Layout describes how pixels map to bytes in a packed row.
// A quantum of QSize bytes holds 1<<QWBits pixels.
type Layout struct {
	QSize  int
	QWBits uint
}

// Bytes returns the number of bytes covering the first w pixels.
func (l Layout) Bytes(w int) int {
	return ((w + 1<<l.QWBits - 1) >> l.QWBits) * l.QSize
}

// chunkPixels is the width of the stack scratch used by planar kernels. It is
// a multiple of every supported macropixel and chroma decimation width.
const chunkPixels = 256
