package blit

import "encoding/binary"

// FixedOne is 1.0 in the 16.16 fixed-point coordinates of the stretch API.
const FixedOne = 1 << 16

const fixedHalf = FixedOne / 2

// stretchGeom maps destination pixel centers back into source coordinates.
type stretchGeom struct {
	px0, px1 int // destination columns whose centers lie in [x1, x2)
	py0, py1 int // destination rows whose centers lie in [y1, y2)

	x1, y1, dx, dy int64
	u1, v1, du, dv int64
}

func newStretchGeom(dst *Pixmap, x1, y1, x2, y2 int, u1, v1, u2, v2 int) (stretchGeom, bool) {
	if x2 <= x1 || y2 <= y1 {
		return stretchGeom{}, false
	}
	g := stretchGeom{
		x1: int64(x1), y1: int64(y1), dx: int64(x2 - x1), dy: int64(y2 - y1),
		u1: int64(u1), v1: int64(v1), du: int64(u2 - u1), dv: int64(v2 - v1),
	}
	g.px0, g.px1 = centerRange(g.x1, int64(x2), dst.W)
	g.py0, g.py1 = centerRange(g.y1, int64(y2), dst.H)
	return g, g.px0 < g.px1 && g.py0 < g.py1
}

// centerRange returns the pixels [p0, p1) with centers in [a, b), clipped
// to [0, limit).
func centerRange(a, b int64, limit int) (int, int) {
	p0 := ceilDiv(a-fixedHalf, FixedOne)
	p1 := ceilDiv(b-fixedHalf, FixedOne)
	p0 = max(p0, 0)
	p1 = min(p1, int64(limit))
	return int(p0), int(p1)
}

// u returns the source x coordinate sampled by destination column px.
func (g *stretchGeom) u(px int) int64 {
	c := int64(px)<<16 + fixedHalf
	return g.u1 + floorDiv((c-g.x1)*g.du, g.dx)
}

// v returns the source y coordinate sampled by destination row py.
func (g *stretchGeom) v(py int) int64 {
	c := int64(py)<<16 + fixedHalf
	return g.v1 + floorDiv((c-g.y1)*g.dv, g.dy)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}

func clampIndex(i int64, n int) int {
	if i < 0 {
		return 0
	}
	if i >= int64(n) {
		return n - 1
	}
	return int(i)
}

// canStretchNearest reports whether f has one pixel per byte-aligned quantum.
func canStretchNearest(f Format) bool {
	info := Describe(f)
	return f != FormatNull && info.QWBits == 0 && info.QHBits == 0 && info.AuxBufs == 0
}

// CanStretchNearest reports whether StretchNearest supports f.
func CanStretchNearest(f Format) bool {
	return f.Valid() && canStretchNearest(f)
}

// CanStretchBilinear reports whether StretchBilinear supports f.
func CanStretchBilinear(f Format) bool {
	_, ok := bilinearFormats[f]
	return ok
}

// lerpField is one bit field of a 16-bit packed pixel.
type lerpField struct {
	shift uint
	mask  uint16
}

var (
	fields1555 = []lerpField{{10, 0x1f}, {5, 0x1f}, {0, 0x1f}, {15, 0x01}}
	fields565  = []lerpField{{11, 0x1f}, {5, 0x3f}, {0, 0x1f}}
)

// bilinearFormats lists the formats with a bilinear kernel. A nil field list
// means every byte of the pixel is an independent channel.
var bilinearFormats = map[Format][]lerpField{
	FormatRGB888:     nil,
	FormatXRGB8888:   nil,
	FormatYUV444XVYU: nil,
	FormatY8:         nil,
	FormatXRGB1555:   fields1555,
	FormatRGB565:     fields565,
}

// StretchNearestRect resamples the source rectangle (u1,v1)-(u2,v2) onto the
// destination rectangle (x1,y1)-(x2,y2) by nearest neighbor. All coordinates
// are 16.16 fixed point. Every destination pixel whose center lies in the
// destination rectangle is written from the source pixel containing the
// mapped center, clamped to the source bounds.
//
// Both pixmaps must share a format with one pixel per quantum. Reversed
// source coordinates mirror the image.
func (b *Blitter) StretchNearestRect(dst *Pixmap, x1, y1, x2, y2 int, src *Pixmap, u1, v1, u2, v2 int) bool {
	if !b.stretchable(dst, src) || !canStretchNearest(src.Format) {
		return false
	}
	g, ok := newStretchGeom(dst, x1, y1, x2, y2, u1, v1, u2, v2)
	if !ok || src.W <= 0 || src.H <= 0 {
		return true
	}

	size := Describe(src.Format).QSize
	sp, dp := src.Planes[0].plane(), dst.Planes[0].plane()
	for py := g.py0; py < g.py1; py++ {
		sy := clampIndex(g.v(py)>>16, src.H)
		srow, drow := sp.Row(sy), dp.Row(py)
		for px := g.px0; px < g.px1; px++ {
			sx := clampIndex(g.u(px)>>16, src.W)
			copy(drow[px*size:px*size+size], srow[sx*size:sx*size+size])
		}
	}
	return true
}

// StretchBilinearRect is StretchNearestRect with bilinear filtering: each
// destination pixel blends the four source pixels around the mapped center
// by its 16-bit fractional position. Supported formats are RGB888,
// XRGB8888, XVYU, Y8, XRGB1555 and RGB565.
func (b *Blitter) StretchBilinearRect(dst *Pixmap, x1, y1, x2, y2 int, src *Pixmap, u1, v1, u2, v2 int) bool {
	if !b.stretchable(dst, src) {
		return false
	}
	fields, ok := bilinearFormats[src.Format]
	if !ok {
		return false
	}
	g, ok := newStretchGeom(dst, x1, y1, x2, y2, u1, v1, u2, v2)
	if !ok || src.W <= 0 || src.H <= 0 {
		return true
	}

	size := Describe(src.Format).QSize
	sp, dp := src.Planes[0].plane(), dst.Planes[0].plane()
	for py := g.py0; py < g.py1; py++ {
		t := g.v(py) - fixedHalf
		fy := t & (FixedOne - 1)
		row0 := sp.Row(clampIndex(t>>16, src.H))
		row1 := sp.Row(clampIndex(t>>16+1, src.H))
		drow := dp.Row(py)

		for px := g.px0; px < g.px1; px++ {
			s := g.u(px) - fixedHalf
			fx := s & (FixedOne - 1)
			i0 := clampIndex(s>>16, src.W) * size
			i1 := clampIndex(s>>16+1, src.W) * size
			out := drow[px*size : px*size+size]

			if fields == nil {
				for c := 0; c < size; c++ {
					out[c] = uint8(lerp2(
						int64(row0[i0+c]), int64(row0[i1+c]),
						int64(row1[i0+c]), int64(row1[i1+c]), fx, fy))
				}
				continue
			}

			p00 := binary.LittleEndian.Uint16(row0[i0:])
			p10 := binary.LittleEndian.Uint16(row0[i1:])
			p01 := binary.LittleEndian.Uint16(row1[i0:])
			p11 := binary.LittleEndian.Uint16(row1[i1:])
			var v uint16
			for _, f := range fields {
				ch := lerp2(
					int64(p00>>f.shift&f.mask), int64(p10>>f.shift&f.mask),
					int64(p01>>f.shift&f.mask), int64(p11>>f.shift&f.mask), fx, fy)
				v |= uint16(ch) << f.shift
			}
			binary.LittleEndian.PutUint16(out, v)
		}
	}
	return true
}

// lerp2 blends four samples with 16-bit fractional weights, rounding to
// nearest.
func lerp2(a, b, c, d, fx, fy int64) int64 {
	top := a*(FixedOne-fx) + b*fx
	bot := c*(FixedOne-fx) + d*fx
	return (top*(FixedOne-fy) + bot*fy + 1<<31) >> 32
}

func (b *Blitter) stretchable(dst, src *Pixmap) bool {
	if !dst.Format.Valid() || !src.Format.Valid() {
		b.log().Warn("blit: invalid format id",
			"dst", uint8(dst.Format), "src", uint8(src.Format))
		return false
	}
	if dst.Format != src.Format {
		b.log().Debug("blit: stretch needs matching formats", "src", src.Format, "dst", dst.Format)
		return false
	}
	return true
}

// StretchNearest stretches all of src over all of dst by nearest neighbor.
func (b *Blitter) StretchNearest(dst, src *Pixmap) bool {
	return b.StretchNearestRect(dst, 0, 0, dst.W<<16, dst.H<<16, src, 0, 0, src.W<<16, src.H<<16)
}

// StretchBilinear stretches all of src over all of dst with bilinear filtering.
func (b *Blitter) StretchBilinear(dst, src *Pixmap) bool {
	return b.StretchBilinearRect(dst, 0, 0, dst.W<<16, dst.H<<16, src, 0, 0, src.W<<16, src.H<<16)
}

// StretchNearest calls StretchNearest on the Default blitter.
func StretchNearest(dst, src *Pixmap) bool { return Default().StretchNearest(dst, src) }

// StretchBilinear calls StretchBilinear on the Default blitter.
func StretchBilinear(dst, src *Pixmap) bool { return Default().StretchBilinear(dst, src) }

// StretchNearestRect calls StretchNearestRect on the Default blitter.
func StretchNearestRect(dst *Pixmap, x1, y1, x2, y2 int, src *Pixmap, u1, v1, u2, v2 int) bool {
	return Default().StretchNearestRect(dst, x1, y1, x2, y2, src, u1, v1, u2, v2)
}

// StretchBilinearRect calls StretchBilinearRect on the Default blitter.
func StretchBilinearRect(dst *Pixmap, x1, y1, x2, y2 int, src *Pixmap, u1, v1, u2, v2 int) bool {
	return Default().StretchBilinearRect(dst, x1, y1, x2, y2, src, u1, v1, u2, v2)
}
