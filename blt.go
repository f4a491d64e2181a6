package blit

import "github.com/gogpu/blit/internal/convert"

// paletteBytes is the largest converted palette: 256 entries of 4 bytes.
const paletteBytes = 256 * 4

// intermediates are the two-stage fallback formats in order of preference.
var intermediates = [...]Format{FormatYUV444XVYU, FormatXRGB8888}

// BltDirect converts the top-left w×h pixels of src into dst in one pass.
//
// Identical formats are copied byte for byte in every plane, rounding the
// rectangle up to whole quanta. Other pairs use the table's direct route;
// BltDirect returns false when there is none or when either format id is
// not registered. Nothing is written to dst when it returns false.
func (b *Blitter) BltDirect(dst, src *Pixmap, w, h int) bool {
	if !dst.Format.Valid() || !src.Format.Valid() {
		b.log().Warn("blit: invalid format id",
			"dst", uint8(dst.Format), "src", uint8(src.Format))
		return false
	}

	if dst.Format == src.Format {
		copyQuantized(dst, src, w, h)
		return true
	}

	cell := b.table.cells[src.Format][dst.Format]
	switch cell.kind {
	case KindChunky:
		cell.chunky(dst.Planes[0].plane(), src.Planes[0].plane(), w, h)
	case KindPlanar:
		cell.planar(dst.frame(w, h), src.frame(w, h))
	case KindPaletted:
		var buf [paletteBytes]byte
		pal, ok := b.convertPalette(&buf, dst.Format, src)
		if !ok {
			return false
		}
		cell.paletted(dst.Planes[0].plane(), src.Planes[0].plane(), w, h, pal)
	default:
		return false
	}
	return true
}

// copyQuantized copies a w×h rectangle between two pixmaps of one format.
func copyQuantized(dst, src *Pixmap, w, h int) {
	info := Describe(src.Format)
	convert.CopyRect(dst.Planes[0].plane(), src.Planes[0].plane(), info.RowBytes(w), info.Rows(h))

	aw, ah := info.AuxExtent(w, h)
	for i := 1; i <= info.AuxBufs; i++ {
		convert.CopyRect(dst.Planes[i].plane(), src.Planes[i].plane(), aw*info.AuxSize, ah)
	}
}

// convertPalette returns the palette of src encoded as f pixels, backed by
// buf. XRGB8888 is the palette's native layout; any other target is
// produced by a nested one-row direct blit from XRGB8888.
func (b *Blitter) convertPalette(buf *[paletteBytes]byte, f Format, src *Pixmap) ([]byte, bool) {
	n := Describe(src.Format).PaletteSize
	if f == FormatXRGB8888 {
		encodePalette(buf[:n*4], src.Palette, n)
		return buf[:n*4], true
	}

	var native [paletteBytes]byte
	encodePalette(native[:n*4], src.Palette, n)

	size := Describe(f).QSize
	from := Pixmap{W: n, H: 1, Format: FormatXRGB8888, Planes: [3]Plane{{Data: native[:n*4]}}}
	to := Pixmap{W: n, H: 1, Format: f, Planes: [3]Plane{{Data: buf[:n*size]}}}
	if !b.BltDirect(&to, &from, n, 1) {
		return nil, false
	}
	return buf[:n*size], true
}

// intermediate picks the format a two-stage conversion passes through.
// Planar formats and vertically packed sources have no fallback.
func (b *Blitter) intermediate(dst, src Format) (Format, bool) {
	si, di := Describe(src), Describe(dst)
	if si.AuxBufs > 0 || di.AuxBufs > 0 || si.QHBits != 0 {
		return FormatNull, false
	}
	for _, mid := range intermediates {
		if b.table.cells[src][mid].kind != KindNone && b.table.cells[mid][dst].kind != KindNone {
			return mid, true
		}
	}
	return FormatNull, false
}

// BltFast converts the top-left w×h pixels of src into dst.
//
// It tries BltDirect first. Without a direct route it converts one row at a
// time through XVYU, or XRGB8888 when XVYU has no route, using a single
// scratch row. Once the route is chosen every row is converted.
func (b *Blitter) BltFast(dst, src *Pixmap, w, h int) bool {
	if b.BltDirect(dst, src, w, h) {
		return true
	}
	if !dst.Format.Valid() || !src.Format.Valid() {
		return false
	}

	mid, ok := b.intermediate(dst.Format, src.Format)
	if !ok {
		b.log().Debug("blit: no conversion path", "src", src.Format, "dst", dst.Format)
		return false
	}
	if w <= 0 || h <= 0 {
		return true
	}
	b.log().Debug("blit: two-stage conversion",
		"src", src.Format, "via", mid, "dst", dst.Format, "w", w, "h", h)

	first := b.table.cells[src.Format][mid]
	second := b.table.cells[mid][dst.Format]

	var palBuf [paletteBytes]byte
	var pal []byte
	if first.kind == KindPaletted {
		if pal, ok = b.convertPalette(&palBuf, mid, src); !ok {
			return false
		}
	}

	scratch := convert.Plane{Data: make([]byte, (w+1)*4)}
	sp, dp := src.Planes[0].plane(), dst.Planes[0].plane()
	for y := 0; y < h; y++ {
		if first.kind == KindPaletted {
			first.paletted(scratch, sp, w, 1, pal)
		} else {
			first.chunky(scratch, sp, w, 1)
		}
		second.chunky(dp, scratch, w, 1)
		sp = sp.Advance(1)
		dp = dp.Advance(1)
	}
	return true
}

// CanBlt reports whether BltFast can convert src pixels into dst pixels,
// either directly or through one intermediate.
func (b *Blitter) CanBlt(dst, src Format) bool {
	if !dst.Valid() || !src.Valid() {
		return false
	}
	if dst == src || b.table.cells[src][dst].kind != KindNone {
		return true
	}
	_, ok := b.intermediate(dst, src)
	return ok
}

// Blt converts the overlapping top-left region of src into dst.
func (b *Blitter) Blt(dst, src *Pixmap) bool {
	return b.BltRect(dst, 0, 0, src, 0, 0, min(dst.W, src.W), min(dst.H, src.H))
}

// BltRect converts the w×h rectangle at (x2, y2) in src to (x1, y1) in dst.
//
// A negative origin on either side trims the rectangle by the same amount
// and moves that origin to zero. The size is then clipped to both buffers.
// A rectangle left empty by clipping succeeds without writing anything.
func (b *Blitter) BltRect(dst *Pixmap, x1, y1 int, src *Pixmap, x2, y2, w, h int) bool {
	if x1 < 0 {
		w += x1
		x1 = 0
	}
	if y1 < 0 {
		h += y1
		y1 = 0
	}
	if x2 < 0 {
		w += x2
		x2 = 0
	}
	if y2 < 0 {
		h += y2
		y2 = 0
	}

	w = min(w, dst.W-x1, src.W-x2)
	h = min(h, dst.H-y1, src.H-y2)
	if w <= 0 || h <= 0 {
		return true
	}

	d := dst.Offset(x1, y1)
	s := src.Offset(x2, y2)
	return b.BltFast(&d, &s, w, h)
}

// BltDirect calls BltDirect on the Default blitter.
func BltDirect(dst, src *Pixmap, w, h int) bool { return Default().BltDirect(dst, src, w, h) }

// BltFast calls BltFast on the Default blitter.
func BltFast(dst, src *Pixmap, w, h int) bool { return Default().BltFast(dst, src, w, h) }

// CanBlt calls CanBlt on the Default blitter.
func CanBlt(dst, src Format) bool { return Default().CanBlt(dst, src) }

// Blt calls Blt on the Default blitter.
func Blt(dst, src *Pixmap) bool { return Default().Blt(dst, src) }

// BltRect calls BltRect on the Default blitter.
func BltRect(dst *Pixmap, x1, y1 int, src *Pixmap, x2, y2, w, h int) bool {
	return Default().BltRect(dst, x1, y1, src, x2, y2, w, h)
}
