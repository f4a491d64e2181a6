package convert

// YUVLayout is a packed layout that can be read and written as runs of
// YCbCr triples (Y, Cb, Cr), 3 bytes per pixel.
type YUVLayout interface {
	Layout() Layout
	ReadYUV(dst, src []byte, n int)
	WriteYUV(dst, src []byte, n int)
}

// Packed422 is a 4:2:2 macropixel layout: two pixels share one chroma pair
// in a 4-byte quantum. The fields give byte positions inside the quantum.
type Packed422 struct {
	Name   string
	Y0, Y1 int
	U, V   int
}

// 4:2:2 macropixel layouts.
var (
	UYVY = Packed422{Name: "UYVY", U: 0, Y0: 1, V: 2, Y1: 3}
	YUYV = Packed422{Name: "YUYV", Y0: 0, U: 1, Y1: 2, V: 3}
)

// Layout returns the packed layout: 4 bytes per 2 pixels.
func (p Packed422) Layout() Layout {
	return Layout{QSize: 4, QWBits: 1}
}

// ReadYUV unpacks n pixels, replicating each chroma pair across both pixels.
func (p Packed422) ReadYUV(dst, src []byte, n int) {
	for i := 0; i < n; i++ {
		q := src[(i>>1)*4:]
		y := q[p.Y0]
		if i&1 != 0 {
			y = q[p.Y1]
		}
		dst[i*3], dst[i*3+1], dst[i*3+2] = y, q[p.U], q[p.V]
	}
}

// WriteYUV packs n pixels, averaging the chroma of each pixel pair. A
// trailing odd pixel is paired with itself.
func (p Packed422) WriteYUV(dst, src []byte, n int) {
	for i := 0; i < n; i += 2 {
		a := src[i*3:]
		b := a
		if i+1 < n {
			b = src[(i+1)*3:]
		}
		q := dst[(i>>1)*4:]
		q[p.Y0] = a[0]
		q[p.Y1] = b[0]
		q[p.U] = avg2(a[1], b[1])
		q[p.V] = avg2(a[2], b[2])
	}
}

// Repack returns a row converter between two 4:2:2 layouts. It is a pure
// byte shuffle and is lossless.
func Repack(dst, src Packed422) RowFunc {
	return func(d, s []byte, w int) {
		n := (w + 1) >> 1
		for i := 0; i < n; i++ {
			sq := s[i*4 : i*4+4]
			dq := d[i*4 : i*4+4]
			dq[dst.Y0] = sq[src.Y0]
			dq[dst.Y1] = sq[src.Y1]
			dq[dst.U] = sq[src.U]
			dq[dst.V] = sq[src.V]
		}
	}
}

// YUVRow returns a row converter between any two YCbCr-addressable layouts,
// staging through a fixed stack buffer.
func YUVRow(dst, src YUVLayout) RowFunc {
	dl, sl := dst.Layout(), src.Layout()
	return func(d, s []byte, w int) {
		var buf [chunkPixels * 3]byte
		for x := 0; x < w; x += chunkPixels {
			n := min(chunkPixels, w-x)
			src.ReadYUV(buf[:], s[sl.Bytes(x):], n)
			dst.WriteYUV(d[dl.Bytes(x):], buf[:], n)
		}
	}
}

func avg2(a, b uint8) uint8 {
	//nolint:gosec // G115: average of two bytes fits in a byte
	return uint8((uint16(a) + uint16(b) + 1) >> 1)
}
