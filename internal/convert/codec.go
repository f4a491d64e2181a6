package convert

import (
	"encoding/binary"

	"github.com/gogpu/blit/internal/color"
)

// Codec loads and stores single pixels of a packed layout with one pixel
// per quantum. Every codec can be accessed as 8-bit RGB or as studio-range
// YCbCr; the non-native side goes through internal/color.
type Codec struct {
	Name string
	Size int

	// Native is true when the layout stores YCbCr.
	Native bool

	loadRGB  func(p []byte) (r, g, b uint8)
	storeRGB func(p []byte, r, g, b uint8)
	loadYUV  func(p []byte) (y, u, v uint8)
	storeYUV func(p []byte, y, u, v uint8)
}

func rgbCodec(name string, size int, load func([]byte) (uint8, uint8, uint8), store func([]byte, uint8, uint8, uint8)) Codec {
	return Codec{
		Name:     name,
		Size:     size,
		loadRGB:  load,
		storeRGB: store,
		loadYUV: func(p []byte) (y, u, v uint8) {
			return color.RGBToYCbCr(load(p))
		},
		storeYUV: func(p []byte, y, u, v uint8) {
			r, g, b := color.YCbCrToRGB(y, u, v)
			store(p, r, g, b)
		},
	}
}

func yuvCodec(name string, size int, load func([]byte) (uint8, uint8, uint8), store func([]byte, uint8, uint8, uint8)) Codec {
	return Codec{
		Name:     name,
		Size:     size,
		Native:   true,
		loadYUV:  load,
		storeYUV: store,
		loadRGB: func(p []byte) (r, g, b uint8) {
			return color.YCbCrToRGB(load(p))
		},
		storeRGB: func(p []byte, r, g, b uint8) {
			y, u, v := color.RGBToYCbCr(r, g, b)
			store(p, y, u, v)
		},
	}
}

// Packed codecs.
var (
	XRGB1555 = rgbCodec("XRGB1555", 2, load1555, store1555)
	RGB565   = rgbCodec("RGB565", 2, load565, store565)
	RGB888   = rgbCodec("RGB888", 3, load888, store888)
	XRGB8888 = rgbCodec("XRGB8888", 4, load8888, store8888)
	Y8       = yCodec()
	XVYU     = yuvCodec("XVYU", 4, loadXVYU, storeXVYU)
)

// expand5 widens a 5-bit channel to 8 bits by bit replication.
func expand5(v uint16) uint8 {
	v &= 0x1f
	//nolint:gosec // G115: value fits in 8 bits
	return uint8(v<<3 | v>>2)
}

// expand6 widens a 6-bit channel to 8 bits by bit replication.
func expand6(v uint16) uint8 {
	v &= 0x3f
	//nolint:gosec // G115: value fits in 8 bits
	return uint8(v<<2 | v>>4)
}

func load1555(p []byte) (r, g, b uint8) {
	v := binary.LittleEndian.Uint16(p)
	return expand5(v >> 10), expand5(v >> 5), expand5(v)
}

func store1555(p []byte, r, g, b uint8) {
	v := uint16(0x8000) | uint16(r>>3)<<10 | uint16(g>>3)<<5 | uint16(b>>3)
	binary.LittleEndian.PutUint16(p, v)
}

func load565(p []byte) (r, g, b uint8) {
	v := binary.LittleEndian.Uint16(p)
	return expand5(v >> 11), expand6(v >> 5), expand5(v)
}

func store565(p []byte, r, g, b uint8) {
	v := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
	binary.LittleEndian.PutUint16(p, v)
}

func load888(p []byte) (r, g, b uint8) {
	return p[2], p[1], p[0]
}

func store888(p []byte, r, g, b uint8) {
	p[0], p[1], p[2] = b, g, r
}

func load8888(p []byte) (r, g, b uint8) {
	return p[2], p[1], p[0]
}

func store8888(p []byte, r, g, b uint8) {
	p[0], p[1], p[2], p[3] = b, g, r, 0xff
}

func loadXVYU(p []byte) (y, u, v uint8) {
	return p[1], p[0], p[2]
}

func storeXVYU(p []byte, y, u, v uint8) {
	p[0], p[1], p[2], p[3] = u, y, v, 0xff
}

// yCodec is luma only: it reads as neutral chroma and drops chroma on write.
func yCodec() Codec {
	return Codec{
		Name:   "Y8",
		Size:   1,
		Native: true,
		loadYUV: func(p []byte) (y, u, v uint8) {
			return p[0], 128, 128
		},
		storeYUV: func(p []byte, y, _, _ uint8) {
			p[0] = y
		},
		loadRGB: func(p []byte) (r, g, b uint8) {
			v := color.GrayFromLuma(p[0])
			return v, v, v
		},
		storeRGB: func(p []byte, r, g, b uint8) {
			p[0] = color.Luma(r, g, b)
		},
	}
}

// Layout returns the packed layout of the codec.
func (c Codec) Layout() Layout {
	return Layout{QSize: c.Size}
}

// ReadYUV unpacks n pixels from src into YCbCr triples.
func (c Codec) ReadYUV(dst, src []byte, n int) {
	for i := 0; i < n; i++ {
		y, u, v := c.loadYUV(src[i*c.Size:])
		dst[i*3], dst[i*3+1], dst[i*3+2] = y, u, v
	}
}

// WriteYUV packs n YCbCr triples from src into dst.
func (c Codec) WriteYUV(dst, src []byte, n int) {
	for i := 0; i < n; i++ {
		c.storeYUV(dst[i*c.Size:], src[i*3], src[i*3+1], src[i*3+2])
	}
}

// Row returns a row converter between two codecs. Pairs that are both
// natively YCbCr stay in YCbCr; everything else goes through RGB.
func Row(dst, src Codec) RowFunc {
	if src.Native && dst.Native {
		return func(d, s []byte, w int) {
			for x := 0; x < w; x++ {
				y, u, v := src.loadYUV(s[x*src.Size:])
				dst.storeYUV(d[x*dst.Size:], y, u, v)
			}
		}
	}
	return func(d, s []byte, w int) {
		for x := 0; x < w; x++ {
			r, g, b := src.loadRGB(s[x*src.Size:])
			dst.storeRGB(d[x*dst.Size:], r, g, b)
		}
	}
}
