package blit

import (
	"fmt"
	"strings"
)

// Format identifies a registered pixel encoding.
//
// The zero value is FormatNull, which describes no pixels and converts to
// nothing. Valid formats satisfy 0 <= f < FormatMaxStandard.
type Format uint8

const (
	// FormatNull is the unset format.
	FormatNull Format = iota

	// FormatPal1 is 1-bit paletted, 8 pixels per byte, MSB first.
	FormatPal1

	// FormatPal2 is 2-bit paletted, 4 pixels per byte, MSB first.
	FormatPal2

	// FormatPal4 is 4-bit paletted, 2 pixels per byte, high nibble first.
	FormatPal4

	// FormatPal8 is 8-bit paletted.
	FormatPal8

	// FormatXRGB1555 is 16-bit little-endian X:R5:G5:B5.
	FormatXRGB1555

	// FormatRGB565 is 16-bit little-endian R5:G6:B5.
	FormatRGB565

	// FormatRGB888 is 24-bit B, G, R bytes.
	FormatRGB888

	// FormatXRGB8888 is 32-bit B, G, R, X bytes (little-endian 0xXXRRGGBB).
	// This is the canonical truecolor format and the native palette layout.
	FormatXRGB8888

	// FormatY8 is 8-bit studio-range luma.
	FormatY8

	// FormatYUV422UYVY is 4:2:2 packed as U, Y0, V, Y1.
	FormatYUV422UYVY

	// FormatYUV422YUYV is 4:2:2 packed as Y0, U, Y1, V.
	FormatYUV422YUYV

	// FormatYUV444XVYU is 4:4:4 packed as U, Y, V, X (little-endian 0xXXVVYYUU).
	// This is the canonical YCbCr format.
	FormatYUV444XVYU

	// FormatYUV444Planar is planar Y, Cb, Cr without subsampling.
	FormatYUV444Planar

	// FormatYUV422Planar is planar with chroma halved horizontally.
	FormatYUV422Planar

	// FormatYUV420Planar is planar with chroma halved on both axes.
	FormatYUV420Planar

	// FormatYUV411Planar is planar with chroma quartered horizontally.
	FormatYUV411Planar

	// FormatYUV410Planar is planar with chroma quartered on both axes.
	FormatYUV410Planar

	// FormatMaxStandard is the number of registered formats.
	FormatMaxStandard
)

// FormatInfo contains the layout metadata of a pixel format.
//
// A quantum is the smallest addressable unit: QSize bytes covering
// 1<<QWBits pixels horizontally and 1<<QHBits rows vertically.
type FormatInfo struct {
	// Name is the canonical format name.
	Name string

	// QSize is the size of one quantum in bytes.
	QSize int

	// QWBits and QHBits are the log2 quantum width and height in pixels.
	QWBits, QHBits uint

	// AuxBufs is the number of auxiliary planes (0, 1 or 2).
	AuxBufs int

	// AuxWBits and AuxHBits are the log2 decimation of each auxiliary plane.
	AuxWBits, AuxHBits uint

	// AuxSize is the size of one auxiliary sample in bytes.
	AuxSize int

	// PaletteSize is the number of palette entries, or 0 if not paletted.
	PaletteSize int
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [FormatMaxStandard]FormatInfo{
	FormatNull:         {Name: "Null"},
	FormatPal1:         {Name: "Pal1", QSize: 1, QWBits: 3, PaletteSize: 2},
	FormatPal2:         {Name: "Pal2", QSize: 1, QWBits: 2, PaletteSize: 4},
	FormatPal4:         {Name: "Pal4", QSize: 1, QWBits: 1, PaletteSize: 16},
	FormatPal8:         {Name: "Pal8", QSize: 1, PaletteSize: 256},
	FormatXRGB1555:     {Name: "XRGB1555", QSize: 2},
	FormatRGB565:       {Name: "RGB565", QSize: 2},
	FormatRGB888:       {Name: "RGB888", QSize: 3},
	FormatXRGB8888:     {Name: "XRGB8888", QSize: 4},
	FormatY8:           {Name: "Y8", QSize: 1},
	FormatYUV422UYVY:   {Name: "UYVY", QSize: 4, QWBits: 1},
	FormatYUV422YUYV:   {Name: "YUYV", QSize: 4, QWBits: 1},
	FormatYUV444XVYU:   {Name: "XVYU", QSize: 4},
	FormatYUV444Planar: {Name: "YUV444P", QSize: 1, AuxBufs: 2, AuxSize: 1},
	FormatYUV422Planar: {Name: "YUV422P", QSize: 1, AuxBufs: 2, AuxWBits: 1, AuxSize: 1},
	FormatYUV420Planar: {Name: "YUV420P", QSize: 1, AuxBufs: 2, AuxWBits: 1, AuxHBits: 1, AuxSize: 1},
	FormatYUV411Planar: {Name: "YUV411P", QSize: 1, AuxBufs: 2, AuxWBits: 2, AuxSize: 1},
	FormatYUV410Planar: {Name: "YUV410P", QSize: 1, AuxBufs: 2, AuxWBits: 2, AuxHBits: 2, AuxSize: 1},
}

// Describe returns the metadata of a registered format.
//
// Format ids are caller constants, so an out-of-range id is a programming
// error and Describe panics.
func Describe(f Format) FormatInfo {
	if f >= FormatMaxStandard {
		panic(fmt.Sprintf("blit: invalid format id %d", uint8(f)))
	}
	return formatInfoTable[f]
}

// Valid reports whether f is a registered format.
func (f Format) Valid() bool {
	return f < FormatMaxStandard
}

// String returns the canonical name of the format.
func (f Format) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
	return formatInfoTable[f].Name
}

// IsPaletted reports whether f stores palette indices.
func (f Format) IsPaletted() bool {
	return f.Valid() && formatInfoTable[f].PaletteSize > 0
}

// IsPlanar reports whether f has auxiliary planes.
func (f Format) IsPlanar() bool {
	return f.Valid() && formatInfoTable[f].AuxBufs > 0
}

// paletteBits returns the index depth of a paletted format.
func (f Format) paletteBits() uint {
	switch f {
	case FormatPal1:
		return 1
	case FormatPal2:
		return 2
	case FormatPal4:
		return 4
	default:
		return 8
	}
}

// RowBytes returns the number of bytes covering w pixels of the primary plane.
func (info FormatInfo) RowBytes(w int) int {
	return ceilShift(w, info.QWBits) * info.QSize
}

// Rows returns the number of primary-plane rows covering h pixel rows.
func (info FormatInfo) Rows(h int) int {
	return ceilShift(h, info.QHBits)
}

// AuxExtent returns the auxiliary plane size in samples for a w×h image.
func (info FormatInfo) AuxExtent(w, h int) (int, int) {
	return ceilShift(w, info.AuxWBits), ceilShift(h, info.AuxHBits)
}

// ParseFormat looks up a format by name, case-insensitively. Both the
// canonical names and common aliases (RGB32, RGB24, I420, YV16, ...) are
// accepted.
func ParseFormat(name string) (Format, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if f, ok := formatAliases[key]; ok {
		return f, nil
	}
	for f := FormatNull + 1; f < FormatMaxStandard; f++ {
		if strings.ToUpper(formatInfoTable[f].Name) == key {
			return f, nil
		}
	}
	return FormatNull, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
}

var formatAliases = map[string]Format{
	"RGB32":  FormatXRGB8888,
	"BGRA":   FormatXRGB8888,
	"RGB24":  FormatRGB888,
	"RGB555": FormatXRGB1555,
	"RGB16":  FormatRGB565,
	"GRAY":   FormatY8,
	"YUY2":   FormatYUV422YUYV,
	"I444":   FormatYUV444Planar,
	"YV16":   FormatYUV422Planar,
	"I420":   FormatYUV420Planar,
	"Y41B":   FormatYUV411Planar,
	"YUV9":   FormatYUV410Planar,
	"MONO":   FormatPal1,
}

// ceilShift returns ceil(v / 2^bits) for non-negative v.
func ceilShift(v int, bits uint) int {
	return (v + 1<<bits - 1) >> bits
}
