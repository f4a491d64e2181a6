package blit

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/blit/internal/convert"
)

// Common errors for pixmap construction and validation. The blit entry
// points themselves report success as a bool.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("blit: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not registered.
	ErrInvalidFormat = errors.New("blit: invalid format")

	// ErrPlaneTooSmall is returned when a plane does not cover its rows.
	ErrPlaneTooSmall = errors.New("blit: plane data too small")

	// ErrUnsupportedImage is returned when an image.Image has no pixmap view.
	ErrUnsupportedImage = errors.New("blit: unsupported image type")
)

// Plane is one plane of caller-owned pixel memory.
//
// Row y begins at Data[Offset+y*Pitch]. Pitch may be negative for bottom-up
// layouts; Offset then points at the top row near the end of Data.
type Plane struct {
	Data   []byte
	Offset int
	Pitch  int
}

// Pixmap describes a rectangular region of pixel memory.
//
// Planes[0] is the primary plane. Planar formats store Cb in Planes[1] and
// Cr in Planes[2]. Paletted formats carry ARGB entries in Palette.
//
// A Pixmap is a descriptor; the memory it points at is owned by the caller
// and the blit functions never allocate or free it.
type Pixmap struct {
	W, H    int
	Format  Format
	Planes  [3]Plane
	Palette []uint32
}

// New allocates a tightly packed pixmap of the given size and format.
// Paletted formats get a zeroed palette of the format's full size.
func New(w, h int, f Format) (*Pixmap, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !f.Valid() || f == FormatNull {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, f)
	}

	info := Describe(f)
	pm := &Pixmap{W: w, H: h, Format: f}

	pitch := info.RowBytes(w)
	pm.Planes[0] = Plane{Data: make([]byte, pitch*info.Rows(h)), Pitch: pitch}

	if info.AuxBufs > 0 {
		aw, ah := info.AuxExtent(w, h)
		for i := 1; i <= info.AuxBufs; i++ {
			auxPitch := aw * info.AuxSize
			pm.Planes[i] = Plane{Data: make([]byte, auxPitch*ah), Pitch: auxPitch}
		}
	}

	if info.PaletteSize > 0 {
		pm.Palette = make([]uint32, info.PaletteSize)
	}
	return pm, nil
}

// Validate checks that the format is registered and that every plane holds
// enough bytes for W×H pixels at its pitch.
func (p *Pixmap) Validate() error {
	if p.W <= 0 || p.H <= 0 {
		return ErrInvalidDimensions
	}
	if !p.Format.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, p.Format)
	}

	info := Describe(p.Format)
	if err := p.Planes[0].validate(info.RowBytes(p.W), info.Rows(p.H)); err != nil {
		return fmt.Errorf("plane 0: %w", err)
	}
	aw, ah := info.AuxExtent(p.W, p.H)
	for i := 1; i <= info.AuxBufs; i++ {
		if err := p.Planes[i].validate(aw*info.AuxSize, ah); err != nil {
			return fmt.Errorf("plane %d: %w", i, err)
		}
	}
	return nil
}

func (pl Plane) validate(rowBytes, rows int) error {
	if rows == 0 || rowBytes == 0 {
		return nil
	}
	first := pl.Offset
	last := pl.Offset + (rows-1)*pl.Pitch
	lo, hi := min(first, last), max(first, last)
	if lo < 0 || hi+rowBytes > len(pl.Data) {
		return fmt.Errorf("%w: need rows %d..%d of %d bytes, have %d",
			ErrPlaneTooSmall, lo, hi, rowBytes, len(pl.Data))
	}
	return nil
}

// Offset returns a view of p starting at pixel (x, y). Offsets are
// truncated to the format's quantum and chroma grid; callers addressing
// subsampled formats should use aligned coordinates.
func (p *Pixmap) Offset(x, y int) Pixmap {
	if !p.Format.Valid() {
		return *p
	}
	info := Describe(p.Format)

	v := *p
	v.W = max(p.W-x, 0)
	v.H = max(p.H-y, 0)
	v.Planes[0].Offset += (x>>info.QWBits)*info.QSize + (y>>info.QHBits)*p.Planes[0].Pitch
	for i := 1; i <= info.AuxBufs; i++ {
		v.Planes[i].Offset += (x>>info.AuxWBits)*info.AuxSize + (y>>info.AuxHBits)*p.Planes[i].Pitch
	}
	return v
}

// FlipV returns a view of p with the rows in reverse order. The view
// shares memory with p and has negated pitches.
func (p *Pixmap) FlipV() Pixmap {
	if !p.Format.Valid() || p.H <= 0 {
		return *p
	}
	info := Describe(p.Format)

	v := *p
	flip := func(pl *Plane, rows int) {
		pl.Offset += (rows - 1) * pl.Pitch
		pl.Pitch = -pl.Pitch
	}
	flip(&v.Planes[0], info.Rows(p.H))
	_, ah := info.AuxExtent(p.W, p.H)
	for i := 1; i <= info.AuxBufs; i++ {
		flip(&v.Planes[i], ah)
	}
	return v
}

// Row returns the bytes of row y of plane i through the end of its data.
func (p *Pixmap) Row(i, y int) []byte {
	return p.Planes[i].plane().Row(y)
}

func (pl Plane) plane() convert.Plane {
	return convert.Plane(pl)
}

// frame returns the w×h planar kernel view of p.
func (p *Pixmap) frame(w, h int) *convert.Frame {
	return &convert.Frame{
		W: w,
		H: h,
		Planes: [3]convert.Plane{
			p.Planes[0].plane(),
			p.Planes[1].plane(),
			p.Planes[2].plane(),
		},
	}
}

// encodePalette writes n palette entries as XRGB8888 bytes into dst.
// Entries missing from a short palette are black.
func encodePalette(dst []byte, pal []uint32, n int) {
	for i := 0; i < n; i++ {
		var c uint32
		if i < len(pal) {
			c = pal[i]
		}
		binary.LittleEndian.PutUint32(dst[i*4:], c)
	}
}
