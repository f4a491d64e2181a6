package blit

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	ycc "github.com/gogpu/blit/internal/color"
)

// FromImage returns a pixmap for img.
//
// *image.Paletted is wrapped as Pal8 without copying pixels. *image.YCbCr
// holds full-range (JFIF) samples, so it is copied into the matching
// planar format with luma and chroma remapped to studio range; use
// WrapYCbCr for images that already carry studio-range samples. Every
// other image is copied into a new XRGB8888 pixmap. YCbCr 4:4:0 has no
// planar format and returns ErrUnsupportedImage.
func FromImage(img image.Image) (*Pixmap, error) {
	r := img.Bounds()
	if r.Empty() {
		return nil, ErrInvalidDimensions
	}

	switch m := img.(type) {
	case *image.Paletted:
		return fromPaletted(m), nil
	case *image.YCbCr:
		return studioFromYCbCr(m)
	case *image.RGBA:
		pm, err := New(r.Dx(), r.Dy(), FormatXRGB8888)
		if err != nil {
			return nil, err
		}
		swizzleRGBA(pm, m.Pix[m.PixOffset(r.Min.X, r.Min.Y):], m.Stride)
		return pm, nil
	default:
		rgba := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, r.Min, draw.Src)
		pm, err := New(r.Dx(), r.Dy(), FormatXRGB8888)
		if err != nil {
			return nil, err
		}
		swizzleRGBA(pm, rgba.Pix, rgba.Stride)
		return pm, nil
	}
}

func fromPaletted(m *image.Paletted) *Pixmap {
	r := m.Bounds()
	pal := make([]uint32, 256)
	for i, c := range m.Palette {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		pal[i] = uint32(n.A)<<24 | uint32(n.R)<<16 | uint32(n.G)<<8 | uint32(n.B)
	}
	return &Pixmap{
		W:       r.Dx(),
		H:       r.Dy(),
		Format:  FormatPal8,
		Planes:  [3]Plane{{Data: m.Pix, Offset: m.PixOffset(r.Min.X, r.Min.Y), Pitch: m.Stride}},
		Palette: pal,
	}
}

var subsampleFormats = map[image.YCbCrSubsampleRatio]Format{
	image.YCbCrSubsampleRatio444: FormatYUV444Planar,
	image.YCbCrSubsampleRatio422: FormatYUV422Planar,
	image.YCbCrSubsampleRatio420: FormatYUV420Planar,
	image.YCbCrSubsampleRatio411: FormatYUV411Planar,
	image.YCbCrSubsampleRatio410: FormatYUV410Planar,
}

// WrapYCbCr returns a pixmap sharing m's planes. The samples are taken
// as studio range, as decoded video frames usually are; JFIF images should
// go through FromImage instead.
func WrapYCbCr(m *image.YCbCr) (*Pixmap, error) {
	f, ok := subsampleFormats[m.SubsampleRatio]
	if !ok {
		return nil, fmt.Errorf("%w: YCbCr %v", ErrUnsupportedImage, m.SubsampleRatio)
	}
	r := m.Bounds()
	if r.Empty() {
		return nil, ErrInvalidDimensions
	}
	yo, co := m.YOffset(r.Min.X, r.Min.Y), m.COffset(r.Min.X, r.Min.Y)
	return &Pixmap{
		W:      r.Dx(),
		H:      r.Dy(),
		Format: f,
		Planes: [3]Plane{
			{Data: m.Y, Offset: yo, Pitch: m.YStride},
			{Data: m.Cb, Offset: co, Pitch: m.CStride},
			{Data: m.Cr, Offset: co, Pitch: m.CStride},
		},
	}, nil
}

// studioFromYCbCr copies a full-range image into a new studio-range pixmap.
func studioFromYCbCr(m *image.YCbCr) (*Pixmap, error) {
	view, err := WrapYCbCr(m)
	if err != nil {
		return nil, err
	}
	pm, err := New(view.W, view.H, view.Format)
	if err != nil {
		return nil, err
	}

	info := Describe(pm.Format)
	remap := func(i, rowBytes, rows int, lut func(uint8) uint8) {
		for y := range rows {
			s, d := view.Row(i, y)[:rowBytes], pm.Row(i, y)
			for x, v := range s {
				d[x] = lut(v)
			}
		}
	}
	remap(0, info.RowBytes(pm.W), info.Rows(pm.H), ycc.StudioLuma)
	aw, ah := info.AuxExtent(pm.W, pm.H)
	remap(1, aw*info.AuxSize, ah, ycc.StudioChroma)
	remap(2, aw*info.AuxSize, ah, ycc.StudioChroma)
	return pm, nil
}

// swizzleRGBA copies R,G,B,A rows into an XRGB8888 pixmap of the same size.
func swizzleRGBA(pm *Pixmap, pix []byte, stride int) {
	for y := 0; y < pm.H; y++ {
		s := pix[y*stride:]
		d := pm.Row(0, y)
		for x := 0; x < pm.W; x++ {
			i := x * 4
			d[i], d[i+1], d[i+2], d[i+3] = s[i+2], s[i+1], s[i], 0xff
		}
	}
}

// ToRGBA converts p into a new opaque *image.RGBA, going through XRGB8888
// with BltFast. Scratch frames come from the package frame pool.
func (b *Blitter) ToRGBA(p *Pixmap) (*image.RGBA, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	tmp := p
	if p.Format != FormatXRGB8888 {
		var err error
		if tmp, err = defaultPool.Get(p.W, p.H, FormatXRGB8888); err != nil {
			return nil, err
		}
		defer defaultPool.Put(tmp)
		if !b.BltFast(tmp, p, p.W, p.H) {
			return nil, fmt.Errorf("%w: no route from %v to XRGB8888", ErrUnsupportedImage, p.Format)
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, p.W, p.H))
	for y := 0; y < p.H; y++ {
		s := tmp.Row(0, y)
		d := out.Pix[y*out.Stride:]
		for x := 0; x < p.W; x++ {
			i := x * 4
			d[i], d[i+1], d[i+2], d[i+3] = s[i+2], s[i+1], s[i], 0xff
		}
	}
	return out, nil
}

// ToRGBA converts p with the Default blitter.
func (p *Pixmap) ToRGBA() (*image.RGBA, error) {
	return Default().ToRGBA(p)
}
