package blit

import (
	"github.com/gogpu/blit/internal/convert"
	"github.com/gogpu/blit/internal/wide"
)

type (
	chunkyCell   = convert.ChunkyFunc
	palettedCell = convert.PalettedFunc
	planarCell   = convert.PlanarFunc
)

// codecs maps the one-pixel-per-quantum formats to their pixel codecs.
var codecs = map[Format]convert.Codec{
	FormatXRGB1555:   convert.XRGB1555,
	FormatRGB565:     convert.RGB565,
	FormatRGB888:     convert.RGB888,
	FormatXRGB8888:   convert.XRGB8888,
	FormatY8:         convert.Y8,
	FormatYUV444XVYU: convert.XVYU,
}

var packed422 = map[Format]convert.Packed422{
	FormatYUV422UYVY: convert.UYVY,
	FormatYUV422YUYV: convert.YUYV,
}

// isRGB reports membership in the truecolor family.
func isRGB(f Format) bool {
	switch f {
	case FormatXRGB1555, FormatRGB565, FormatRGB888, FormatXRGB8888:
		return true
	}
	return false
}

// isHub reports whether f is one of the two canonical intermediates.
func isHub(f Format) bool {
	return f == FormatXRGB8888 || f == FormatYUV444XVYU
}

// yuvLayout returns the packed layouts planar formats convert to and from.
func yuvLayout(f Format) (convert.YUVLayout, bool) {
	if isHub(f) {
		return codecs[f], true
	}
	if p, ok := packed422[f]; ok {
		return p, true
	}
	return nil, false
}

func subsampling(f Format) convert.Subsampling {
	info := Describe(f)
	return convert.Subsampling{W: info.AuxWBits, H: info.AuxHBits}
}

// referenceKernels is the portable tier.
type referenceKernels struct{}

func (referenceKernels) chunky(dst, src Format) chunkyCell {
	dc, dok := codecs[dst]
	sc, sok := codecs[src]
	if dok && sok {
		direct := (isRGB(dst) && isRGB(src)) ||
			(isHub(dst) && (src == FormatY8 || isHub(src))) ||
			(isHub(src) && (dst == FormatY8 || isHub(dst)))
		if direct {
			return convert.Rows(convert.Row(dc, sc))
		}
		return nil
	}

	dp, dIs422 := packed422[dst]
	sp, sIs422 := packed422[src]
	switch {
	case dIs422 && sIs422:
		return convert.Rows(convert.Repack(dp, sp))
	case dIs422 && isHub(src):
		return convert.Rows(convert.YUVRow(dp, sc))
	case sIs422 && isHub(dst):
		return convert.Rows(convert.YUVRow(dc, sp))
	}
	return nil
}

func (referenceKernels) paletted(dst, src Format) palettedCell {
	c, ok := codecs[dst]
	if !ok || !src.IsPaletted() {
		return nil
	}
	return convert.Expand(src.paletteBits(), c.Size)
}

func (referenceKernels) planar(dst, src Format) planarCell {
	switch {
	case dst.IsPlanar() && src.IsPlanar():
		return convert.Resample(subsampling(dst), subsampling(src))
	case src.IsPlanar():
		if l, ok := yuvLayout(dst); ok {
			return convert.FromPlanar(subsampling(src), l)
		}
	case dst.IsPlanar():
		if l, ok := yuvLayout(src); ok {
			return convert.ToPlanar(l, subsampling(dst))
		}
	}
	return nil
}

// wideRoutes are the batch kernels keyed by {dst, src}.
var wideRoutes = map[[2]Format]convert.RowFunc{
	{FormatYUV444XVYU, FormatXRGB8888}: wide.XRGB8888ToXVYU,
	{FormatXRGB8888, FormatYUV444XVYU}: wide.XVYUToXRGB8888,
	{FormatRGB565, FormatXRGB8888}:     wide.XRGB8888ToRGB565,
	{FormatXRGB8888, FormatRGB565}:     wide.RGB565ToXRGB8888,
	{FormatXRGB1555, FormatXRGB8888}:   wide.XRGB8888ToXRGB1555,
	{FormatXRGB8888, FormatXRGB1555}:   wide.XRGB1555ToXRGB8888,
	{FormatXRGB8888, FormatRGB888}:     wide.RGB888ToXRGB8888,
	{FormatRGB888, FormatXRGB8888}:     wide.XRGB8888ToRGB888,
}

// wideKernels overrides the hot 32-bit routes and inherits everything else.
type wideKernels struct {
	referenceKernels
}

func (k wideKernels) chunky(dst, src Format) chunkyCell {
	if fn, ok := wideRoutes[[2]Format{dst, src}]; ok {
		return convert.Rows(fn)
	}
	return k.referenceKernels.chunky(dst, src)
}
