// Package color provides fast Rec.601 RGB ↔ YCbCr conversion using lookup tables.
//
// All YCbCr values are studio range: luma in [16, 235], chroma in [16, 240]
// centered on 128. The math is 8.8 fixed point, the same integer
// approximation used by most software video stacks:
//
//	Y  = ((  66R + 129G +  25B + 128) >> 8) + 16
//	Cb = (( -38R -  74G + 112B + 128) >> 8) + 128
//	Cr = (( 112R -  94G -  18B + 128) >> 8) + 128
//
//	R = clamp((298(Y-16)             + 409(Cr-128) + 128) >> 8)
//	G = clamp((298(Y-16) - 100(Cb-128) - 208(Cr-128) + 128) >> 8)
//	B = clamp((298(Y-16) + 516(Cb-128)             + 128) >> 8)
//
// The per-component products are precomputed, so each conversion is a
// handful of table loads and adds.
package color

// Forward tables, indexed by an 8-bit R, G or B component.
var (
	yFromR, yFromG, yFromB [256]int32
	uFromR, uFromG, uFromB [256]int32
	vFromR, vFromG, vFromB [256]int32
)

// Inverse tables, indexed by an 8-bit Y, Cb or Cr component.
var (
	rgbFromY       [256]int32
	rFromV, bFromU [256]int32
	gFromU, gFromV [256]int32
	clampTable     [clampSpan]uint8
)

// clampTable covers every value the inverse transform can produce after the
// final shift, [-277, 534].
const (
	clampBias = 512
	clampSpan = 2048
)

func init() {
	for i := 0; i < 256; i++ {
		v := int32(i)

		yFromR[i] = 66 * v
		yFromG[i] = 129 * v
		yFromB[i] = 25 * v

		uFromR[i] = -38 * v
		uFromG[i] = -74 * v
		uFromB[i] = 112 * v

		vFromR[i] = 112 * v
		vFromG[i] = -94 * v
		vFromB[i] = -18 * v

		rgbFromY[i] = 298*(v-16) + 128
		rFromV[i] = 409 * (v - 128)
		gFromU[i] = -100 * (v - 128)
		gFromV[i] = -208 * (v - 128)
		bFromU[i] = 516 * (v - 128)
	}

	for i := range clampTable {
		v := i - clampBias
		switch {
		case v < 0:
			clampTable[i] = 0
		case v > 255:
			clampTable[i] = 255
		default:
			clampTable[i] = uint8(v)
		}
	}
}

// clamp8 maps a pre-shift inverse-transform sum to a byte.
func clamp8(sum int32) uint8 {
	return clampTable[int(sum>>8)+clampBias]
}

// Luma returns the studio-range luma of an 8-bit RGB triple.
func Luma(r, g, b uint8) uint8 {
	//nolint:gosec // G115: result is always in [16, 235]
	return uint8(((yFromR[r] + yFromG[g] + yFromB[b] + 128) >> 8) + 16)
}

// RGBToYCbCr converts an 8-bit RGB triple to studio-range YCbCr.
func RGBToYCbCr(r, g, b uint8) (y, cb, cr uint8) {
	//nolint:gosec // G115: results are within [16, 240] by construction
	y = uint8(((yFromR[r] + yFromG[g] + yFromB[b] + 128) >> 8) + 16)
	//nolint:gosec // G115: see above
	cb = uint8(((uFromR[r] + uFromG[g] + uFromB[b] + 128) >> 8) + 128)
	//nolint:gosec // G115: see above
	cr = uint8(((vFromR[r] + vFromG[g] + vFromB[b] + 128) >> 8) + 128)
	return y, cb, cr
}

// YCbCrToRGB converts a studio-range YCbCr triple to 8-bit RGB.
// Out-of-gamut results are clamped.
func YCbCrToRGB(y, cb, cr uint8) (r, g, b uint8) {
	base := rgbFromY[y]
	r = clamp8(base + rFromV[cr])
	g = clamp8(base + gFromU[cb] + gFromV[cr])
	b = clamp8(base + bFromU[cb])
	return r, g, b
}

// GrayFromLuma expands a studio-range luma sample to a full-range gray level.
func GrayFromLuma(y uint8) uint8 {
	return clamp8(rgbFromY[y])
}

// YCbCrToRGBSlow is the direct arithmetic form of YCbCrToRGB.
// Used for testing and verification only.
func YCbCrToRGBSlow(y, cb, cr uint8) (r, g, b uint8) {
	c := int32(y) - 16
	d := int32(cb) - 128
	e := int32(cr) - 128
	r = clampSlow((298*c + 409*e + 128) >> 8)
	g = clampSlow((298*c - 100*d - 208*e + 128) >> 8)
	b = clampSlow((298*c + 516*d + 128) >> 8)
	return r, g, b
}

// RGBToYCbCrSlow is the direct arithmetic form of RGBToYCbCr.
// Used for testing and verification only.
func RGBToYCbCrSlow(r, g, b uint8) (y, cb, cr uint8) {
	ri, gi, bi := int32(r), int32(g), int32(b)
	y = clampSlow(((66*ri + 129*gi + 25*bi + 128) >> 8) + 16)
	cb = clampSlow(((-38*ri - 74*gi + 112*bi + 128) >> 8) + 128)
	cr = clampSlow(((112*ri - 94*gi - 18*bi + 128) >> 8) + 128)
	return y, cb, cr
}

func clampSlow(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Full-range (JFIF) to studio-range remap tables.
var studioLuma, studioChroma [256]uint8

func init() {
	for i := range 256 {
		studioLuma[i] = uint8(16 + (219*i+127)/255)
		studioChroma[i] = uint8(16 + (224*i+127)/255)
	}
}

// StudioLuma maps a full-range luma sample [0, 255] onto [16, 235].
func StudioLuma(y uint8) uint8 { return studioLuma[y] }

// StudioChroma maps a full-range chroma sample [0, 255] onto [16, 240],
// keeping 128 at 128.
func StudioChroma(c uint8) uint8 { return studioChroma[c] }
