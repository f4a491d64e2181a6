package blit

import (
	"bytes"
	"testing"
)

func TestStretchIdentity(t *testing.T) {
	nearest := []Format{
		FormatPal8, FormatXRGB1555, FormatRGB565, FormatRGB888,
		FormatXRGB8888, FormatY8, FormatYUV444XVYU,
	}
	for _, f := range nearest {
		t.Run("nearest/"+f.String(), func(t *testing.T) {
			src := newFilled(t, 13, 7, f, 21)
			dst := newBlank(t, 13, 7, f)
			if !StretchNearest(dst, src) {
				t.Fatal("StretchNearest returned false")
			}
			if !planesEqual(dst, src) {
				t.Error("identity stretch changed pixels")
			}
		})
	}

	for f := range bilinearFormats {
		t.Run("bilinear/"+f.String(), func(t *testing.T) {
			src := newFilled(t, 13, 7, f, 22)
			dst := newBlank(t, 13, 7, f)
			if !StretchBilinear(dst, src) {
				t.Fatal("StretchBilinear returned false")
			}
			if !planesEqual(dst, src) {
				t.Error("identity stretch changed pixels")
			}
		})
	}
}

func TestStretchNearestUpscale(t *testing.T) {
	src := newBlank(t, 2, 2, FormatY8)
	copy(src.Planes[0].Data, []byte{10, 20, 30, 40})
	dst := newBlank(t, 4, 4, FormatY8)
	if !StretchNearest(dst, src) {
		t.Fatal("StretchNearest returned false")
	}
	want := []byte{
		10, 10, 20, 20,
		10, 10, 20, 20,
		30, 30, 40, 40,
		30, 30, 40, 40,
	}
	if !bytes.Equal(dst.Planes[0].Data, want) {
		t.Errorf("2x upscale = %v, want %v", dst.Planes[0].Data, want)
	}
}

func TestStretchNearestDownscale(t *testing.T) {
	src := newBlank(t, 6, 1, FormatY8)
	copy(src.Planes[0].Data, []byte{1, 2, 3, 4, 5, 6})
	dst := newBlank(t, 3, 1, FormatY8)
	if !StretchNearest(dst, src) {
		t.Fatal("StretchNearest returned false")
	}
	// Centers 0.5, 1.5, 2.5 map to 1.0, 3.0, 5.0.
	if want := []byte{2, 4, 6}; !bytes.Equal(dst.Planes[0].Data, want) {
		t.Errorf("downscale = %v, want %v", dst.Planes[0].Data, want)
	}
}

func TestStretchBilinearRamp(t *testing.T) {
	src := newBlank(t, 2, 1, FormatY8)
	copy(src.Planes[0].Data, []byte{0, 100})
	dst := newBlank(t, 4, 1, FormatY8)
	if !StretchBilinear(dst, src) {
		t.Fatal("StretchBilinear returned false")
	}
	if want := []byte{0, 25, 75, 100}; !bytes.Equal(dst.Planes[0].Data, want) {
		t.Errorf("bilinear ramp = %v, want %v", dst.Planes[0].Data, want)
	}
}

func TestStretchBilinearPacked16(t *testing.T) {
	// Blending full red and full blue 565 pixels halfway yields half of each.
	src := newBlank(t, 2, 1, FormatRGB565)
	copy(src.Planes[0].Data, []byte{0x00, 0xf8, 0x1f, 0x00})
	dst := newBlank(t, 1, 1, FormatRGB565)
	// One destination pixel centered exactly between the two sources.
	if !StretchBilinearRect(dst, 0, 0, FixedOne, FixedOne, src, FixedOne/2, 0, FixedOne*3/2, FixedOne) {
		t.Fatal("StretchBilinearRect returned false")
	}
	v := uint16(dst.Planes[0].Data[0]) | uint16(dst.Planes[0].Data[1])<<8
	if r, g, b := v>>11, v>>5&0x3f, v&0x1f; r != 16 || g != 0 || b != 16 {
		t.Errorf("blend = r%d g%d b%d, want r16 g0 b16", r, g, b)
	}
}

func TestStretchMirror(t *testing.T) {
	src := newBlank(t, 4, 1, FormatY8)
	copy(src.Planes[0].Data, []byte{1, 2, 3, 4})
	dst := newBlank(t, 4, 1, FormatY8)
	if !StretchNearestRect(dst, 0, 0, 4*FixedOne, FixedOne, src, 4*FixedOne, 0, 0, FixedOne) {
		t.Fatal("StretchNearestRect returned false")
	}
	if want := []byte{4, 3, 2, 1}; !bytes.Equal(dst.Planes[0].Data, want) {
		t.Errorf("mirror = %v, want %v", dst.Planes[0].Data, want)
	}
}

func TestStretchPartialDestination(t *testing.T) {
	src := newFilled(t, 4, 4, FormatXRGB8888, 3)
	dst := newBlank(t, 8, 8, FormatXRGB8888)
	// Columns 2..5 and rows 1..2 only; source is clamped at its edges.
	if !StretchNearestRect(dst, 2*FixedOne, FixedOne, 6*FixedOne, 3*FixedOne, src, 0, 0, 4*FixedOne, 4*FixedOne) {
		t.Fatal("StretchNearestRect returned false")
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			written := x >= 2 && x < 6 && y >= 1 && y < 3
			px := dst.Row(0, y)[x*4 : x*4+4]
			if !written && !allZero(px) {
				t.Errorf("pixel (%d,%d) outside the rectangle was written", x, y)
			}
		}
	}
	// Row 1 samples source row floor(0.5*2) = 1; column 2 samples source column 0.
	if got, want := dst.Row(0, 1)[8:12], src.Row(0, 1)[0:4]; !bytes.Equal(got, want) {
		t.Errorf("pixel (2,1) = %v, want %v", got, want)
	}
}

func TestStretchClampsSource(t *testing.T) {
	src := newBlank(t, 2, 1, FormatY8)
	copy(src.Planes[0].Data, []byte{7, 9})
	dst := newBlank(t, 4, 1, FormatY8)
	// The source rectangle reaches past both edges.
	if !StretchNearestRect(dst, 0, 0, 4*FixedOne, FixedOne, src, -2*FixedOne, 0, 4*FixedOne, FixedOne) {
		t.Fatal("StretchNearestRect returned false")
	}
	if want := []byte{7, 7, 9, 9}; !bytes.Equal(dst.Planes[0].Data, want) {
		t.Errorf("clamped = %v, want %v", dst.Planes[0].Data, want)
	}
}

func TestStretchRejects(t *testing.T) {
	y8 := newBlank(t, 4, 4, FormatY8)
	rgb := newBlank(t, 4, 4, FormatXRGB8888)
	uyvy := newBlank(t, 4, 4, FormatYUV422UYVY)
	pal := newBlank(t, 4, 4, FormatPal8)
	planar := newBlank(t, 4, 4, FormatYUV420Planar)

	if StretchNearest(rgb, y8) {
		t.Error("stretch between different formats succeeded")
	}
	if StretchNearest(uyvy, newBlank(t, 4, 4, FormatYUV422UYVY)) {
		t.Error("nearest stretch of a macropixel format succeeded")
	}
	if StretchNearest(planar, newBlank(t, 4, 4, FormatYUV420Planar)) {
		t.Error("nearest stretch of a planar format succeeded")
	}
	if StretchBilinear(pal, newBlank(t, 4, 4, FormatPal8)) {
		t.Error("bilinear stretch of a paletted format succeeded")
	}
}

func TestStretchEmptyRect(t *testing.T) {
	src := newFilled(t, 4, 4, FormatY8, 1)
	dst := newBlank(t, 4, 4, FormatY8)
	if !StretchNearestRect(dst, FixedOne, 0, FixedOne, 4*FixedOne, src, 0, 0, 4*FixedOne, 4*FixedOne) {
		t.Error("empty destination rectangle returned false")
	}
	// Centers of neither column lie in [0.6, 1.4).
	if !StretchBilinearRect(dst, FixedOne*6/10, 0, FixedOne*14/10, 4*FixedOne, src, 0, 0, 4*FixedOne, 4*FixedOne) {
		t.Error("rectangle between pixel centers returned false")
	}
	if !allZero(dst.Planes[0].Data) {
		t.Error("empty stretch wrote pixels")
	}
}

func BenchmarkStretch(b *testing.B) {
	src := newFilled(b, 640, 360, FormatXRGB8888, 1)
	dst := newBlank(b, 1280, 720, FormatXRGB8888)
	bl := NewBlitter()
	b.Run("nearest", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			bl.StretchNearest(dst, src)
		}
	})
	b.Run("bilinear", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			bl.StretchBilinear(dst, src)
		}
	})
}
