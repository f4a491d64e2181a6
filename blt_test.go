package blit

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestBltSameFormatExact(t *testing.T) {
	sizes := [][2]int{{1, 1}, {3, 5}, {7, 3}, {17, 9}, {33, 2}}
	for _, f := range allFormats() {
		for _, sz := range sizes {
			w, h := sz[0], sz[1]
			t.Run(fmt.Sprintf("%v/%dx%d", f, w, h), func(t *testing.T) {
				src := newFilled(t, w, h, f, 1)
				dst := newBlank(t, w, h, f)
				if !Blt(dst, src) {
					t.Fatal("Blt returned false")
				}
				if !planesEqual(dst, src) {
					t.Error("same-format copy is not exact")
				}
			})
		}
	}
}

func TestBltRoundTripExact(t *testing.T) {
	tests := []struct {
		f, g Format
	}{
		{FormatXRGB1555, FormatXRGB8888},
		{FormatRGB565, FormatXRGB8888},
		{FormatRGB888, FormatXRGB8888},
		{FormatXRGB1555, FormatRGB888},
		{FormatRGB565, FormatRGB888},
		{FormatXRGB1555, FormatRGB565},
		{FormatY8, FormatYUV444XVYU},
		{FormatYUV422UYVY, FormatYUV422YUYV},
		{FormatYUV422UYVY, FormatYUV444XVYU},
		{FormatYUV422YUYV, FormatYUV444XVYU},
		{FormatYUV420Planar, FormatYUV444XVYU},
		{FormatYUV422Planar, FormatYUV422UYVY},
		{FormatYUV420Planar, FormatYUV444Planar},
		{FormatYUV410Planar, FormatYUV411Planar},
	}
	for name, b := range blitters() {
		for _, tt := range tests {
			t.Run(fmt.Sprintf("%s/%v-%v", name, tt.f, tt.g), func(t *testing.T) {
				const w, h = 20, 6
				src := newFilled(t, w, h, tt.f, 3)
				if tt.f == FormatXRGB1555 {
					// The X bit is written as set.
					for i := 1; i < len(src.Planes[0].Data); i += 2 {
						src.Planes[0].Data[i] |= 0x80
					}
				}
				mid := newBlank(t, w, h, tt.g)
				back := newBlank(t, w, h, tt.f)
				if !b.Blt(mid, src) || !b.Blt(back, mid) {
					t.Fatal("Blt returned false")
				}
				if !planesEqual(back, src) {
					t.Errorf("%v→%v→%v is not exact", tt.f, tt.g, tt.f)
				}
			})
		}
	}
}

func TestBltRoundTripBounded(t *testing.T) {
	tests := []struct {
		via    Format
		maxErr int
	}{
		{FormatRGB565, 7},
		{FormatXRGB1555, 7},
		{FormatYUV444XVYU, 6},
		{FormatYUV422UYVY, 64},
		{FormatPal8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.via.String(), func(t *testing.T) {
			const w, h = 16, 4
			src := newBlank(t, w, h, FormatXRGB8888)
			for y := 0; y < h; y++ {
				row := src.Row(0, y)
				for x := 0; x < w; x++ {
					// Smooth gradient; 4:2:2 chroma averaging stays bounded.
					row[x*4], row[x*4+1], row[x*4+2], row[x*4+3] = byte(x*16), byte(y*60), byte(255-x*16), 0xff
				}
			}

			mid := newBlank(t, w, h, tt.via)
			back := newBlank(t, w, h, FormatXRGB8888)
			if tt.via == FormatPal8 {
				// Identity palette over the source colors: lossless by construction.
				for i := 0; i < w*h; i++ {
					p := src.Planes[0].Data[i*4:]
					mid.Palette[i] = 0xff000000 | uint32(p[2])<<16 | uint32(p[1])<<8 | uint32(p[0])
					mid.Planes[0].Data[i] = byte(i)
				}
			} else if !Blt(mid, src) {
				t.Fatalf("XRGB8888→%v failed", tt.via)
			}
			if !Blt(back, mid) {
				t.Fatalf("%v→XRGB8888 failed", tt.via)
			}

			for i, v := range src.Planes[0].Data {
				if i%4 == 3 {
					continue
				}
				if d := absDiff(v, back.Planes[0].Data[i]); d > tt.maxErr {
					t.Fatalf("byte %d: got %d, want %d±%d", i, back.Planes[0].Data[i], v, tt.maxErr)
				}
			}
		})
	}
}

// TestCanBltImpliesBltFast checks every format pair on every tier.
func TestCanBltImpliesBltFast(t *testing.T) {
	for name, b := range blitters() {
		for _, src := range allFormats() {
			for _, dst := range allFormats() {
				s := newFilled(t, 6, 4, src, 5)
				d := newBlank(t, 6, 4, dst)
				can := b.CanBlt(dst, src)
				if got := b.BltFast(d, s, 6, 4); got != can {
					t.Errorf("%s: CanBlt(%v, %v) = %v but BltFast = %v", name, dst, src, can, got)
				}
			}
		}
	}
}

func TestCanBlt(t *testing.T) {
	b := NewBlitter()
	tests := []struct {
		dst, src Format
		want     bool
	}{
		{FormatXRGB1555, FormatPal4, true},
		{FormatYUV422UYVY, FormatPal8, true},
		{FormatY8, FormatRGB565, true},
		{FormatYUV444XVYU, FormatXRGB1555, true},
		{FormatPal8, FormatXRGB8888, false},
		{FormatRGB565, FormatYUV420Planar, false},
		{FormatYUV420Planar, FormatRGB888, false},
		{FormatNull, FormatNull, true},
		{FormatXRGB8888, FormatNull, false},
		{Format(99), FormatY8, false},
	}
	for _, tt := range tests {
		if got := b.CanBlt(tt.dst, tt.src); got != tt.want {
			t.Errorf("CanBlt(%v, %v) = %v, want %v", tt.dst, tt.src, got, tt.want)
		}
	}
}

func TestIntermediatePreference(t *testing.T) {
	b := NewBlitter()
	tests := []struct {
		dst, src Format
		want     Format
	}{
		{FormatY8, FormatYUV422UYVY, FormatYUV444XVYU},
		{FormatYUV422YUYV, FormatPal8, FormatYUV444XVYU},
		{FormatY8, FormatXRGB1555, FormatXRGB8888},
		{FormatRGB888, FormatYUV444XVYU, FormatXRGB8888},
	}
	for _, tt := range tests {
		got, ok := b.intermediate(tt.dst, tt.src)
		if !ok || got != tt.want {
			t.Errorf("intermediate(%v, %v) = %v, %v; want %v", tt.dst, tt.src, got, ok, tt.want)
		}
	}
}

func TestBltRectNegativeOrigin(t *testing.T) {
	src := newFilled(t, 10, 10, FormatXRGB8888, 9)
	dst := newBlank(t, 10, 10, FormatXRGB8888)
	if !BltRect(dst, 0, 0, src, -3, -3, 10, 10) {
		t.Fatal("BltRect returned false")
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			got := dst.Row(0, y)[x*4 : x*4+4]
			want := []byte{0, 0, 0, 0}
			if x < 7 && y < 7 {
				want = src.Row(0, y)[x*4 : x*4+4]
			}
			if !bytes.Equal(got, want) {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestBltRectNegativeDestination(t *testing.T) {
	src := newFilled(t, 4, 4, FormatY8, 4)
	dst := newBlank(t, 6, 6, FormatY8)
	if !BltRect(dst, -1, 2, src, 0, 0, 4, 4) {
		t.Fatal("BltRect returned false")
	}
	// Trimmed to 3×4 from source (0,0), clipped to 3×4 at destination (0,2).
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			var want byte
			if x < 3 && y >= 2 {
				want = src.Row(0, y-2)[x]
			}
			if got := dst.Row(0, y)[x]; got != want {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestBltRectOutside(t *testing.T) {
	src := newFilled(t, 8, 8, FormatRGB565, 2)
	dst := newBlank(t, 8, 8, FormatXRGB8888)
	if !BltRect(dst, 0, 0, src, src.W+100, 0, 8, 8) {
		t.Error("BltRect outside the source returned false")
	}
	if !BltRect(dst, 50, 50, src, 0, 0, 8, 8) {
		t.Error("BltRect outside the destination returned false")
	}
	if !BltRect(dst, 0, 0, src, -20, 0, 8, 8) {
		t.Error("BltRect trimmed to nothing returned false")
	}
	if !allZero(dst.Planes[0].Data) {
		t.Error("BltRect outside the buffers wrote pixels")
	}
}

func TestBltRectInterior(t *testing.T) {
	src := newFilled(t, 8, 8, FormatXRGB8888, 6)
	dst := newBlank(t, 8, 8, FormatRGB888)
	if !BltRect(dst, 5, 6, src, 1, 2, 10, 10) {
		t.Fatal("BltRect returned false")
	}
	// Clipped to 3×2 by the destination.
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			got := dst.Row(0, y)[x*3 : x*3+3]
			want := []byte{0, 0, 0}
			if x >= 5 && y >= 6 {
				want = src.Row(0, y-4)[(x-4)*4 : (x-4)*4+3]
			}
			if !bytes.Equal(got, want) {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

// TestPal4IndirectMatchesManual converts a 16-entry paletted frame straight
// to non-truecolor formats and compares with expanding to XRGB8888 first.
func TestPal4IndirectMatchesManual(t *testing.T) {
	for _, dstFmt := range []Format{FormatY8, FormatYUV444XVYU, FormatRGB565, FormatYUV422UYVY} {
		for name, b := range blitters() {
			t.Run(name+"/"+dstFmt.String(), func(t *testing.T) {
				const w, h = 9, 3
				src := newFilled(t, w, h, FormatPal4, 11)

				got := newBlank(t, w, h, dstFmt)
				if !b.Blt(got, src) {
					t.Fatal("Blt returned false")
				}

				truecolor := newBlank(t, w, h, FormatXRGB8888)
				want := newBlank(t, w, h, dstFmt)
				if !b.Blt(truecolor, src) || !b.Blt(want, truecolor) {
					t.Fatal("manual expansion failed")
				}
				if dstFmt == FormatYUV422UYVY {
					// UYVY routes through XVYU, so expand manually the same way.
					xvyu := newBlank(t, w, h, FormatYUV444XVYU)
					if !b.Blt(xvyu, truecolor) || !b.Blt(want, xvyu) {
						t.Fatal("manual expansion through XVYU failed")
					}
				}
				if !planesEqual(got, want) {
					t.Error("paletted conversion differs from manual expansion")
				}
			})
		}
	}
}

func TestPal1Expansion(t *testing.T) {
	src := newBlank(t, 10, 1, FormatPal1)
	src.Planes[0].Data[0] = 0b10100000
	src.Planes[0].Data[1] = 0b01000000
	src.Palette[0] = 0xff000000
	src.Palette[1] = 0xffffffff

	dst := newBlank(t, 10, 1, FormatY8)
	if !Blt(dst, src) {
		t.Fatal("Blt returned false")
	}
	want := []byte{235, 16, 235, 16, 16, 16, 16, 16, 16, 235}
	if !bytes.Equal(dst.Planes[0].Data, want) {
		t.Errorf("Pal1→Y8 = %v, want %v", dst.Planes[0].Data, want)
	}
}

func TestShortPaletteIsBlack(t *testing.T) {
	src := newBlank(t, 2, 1, FormatPal8)
	src.Planes[0].Data[0] = 200
	src.Palette = src.Palette[:4]
	dst := newFilled(t, 2, 1, FormatXRGB8888, 1)
	if !Blt(dst, src) {
		t.Fatal("Blt returned false")
	}
	if got := dst.Planes[0].Data[:4]; !bytes.Equal(got, []byte{0, 0, 0, 0}) {
		t.Errorf("missing palette entry = %v, want black", got)
	}
}

func TestBltBottomUp(t *testing.T) {
	tests := []struct {
		src, dst Format
	}{
		{FormatXRGB8888, FormatRGB888},
		{FormatXRGB1555, FormatYUV422UYVY},
		{FormatYUV420Planar, FormatXRGB8888},
	}
	for _, tt := range tests {
		t.Run(tt.src.String()+"-"+tt.dst.String(), func(t *testing.T) {
			const w, h = 6, 4
			src := newFilled(t, w, h, tt.src, 8)

			upright := newBlank(t, w, h, tt.dst)
			if !Blt(upright, src) {
				t.Fatal("Blt returned false")
			}

			flipped := newBlank(t, w, h, tt.dst)
			view := flipped.FlipV()
			if !Blt(&view, src) {
				t.Fatal("Blt into bottom-up view returned false")
			}

			n := Describe(tt.dst).RowBytes(w)
			for y := 0; y < h; y++ {
				if !bytes.Equal(flipped.Row(0, y)[:n], upright.Row(0, h-1-y)[:n]) {
					t.Errorf("row %d is not the mirror of row %d", y, h-1-y)
				}
			}
		})
	}
}

func TestBltInvalidFormat(t *testing.T) {
	var buf bytes.Buffer
	b := NewBlitter(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	src := newFilled(t, 4, 4, FormatXRGB8888, 1)
	dst := newBlank(t, 4, 4, FormatXRGB8888)
	bad := *src
	bad.Format = Format(250)

	if b.BltDirect(dst, &bad, 4, 4) || b.BltFast(dst, &bad, 4, 4) || b.Blt(dst, &bad) {
		t.Error("blit with an invalid format id succeeded")
	}
	if !allZero(dst.Planes[0].Data) {
		t.Error("failed blit wrote pixels")
	}
	if !strings.Contains(buf.String(), "invalid format id") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestBltNoRouteLeavesDestination(t *testing.T) {
	src := newFilled(t, 4, 4, FormatYUV420Planar, 1)
	dst := newBlank(t, 4, 4, FormatRGB565)
	if Blt(dst, src) {
		t.Fatal("planar→RGB565 should have no route")
	}
	if !allZero(dst.Planes[0].Data) {
		t.Error("failed blit wrote pixels")
	}
}

func TestBltFastZeroSize(t *testing.T) {
	src := newFilled(t, 4, 4, FormatXRGB1555, 1)
	dst := newBlank(t, 4, 4, FormatY8)
	if !BltFast(dst, src, 0, 4) {
		t.Error("zero-width two-stage blit returned false")
	}
}

func BenchmarkBltFast(b *testing.B) {
	pairs := []struct{ src, dst Format }{
		{FormatXRGB8888, FormatYUV444XVYU},
		{FormatYUV420Planar, FormatXRGB8888},
		{FormatXRGB1555, FormatY8},
		{FormatPal8, FormatRGB565},
	}
	for name, bl := range blitters() {
		for _, p := range pairs {
			b.Run(name+"/"+p.src.String()+"-"+p.dst.String(), func(b *testing.B) {
				src := newFilled(b, 640, 480, p.src, 1)
				dst := newBlank(b, 640, 480, p.dst)
				b.SetBytes(int64(640 * 480 * 4))
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					bl.BltFast(dst, src, 640, 480)
				}
			})
		}
	}
}
