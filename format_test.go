package blit

import (
	"errors"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		format  Format
		qsize   int
		qwbits  uint
		auxBufs int
		palette int
	}{
		{FormatPal1, 1, 3, 0, 2},
		{FormatPal2, 1, 2, 0, 4},
		{FormatPal4, 1, 1, 0, 16},
		{FormatPal8, 1, 0, 0, 256},
		{FormatRGB888, 3, 0, 0, 0},
		{FormatXRGB8888, 4, 0, 0, 0},
		{FormatYUV422UYVY, 4, 1, 0, 0},
		{FormatYUV444XVYU, 4, 0, 0, 0},
		{FormatYUV420Planar, 1, 0, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			info := Describe(tt.format)
			if info.QSize != tt.qsize || info.QWBits != tt.qwbits ||
				info.AuxBufs != tt.auxBufs || info.PaletteSize != tt.palette {
				t.Errorf("Describe(%v) = %+v", tt.format, info)
			}
		})
	}
}

func TestDescribePanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Describe(FormatMaxStandard) did not panic")
		}
	}()
	Describe(FormatMaxStandard)
}

func TestFormatPredicates(t *testing.T) {
	if !FormatPal2.IsPaletted() || FormatRGB565.IsPaletted() {
		t.Error("IsPaletted mismatch")
	}
	if !FormatYUV410Planar.IsPlanar() || FormatYUV444XVYU.IsPlanar() {
		t.Error("IsPlanar mismatch")
	}
	if Format(200).Valid() || Format(200).IsPaletted() {
		t.Error("unregistered id reported as valid")
	}
	if got := Format(200).String(); got != "Format(200)" {
		t.Errorf("String() = %q", got)
	}
}

func TestRowBytesAndExtent(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		w, h   int
		row    int
		aw, ah int
	}{
		{"uyvy odd", FormatYUV422UYVY, 5, 3, 12, 0, 3},
		{"pal1", FormatPal1, 9, 2, 2, 0, 2},
		{"pal4", FormatPal4, 3, 1, 2, 0, 1},
		{"420 odd", FormatYUV420Planar, 5, 5, 5, 3, 3},
		{"410", FormatYUV410Planar, 9, 6, 9, 3, 2},
		{"411", FormatYUV411Planar, 6, 6, 6, 2, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Describe(tt.format)
			if got := info.RowBytes(tt.w); got != tt.row {
				t.Errorf("RowBytes(%d) = %d, want %d", tt.w, got, tt.row)
			}
			if info.AuxBufs == 0 {
				return
			}
			aw, ah := info.AuxExtent(tt.w, tt.h)
			if aw != tt.aw || ah != tt.ah {
				t.Errorf("AuxExtent(%d, %d) = %d×%d, want %d×%d", tt.w, tt.h, aw, ah, tt.aw, tt.ah)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"XRGB8888", FormatXRGB8888},
		{"xrgb8888", FormatXRGB8888},
		{" RGB24 ", FormatRGB888},
		{"I420", FormatYUV420Planar},
		{"yuy2", FormatYUV422YUYV},
		{"UYVY", FormatYUV422UYVY},
		{"pal4", FormatPal4},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.name)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", tt.name, got, err, tt.want)
		}
	}

	for _, bad := range []string{"", "Null", "RGBA1010102"} {
		if _, err := ParseFormat(bad); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("ParseFormat(%q) error = %v, want ErrInvalidFormat", bad, err)
		}
	}
}

func TestFormatNamesRoundTrip(t *testing.T) {
	for _, f := range allFormats() {
		got, err := ParseFormat(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %v, %v", f.String(), got, err)
		}
	}
}
