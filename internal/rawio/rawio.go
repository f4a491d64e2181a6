// Package rawio reads and writes single frames in a raw container: a short
// header followed by the tightly packed planes and the palette, optionally
// zstd-compressed.
package rawio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/blit"
)

const (
	magic   = "BLTF"
	version = 1

	flagZstd = 1 << 0

	// MaxDimension bounds the width and height accepted by Read.
	MaxDimension = 1 << 16

	// MaxPixels bounds width*height, so a header cannot make Read allocate
	// more than a few hundred MiB before any payload arrives.
	MaxPixels = 1 << 26
)

var (
	// ErrInvalidMagic is returned when the stream is not a raw frame.
	ErrInvalidMagic = errors.New("rawio: invalid magic")

	// ErrUnsupportedVersion is returned for headers written by a newer version.
	ErrUnsupportedVersion = errors.New("rawio: unsupported version")

	// ErrCorruptHeader is returned for out-of-range header fields.
	ErrCorruptHeader = errors.New("rawio: corrupt header")
)

// header is the fixed-size frame header, big-endian on the wire.
type header struct {
	Magic    [4]byte
	Version  uint8
	Flags    uint8
	Format   uint8
	_        uint8
	Width    uint32
	Height   uint32
	Palette  uint16
	Reserved uint16
}

// Options controls how frames are written.
type Options struct {
	// Compress wraps the payload in a zstd stream.
	Compress bool

	// Level is the zstd encoder level. Zero selects the default.
	Level zstd.EncoderLevel
}

// Write encodes p to w. Rows are read through each plane's pitch, so views
// from Offset or FlipV are written as ordinary top-down frames.
func Write(w io.Writer, p *blit.Pixmap, opts Options) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Format == blit.FormatNull {
		return fmt.Errorf("%w: %v", blit.ErrInvalidFormat, p.Format)
	}

	pal := p.Palette[:min(len(p.Palette), blit.Describe(p.Format).PaletteSize)]
	h := header{
		Version: version,
		Format:  uint8(p.Format),
		Width:   uint32(p.W),
		Height:  uint32(p.H),
		Palette: uint16(len(pal)),
	}
	copy(h.Magic[:], magic)
	if opts.Compress {
		h.Flags |= flagZstd
	}
	if err := binary.Write(w, binary.BigEndian, &h); err != nil {
		return err
	}

	if !opts.Compress {
		bw := bufio.NewWriter(w)
		if err := writePayload(bw, p, pal); err != nil {
			return err
		}
		return bw.Flush()
	}

	zopts := []zstd.EOption{zstd.WithEncoderConcurrency(runtime.NumCPU())}
	if opts.Level != 0 {
		zopts = append(zopts, zstd.WithEncoderLevel(opts.Level))
	}
	enc, err := zstd.NewWriter(w, zopts...)
	if err != nil {
		return err
	}
	if err := writePayload(enc, p, pal); err != nil {
		enc.Close()
		return fmt.Errorf("zstd encode: %w", err)
	}
	return enc.Close()
}

func writePayload(w io.Writer, p *blit.Pixmap, pal []uint32) error {
	for i, ext := range extents(p) {
		for y := range ext.rows {
			if _, err := w.Write(p.Row(i, y)[:ext.rowBytes]); err != nil {
				return err
			}
		}
	}
	if len(pal) > 0 {
		buf := make([]byte, 4*len(pal))
		for i, c := range pal {
			binary.BigEndian.PutUint32(buf[4*i:], c)
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// Read decodes one frame from r into a newly allocated, tightly packed pixmap.
func Read(r io.Reader) (*blit.Pixmap, error) {
	var h header
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return nil, err
	}
	if string(h.Magic[:]) != magic {
		return nil, ErrInvalidMagic
	}
	if h.Version != version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if h.Width == 0 || h.Height == 0 || h.Width > MaxDimension || h.Height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrCorruptHeader, h.Width, h.Height)
	}
	if uint64(h.Width)*uint64(h.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrCorruptHeader, h.Width, h.Height, MaxPixels)
	}

	f := blit.Format(h.Format)
	p, err := blit.New(int(h.Width), int(h.Height), f)
	if err != nil {
		return nil, err
	}
	if int(h.Palette) > len(p.Palette) {
		return nil, fmt.Errorf("%w: %d palette entries for %v", ErrCorruptHeader, h.Palette, f)
	}

	if h.Flags&flagZstd == 0 {
		return p, readPayload(bufio.NewReader(r), p, int(h.Palette))
	}
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	if err := readPayload(dec, p, int(h.Palette)); err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return p, nil
}

func readPayload(r io.Reader, p *blit.Pixmap, palette int) error {
	// New packs planes tightly, so each plane is one contiguous read.
	for i := range extents(p) {
		if _, err := io.ReadFull(r, p.Planes[i].Data); err != nil {
			return fmt.Errorf("plane %d: %w", i, err)
		}
	}
	if palette == 0 {
		return nil
	}
	buf := make([]byte, 4*palette)
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	for i := range palette {
		p.Palette[i] = binary.BigEndian.Uint32(buf[4*i:])
	}
	return nil
}

type extent struct {
	rowBytes, rows int
}

// extents lists the packed row size and row count of every plane in use.
func extents(p *blit.Pixmap) []extent {
	info := blit.Describe(p.Format)
	out := []extent{{info.RowBytes(p.W), info.Rows(p.H)}}
	aw, ah := info.AuxExtent(p.W, p.H)
	for range info.AuxBufs {
		out = append(out, extent{aw * info.AuxSize, ah})
	}
	return out
}
