package main

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/internal/rawio"
)

func isRaw(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".blit", ".raw":
		return true
	}
	return false
}

func readInput(path string) (*blit.Pixmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if isRaw(path) {
		return rawio.Read(bufio.NewReader(f))
	}
	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return blit.FromImage(img)
}

func writeOutput(path string, p *blit.Pixmap, b *blit.Blitter, compress bool, level int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)

	if isRaw(path) {
		opts := rawio.Options{Compress: compress}
		if level > 0 {
			opts.Level = zstd.EncoderLevelFromZstd(level)
		}
		if err := rawio.Write(w, p, opts); err != nil {
			return err
		}
		return w.Flush()
	}

	img, err := b.ToRGBA(p)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(w, img)
	case ".bmp":
		err = bmp.Encode(w, img)
	case ".tif", ".tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("unsupported output extension %q", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	return w.Flush()
}
