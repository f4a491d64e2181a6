// Command pixconv converts images and raw frames between pixel formats.
//
// The input is decoded into its closest native format, pushed through a
// chain of formats (and an optional resize), and written either as an
// image or as a raw frame in the last format of the chain.
//
// Usage:
//
//	pixconv -i photo.png -o photo.blit --via UYVY,YUV420P --zstd
//	pixconv -i photo.blit -o photo.png --via XVYU --size 320x240 --filter bilinear
//	pixconv -i photo.png -o out.bmp --via RGB565 --frames 64 -v
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/pipeline"
)

type config struct {
	input, output string
	via           []string
	size          string
	filter        string
	tier          string
	zstd          bool
	level         int
	frames        int
	workers       int
	texture       bool
	verbose       bool
}

func main() {
	var cfg config
	pflag.StringVarP(&cfg.input, "input", "i", "", "input file (png, jpeg, gif, bmp, tiff, webp or .blit)")
	pflag.StringVarP(&cfg.output, "output", "o", "", "output file (png, bmp, tiff or .blit)")
	pflag.StringSliceVar(&cfg.via, "via", nil, "comma-separated formats to convert through, in order")
	pflag.StringVar(&cfg.size, "size", "", "resize to WxH before the last conversion")
	pflag.StringVar(&cfg.filter, "filter", "nearest", "resize filter: nearest or bilinear")
	pflag.StringVar(&cfg.tier, "tier", "", "kernel tier: reference or wide (default: detect)")
	pflag.BoolVar(&cfg.zstd, "zstd", false, "compress .blit output with zstd")
	pflag.IntVar(&cfg.level, "level", 0, "zstd level 1-22 (default: encoder default)")
	pflag.IntVar(&cfg.frames, "frames", 1, "convert the frame this many times and report throughput")
	pflag.IntVar(&cfg.workers, "workers", 0, "frames converted in parallel (default: GOMAXPROCS)")
	pflag.BoolVar(&cfg.texture, "texture", false, "print the GPU texture the result would upload as")
	pflag.BoolVarP(&cfg.verbose, "verbose", "v", false, "log conversion routing")
	pflag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	blit.SetLogger(logger)

	if cfg.input == "" || cfg.output == "" {
		fmt.Fprintln(os.Stderr, "usage: pixconv -i INPUT -o OUTPUT [flags]")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("pixconv failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	b := blit.Default()
	if cfg.tier != "" {
		t, err := blit.ParseTier(cfg.tier)
		if err != nil {
			return err
		}
		b = blit.NewBlitter(blit.WithTier(t))
	}

	src, err := readInput(cfg.input)
	if err != nil {
		return err
	}
	logger.Info("input", "path", cfg.input, "format", src.Format, "w", src.W, "h", src.H)

	stages, err := buildStages(cfg, src.Format, isRaw(cfg.output))
	if err != nil {
		return err
	}

	conv := pipeline.New(
		pipeline.WithBlitter(b),
		pipeline.WithWorkers(cfg.workers),
		pipeline.WithLogger(logger),
	)
	defer conv.Close()

	batch := make([]*blit.Pixmap, max(cfg.frames, 1))
	for i := range batch {
		batch[i] = src
	}

	start := time.Now()
	out, err := conv.Convert(ctx, batch, stages)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}
	defer conv.Release(out[1:])
	res := out[0]

	if cfg.frames > 1 {
		report(len(batch), res, elapsed, b.Tier(), conv.Workers())
	}
	if cfg.texture {
		if err := printTexture(b, res, cfg.output); err != nil {
			return err
		}
	}

	if err := writeOutput(cfg.output, res, b, cfg.zstd, cfg.level); err != nil {
		return err
	}
	logger.Info("output", "path", cfg.output, "format", res.Format, "w", res.W, "h", res.H)
	return nil
}

// buildStages turns the --via chain into pipeline stages. Image outputs end
// in XRGB8888; raw outputs end in the last format named. The resize belongs
// to the last stage; formats the filter cannot resize (planar YUV from
// JPEG, paletted GIF frames) are converted before it.
func buildStages(cfg config, srcFormat blit.Format, raw bool) ([]pipeline.Stage, error) {
	var stages []pipeline.Stage
	for _, name := range cfg.via {
		f, err := blit.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		stages = append(stages, pipeline.Stage{Format: f})
	}
	if !raw {
		stages = append(stages, pipeline.Stage{Format: blit.FormatXRGB8888})
	}
	if len(stages) == 0 {
		stages = append(stages, pipeline.Stage{Format: srcFormat})
	}

	if cfg.size != "" {
		w, h, err := parseSize(cfg.size)
		if err != nil {
			return nil, err
		}
		filter, err := parseFilter(cfg.filter)
		if err != nil {
			return nil, err
		}
		last := &stages[len(stages)-1]
		last.W, last.H, last.Filter = w, h, filter
	}
	return stages, nil
}

func parseSize(s string) (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	return w, h, nil
}

func parseFilter(s string) (pipeline.Filter, error) {
	switch strings.ToLower(s) {
	case "nearest", "":
		return pipeline.FilterNearest, nil
	case "bilinear", "linear":
		return pipeline.FilterBilinear, nil
	default:
		return 0, fmt.Errorf("unknown filter %q", s)
	}
}

func report(frames int, res *blit.Pixmap, elapsed time.Duration, tier blit.Tier, workers int) {
	p := message.NewPrinter(language.English)
	pixels := int64(frames) * int64(res.W) * int64(res.H)
	rate := float64(pixels) / elapsed.Seconds() / 1e6
	p.Printf("%d frames, %d pixels in %v (%.1f Mpx/s, %v tier, %d workers)\n",
		frames, pixels, elapsed.Round(time.Microsecond), rate, tier, workers)
}

func printTexture(b *blit.Blitter, res *blit.Pixmap, label string) error {
	frame, desc, err := b.PrepareUpload(res, blit.NewPool(1), label)
	if err != nil {
		return err
	}
	p := message.NewPrinter(language.English)
	p.Printf("texture %q: %dx%d %v (upload from %v, %d bytes)\n",
		desc.Label, desc.Size.Width, desc.Size.Height, desc.Format,
		frame.Format, len(frame.Planes[0].Data))
	return nil
}
