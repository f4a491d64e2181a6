// Package pipeline converts batches of video frames concurrently.
//
// A Converter applies a chain of stages (format conversions and resizes)
// to every frame of a batch. Frames are spread across a work-stealing
// worker pool; each frame is converted by exactly one worker, so a single
// blit never runs on more than one goroutine.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/internal/parallel"
)

// ErrNoRoute is returned when a stage has no conversion path.
var ErrNoRoute = errors.New("pipeline: no conversion path")

// Filter selects the resampling used by resize stages.
type Filter uint8

const (
	// FilterNearest samples the nearest source pixel.
	FilterNearest Filter = iota

	// FilterBilinear blends the four nearest source pixels.
	FilterBilinear
)

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterBilinear:
		return "bilinear"
	default:
		return fmt.Sprintf("Filter(%d)", uint8(f))
	}
}

// Stage is one step of a conversion chain. A stage with a zero size keeps
// the frame size and converts to Format. A stage with a size resizes
// first, then converts; formats the filter cannot resize are converted
// before the resize.
type Stage struct {
	Format blit.Format
	W, H   int
	Filter Filter
}

// Stats counts converted and failed frames over the life of a Converter.
type Stats struct {
	Frames int64
	Failed int64
}

// Converter runs stage chains over batches of frames.
type Converter struct {
	blitter *blit.Blitter
	workers *parallel.WorkerPool
	frames  *blit.Pool
	logger  *slog.Logger

	converted atomic.Int64
	failed    atomic.Int64
}

// New creates a Converter and starts its workers. Call Close when done.
func New(opts ...Option) *Converter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.blitter == nil {
		o.blitter = blit.Default()
	}
	return &Converter{
		blitter: o.blitter,
		workers: parallel.NewWorkerPool(o.workers),
		frames:  blit.NewPool(o.poolSize),
		logger:  o.logger,
	}
}

// Close stops the workers. Frames returned by Convert remain valid.
func (c *Converter) Close() {
	c.workers.Close()
}

// Workers returns the number of frames converted in parallel.
func (c *Converter) Workers() int {
	return c.workers.Workers()
}

// Stats returns the frame counters.
func (c *Converter) Stats() Stats {
	return Stats{Frames: c.converted.Load(), Failed: c.failed.Load()}
}

func (c *Converter) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return blit.Logger()
}

// Blit converts src[i] into dst[i] for every i with one Blt per frame.
// It returns the joined errors of the frames that failed.
func (c *Converter) Blit(ctx context.Context, dst, src []*blit.Pixmap) error {
	if len(dst) != len(src) {
		return fmt.Errorf("pipeline: %d destinations for %d sources", len(dst), len(src))
	}
	errs := make([]error, len(src))
	jobs := make([]parallel.Job, len(src))
	for i := range src {
		jobs[i] = func(int) {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			errs[i] = c.count(i, c.blit(dst[i], src[i]))
		}
	}
	c.run(jobs)
	return errors.Join(errs...)
}

// Convert runs stages over every frame and returns the converted frames in
// order. Intermediate frames come from the converter's pool; the returned
// frames may be handed back with Release. On error the successfully
// converted frames are still returned, failed slots are nil.
func (c *Converter) Convert(ctx context.Context, src []*blit.Pixmap, stages []Stage) ([]*blit.Pixmap, error) {
	out := make([]*blit.Pixmap, len(src))
	errs := make([]error, len(src))
	jobs := make([]parallel.Job, len(src))
	for i := range src {
		jobs[i] = func(int) {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			out[i], errs[i] = c.chain(src[i], stages)
			errs[i] = c.count(i, errs[i])
		}
	}
	c.run(jobs)
	return out, errors.Join(errs...)
}

// Release returns frames produced by Convert to the converter's pool.
func (c *Converter) Release(frames []*blit.Pixmap) {
	for _, f := range frames {
		c.frames.Put(f)
	}
}

func (c *Converter) run(jobs []parallel.Job) {
	if ran := c.workers.ExecuteAll(jobs); ran != len(jobs) {
		c.log().Warn("pipeline: converter closed during batch", "jobs", len(jobs), "ran", ran)
	}
}

func (c *Converter) count(frame int, err error) error {
	if err != nil {
		c.failed.Add(1)
		return fmt.Errorf("frame %d: %w", frame, err)
	}
	c.converted.Add(1)
	return nil
}

func (c *Converter) blit(dst, src *blit.Pixmap) error {
	if !c.blitter.Blt(dst, src) {
		return fmt.Errorf("%w: %v to %v", ErrNoRoute, src.Format, dst.Format)
	}
	return nil
}

// chain applies stages to one frame. The source frame is never modified
// and never returned; every frame it allocates is either returned or put
// back into the pool.
//
// A resize runs in the current format when the filter supports it.
// Otherwise the frame is converted first, to the stage format if that one
// can be resized, else to the upload format of its color family
// (XVYU or XRGB8888).
func (c *Converter) chain(src *blit.Pixmap, stages []Stage) (*blit.Pixmap, error) {
	cur := src
	release := func(p *blit.Pixmap) {
		if p != src {
			c.frames.Put(p)
		}
	}
	step := func(next *blit.Pixmap, err error) error {
		if err != nil {
			release(cur)
			return err
		}
		release(cur)
		cur = next
		return nil
	}

	for _, st := range stages {
		if st.W > 0 && st.H > 0 && (st.W != cur.W || st.H != cur.H) {
			if !canStretch(cur.Format, st.Filter) {
				via := st.Format
				if !canStretch(via, st.Filter) {
					via = blit.UploadFormat(cur.Format)
				}
				c.log().Debug("pipeline: converting before resize",
					"from", cur.Format, "via", via, "filter", st.Filter)
				if err := step(c.convert(cur, via)); err != nil {
					return nil, err
				}
			}
			if err := step(c.resize(cur, st.W, st.H, st.Filter)); err != nil {
				return nil, err
			}
		}
		if st.Format != cur.Format {
			if err := step(c.convert(cur, st.Format)); err != nil {
				return nil, err
			}
		}
	}

	if cur == src {
		// The result must not alias the caller's frame.
		dup, err := c.convert(src, src.Format)
		if err != nil {
			return nil, err
		}
		cur = dup
	}
	return cur, nil
}

// convert blits cur into a new pooled frame of format f.
func (c *Converter) convert(cur *blit.Pixmap, f blit.Format) (*blit.Pixmap, error) {
	next, err := c.frames.Get(cur.W, cur.H, f)
	if err != nil {
		return nil, err
	}
	if f == cur.Format {
		copy(next.Palette, cur.Palette)
	}
	if err := c.blit(next, cur); err != nil {
		c.frames.Put(next)
		return nil, err
	}
	return next, nil
}

// resize stretches cur into a new pooled frame of the same format.
func (c *Converter) resize(cur *blit.Pixmap, w, h int, f Filter) (*blit.Pixmap, error) {
	next, err := c.frames.Get(w, h, cur.Format)
	if err != nil {
		return nil, err
	}
	copy(next.Palette, cur.Palette)
	if !c.stretch(next, cur, f) {
		c.frames.Put(next)
		return nil, fmt.Errorf("%w: %v stretch of %v", ErrNoRoute, f, cur.Format)
	}
	return next, nil
}

func canStretch(f blit.Format, filter Filter) bool {
	if filter == FilterBilinear {
		return blit.CanStretchBilinear(f)
	}
	return blit.CanStretchNearest(f)
}

func (c *Converter) stretch(dst, src *blit.Pixmap, f Filter) bool {
	if f == FilterBilinear {
		return c.blitter.StretchBilinear(dst, src)
	}
	return c.blitter.StretchNearest(dst, src)
}
