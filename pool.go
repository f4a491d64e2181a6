package blit

import "sync"

// Pool is a thread-safe pool for reusing pixmaps.
//
// Pool groups pixmaps by dimensions and format so identically sized frames
// can be reused across a video stream without reallocating planes.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Pixmap
	maxSize int // max pixmaps per bucket
}

// poolKey identifies a bucket of identical frame specifications.
type poolKey struct {
	width  int
	height int
	format Format
}

// NewPool creates a pool retaining at most maxPerBucket pixmaps of each
// size and format. A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Pixmap),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed pixmap of the given size and format, reusing a
// pooled one when available.
func (p *Pool) Get(width, height int, format Format) (*Pixmap, error) {
	key := poolKey{width: width, height: height, format: format}

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		pm := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		pm.clear()
		return pm, nil
	}
	p.mu.Unlock()

	return New(width, height, format)
}

// Put returns a pixmap obtained from Get to the pool. Pixmaps that do not
// own tightly packed planes (views from Offset or FlipV) must not be put.
// If pm is nil or its bucket is full, it is discarded.
func (p *Pool) Put(pm *Pixmap) {
	if pm == nil {
		return
	}
	key := poolKey{width: pm.W, height: pm.H, format: pm.Format}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, pm)
}

// clear zeroes every plane and the palette.
func (p *Pixmap) clear() {
	for i := range p.Planes {
		clear(p.Planes[i].Data)
	}
	clear(p.Palette)
}

// defaultPool backs scratch frames inside the package.
var defaultPool = NewPool(8)
