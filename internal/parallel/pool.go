// Package parallel provides the worker pool that spreads frame conversions
// across goroutines. A single blit never runs on more than one worker.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Job is one unit of work. worker is the index of the goroutine running it,
// in [0, Workers()), so jobs can index per-worker scratch without locking.
type Job func(worker int)

// WorkerPool is a fixed set of goroutines with per-worker queues.
//
// Jobs are dealt round-robin; an idle worker steals from the other queues
// before blocking, which keeps workers busy when frames differ in cost.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan Job
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// mu orders queuing against Close: ExecuteAll holds it shared while
	// sending, Close holds it exclusively while closing done.
	mu sync.RWMutex
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan Job, workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan Job, queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(id)
			return
		case job := <-own:
			job(id)
		default:
			if job := p.steal(id); job != nil {
				job(id)
				continue
			}
			select {
			case <-p.done:
				p.drain(id)
				return
			case job := <-own:
				job(id)
			}
		}
	}
}

// drain runs whatever is left in the worker's own queue.
func (p *WorkerPool) drain(id int) {
	for {
		select {
		case job := <-p.queues[id]:
			job(id)
		default:
			return
		}
	}
}

// steal takes one job from another worker's queue, or returns nil.
func (p *WorkerPool) steal(id int) Job {
	for i := 1; i < p.workers; i++ {
		select {
		case job := <-p.queues[(id+i)%p.workers]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll runs every job and waits for all of them. A call that starts
// queuing before Close runs all of its jobs; a call made after Close runs
// none. ExecuteAll reports how many ran.
func (p *WorkerPool) ExecuteAll(jobs []Job) int {
	if len(jobs) == 0 {
		return 0
	}

	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		return 0
	}
	var wg sync.WaitGroup
	var ran atomic.Int64
	wg.Add(len(jobs))
	for i, job := range jobs {
		p.queues[i%p.workers] <- func(worker int) {
			defer wg.Done()
			job(worker)
			ran.Add(1)
		}
	}
	p.mu.RUnlock()

	wg.Wait()
	return int(ran.Load())
}

// Close stops accepting work, finishes queued jobs and stops the workers.
// It waits for ExecuteAll calls that are still queuing. Close is safe to
// call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
