package assets

import (
	"context"
	"image"
	"runtime"
	"sync"

	"mini-render/internal/graphics"
)

// DecodeJob asks for one image file to be decoded
type DecodeJob struct {
	Name string
	Path string
	// Result channel - will be sent the result when done
	ResultChan chan DecodeResult
}

// DecodeResult is a decoded image ready for upload on the GL goroutine
type DecodeResult struct {
	Name  string
	Image *image.RGBA
	Error error
}

// DecodePool decodes image files on worker goroutines. Decoding touches no
// GL state; uploads stay on the goroutine owning the context.
type DecodePool struct {
	jobQueue chan DecodeJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewDecodePool starts a pool. workers <= 0 uses GOMAXPROCS.
func NewDecodePool(workers int, queueSize int) *DecodePool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	ctx, cancel := context.WithCancel(context.Background())
	pool := &DecodePool{
		jobQueue: make(chan DecodeJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

// SubmitJob queues a job without blocking. It reports false if the queue is full.
func (p *DecodePool) SubmitJob(job DecodeJob) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// SubmitJobBlocking queues a job, waiting for room unless the pool shuts down
func (p *DecodePool) SubmitJobBlocking(job DecodeJob) {
	select {
	case p.jobQueue <- job:
	case <-p.ctx.Done():
	}
}

func (p *DecodePool) worker() {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			img, err := graphics.DecodeImage(job.Path)
			select {
			case job.ResultChan <- DecodeResult{Name: job.Name, Image: img, Error: err}:
			case <-p.ctx.Done():
				return
			}
		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers and waits for them to exit
func (p *DecodePool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// QueueLength returns the number of jobs waiting for a worker
func (p *DecodePool) QueueLength() int {
	return len(p.jobQueue)
}
