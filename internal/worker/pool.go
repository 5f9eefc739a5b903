package worker

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// JobFunc adapts a function to the Job interface
type JobFunc func(ctx context.Context) Result

// Execute calls f(ctx)
func (f JobFunc) Execute(ctx context.Context) Result {
	return f(ctx)
}

// Pool runs submitted jobs on at most workers goroutines.
// A failing job never cancels its siblings: every submitted job runs to
// completion and contributes exactly one Result.
type Pool struct {
	workers int
	ctx     context.Context
	group   errgroup.Group

	mu      sync.Mutex
	results []Result
	waited  bool
}

// NewPool creates a new worker pool with the specified number of workers.
// Jobs receive ctx.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	p := &Pool{
		workers: workers,
		ctx:     ctx,
		results: make([]Result, 0, workers),
	}
	p.group.SetLimit(workers)
	return p
}

// Workers returns the concurrency limit
func (p *Pool) Workers() int {
	return p.workers
}

// Submit schedules a job, blocking while all workers are busy.
// Submitting after Wait has returned is a programming error.
func (p *Pool) Submit(job Job) {
	p.mu.Lock()
	waited := p.waited
	p.mu.Unlock()
	if waited {
		panic("worker: Submit called after Wait")
	}

	p.group.Go(func() error {
		result := p.run(job)

		p.mu.Lock()
		p.results = append(p.results, result)
		p.mu.Unlock()
		return nil
	})
}

// run executes a job, turning a panic into an error result
func (p *Pool) run(job Job) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = PanicResult{Err: fmt.Errorf("worker: job panicked: %v", r)}
		}
	}()
	return job.Execute(p.ctx)
}

// Wait blocks until every submitted job has finished and returns the
// results in completion order
func (p *Pool) Wait() []Result {
	_ = p.group.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.waited = true
	return p.results
}

// PanicResult is reported for a job that panicked
type PanicResult struct {
	Err error
}

// GetError returns the recovered panic as an error
func (r PanicResult) GetError() error {
	return r.Err
}
