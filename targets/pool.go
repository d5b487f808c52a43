package targets

import (
	"fmt"
	"sync"

	"github.com/celldet/go-cpn"
)

// Job is one label map submitted to a Pool
type Job struct {
	// ID is echoed back in the matching Result
	ID int
	// Labels is the label map to generate targets for
	Labels *cpn.LabelMap
}

// Result is the outcome of one Job
type Result struct {
	ID     int
	Bundle *Bundle
	Err    error
}

// Pool runs target generation across multiple workers.  Each worker owns
// its Generator so no synchronization is needed beyond the job and result
// channels.  Results arrive in completion order, not submission order
type Pool struct {
	jobs    chan Job
	results chan Result
	wg      sync.WaitGroup
	close   sync.Once
}

// NewPool creates a worker pool of the given size, all workers sharing the
// same immutable configuration
func NewPool(size int, cfg cpn.Config) (*Pool, error) {

	if size <= 0 {
		return nil, fmt.Errorf("%w: pool size must be positive, got %d",
			cpn.ErrInvalidConfig, size)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pool{
		jobs:    make(chan Job, size),
		results: make(chan Result, size),
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker(&Generator{cfg: cfg})
	}

	return p, nil
}

// worker consumes jobs until the pool is closed
func (p *Pool) worker(g *Generator) {

	defer p.wg.Done()

	for job := range p.jobs {
		b, err := g.Generate(job.Labels)
		p.results <- Result{ID: job.ID, Bundle: b, Err: err}
	}
}

// Submit queues a job.  Submit blocks when all workers are busy and the
// job buffer is full, so a producer must drain Results concurrently
func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// Results returns the channel completed bundles are delivered on
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Close stops accepting jobs, waits for in-flight generation to finish and
// closes the results channel
func (p *Pool) Close() {
	p.close.Do(func() {
		close(p.jobs)
		p.wg.Wait()
		close(p.results)
	})
}
