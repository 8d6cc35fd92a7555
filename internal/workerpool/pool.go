// Package workerpool fans a sweep's transfer list out to the external
// collaborators concurrently, bounded by a fixed-size ants.Pool.
package workerpool

import (
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Dispatcher runs a fixed number of collaborator dispatch jobs
// concurrently and collects any errors they return.
type Dispatcher struct {
	pool   *ants.Pool
	logger *zap.Logger
}

// New builds a Dispatcher backed by a pool of size workers.
func New(size int, logger *zap.Logger) (*Dispatcher, error) {
	pool, err := ants.NewPool(size, ants.WithPreAlloc(true), ants.WithPanicHandler(func(rec interface{}) {
		logger.Error("collaborator dispatch panicked", zap.Any("recover", rec))
	}))
	if err != nil {
		return nil, err
	}
	return &Dispatcher{pool: pool, logger: logger}, nil
}

// Release frees the underlying pool.
func (d *Dispatcher) Release() { d.pool.Release() }

// Job is one collaborator dispatch unit; name identifies it in error
// reporting.
type Job struct {
	Name string
	Run  func() error
}

// RunAll submits every job to the pool and waits for all to finish,
// returning a map of job name to error for any job that failed.
func (d *Dispatcher) RunAll(jobs []Job) map[string]error {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		errors = make(map[string]error)
	)

	for _, j := range jobs {
		j := j
		wg.Add(1)
		submitErr := d.pool.Submit(func() {
			defer wg.Done()
			if err := j.Run(); err != nil {
				mu.Lock()
				errors[j.Name] = err
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errors[j.Name] = submitErr
			mu.Unlock()
		}
	}

	wg.Wait()
	return errors
}
