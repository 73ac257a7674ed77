package systems

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")

/**
 * @brief Runs load-time work on a pool of goroutines. The frame loop
 * never submits jobs; systems submit a batch and Wait for it before the
 * results are used.
 */
type JobSystem struct {
	pool *ants.Pool
	wg   sync.WaitGroup

	mutex  sync.Mutex
	closed bool
}

// NewJobSystem starts a pool of numWorkers goroutines. Zero picks one per CPU.
func NewJobSystem(numWorkers int) (*JobSystem, error) {
	if numWorkers == 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers < 0 {
		return nil, ErrNoWorkers
	}

	pool, err := ants.NewPool(
		numWorkers,
		ants.WithPreAlloc(true),
		ants.WithPanicHandler(func(p interface{}) {
			core.LogError("job callback panicked: %v", p)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job pool: %w", err)
	}
	return &JobSystem{pool: pool}, nil
}

/**
 * @brief Submits the provided job to be queued for execution. It blocks
 * while every worker is busy.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt metadata.JobTask) error {
	if jt.OnStart == nil {
		return fmt.Errorf("job %q has no entry point: %w", jt.Name, core.ErrInvalidInput)
	}

	js.mutex.Lock()
	if js.closed {
		js.mutex.Unlock()
		return core.ErrPoolClosed
	}
	js.wg.Add(1)
	js.mutex.Unlock()

	err := js.pool.Submit(func() {
		defer js.wg.Done()
		if err := runJob(jt); err != nil {
			core.LogError("job %s failed: %s", jt.Name, err)
			if jt.OnFailure != nil {
				jt.OnFailure(err)
			}
			return
		}
		if jt.OnComplete != nil {
			jt.OnComplete()
		}
	})
	if err != nil {
		js.wg.Done()
		if errors.Is(err, ants.ErrPoolClosed) {
			return core.ErrPoolClosed
		}
		return err
	}
	return nil
}

func runJob(jt metadata.JobTask) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("job panicked: %v", p)
		}
	}()
	return jt.OnStart()
}

// Wait blocks until every submitted job has finished.
func (js *JobSystem) Wait() {
	js.wg.Wait()
}

// Running is the number of busy workers.
func (js *JobSystem) Running() int {
	return js.pool.Running()
}

/**
 * @brief Waits for the queued jobs and shuts the job system down.
 */
func (js *JobSystem) Shutdown() error {
	js.mutex.Lock()
	if js.closed {
		js.mutex.Unlock()
		return nil
	}
	js.closed = true
	js.mutex.Unlock()

	js.wg.Wait()
	js.pool.Release()
	return nil
}

// RunAll runs fn for every input on the job system and returns the results
// in input order. The first failure, in input order, is returned once all
// jobs are done.
func RunAll[In, Out any](js *JobSystem, name string, inputs []In, fn func(In) (Out, error)) ([]Out, error) {
	results := make([]Out, len(inputs))
	errs := make([]error, len(inputs))

	var batch sync.WaitGroup
	for i, in := range inputs {
		batch.Add(1)
		err := js.Submit(metadata.JobTask{
			Name: fmt.Sprintf("%s[%d]", name, i),
			OnStart: func() error {
				out, err := fn(in)
				if err != nil {
					return err
				}
				results[i] = out
				return nil
			},
			OnComplete: func() { batch.Done() },
			OnFailure: func(err error) {
				errs[i] = err
				batch.Done()
			},
		})
		if err != nil {
			batch.Done()
			errs[i] = err
		}
	}
	batch.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
	}
	return results, nil
}
