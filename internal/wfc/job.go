package wfc

import (
	"context"
	"errors"
	"time"
)

// Result is the outcome of a background solve. Exactly one of Solution and
// Err is meaningful.
type Result struct {
	Solution Solution
	Err      error
	Elapsed  time.Duration
}

// Job is a solve running on its own goroutine. Its result becomes visible
// only once the solve has finished.
type Job struct {
	cancel context.CancelFunc
	done   chan struct{}
	result Result
}

// Start runs solver.Solve in the background. A positive timeout bounds the
// solve; running out of time, on either the timeout or a deadline on ctx,
// yields a *Contradiction whose cause is context.DeadlineExceeded.
func Start(ctx context.Context, solver *Solver, timeout time.Duration) *Job {
	return StartFunc(ctx, timeout, solver.Solve)
}

// StartFunc is Start for an arbitrary solve routine, such as a retry loop.
func StartFunc(ctx context.Context, timeout time.Duration, run func(context.Context) (Solution, error)) *Job {
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	job := &Job{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(job.done)
		defer cancel()
		start := time.Now()
		solution, err := run(ctx)
		if errors.Is(err, context.DeadlineExceeded) {
			err = &Contradiction{At: NoCoord, Cause: context.DeadlineExceeded}
		}
		job.result = Result{Solution: solution, Err: err, Elapsed: time.Since(start)}
	}()
	return job
}

// Poll returns the result if the solve has finished.
func (j *Job) Poll() (Result, bool) {
	select {
	case <-j.done:
		return j.result, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the solve finishes or ctx ends.
func (j *Job) Wait(ctx context.Context) (Result, error) {
	select {
	case <-j.done:
		return j.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Cancel asks the solve to stop. The job still completes, with a context
// error as its result.
func (j *Job) Cancel() {
	j.cancel()
}

// Done is closed once the result is available.
func (j *Job) Done() <-chan struct{} {
	return j.done
}
