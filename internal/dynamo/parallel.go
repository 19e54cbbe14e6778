package dynamo

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Job is one independent integration inside an Ensemble.
type Job struct {
	Name   string
	Sim    *Simulator
	X0, Y0 float64
}

// Ensemble runs independent simulators concurrently. Each job must own its
// Simulator; simulators are not shared between goroutines.
type Ensemble struct {
	jobs  []Job
	names map[string]bool
	limit int
}

// NewEnsemble creates an ensemble running at most limit jobs at once;
// limit <= 0 means no limit.
func NewEnsemble(limit int) *Ensemble {
	return &Ensemble{names: make(map[string]bool), limit: limit}
}

func (e *Ensemble) Add(job Job) error {
	if e.names[job.Name] {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, job.Name)
	}
	e.names[job.Name] = true
	e.jobs = append(e.jobs, job)
	return nil
}

func (e *Ensemble) Len() int { return len(e.jobs) }

// Run executes every job with cfg. Results are returned in insertion order.
// The first failing job cancels the others.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.jobs))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i, job := range e.jobs {
		g.Go(func() error {
			res, err := job.Sim.Run(ctx, job.X0, job.Y0, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
