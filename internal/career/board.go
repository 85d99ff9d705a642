package career

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/khalari/khalari/internal/store"
)

// ErrUnknownJob is returned for a job ID not on the board.
var ErrUnknownJob = errors.New("unknown job")

// Lookup finds a job by ID.
func Lookup(id string) (Job, bool) {
	for _, j := range Catalogue {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}

// Board tracks applications against the catalogue.
type Board struct {
	events store.EventRepo
	logger *zap.Logger
}

// NewBoard creates a Board. logger may be nil.
func NewBoard(events store.EventRepo, logger *zap.Logger) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Board{events: events, logger: logger.Named("career")}
}

// Apply records an application. Applying twice is a no-op.
func (b *Board) Apply(ctx context.Context, id string) (Job, error) {
	job, ok := Lookup(id)
	if !ok {
		return Job{}, fmt.Errorf("%w: %q", ErrUnknownJob, id)
	}
	if err := b.events.AppendJobApplication(ctx, id); err != nil {
		return Job{}, err
	}
	b.logger.Info("applied for job", zap.String("job_id", id))
	return job, nil
}

// Applied returns the jobs applied for, most recent first.
func (b *Board) Applied(ctx context.Context) ([]Job, error) {
	recs, err := b.events.QueryJobApplications(ctx, store.QueryOpts{})
	if err != nil {
		return nil, err
	}
	jobs := make([]Job, 0, len(recs))
	for _, r := range recs {
		if j, ok := Lookup(r.JobID); ok {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

// Open returns the jobs not applied for yet.
func (b *Board) Open(ctx context.Context) ([]Job, error) {
	applied, err := b.Applied(ctx)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(applied))
	for _, j := range applied {
		done[j.ID] = true
	}
	var out []Job
	for _, j := range Catalogue {
		if !done[j.ID] {
			out = append(out, j)
		}
	}
	return out, nil
}
