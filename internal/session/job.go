package session

import (
	"context"

	"github.com/nurpe/quote-studio/internal/styles"
)

// Job tracks one generation request.
type Job struct {
	Seq   uint64
	Style styles.Name

	done chan struct{}
	blob *Blob
	err  error
}

func newJob(seq uint64, style styles.Name) *Job {
	return &Job{Seq: seq, Style: style, done: make(chan struct{})}
}

func (j *Job) finish(blob *Blob, err error) {
	j.blob = blob
	j.err = err
	close(j.done)
}

func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job resolves or ctx ends. A superseded job
// resolves with ErrSuperseded.
func (j *Job) Wait(ctx context.Context) (*Blob, error) {
	select {
	case <-j.done:
		return j.blob, j.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
