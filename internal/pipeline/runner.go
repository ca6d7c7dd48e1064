package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
)

func (p *implPipeline) Start(filename string, cfg job.SummaryConfig) string {
	id := uuid.NewString()

	p.store.Set(job.Job{
		ID:        id,
		Filename:  filename,
		Status:    job.StatusParsing,
		Progress:  "Waiting to start",
		CreatedAt: time.Now(),
	})

	ctx, cancel := context.WithCancel(p.baseCtx)
	p.mu.Lock()
	p.cancels[id] = cancel
	p.mu.Unlock()

	go p.supervise(ctx, cancel, id, filename, cfg)

	return id
}

func (p *implPipeline) Cancel(jobID string) error {
	j, err := p.store.Get(jobID)
	if err != nil {
		return err
	}
	if j.Status.IsTerminal() {
		return ErrFinished
	}

	p.mu.Lock()
	cancel, ok := p.cancels[jobID]
	p.mu.Unlock()
	if ok {
		cancel()
	}
	return nil
}

// supervise wraps one job run with slot acquisition, panic recovery and
// cancel-handle cleanup. A failed run only ever marks its own job.
func (p *implPipeline) supervise(ctx context.Context, cancel context.CancelFunc, id, filename string, cfg job.SummaryConfig) {
	defer func() {
		cancel()
		p.mu.Lock()
		delete(p.cancels, id)
		p.mu.Unlock()
	}()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error(ctx, "Job %s panicked: %v", id, r)
			p.fail(ctx, id, fmt.Errorf("internal error: %v", r))
		}
	}()

	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		p.fail(ctx, id, ctx.Err())
		return
	}
	defer func() { <-p.sem }()

	if err := p.run(ctx, id, filename, cfg); err != nil {
		p.fail(ctx, id, err)
	}
}

func (p *implPipeline) fail(ctx context.Context, id string, err error) {
	msg := err.Error()
	if ctx.Err() == context.Canceled {
		msg = "Job cancelled"
	}
	p.logger.Error(ctx, "Job %s failed: %v", id, err)
	p.store.Update(id, func(j *job.Job) {
		j.Status = job.StatusError
		j.Error = msg
		j.Progress = ""
		j.Result = nil
	})
}

func (p *implPipeline) setStage(id string, status job.Status, progress string) {
	p.store.Update(id, func(j *job.Job) {
		j.Status = status
		j.Progress = progress
	})
}

func (p *implPipeline) setProgress(id, progress string) {
	p.store.Update(id, func(j *job.Job) {
		j.Progress = progress
	})
}
