package pipeline

import (
	"errors"

	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
)

// ErrFinished is returned when cancelling a job that already reached a
// terminal status.
var ErrFinished = errors.New("job already finished")

// Pipeline runs document-to-audiobook conversions in the background and
// records their progress in the job store.
type Pipeline interface {
	// Start registers a new job for the uploaded filename and begins
	// processing asynchronously. It returns the job id immediately.
	Start(filename string, cfg job.SummaryConfig) string
	// Cancel aborts a running job. Unknown ids return job.ErrNotFound;
	// terminal jobs return ErrFinished.
	Cancel(jobID string) error
}
