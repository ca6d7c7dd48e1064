package export

import (
	"context"

	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
)

// Exporter writes companion study guide documents for finished audiobooks.
type Exporter interface {
	// StudyGuide writes a DOCX study guide for the job's result and returns
	// the path it was written to.
	StudyGuide(ctx context.Context, jobID string, result *job.Result) (string, error)
}
