package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
)

// Result maps page index (0-based, within the filtered page slice) to its
// summary state, plus the optional full-document summary.
type Result struct {
	Pages map[int]job.PageSummary
	Full  job.PageSummary
}

// Summarizer drives rate-limited text generation over page windows.
type Summarizer interface {
	Summarize(ctx context.Context, pages []job.Page, cfg job.SummaryConfig, onProgress func(string)) (*Result, error)
}
