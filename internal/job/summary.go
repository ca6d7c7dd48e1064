package job

// SummaryState distinguishes the three possible fates of a page summary.
// Downstream logic branches on the state, never on placeholder text.
type SummaryState int

const (
	// SummaryNotAttempted means the page was never sent for summarization.
	SummaryNotAttempted SummaryState = iota
	// SummaryFailed means summarization was attempted and gave up after retries.
	SummaryFailed
	// SummaryGenerated means a real summary was produced.
	SummaryGenerated
)

// Display texts shown to clients in place of a summary. Kept distinct so a
// reader of the result can tell "never attempted" apart from "failed".
const (
	placeholderNotAttempted = "No summary generated for this page."
	placeholderFailed       = "Summary unavailable for this page."
	placeholderFullFailed   = "Full document summary unavailable."
)

// PageSummary is the tagged result of summarizing one page.
type PageSummary struct {
	State SummaryState
	Text  string
}

// Generated reports whether a real summary exists for the page.
func (p PageSummary) Generated() bool {
	return p.State == SummaryGenerated
}

// Display returns the client-facing text for the summary, substituting the
// appropriate placeholder when none was generated.
func (p PageSummary) Display() string {
	switch p.State {
	case SummaryGenerated:
		return p.Text
	case SummaryFailed:
		return placeholderFailed
	default:
		return placeholderNotAttempted
	}
}

// FailedFullSummaryText is the placeholder recorded when the full-document
// summary request fails.
func FailedFullSummaryText() string {
	return placeholderFullFailed
}
