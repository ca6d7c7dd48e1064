package job

import "time"

// Status is the lifecycle stage of an audiobook job.
type Status string

const (
	StatusParsing         Status = "parsing"
	StatusSummarizing     Status = "summarizing"
	StatusGeneratingAudio Status = "generating_audio"
	StatusComplete        Status = "complete"
	StatusError           Status = "error"
)

// IsTerminal reports whether the status ends the job's lifecycle.
func (s Status) IsTerminal() bool {
	return s == StatusComplete || s == StatusError
}

// Page is one unit of extracted source content.
type Page struct {
	PageNumber int
	Content    string
}

// Flashcard is a question/answer pair; slice order is display order.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PageResult pairs page content with its display summary in the final payload.
type PageResult struct {
	Content string `json:"content"`
	Summary string `json:"summary"`
}

// Result holds everything a completed job exposes to the client.
type Result struct {
	AudioURL            string       `json:"audioUrl"`
	TotalPages          int          `json:"totalPages"`
	SummariesGenerated  int          `json:"summariesGenerated"`
	Duration            int          `json:"duration"`
	Pages               []PageResult `json:"pages"`
	FullDocumentSummary string       `json:"fullDocumentSummary,omitempty"`
	Flashcards          []Flashcard  `json:"flashcards"`
}

// Job is one document-to-audiobook conversion request and its mutable
// progress record. It is owned by the pipeline; clients only ever see
// read-only snapshots through the store.
type Job struct {
	ID        string    `json:"jobId"`
	Filename  string    `json:"-"`
	Status    Status    `json:"status"`
	Progress  string    `json:"progress"`
	Error     string    `json:"error,omitempty"`
	Result    *Result   `json:"result,omitempty"`
	CreatedAt time.Time `json:"-"`
}
