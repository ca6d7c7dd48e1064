package job

import "fmt"

// Summary styles supported by the summarization prompts.
const (
	StyleBrief       = "brief"
	StyleIntelligent = "intelligent"
	StyleDetailed    = "detailed"
)

// Page range modes.
const (
	RangeAll    = "all"
	RangeCustom = "custom"
)

// SummaryConfig is the immutable per-job pipeline configuration submitted by
// the client. Field names mirror the create request body.
type SummaryConfig struct {
	EnablePageSummaries bool   `json:"enablePageSummaries"`
	PageInterval        int    `json:"pageInterval"`
	EnableFullSummary   bool   `json:"enableFullSummary"`
	SummaryStyle        string `json:"summaryStyle"`
	PageRange           string `json:"pageRange"`
	StartPage           int    `json:"startPage"`
	EndPage             int    `json:"endPage"`
	PremiumAudio        bool   `json:"premiumAudio"`
	GenerateFlashcards  bool   `json:"generateFlashcards"`
	FlashcardCount      int    `json:"flashcardCount"`
}

// DefaultSummaryConfig mirrors the defaults applied when the client omits the
// configuration entirely.
func DefaultSummaryConfig() SummaryConfig {
	return SummaryConfig{
		EnablePageSummaries: true,
		PageInterval:        1,
		EnableFullSummary:   true,
		SummaryStyle:        StyleIntelligent,
		PageRange:           RangeAll,
		StartPage:           1,
	}
}

// Normalize fills zero values with defaults and validates the rest.
func (c *SummaryConfig) Normalize() error {
	if c.PageInterval <= 0 {
		c.PageInterval = 1
	}
	if c.SummaryStyle == "" {
		c.SummaryStyle = StyleIntelligent
	}
	switch c.SummaryStyle {
	case StyleBrief, StyleIntelligent, StyleDetailed:
	default:
		return fmt.Errorf("unknown summary style %q", c.SummaryStyle)
	}

	if c.PageRange == "" {
		c.PageRange = RangeAll
	}
	switch c.PageRange {
	case RangeAll:
	case RangeCustom:
		if c.StartPage <= 0 {
			c.StartPage = 1
		}
		if c.EndPage <= 0 {
			return fmt.Errorf("endPage is required for a custom page range")
		}
		if c.StartPage > c.EndPage {
			return fmt.Errorf("startPage %d is after endPage %d", c.StartPage, c.EndPage)
		}
	default:
		return fmt.Errorf("unknown page range %q", c.PageRange)
	}

	if c.GenerateFlashcards && c.FlashcardCount <= 0 {
		c.FlashcardCount = 15
	}

	return nil
}

// ClampRange bounds the custom page range to [1, totalPages] and returns the
// effective 1-based start and end pages for the document.
func (c SummaryConfig) ClampRange(totalPages int) (start, end int) {
	if c.PageRange != RangeCustom {
		return 1, totalPages
	}

	start = c.StartPage
	if start < 1 {
		start = 1
	}
	end = c.EndPage
	if end > totalPages {
		end = totalPages
	}
	if start > end {
		start = end
	}
	return start, end
}
