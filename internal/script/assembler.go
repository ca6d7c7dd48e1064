// Package script renders parsed pages and generated summaries into one
// ordered narration script. It is pure: no side effects, no network.
package script

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
)

const (
	preamble = "Welcome to your personalized audiobook. Let's begin."
	closing  = "Thank you for listening to your audiobook. This completes your reading session."
)

// Assemble builds the narration script. Pages are rendered in ascending
// page-number order regardless of input order; a page's summary section is
// included only when a summary was actually generated. The summaries map is
// keyed by the page's index in the input slice.
func Assemble(pages []job.Page, summaries map[int]job.PageSummary, full job.PageSummary) string {
	type entry struct {
		page    job.Page
		summary job.PageSummary
	}

	entries := make([]entry, len(pages))
	for i, p := range pages {
		entries[i] = entry{page: p, summary: summaries[i]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].page.PageNumber < entries[j].page.PageNumber
	})

	var sb strings.Builder
	sb.WriteString(preamble)
	sb.WriteString("\n\n")

	for _, e := range entries {
		fmt.Fprintf(&sb, "Page %d.\n\n%s\n\n", e.page.PageNumber, e.page.Content)
		if e.summary.Generated() {
			fmt.Fprintf(&sb, "Page %d Summary.\n%s\n\n", e.page.PageNumber, e.summary.Text)
		}
	}

	if full.Generated() {
		fmt.Fprintf(&sb, "\n\nComplete Document Summary.\n%s\n\n", full.Text)
	}

	sb.WriteString(closing)
	return sb.String()
}
