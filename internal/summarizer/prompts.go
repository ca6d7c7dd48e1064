package summarizer

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
)

// Instruction templates per summary style. Output must stay plain text since
// it is narrated verbatim.
var stylePrompts = map[string]string{
	job.StyleBrief:       "Create a brief, concise summary focusing only on the most essential points. Write in plain text without any markdown formatting, asterisks, or special characters.",
	job.StyleIntelligent: "Create a balanced, intelligent summary with clear insights and key takeaways. Write in plain text without any markdown formatting, asterisks, or special characters.",
	job.StyleDetailed:    "Create a comprehensive, detailed summary covering all important aspects and nuances. Write in plain text without any markdown formatting, asterisks, or special characters.",
}

// Output-length budgets per style, in tokens.
var styleBudgets = map[string]int{
	job.StyleBrief:       200,
	job.StyleIntelligent: 300,
	job.StyleDetailed:    400,
}

const fullSummaryBudget = 500

const fullSummaryPrompt = `Create a comprehensive summary of this entire document:

Overall Theme: the main theme or purpose
Key Points: the 5-7 most important points
Core Insights: essential takeaways
Conclusion: final thoughts and implications

Write in plain text without any markdown formatting.

Full Document Content:
%s`

func buildWindowPrompt(style string, contents []string) string {
	return fmt.Sprintf("%s\n\nContent to summarize:\n%s", stylePrompts[style], strings.Join(contents, "\n\n"))
}

func buildFullPrompt(pages []job.Page) string {
	contents := make([]string, len(pages))
	for i, p := range pages {
		contents[i] = p.Content
	}
	return fmt.Sprintf(fullSummaryPrompt, strings.Join(contents, "\n\n"))
}
