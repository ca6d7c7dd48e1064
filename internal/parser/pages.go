package parser

import "strings"

// wordsPerPageFallback is assumed when the source reports no page count.
const wordsPerPageFallback = 250

// sentencesPerPage groups sentences when word-based estimation yields nothing.
const sentencesPerPage = 8

// splitIntoPages turns raw extracted text into an ordered page sequence.
// Preference order: explicit form-feed page breaks, an even word split across
// the reported page count, then sentence grouping.
func splitIntoPages(text string, reportedPages int) []string {
	if strings.Contains(text, "\f") {
		var pages []string
		for _, part := range strings.Split(text, "\f") {
			if strings.TrimSpace(part) != "" {
				pages = append(pages, strings.TrimSpace(part))
			}
		}
		if len(pages) > 0 {
			return pages
		}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	wordsPerPage := wordsPerPageFallback
	if reportedPages > 0 {
		wordsPerPage = (len(words) + reportedPages - 1) / reportedPages
	}
	if wordsPerPage <= 0 {
		wordsPerPage = wordsPerPageFallback
	}

	var pages []string
	for start := 0; start < len(words); start += wordsPerPage {
		end := start + wordsPerPage
		if end > len(words) {
			end = len(words)
		}
		pages = append(pages, strings.Join(words[start:end], " "))
	}

	if len(pages) == 0 {
		pages = groupSentences(text)
	}
	return pages
}

// groupSentences is the last-resort splitter for text that defeats the word
// estimator.
func groupSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	var pages []string
	for start := 0; start < len(sentences); start += sentencesPerPage {
		end := start + sentencesPerPage
		if end > len(sentences) {
			end = len(sentences)
		}
		pages = append(pages, strings.Join(sentences[start:end], " "))
	}
	return pages
}
