package summarizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
	"github.com/nguyentantai21042004/audiobook-forge/internal/provider"
)

// Summarize partitions pages into pageInterval-sized windows, summarizes each
// window and replicates the result onto every page in the window. A single
// window's failure records a placeholder and never aborts the whole run; bad
// credentials do abort, since no later unit can succeed either.
func (s *implSummarizer) Summarize(ctx context.Context, pages []job.Page, cfg job.SummaryConfig, onProgress func(string)) (*Result, error) {
	if onProgress == nil {
		onProgress = func(string) {}
	}

	out := &Result{
		Pages: make(map[int]job.PageSummary, len(pages)),
	}

	if cfg.EnablePageSummaries {
		if err := s.summarizeWindows(ctx, pages, cfg, out, onProgress); err != nil {
			return nil, err
		}
	}

	if cfg.EnableFullSummary && len(pages) > 0 {
		onProgress("Generating full document summary...")

		text, err := s.generateWithRetry(ctx, buildFullPrompt(pages), fullSummaryBudget)
		switch {
		case err == nil:
			out.Full = job.PageSummary{State: job.SummaryGenerated, Text: text}
		case isFatal(ctx, err):
			return nil, err
		default:
			s.logger.Error(ctx, "Full document summary failed: %v", err)
			out.Full = job.PageSummary{State: job.SummaryFailed}
		}
	}

	// Every page ends up with an explicit state, placeholder or not.
	for i := range pages {
		if _, ok := out.Pages[i]; !ok {
			out.Pages[i] = job.PageSummary{State: job.SummaryNotAttempted}
		}
	}

	return out, nil
}

func (s *implSummarizer) summarizeWindows(ctx context.Context, pages []job.Page, cfg job.SummaryConfig, out *Result, onProgress func(string)) error {
	interval := cfg.PageInterval
	totalWindows := (len(pages) + interval - 1) / interval

	window := 0
	for start := 0; start < len(pages); start += interval {
		window++

		end := start + interval - 1
		if end > len(pages)-1 {
			end = len(pages) - 1
		}

		label := fmt.Sprintf("page %d", pages[start].PageNumber)
		if end > start {
			label = fmt.Sprintf("pages %d-%d", pages[start].PageNumber, pages[end].PageNumber)
		}
		onProgress(fmt.Sprintf("Generating summary for %s (%d/%d)...", label, window, totalWindows))
		s.logger.Info(ctx, "Summarizing %s", label)

		contents := make([]string, 0, end-start+1)
		for i := start; i <= end; i++ {
			contents = append(contents, pages[i].Content)
		}

		text, err := s.generateWithRetry(ctx, buildWindowPrompt(cfg.SummaryStyle, contents), styleBudgets[cfg.SummaryStyle])

		var summary job.PageSummary
		switch {
		case err == nil:
			summary = job.PageSummary{State: job.SummaryGenerated, Text: text}
		case isFatal(ctx, err):
			return err
		default:
			s.logger.Error(ctx, "Failed to summarize %s: %v", label, err)
			summary = job.PageSummary{State: job.SummaryFailed}
		}

		// The window's summary is replicated onto every page it covers so
		// the script assembler can attach one to each page.
		for i := start; i <= end; i++ {
			out.Pages[i] = summary
		}
	}

	return nil
}

// generateWithRetry issues one rate-limited text call, retrying only
// rate-limit-class failures with an increasing backoff.
func (s *implSummarizer) generateWithRetry(ctx context.Context, prompt string, maxTokens int) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}

		text, err := s.gateway.GenerateSummary(ctx, prompt, provider.TextOptions{
			MaxTokens:   maxTokens,
			Temperature: 0.7,
		})
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !provider.IsRateLimited(err) || attempt == s.maxRetries {
			break
		}

		s.logger.Warn(ctx, "Rate limited, retrying in %s (attempt %d/%d)", s.backoff(attempt), attempt+1, s.maxRetries)
		if err := sleepCtx(ctx, s.backoff(attempt)); err != nil {
			return "", err
		}
	}

	return "", lastErr
}

// isFatal reports errors that abort the whole job rather than one unit.
// A unit's own upstream timeout wraps context.DeadlineExceeded too, so job
// cancellation is detected through the job's context, never by unwrapping the
// returned error.
func isFatal(ctx context.Context, err error) bool {
	var authErr *provider.AuthError
	return errors.As(err, &authErr) || ctx.Err() != nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
