package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
	"github.com/nguyentantai21042004/audiobook-forge/internal/logger"
	"github.com/nguyentantai21042004/audiobook-forge/internal/provider"
)

// fakeGateway scripts GenerateSummary responses per call.
type fakeGateway struct {
	calls   int
	prompts []string
	respond func(call int, prompt string) (string, error)
}

func (f *fakeGateway) GenerateSummary(ctx context.Context, prompt string, opts provider.TextOptions) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.respond(f.calls, prompt)
}

func (f *fakeGateway) GenerateAudio(ctx context.Context, text string, opts provider.AudioOptions) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGateway) MaxChunkChars(premium bool) int { return 4000 }

func (f *fakeGateway) Health(ctx context.Context) map[string]interface{} { return nil }

func newTestSummarizer(gw provider.Gateway) *implSummarizer {
	return &implSummarizer{
		gateway:    gw,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		maxRetries: 3,
		backoff:    func(int) time.Duration { return 0 },
		logger:     logger.New("error"),
	}
}

func makePages(n int) []job.Page {
	pages := make([]job.Page, n)
	for i := range pages {
		pages[i] = job.Page{PageNumber: i + 1, Content: fmt.Sprintf("content of page %d", i+1)}
	}
	return pages
}

func TestSummarizeWindowCount(t *testing.T) {
	tests := []struct {
		pages       int
		interval    int
		wantWindows int
	}{
		{pages: 3, interval: 1, wantWindows: 3},
		{pages: 5, interval: 2, wantWindows: 3},
		{pages: 4, interval: 4, wantWindows: 1},
		{pages: 4, interval: 10, wantWindows: 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d pages interval %d", tt.pages, tt.interval), func(t *testing.T) {
			gw := &fakeGateway{respond: func(call int, prompt string) (string, error) {
				return fmt.Sprintf("summary %d", call), nil
			}}
			s := newTestSummarizer(gw)

			cfg := job.SummaryConfig{EnablePageSummaries: true, PageInterval: tt.interval, SummaryStyle: job.StyleIntelligent}
			res, err := s.Summarize(context.Background(), makePages(tt.pages), cfg, nil)
			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}

			if gw.calls != tt.wantWindows {
				t.Errorf("gateway calls = %d, want %d windows", gw.calls, tt.wantWindows)
			}
			for i := 0; i < tt.pages; i++ {
				if !res.Pages[i].Generated() {
					t.Errorf("page index %d has no generated summary", i)
				}
			}
		})
	}
}

func TestSummarizeWindowDuplication(t *testing.T) {
	gw := &fakeGateway{respond: func(call int, prompt string) (string, error) {
		return fmt.Sprintf("window summary %d", call), nil
	}}
	s := newTestSummarizer(gw)

	cfg := job.SummaryConfig{EnablePageSummaries: true, PageInterval: 2, SummaryStyle: job.StyleBrief}
	res, err := s.Summarize(context.Background(), makePages(5), cfg, nil)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	// Pages 0,1 share window 1; pages 2,3 share window 2; page 4 is alone.
	if res.Pages[0].Text != res.Pages[1].Text {
		t.Errorf("pages 0 and 1 differ: %q vs %q", res.Pages[0].Text, res.Pages[1].Text)
	}
	if res.Pages[2].Text != res.Pages[3].Text {
		t.Errorf("pages 2 and 3 differ")
	}
	if res.Pages[0].Text == res.Pages[2].Text {
		t.Errorf("windows 1 and 2 must differ")
	}
	if res.Pages[4].Text == res.Pages[0].Text {
		t.Errorf("last partial window must not share window 1's summary")
	}
}

func TestSummarizeDisabledLeavesNotAttempted(t *testing.T) {
	gw := &fakeGateway{respond: func(call int, prompt string) (string, error) {
		t.Fatal("gateway must not be called")
		return "", nil
	}}
	s := newTestSummarizer(gw)

	res, err := s.Summarize(context.Background(), makePages(3), job.SummaryConfig{PageInterval: 1}, nil)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if res.Pages[i].State != job.SummaryNotAttempted {
			t.Errorf("page index %d state = %v, want SummaryNotAttempted", i, res.Pages[i].State)
		}
	}
}

func TestSummarizeSingleWindowFailureDoesNotAbort(t *testing.T) {
	gw := &fakeGateway{respond: func(call int, prompt string) (string, error) {
		if call == 2 {
			return "", &provider.UpstreamError{Provider: "openai", StatusCode: 500}
		}
		return "ok", nil
	}}
	s := newTestSummarizer(gw)

	cfg := job.SummaryConfig{EnablePageSummaries: true, PageInterval: 1, SummaryStyle: job.StyleIntelligent}
	res, err := s.Summarize(context.Background(), makePages(3), cfg, nil)
	if err != nil {
		t.Fatalf("Summarize() error = %v, single unit failures must not abort", err)
	}

	if !res.Pages[0].Generated() || !res.Pages[2].Generated() {
		t.Error("healthy windows lost their summaries")
	}
	if res.Pages[1].State != job.SummaryFailed {
		t.Errorf("failed window state = %v, want SummaryFailed", res.Pages[1].State)
	}
}

func TestSummarizeUpstreamTimeoutDoesNotAbort(t *testing.T) {
	// The error shape an http.Client timeout produces: a TimeoutError whose
	// chain bottoms out in context.DeadlineExceeded.
	timeout := &provider.TimeoutError{
		Provider: "openai",
		Err: &url.Error{
			Op:  "Post",
			URL: "https://api.openai.com/v1/chat/completions",
			Err: fmt.Errorf("request: %w", context.DeadlineExceeded),
		},
	}
	gw := &fakeGateway{respond: func(call int, prompt string) (string, error) {
		if call == 1 {
			return "", timeout
		}
		return "ok", nil
	}}
	s := newTestSummarizer(gw)

	cfg := job.SummaryConfig{EnablePageSummaries: true, PageInterval: 1, SummaryStyle: job.StyleIntelligent}
	res, err := s.Summarize(context.Background(), makePages(2), cfg, nil)
	if err != nil {
		t.Fatalf("Summarize() error = %v, a single unit's timeout must not abort", err)
	}

	if res.Pages[0].State != job.SummaryFailed {
		t.Errorf("timed-out window state = %v, want SummaryFailed", res.Pages[0].State)
	}
	if !res.Pages[1].Generated() {
		t.Error("later window lost its summary after an earlier timeout")
	}
}

func TestSummarizeCancelledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gw := &fakeGateway{respond: func(call int, prompt string) (string, error) {
		cancel()
		return "", &provider.UpstreamError{Provider: "openai", StatusCode: 503}
	}}
	s := newTestSummarizer(gw)

	cfg := job.SummaryConfig{EnablePageSummaries: true, PageInterval: 1, SummaryStyle: job.StyleIntelligent}
	_, err := s.Summarize(ctx, makePages(3), cfg, nil)
	if err == nil {
		t.Fatal("Summarize() = nil error, cancellation must abort the run")
	}
	if gw.calls != 1 {
		t.Errorf("gateway calls = %d, want 1 (no work after cancellation)", gw.calls)
	}
}

func TestSummarizeRetriesRateLimits(t *testing.T) {
	gw := &fakeGateway{respond: func(call int, prompt string) (string, error) {
		if call <= 2 {
			return "", &provider.UpstreamError{Provider: "openai", StatusCode: 429}
		}
		return "finally", nil
	}}
	s := newTestSummarizer(gw)

	cfg := job.SummaryConfig{EnablePageSummaries: true, PageInterval: 1, SummaryStyle: job.StyleIntelligent}
	res, err := s.Summarize(context.Background(), makePages(1), cfg, nil)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if gw.calls != 3 {
		t.Errorf("gateway calls = %d, want 3 (two rate limits then success)", gw.calls)
	}
	if res.Pages[0].Text != "finally" {
		t.Errorf("summary = %q", res.Pages[0].Text)
	}
}

func TestSummarizeRateLimitExhaustionRecordsPlaceholder(t *testing.T) {
	gw := &fakeGateway{respond: func(call int, prompt string) (string, error) {
		return "", &provider.UpstreamError{Provider: "openai", StatusCode: 429}
	}}
	s := newTestSummarizer(gw)

	cfg := job.SummaryConfig{EnablePageSummaries: true, PageInterval: 1, SummaryStyle: job.StyleIntelligent}
	res, err := s.Summarize(context.Background(), makePages(1), cfg, nil)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if gw.calls != 4 {
		t.Errorf("gateway calls = %d, want 4 (initial + 3 retries)", gw.calls)
	}
	if res.Pages[0].State != job.SummaryFailed {
		t.Errorf("state = %v, want SummaryFailed", res.Pages[0].State)
	}
}

func TestSummarizeAuthErrorAborts(t *testing.T) {
	gw := &fakeGateway{respond: func(call int, prompt string) (string, error) {
		return "", &provider.AuthError{Provider: "openai", Message: "bad key"}
	}}
	s := newTestSummarizer(gw)

	cfg := job.SummaryConfig{EnablePageSummaries: true, PageInterval: 1, SummaryStyle: job.StyleIntelligent}
	_, err := s.Summarize(context.Background(), makePages(3), cfg, nil)

	var authErr *provider.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %v, want AuthError to abort the run", err)
	}
	if gw.calls != 1 {
		t.Errorf("gateway calls = %d, want 1 (no retries on auth failure)", gw.calls)
	}
}

func TestSummarizeFullSummary(t *testing.T) {
	gw := &fakeGateway{respond: func(call int, prompt string) (string, error) {
		if strings.Contains(prompt, "entire document") {
			return "full summary", nil
		}
		return "page summary", nil
	}}
	s := newTestSummarizer(gw)

	cfg := job.SummaryConfig{
		EnablePageSummaries: true,
		PageInterval:        1,
		EnableFullSummary:   true,
		SummaryStyle:        job.StyleIntelligent,
	}
	res, err := s.Summarize(context.Background(), makePages(2), cfg, nil)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if !res.Full.Generated() || res.Full.Text != "full summary" {
		t.Errorf("Full = %+v", res.Full)
	}
}

func TestSummarizeFullSummaryFailureIsNonFatal(t *testing.T) {
	gw := &fakeGateway{respond: func(call int, prompt string) (string, error) {
		if strings.Contains(prompt, "entire document") {
			return "", &provider.UpstreamError{Provider: "openai", StatusCode: 503}
		}
		return "page summary", nil
	}}
	s := newTestSummarizer(gw)

	cfg := job.SummaryConfig{
		EnablePageSummaries: true,
		PageInterval:        1,
		EnableFullSummary:   true,
		SummaryStyle:        job.StyleIntelligent,
	}
	res, err := s.Summarize(context.Background(), makePages(2), cfg, nil)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if res.Full.State != job.SummaryFailed {
		t.Errorf("Full.State = %v, want SummaryFailed", res.Full.State)
	}
	if !res.Pages[0].Generated() {
		t.Error("page summaries must survive a full-summary failure")
	}
}

func TestSummarizeProgressReports(t *testing.T) {
	gw := &fakeGateway{respond: func(call int, prompt string) (string, error) {
		return "ok", nil
	}}
	s := newTestSummarizer(gw)

	var updates []string
	cfg := job.SummaryConfig{EnablePageSummaries: true, PageInterval: 2, SummaryStyle: job.StyleIntelligent}
	if _, err := s.Summarize(context.Background(), makePages(3), cfg, func(p string) {
		updates = append(updates, p)
	}); err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if len(updates) != 2 {
		t.Fatalf("progress updates = %v, want 2", updates)
	}
	if !strings.Contains(updates[0], "pages 1-2") {
		t.Errorf("updates[0] = %q, want grouped label", updates[0])
	}
	if !strings.Contains(updates[1], "page 3") {
		t.Errorf("updates[1] = %q, want single-page label", updates[1])
	}
}
