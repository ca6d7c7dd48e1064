package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/audiobook-forge/internal/audio"
	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
	"github.com/nguyentantai21042004/audiobook-forge/internal/script"
)

// flashcardPoolLimit caps the raw-content fallback fed to flashcard
// generation when no summaries exist.
const flashcardPoolLimit = 8000

// run executes the conversion stages for one job. Any returned error marks
// the job failed; partial artifacts are never published.
func (p *implPipeline) run(ctx context.Context, id, filename string, cfg job.SummaryConfig) error {
	p.setStage(id, job.StatusParsing, "Parsing document")

	doc, err := p.parser.Parse(ctx, p.storage.Resolve(filename))
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	p.logger.Info(ctx, "Job %s parsed %s: %d pages", id, filename, doc.TotalPages)

	start, end := cfg.ClampRange(doc.TotalPages)
	pages := doc.Pages[start-1 : end]

	p.setStage(id, job.StatusSummarizing, "Generating summaries")
	summaries, err := p.summarizer.Summarize(ctx, pages, cfg, func(msg string) {
		p.setProgress(id, msg)
	})
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	narration := script.Assemble(pages, summaries.Pages, summaries.Full)

	p.setStage(id, job.StatusGeneratingAudio, "Generating audio")
	data, err := p.synthesizer.Synthesize(ctx, narration, audio.Options{Premium: cfg.PremiumAudio}, func(msg string) {
		p.setProgress(id, msg)
	})
	if err != nil {
		return fmt.Errorf("synthesize audio: %w", err)
	}

	audioURL, err := p.storage.WriteAudio(ctx, fmt.Sprintf("audiobook_%s.mp3", id), data)
	if err != nil {
		return fmt.Errorf("write audio artifact: %w", err)
	}

	result := buildResult(pages, summaries.Pages, summaries.Full, cfg, audioURL, len(data))

	if cfg.GenerateFlashcards {
		p.setProgress(id, "Generating flashcards")
		result.Flashcards = p.flashcards.Generate(ctx, flashcardPool(pages, summaries.Pages, summaries.Full), cfg.FlashcardCount)
	}

	if p.exporter != nil {
		if _, err := p.exporter.StudyGuide(ctx, id, result); err != nil {
			// The audiobook itself is done; a missing study guide is not fatal.
			p.logger.Warn(ctx, "Job %s study guide export failed: %v", id, err)
		}
	}

	p.store.Update(id, func(j *job.Job) {
		j.Status = job.StatusComplete
		j.Progress = "Complete"
		j.Result = result
	})
	p.logger.Info(ctx, "Job %s complete: %d pages, %d summaries, %d bytes of audio",
		id, result.TotalPages, result.SummariesGenerated, len(data))
	return nil
}

// buildResult shapes the client-facing payload. TotalPages counts the pages
// actually processed after range filtering, not the source document's count.
func buildResult(pages []job.Page, summaries map[int]job.PageSummary, full job.PageSummary, cfg job.SummaryConfig, audioURL string, audioBytes int) *job.Result {
	result := &job.Result{
		AudioURL:   audioURL,
		TotalPages: len(pages),
		Duration:   audio.EstimateDuration(audioBytes),
		Pages:      make([]job.PageResult, 0, len(pages)),
		Flashcards: []job.Flashcard{},
	}

	for i, page := range pages {
		s := summaries[i]
		if s.Generated() {
			result.SummariesGenerated++
		}
		result.Pages = append(result.Pages, job.PageResult{
			Content: page.Content,
			Summary: s.Display(),
		})
	}

	if cfg.EnableFullSummary {
		switch full.State {
		case job.SummaryGenerated:
			result.FullDocumentSummary = full.Text
		case job.SummaryFailed:
			result.FullDocumentSummary = job.FailedFullSummaryText()
		}
	}

	return result
}

// flashcardPool picks the source text for flashcard generation: page
// summaries alone when any exist, then the full-document summary, then raw
// page content capped to stay inside text-model limits.
func flashcardPool(pages []job.Page, summaries map[int]job.PageSummary, full job.PageSummary) string {
	var parts []string
	for i := range pages {
		if s := summaries[i]; s.Generated() {
			parts = append(parts, s.Text)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "\n\n")
	}

	if full.Generated() {
		return full.Text
	}

	var sb strings.Builder
	for _, page := range pages {
		if sb.Len() >= flashcardPoolLimit {
			break
		}
		sb.WriteString(page.Content)
		sb.WriteString("\n\n")
	}
	pool := sb.String()
	if len(pool) > flashcardPoolLimit {
		pool = pool[:flashcardPoolLimit]
	}
	return pool
}
