package export

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// StudyGuide renders page summaries, the document summary and flashcards into
// a DOCX named studyguide_<jobID>.docx.
func (e *implExporter) StudyGuide(ctx context.Context, jobID string, result *job.Result) (string, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}

	addHeading(doc.AddParagraph(""), "Audiobook Study Guide", 16)
	doc.AddParagraph("")

	if len(result.Pages) > 0 {
		addHeading(doc.AddParagraph(""), "Page Summaries", 15)
		for i, page := range result.Pages {
			if strings.TrimSpace(page.Summary) == "" {
				continue
			}
			addHeading(doc.AddParagraph(""), fmt.Sprintf("Page %d", i+1), 14)
			addBody(doc.AddParagraph(""), page.Summary)
		}
		doc.AddParagraph("")
	}

	if strings.TrimSpace(result.FullDocumentSummary) != "" {
		addHeading(doc.AddParagraph(""), "Document Summary", 15)
		addBody(doc.AddParagraph(""), result.FullDocumentSummary)
		doc.AddParagraph("")
	}

	if len(result.Flashcards) > 0 {
		addHeading(doc.AddParagraph(""), "Flashcards", 15)
		for i, card := range result.Flashcards {
			q := doc.AddParagraph("")
			q.AddText(fmt.Sprintf("%d. %s", i+1, card.Question)).Font(fontName).Size(fontSize).Color("000000").Bold(true)
			addBody(doc.AddParagraph(""), card.Answer)
		}
	}

	path := filepath.Join(e.outputDir, fmt.Sprintf("studyguide_%s.docx", jobID))
	if err := doc.SaveTo(path); err != nil {
		return "", fmt.Errorf("save study guide: %w", err)
	}

	e.logger.Info(ctx, "Wrote study guide: %s", path)
	return path, nil
}

func addHeading(p *docx.Paragraph, text string, size uint64) {
	p.AddText(text).Font(fontName).Size(size).Color("000000").Bold(true)
}

func addBody(p *docx.Paragraph, text string) {
	p.AddText(text).Font(fontName).Size(fontSize).Color("000000")
}
