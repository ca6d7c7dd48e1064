package parser

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// parsePDF extracts text per page, falling back to whole-document extraction
// with estimated page splitting when per-page extraction fails.
func (p *implParser) parsePDF(ctx context.Context, path string) (pages []string, err error) {
	// The pdf library panics on some malformed documents instead of
	// returning an error.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()

	perPage := make([]string, 0, total)
	perPageOK := true
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, textErr := page.GetPlainText(nil)
		if textErr != nil {
			p.logger.Debug(ctx, "Per-page extraction failed on page %d: %v", i, textErr)
			perPageOK = false
			break
		}
		if text = strings.TrimSpace(text); text != "" {
			perPage = append(perPage, text)
		}
	}
	if perPageOK && len(perPage) > 0 {
		return perPage, nil
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	return splitIntoPages(sb.String(), total), nil
}
