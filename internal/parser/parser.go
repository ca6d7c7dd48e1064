package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
)

// ErrNotFound is returned when the source file does not exist.
var ErrNotFound = errors.New("source file not found")

// minMeaningfulChars is the non-whitespace length below which a document is
// treated as image-only/scanned.
const minMeaningfulChars = 100

// scannedNotice is narrated instead of raising when no readable text exists.
const scannedNotice = "This document appears to be scanned or image-based. " +
	"No readable text could be extracted, so narration is not available for its contents."

// Document is the parse result: the page count after splitting plus the
// ordered page contents.
type Document struct {
	TotalPages int
	Pages      []job.Page
}

// Parse extracts text from the file at path and splits it into ordered pages.
// Short or unreadable documents degrade to a single notice page; they are
// valid output, not an error.
func (p *implParser) Parse(ctx context.Context, path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(path))
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var (
		pages []string
		err   error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		pages, err = p.parsePDF(ctx, path)
	case ".html", ".htm":
		pages, err = p.parseHTML(ctx, path)
	default:
		pages, err = p.parseText(ctx, path)
	}
	if err != nil {
		return nil, err
	}

	if !hasMeaningfulText(pages) {
		p.logger.Warn(ctx, "Document %s has no extractable text, emitting notice page", filepath.Base(path))
		pages = []string{scannedNotice}
	}

	doc := &Document{
		TotalPages: len(pages),
		Pages:      make([]job.Page, 0, len(pages)),
	}
	for i, content := range pages {
		doc.Pages = append(doc.Pages, job.Page{
			PageNumber: i + 1,
			Content:    content,
		})
	}

	p.logger.Info(ctx, "Parsed %s: %d pages", filepath.Base(path), doc.TotalPages)
	return doc, nil
}

func (p *implParser) parseText(ctx context.Context, path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return splitIntoPages(string(raw), 0), nil
}

// hasMeaningfulText reports whether the extracted pages carry enough
// non-whitespace content to be worth narrating.
func hasMeaningfulText(pages []string) bool {
	total := 0
	for _, page := range pages {
		for _, r := range page {
			if !isSpace(r) {
				total++
				if total >= minMeaningfulChars {
					return true
				}
			}
		}
	}
	return false
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
