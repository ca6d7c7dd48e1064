package parser

import "context"

// Parser extracts ordered page content from an uploaded document.
type Parser interface {
	Parse(ctx context.Context, path string) (*Document, error)
}
