package flashcards

import (
	"context"

	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
)

// Generator turns accumulated summary text into question/answer pairs.
// Flashcards are an enhancement: generation failures yield an empty list,
// never an error.
type Generator interface {
	Generate(ctx context.Context, content string, count int) []job.Flashcard
}
