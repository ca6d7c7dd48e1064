package flashcards

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
	"github.com/nguyentantai21042004/audiobook-forge/internal/provider"
)

const flashcardPrompt = `Create exactly %d flashcards from the content below.
Respond with a strict JSON array and nothing else. No prose, no markdown, no code fences.
Each element must be an object with exactly two string fields: "question" and "answer".

Content:
%s`

// Generate asks the text backend for flashcards and parses its output
// defensively. Malformed output or an upstream failure returns an empty list.
func (g *implGenerator) Generate(ctx context.Context, content string, count int) []job.Flashcard {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	raw, err := g.gateway.GenerateSummary(ctx, fmt.Sprintf(flashcardPrompt, count, content), provider.TextOptions{
		MaxTokens:   1500,
		Temperature: 0.7,
	})
	if err != nil {
		g.logger.Error(ctx, "Flashcard generation failed: %v", err)
		return nil
	}

	cards, err := parseCards(raw)
	if err != nil {
		g.logger.Warn(ctx, "Flashcard output unparseable, dropping: %v", err)
		return nil
	}

	return cards
}

// parseCards tolerates code fences and stray prose around the JSON array.
func parseCards(raw string) ([]job.Flashcard, error) {
	cleaned := stripCodeFence(raw)

	var cards []job.Flashcard
	if err := json.Unmarshal([]byte(cleaned), &cards); err == nil {
		return cards, nil
	}

	// Last resort: extract the outermost bracketed slice.
	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in output")
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &cards); err != nil {
		return nil, fmt.Errorf("parse flashcards: %w", err)
	}
	return cards, nil
}

func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// The opening fence may carry a language tag.
	if idx := strings.Index(s, "\n"); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		if first == "json" || first == "" {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
