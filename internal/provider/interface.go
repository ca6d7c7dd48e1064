package provider

import "context"

// TextOptions tunes one text-generation call.
type TextOptions struct {
	MaxTokens   int
	Temperature float64
}

// AudioOptions tunes one speech-synthesis call.
type AudioOptions struct {
	Voice   string
	Format  string
	Premium bool
}

// Gateway is the uniform surface over interchangeable text and audio
// backends, with fallback and credential-rotation policy baked in.
type Gateway interface {
	GenerateSummary(ctx context.Context, prompt string, opts TextOptions) (string, error)
	GenerateAudio(ctx context.Context, text string, opts AudioOptions) ([]byte, error)
	// MaxChunkChars is the largest input one audio call may carry for the
	// backend that would serve it.
	MaxChunkChars(premium bool) int
	Health(ctx context.Context) map[string]interface{}
}

// textBackend is one concrete text-generation implementation.
type textBackend interface {
	name() string
	generateText(ctx context.Context, prompt string, opts TextOptions) (string, error)
}

// audioBackend is one concrete speech-synthesis implementation.
type audioBackend interface {
	name() string
	generateAudio(ctx context.Context, text string, opts AudioOptions) ([]byte, error)
	maxChunkChars() int
}
