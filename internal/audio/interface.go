package audio

import "context"

// Options selects the synthesis path for one script.
type Options struct {
	Premium bool
	Voice   string
	Format  string
}

// Synthesizer converts an assembled narration script into one audio artifact.
type Synthesizer interface {
	Synthesize(ctx context.Context, script string, opts Options, onProgress func(string)) ([]byte, error)
}
