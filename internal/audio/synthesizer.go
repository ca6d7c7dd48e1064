package audio

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/audiobook-forge/internal/provider"
)

// bytesPerSecond approximates MP3 output size for the duration estimate.
// Display-only; never used to decode.
const bytesPerSecond = 16000

// Synthesize splits the script into provider-size-bounded chunks, synthesizes
// them strictly in order and concatenates the binary outputs. Any chunk
// failure aborts immediately: a missing segment cannot be patched into a
// linear narration.
func (s *implSynthesizer) Synthesize(ctx context.Context, script string, opts Options, onProgress func(string)) ([]byte, error) {
	if onProgress == nil {
		onProgress = func(string) {}
	}

	chunks := Chunk(script, s.gateway.MaxChunkChars(opts.Premium))
	if len(chunks) == 0 {
		return nil, fmt.Errorf("empty narration script")
	}

	onProgress(fmt.Sprintf("Creating audio from %d chunks...", len(chunks)))
	s.logger.Info(ctx, "Processing %d audio chunks", len(chunks))

	var combined []byte
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		onProgress(fmt.Sprintf("Generating audio chunk %d of %d...", i+1, len(chunks)))
		s.logger.Debug(ctx, "Generating audio chunk %d/%d (%d chars)", i+1, len(chunks), len(chunk))

		data, err := s.gateway.GenerateAudio(ctx, chunk, provider.AudioOptions{
			Voice:   opts.Voice,
			Format:  opts.Format,
			Premium: opts.Premium,
		})
		if err != nil {
			return nil, fmt.Errorf("generate audio for chunk %d of %d: %w", i+1, len(chunks), err)
		}

		combined = append(combined, data...)

		if i < len(chunks)-1 && s.pause > 0 {
			if err := sleepCtx(ctx, s.pause); err != nil {
				return nil, err
			}
		}
	}

	return combined, nil
}

// EstimateDuration approximates playback seconds from the artifact size.
func EstimateDuration(sizeBytes int) int {
	return sizeBytes / bytesPerSecond
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
