package provider

import (
	"context"
	"fmt"
)

// audioAttempt is one entry in a capability's ordered fallback chain. When a
// call fails with an error advanceOn accepts, the gateway moves to the next
// entry; otherwise the error is final.
type audioAttempt struct {
	backend   audioBackend
	force     func(AudioOptions) AudioOptions
	advanceOn func(error) bool
}

func never(error) bool { return false }

func (g *implGateway) runAudioChain(ctx context.Context, chain []audioAttempt, text string, opts AudioOptions) ([]byte, error) {
	var lastErr error
	for i, attempt := range chain {
		callOpts := opts
		if attempt.force != nil {
			callOpts = attempt.force(opts)
		}

		data, err := attempt.backend.generateAudio(ctx, text, callOpts)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if i < len(chain)-1 && attempt.advanceOn(err) {
			g.logger.Warn(ctx, "Audio generation failed with %s, falling back: %v", attempt.backend.name(), err)
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

func (g *implGateway) runTextChain(ctx context.Context, prompt string, opts TextOptions) (string, error) {
	var lastErr error
	for i, backend := range g.text {
		text, err := backend.generateText(ctx, prompt, opts)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if i < len(g.text)-1 && IsRetryable(err) {
			g.logger.Warn(ctx, "Text generation failed with %s, falling back: %v", backend.name(), err)
			continue
		}
		return "", err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no text backend configured")
	}
	return "", lastErr
}
