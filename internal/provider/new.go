package provider

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/audiobook-forge/internal/config"
	"github.com/nguyentantai21042004/audiobook-forge/internal/logger"
)

type implGateway struct {
	primary string

	text    []textBackend
	audio   []audioAttempt
	premium []audioAttempt

	openai *openAIBackend
	vps    *vpsBackend
	gemini *geminiBackend

	logger logger.Logger
}

// New builds the Gateway from configuration. The primary identity drives
// standard audio; text always prefers the general-purpose backend when it is
// configured, because text quality is less interchangeable than audio.
func New(cfg config.ProvidersConfig, log logger.Logger) (Gateway, error) {
	g := &implGateway{
		primary: cfg.Primary,
		logger:  log,
	}

	if cfg.OpenAI.APIKey != "" {
		g.openai = newOpenAIBackend(cfg.OpenAI, log)
	}
	if cfg.VPS.BaseURL != "" {
		g.vps = newVPSBackend(cfg.VPS, log)
	}
	if len(cfg.Gemini.APIKeys) > 0 {
		g.gemini = newGeminiBackend(cfg.Gemini, log)
	}

	if g.openai != nil {
		g.text = append(g.text, g.openai)
	}
	if g.vps != nil {
		g.text = append(g.text, g.vps)
	}
	if len(g.text) == 0 {
		return nil, fmt.Errorf("no text-capable backend configured")
	}

	var primaryAudio audioBackend
	switch cfg.Primary {
	case "openai":
		if g.openai == nil {
			return nil, fmt.Errorf("primary provider openai is not configured")
		}
		primaryAudio = g.openai
	case "vps":
		if g.vps == nil {
			return nil, fmt.Errorf("primary provider vps is not configured")
		}
		primaryAudio = g.vps
	case "gemini":
		if g.gemini == nil {
			return nil, fmt.Errorf("primary provider gemini is not configured")
		}
		primaryAudio = g.gemini
	default:
		return nil, fmt.Errorf("unknown primary provider %q", cfg.Primary)
	}

	g.audio = append(g.audio, audioAttempt{backend: primaryAudio, advanceOn: IsRetryable})
	if primaryAudio.name() != "openai" && g.openai != nil {
		g.audio = append(g.audio, audioAttempt{backend: g.openai, advanceOn: never})
	}

	// Premium synthesis is served by the general-purpose backend only; a
	// premium failure never downgrades to a non-premium path.
	if g.openai != nil {
		g.premium = append(g.premium, audioAttempt{
			backend: g.openai,
			force: func(opts AudioOptions) AudioOptions {
				opts.Premium = true
				return opts
			},
			advanceOn: never,
		})
	}

	return g, nil
}

func (g *implGateway) GenerateSummary(ctx context.Context, prompt string, opts TextOptions) (string, error) {
	return g.runTextChain(ctx, prompt, opts)
}

func (g *implGateway) GenerateAudio(ctx context.Context, text string, opts AudioOptions) ([]byte, error) {
	if opts.Premium {
		if len(g.premium) == 0 {
			return nil, &AuthError{Provider: "openai", Message: "premium audio requires the general-purpose backend"}
		}
		return g.runAudioChain(ctx, g.premium, text, opts)
	}
	return g.runAudioChain(ctx, g.audio, text, opts)
}

func (g *implGateway) MaxChunkChars(premium bool) int {
	if premium && g.openai != nil {
		return g.openai.maxChunkChars()
	}
	if len(g.audio) > 0 {
		return g.audio[0].backend.maxChunkChars()
	}
	return 4000
}

func (g *implGateway) Health(ctx context.Context) map[string]interface{} {
	status := map[string]interface{}{
		"provider": g.primary,
		"openai":   g.openai != nil,
		"vps":      g.vps != nil,
		"gemini":   g.gemini != nil,
	}
	if g.vps != nil {
		status["vpsHealth"] = g.vps.health(ctx)
	}
	return status
}
