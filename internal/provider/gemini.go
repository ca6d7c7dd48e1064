package provider

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/audiobook-forge/internal/config"
	"github.com/nguyentantai21042004/audiobook-forge/internal/logger"
)

// keyRing is an ordered credential list with round-robin advancement. After a
// full rotation fails it resets to the first key so the next unrelated call
// starts clean.
type keyRing struct {
	mu      sync.Mutex
	keys    []string
	current int
}

func newKeyRing(keys []string) *keyRing {
	return &keyRing{keys: keys}
}

func (k *keyRing) size() int { return len(k.keys) }

func (k *keyRing) active() (key string, index int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.keys[k.current], k.current
}

func (k *keyRing) rotate() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.current = (k.current + 1) % len(k.keys)
}

func (k *keyRing) reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.current = 0
}

// geminiBackend synthesizes speech through the Gemini TTS models, rotating
// through its key list once per remaining credential on failure.
type geminiBackend struct {
	ring     *keyRing
	model    string
	maxChunk int
	logger   logger.Logger
}

func newGeminiBackend(cfg config.GeminiConfig, log logger.Logger) *geminiBackend {
	return &geminiBackend{
		ring:     newKeyRing(cfg.APIKeys),
		model:    cfg.TTSModel,
		maxChunk: cfg.MaxChunkChars,
		logger:   log,
	}
}

func (b *geminiBackend) name() string { return "gemini" }

func (b *geminiBackend) maxChunkChars() int { return b.maxChunk }

func (b *geminiBackend) generateAudio(ctx context.Context, text string, opts AudioOptions) ([]byte, error) {
	if b.ring.size() == 0 {
		return nil, &AuthError{Provider: b.name(), Message: "no API keys configured"}
	}

	voice := geminiVoice(opts.Voice)

	attempts := b.ring.size()
	var lastErr error

	for i := 0; i < attempts; i++ {
		key, keyIndex := b.ring.active()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			b.ring.rotate()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, b.model, genai.Text(text), &genai.GenerateContentConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
						VoiceName: voice,
					},
				},
			},
		})
		if err != nil {
			b.logger.Warn(ctx, "Gemini key %d failed, rotating: %v", keyIndex+1, err)
			lastErr = err
			b.ring.rotate()
			continue
		}

		data := extractInlineAudio(result)
		if len(data) == 0 {
			lastErr = fmt.Errorf("no audio data in response")
			b.ring.rotate()
			continue
		}

		return data, nil
	}

	b.ring.reset()
	return nil, &UpstreamError{
		Provider: b.name(),
		Message:  fmt.Sprintf("all API keys exhausted: %v", lastErr),
	}
}

func extractInlineAudio(result *genai.GenerateContentResponse) []byte {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range result.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data
		}
	}
	return nil
}
