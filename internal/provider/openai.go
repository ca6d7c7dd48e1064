package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audiobook-forge/internal/config"
	"github.com/nguyentantai21042004/audiobook-forge/internal/logger"
)

const (
	openAITextTimeout  = 2 * time.Minute
	openAIAudioTimeout = 3 * time.Minute
)

// openAIBackend talks to OpenAI-compatible chat-completion and speech APIs.
type openAIBackend struct {
	endpoint        string
	apiKey          string
	textModel       string
	ttsModel        string
	premiumTTSModel string
	maxChunk        int
	httpClient      *http.Client
	logger          logger.Logger
}

func newOpenAIBackend(cfg config.OpenAIConfig, log logger.Logger) *openAIBackend {
	return &openAIBackend{
		endpoint:        strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:          cfg.APIKey,
		textModel:       cfg.TextModel,
		ttsModel:        cfg.TTSModel,
		premiumTTSModel: cfg.PremiumTTSModel,
		maxChunk:        cfg.MaxChunkChars,
		httpClient:      &http.Client{},
		logger:          log,
	}
}

func (b *openAIBackend) name() string { return "openai" }

func (b *openAIBackend) maxChunkChars() int { return b.maxChunk }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (b *openAIBackend) generateText(ctx context.Context, prompt string, opts TextOptions) (string, error) {
	if b.apiKey == "" {
		return "", &AuthError{Provider: b.name(), Message: "missing API key"}
	}

	ctx, cancel := context.WithTimeout(ctx, openAITextTimeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model:       b.textModel,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	raw, err := b.post(ctx, b.endpoint+"/chat/completions", body, "")
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &UpstreamError{Provider: b.name(), Message: fmt.Sprintf("malformed chat response: %v", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &UpstreamError{Provider: b.name(), Message: "empty chat response"}
	}

	return parsed.Choices[0].Message.Content, nil
}

type speechRequest struct {
	Model          string `json:"model"`
	Voice          string `json:"voice"`
	Input          string `json:"input"`
	ResponseFormat string `json:"response_format,omitempty"`
}

func (b *openAIBackend) generateAudio(ctx context.Context, text string, opts AudioOptions) ([]byte, error) {
	if b.apiKey == "" {
		return nil, &AuthError{Provider: b.name(), Message: "missing API key"}
	}

	ctx, cancel := context.WithTimeout(ctx, openAIAudioTimeout)
	defer cancel()

	model := b.ttsModel
	if opts.Premium {
		model = b.premiumTTSModel
	}

	body, err := json.Marshal(speechRequest{
		Model:          model,
		Voice:          openAIVoice(opts.Voice),
		Input:          text,
		ResponseFormat: opts.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal speech request: %w", err)
	}

	return b.post(ctx, b.endpoint+"/audio/speech", body, "")
}

func (b *openAIBackend) post(ctx context.Context, url string, body []byte, contentType string) ([]byte, error) {
	if contentType == "" {
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(b.name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &AuthError{Provider: b.name(), Message: resp.Status}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &UpstreamError{
			Provider:   b.name(),
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(payload)),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Provider: b.name(), Message: fmt.Sprintf("read response: %v", err)}
	}
	return raw, nil
}
