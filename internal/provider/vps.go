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
	vpsTextTimeout   = 2 * time.Minute
	vpsAudioTimeout  = 3 * time.Minute
	vpsHealthTimeout = 5 * time.Second
)

// vpsBackend talks to a self-hosted inference server exposing text and TTS
// endpoints.
type vpsBackend struct {
	baseURL      string
	textEndpoint string
	ttsEndpoint  string
	apiKey       string
	textModel    string
	ttsModel     string
	defaultVoice string
	maxChunk     int
	httpClient   *http.Client
	logger       logger.Logger
}

func newVPSBackend(cfg config.VPSConfig, log logger.Logger) *vpsBackend {
	return &vpsBackend{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		textEndpoint: cfg.TextEndpoint,
		ttsEndpoint:  cfg.TTSEndpoint,
		apiKey:       cfg.APIKey,
		textModel:    cfg.TextModel,
		ttsModel:     cfg.TTSModel,
		defaultVoice: cfg.Voice,
		maxChunk:     cfg.MaxChunkChars,
		httpClient:   &http.Client{},
		logger:       log,
	}
}

func (b *vpsBackend) name() string { return "vps" }

func (b *vpsBackend) maxChunkChars() int { return b.maxChunk }

type vpsTextRequest struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type vpsTextResponse struct {
	Success       bool   `json:"success"`
	Text          string `json:"text"`
	Response      string `json:"response"`
	GeneratedText string `json:"generated_text"`
	Error         string `json:"error"`
}

func (b *vpsBackend) generateText(ctx context.Context, prompt string, opts TextOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, vpsTextTimeout)
	defer cancel()

	body, err := json.Marshal(vpsTextRequest{
		Prompt:      prompt,
		Model:       b.textModel,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal text request: %w", err)
	}

	raw, err := b.post(ctx, b.baseURL+b.textEndpoint, body)
	if err != nil {
		return "", err
	}

	var parsed vpsTextResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &UpstreamError{Provider: b.name(), Message: fmt.Sprintf("malformed text response: %v", err)}
	}
	if !parsed.Success {
		msg := parsed.Error
		if msg == "" {
			msg = "text generation failed"
		}
		return "", &UpstreamError{Provider: b.name(), Message: msg}
	}

	// The server reports the generated text under one of several keys.
	for _, text := range []string{parsed.Text, parsed.Response, parsed.GeneratedText} {
		if text != "" {
			return text, nil
		}
	}
	return "", &UpstreamError{Provider: b.name(), Message: "empty text response"}
}

type vpsAudioRequest struct {
	Text   string `json:"text"`
	Model  string `json:"model"`
	Voice  string `json:"voice"`
	Format string `json:"format"`
}

func (b *vpsBackend) generateAudio(ctx context.Context, text string, opts AudioOptions) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, vpsAudioTimeout)
	defer cancel()

	voice := opts.Voice
	if voice == "" {
		voice = b.defaultVoice
	}

	body, err := json.Marshal(vpsAudioRequest{
		Text:   text,
		Model:  b.ttsModel,
		Voice:  voice,
		Format: opts.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal audio request: %w", err)
	}

	return b.post(ctx, b.baseURL+b.ttsEndpoint, body)
}

// health probes the server's /health endpoint with a short timeout.
func (b *vpsBackend) health(ctx context.Context) map[string]interface{} {
	ctx, cancel := context.WithTimeout(ctx, vpsHealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/health", nil)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}
	defer resp.Body.Close()

	var payload map[string]interface{}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload); err != nil {
		return map[string]interface{}{"status": resp.Status}
	}
	return payload
}

func (b *vpsBackend) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}

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
