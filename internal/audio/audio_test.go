package audio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/nguyentantai21042004/audiobook-forge/internal/logger"
	"github.com/nguyentantai21042004/audiobook-forge/internal/provider"
)

type fakeAudioGateway struct {
	maxChunk int
	calls    []string
	failOn   int
	prefix   string
}

func (f *fakeAudioGateway) GenerateSummary(ctx context.Context, prompt string, opts provider.TextOptions) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeAudioGateway) GenerateAudio(ctx context.Context, text string, opts provider.AudioOptions) ([]byte, error) {
	f.calls = append(f.calls, text)
	if f.failOn > 0 && len(f.calls) == f.failOn {
		return nil, &provider.UpstreamError{Provider: "vps", StatusCode: 500}
	}
	return []byte(fmt.Sprintf("[%s%d]", f.prefix, len(f.calls))), nil
}

func (f *fakeAudioGateway) MaxChunkChars(premium bool) int { return f.maxChunk }

func (f *fakeAudioGateway) Health(ctx context.Context) map[string]interface{} { return nil }

func newTestSynthesizer(gw provider.Gateway) *implSynthesizer {
	return &implSynthesizer{
		gateway: gw,
		pause:   0,
		logger:  logger.New("error"),
	}
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		want     int
	}{
		{"empty", "", 10, 0},
		{"single chunk", "hello", 10, 1},
		{"exact boundary", "abcdefghij", 10, 1},
		{"two chunks", "abcdefghijk", 10, 2},
		{"many chunks", strings.Repeat("x", 95), 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Chunk(tt.text, tt.maxChars)
			if len(chunks) != tt.want {
				t.Errorf("Chunk() = %d chunks, want %d", len(chunks), tt.want)
			}
			if strings.Join(chunks, "") != tt.text {
				t.Error("concatenated chunks differ from input")
			}
		})
	}
}

func TestChunkRuneSafety(t *testing.T) {
	// Multi-byte characters must never straddle a chunk boundary.
	text := strings.Repeat("héllo wörld — ✓ ", 50)
	chunks := Chunk(text, 7)

	for i, c := range chunks {
		if !utf8.ValidString(c) {
			t.Errorf("chunk %d contains a split rune: %q", i, c)
		}
	}
	if strings.Join(chunks, "") != text {
		t.Error("concatenated chunks differ from input")
	}
}

func TestSynthesizeOrderedConcatenation(t *testing.T) {
	gw := &fakeAudioGateway{maxChunk: 10, prefix: "chunk"}
	s := newTestSynthesizer(gw)

	script := "aaaaaaaaaabbbbbbbbbbcc" // 3 chunks
	data, err := s.Synthesize(context.Background(), script, Options{Voice: "nova", Format: "mp3"}, nil)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if got := string(data); got != "[chunk1][chunk2][chunk3]" {
		t.Errorf("concatenated output = %q, want issuance order preserved", got)
	}
	if gw.calls[0] != "aaaaaaaaaa" || gw.calls[2] != "cc" {
		t.Errorf("chunks sent out of order: %v", gw.calls)
	}
}

func TestSynthesizeChunkFailureIsFatal(t *testing.T) {
	gw := &fakeAudioGateway{maxChunk: 10, failOn: 2}
	s := newTestSynthesizer(gw)

	script := strings.Repeat("z", 25) // 3 chunks, failure on the second
	_, err := s.Synthesize(context.Background(), script, Options{}, nil)
	if err == nil {
		t.Fatal("expected chunk failure to abort synthesis")
	}
	if !strings.Contains(err.Error(), "chunk 2 of 3") {
		t.Errorf("error = %v, want failing chunk identified", err)
	}
	if len(gw.calls) != 2 {
		t.Errorf("calls after failure = %d, remaining chunks must be skipped", len(gw.calls))
	}
}

func TestSynthesizeCancelledContext(t *testing.T) {
	gw := &fakeAudioGateway{maxChunk: 10}
	s := newTestSynthesizer(gw)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Synthesize(ctx, "some text", Options{}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestSynthesizeProgress(t *testing.T) {
	gw := &fakeAudioGateway{maxChunk: 5}
	s := newTestSynthesizer(gw)

	var updates []string
	if _, err := s.Synthesize(context.Background(), "aaaaabbbbb", Options{}, func(p string) {
		updates = append(updates, p)
	}); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if len(updates) != 3 {
		t.Fatalf("updates = %v, want 3", updates)
	}
	if !strings.Contains(updates[1], "chunk 1 of 2") {
		t.Errorf("updates[1] = %q", updates[1])
	}
}

func TestEstimateDuration(t *testing.T) {
	if got := EstimateDuration(160000); got != 10 {
		t.Errorf("EstimateDuration(160000) = %d, want 10", got)
	}
	if got := EstimateDuration(100); got != 0 {
		t.Errorf("EstimateDuration(100) = %d, want 0", got)
	}
}
