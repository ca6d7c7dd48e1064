package summarizer

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/nguyentantai21042004/audiobook-forge/internal/config"
	"github.com/nguyentantai21042004/audiobook-forge/internal/logger"
	"github.com/nguyentantai21042004/audiobook-forge/internal/provider"
)

type implSummarizer struct {
	gateway    provider.Gateway
	limiter    *rate.Limiter
	maxRetries int
	backoff    func(attempt int) time.Duration
	logger     logger.Logger
}

// New creates a Summarizer that paces requests to stay under upstream
// request-rate ceilings.
func New(gw provider.Gateway, cfg config.SummarizerConfig, log logger.Logger) Summarizer {
	delay := time.Duration(cfg.RequestDelaySeconds) * time.Second
	return &implSummarizer{
		gateway:    gw,
		limiter:    rate.NewLimiter(rate.Every(delay), 1),
		maxRetries: cfg.MaxRetries,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * 2 * time.Second
		},
		logger: log,
	}
}
