package audio

import (
	"time"

	"github.com/nguyentantai21042004/audiobook-forge/internal/logger"
	"github.com/nguyentantai21042004/audiobook-forge/internal/provider"
)

// chunkPause spaces consecutive synthesis calls to respect upstream
// throughput limits.
const chunkPause = time.Second

type implSynthesizer struct {
	gateway provider.Gateway
	pause   time.Duration
	logger  logger.Logger
}

// New creates a Synthesizer backed by the provider gateway.
func New(gw provider.Gateway, log logger.Logger) Synthesizer {
	return &implSynthesizer{
		gateway: gw,
		pause:   chunkPause,
		logger:  log,
	}
}
