package flashcards

import (
	"github.com/nguyentantai21042004/audiobook-forge/internal/logger"
	"github.com/nguyentantai21042004/audiobook-forge/internal/provider"
)

type implGenerator struct {
	gateway provider.Gateway
	logger  logger.Logger
}

// New creates a Generator backed by the provider gateway's text path.
func New(gw provider.Gateway, log logger.Logger) Generator {
	return &implGenerator{
		gateway: gw,
		logger:  log,
	}
}
