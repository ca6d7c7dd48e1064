package pipeline

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/audiobook-forge/internal/audio"
	"github.com/nguyentantai21042004/audiobook-forge/internal/export"
	"github.com/nguyentantai21042004/audiobook-forge/internal/flashcards"
	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
	"github.com/nguyentantai21042004/audiobook-forge/internal/logger"
	"github.com/nguyentantai21042004/audiobook-forge/internal/parser"
	"github.com/nguyentantai21042004/audiobook-forge/internal/storage"
	"github.com/nguyentantai21042004/audiobook-forge/internal/summarizer"
)

type implPipeline struct {
	store       job.Store
	storage     storage.Storage
	parser      parser.Parser
	summarizer  summarizer.Summarizer
	synthesizer audio.Synthesizer
	flashcards  flashcards.Generator
	exporter    export.Exporter // nil disables study guide export
	logger      logger.Logger

	baseCtx context.Context
	sem     chan struct{}

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

// Deps bundles the pipeline's collaborators.
type Deps struct {
	Store       job.Store
	Storage     storage.Storage
	Parser      parser.Parser
	Summarizer  summarizer.Summarizer
	Synthesizer audio.Synthesizer
	Flashcards  flashcards.Generator
	Exporter    export.Exporter
	Logger      logger.Logger
}

// New creates a Pipeline bounded to maxConcurrent simultaneous jobs. Jobs
// started beyond the bound queue until a slot frees. baseCtx cancellation
// aborts all running jobs.
func New(baseCtx context.Context, deps Deps, maxConcurrent int) Pipeline {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &implPipeline{
		store:       deps.Store,
		storage:     deps.Storage,
		parser:      deps.Parser,
		summarizer:  deps.Summarizer,
		synthesizer: deps.Synthesizer,
		flashcards:  deps.Flashcards,
		exporter:    deps.Exporter,
		logger:      deps.Logger,
		baseCtx:     baseCtx,
		sem:         make(chan struct{}, maxConcurrent),
		cancels:     make(map[string]context.CancelFunc),
	}
}
