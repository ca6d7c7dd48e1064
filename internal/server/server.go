package server

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
	"github.com/nguyentantai21042004/audiobook-forge/internal/logger"
	"github.com/nguyentantai21042004/audiobook-forge/internal/pipeline"
	"github.com/nguyentantai21042004/audiobook-forge/internal/provider"
	"github.com/nguyentantai21042004/audiobook-forge/internal/storage"
)

// Server is the HTTP boundary: uploads, job control and status polling.
type Server struct {
	echo     *echo.Echo
	store    job.Store
	pipeline pipeline.Pipeline
	storage  storage.Storage
	gateway  provider.Gateway
	logger   logger.Logger
}

// Deps bundles the server's collaborators.
type Deps struct {
	Store    job.Store
	Pipeline pipeline.Pipeline
	Storage  storage.Storage
	Gateway  provider.Gateway
	AudioDir string
	Logger   logger.Logger
}

// New builds the router. The server owns no business logic; handlers
// delegate to the pipeline and the stores.
func New(deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("50M"))

	s := &Server{
		echo:     e,
		store:    deps.Store,
		pipeline: deps.Pipeline,
		storage:  deps.Storage,
		gateway:  deps.Gateway,
		logger:   deps.Logger,
	}

	e.POST("/api/upload", s.handleUpload)
	e.GET("/api/uploads", s.handleUploads)
	e.POST("/api/audiobook/create", s.handleCreate)
	e.GET("/api/audiobook/status/:jobId", s.handleStatus)
	e.POST("/api/audiobook/cancel/:jobId", s.handleCancel)
	e.GET("/api/audiobook/ai-health", s.handleHealth)
	e.Static("/audio", deps.AudioDir)

	return s
}

// Start blocks serving HTTP on the given port.
func (s *Server) Start(port int) error {
	return s.echo.Start(fmt.Sprintf(":%d", port))
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
