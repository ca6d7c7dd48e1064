package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
	"github.com/nguyentantai21042004/audiobook-forge/internal/pipeline"
	"github.com/nguyentantai21042004/audiobook-forge/internal/storage"
)

// createRequest is the create-job body. Config fields are optional; omitted
// values fall back to the defaults.
type createRequest struct {
	Filename string             `json:"filename"`
	Config   *job.SummaryConfig `json:"summaryConfig"`
}

func (s *Server) handleUpload(c echo.Context) error {
	file, err := c.FormFile("document")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No document uploaded"})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unreadable upload"})
	}
	defer src.Close()

	stored, err := s.storage.SaveUpload(c.Request().Context(), file.Filename, src)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		s.logger.Error(c.Request().Context(), "Upload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store upload"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "File uploaded successfully",
		"filename":     stored,
		"originalname": file.Filename,
	})
}

func (s *Server) handleCreate(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if req.Filename == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "filename is required"})
	}
	if !s.storage.Exists(req.Filename) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "File not found"})
	}

	cfg := job.DefaultSummaryConfig()
	if req.Config != nil {
		cfg = *req.Config
	}
	if err := cfg.Normalize(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	id := s.pipeline.Start(req.Filename, cfg)
	s.logger.Info(c.Request().Context(), "Created job %s for %s", id, req.Filename)

	return c.JSON(http.StatusOK, echo.Map{
		"jobId":  id,
		"status": "started",
	})
}

func (s *Server) handleStatus(c echo.Context) error {
	j, err := s.store.Get(c.Param("jobId"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Job not found"})
	}
	return c.JSON(http.StatusOK, j)
}

func (s *Server) handleCancel(c echo.Context) error {
	err := s.pipeline.Cancel(c.Param("jobId"))
	switch {
	case errors.Is(err, job.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Job not found"})
	case errors.Is(err, pipeline.ErrFinished):
		return c.JSON(http.StatusConflict, echo.Map{"error": "Job already finished"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"jobId":  c.Param("jobId"),
		"status": "cancelling",
	})
}

func (s *Server) handleUploads(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"files": s.storage.Uploads()})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, s.gateway.Health(c.Request().Context()))
}
