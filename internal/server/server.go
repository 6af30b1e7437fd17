// Package server exposes the triage pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"logtriage/internal/domain"
	"logtriage/internal/usecase"
)

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// Server wires the ingest, retrieve and ask pipelines into an HTTP API.
// The ask use case is optional; without it POST /api/v1/ask returns 503.
type Server struct {
	echo     *echo.Echo
	ingest   *usecase.IngestUseCase
	retrieve *usecase.RetrieveUseCase
	ask      *usecase.AskUseCase
	topK     int
	log      zerolog.Logger
	config   Config
}

// NewServer creates an HTTP server around the given use cases.
func NewServer(ingest *usecase.IngestUseCase, retrieve *usecase.RetrieveUseCase, ask *usecase.AskUseCase, topK int, log zerolog.Logger, cfg Config) (*Server, error) {
	if ingest == nil || retrieve == nil {
		return nil, fmt.Errorf("ingest and retrieve use cases are required")
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if topK <= 0 {
		topK = 5
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			log.Info().
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Msg("http request")
			return err
		}
	})

	s := &Server{
		echo:     e,
		ingest:   ingest,
		retrieve: retrieve,
		ask:      ask,
		topK:     topK,
		log:      log,
		config:   cfg,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	v1 := s.echo.Group("/api/v1")
	v1.GET("/documents", s.handleListDocuments)
	v1.POST("/documents", s.handleAddDocument)
	v1.GET("/documents/:id", s.handleGetDocument)
	v1.DELETE("/documents/:id", s.handleDeleteDocument)
	v1.GET("/stats", s.handleStats)
	v1.POST("/search", s.handleSearch)
	v1.POST("/ask", s.handleAsk)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// AddDocumentRequest is the request body for POST /api/v1/documents.
type AddDocumentRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// AddDocumentResponse is the response body for POST /api/v1/documents.
type AddDocumentResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Chunks int    `json:"chunks"`
}

// SearchRequest is the request body for POST /api/v1/search.
type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// SearchResponse is the response body for POST /api/v1/search.
type SearchResponse struct {
	Query   string               `json:"query"`
	Results []domain.ScoredChunk `json:"results"`
}

// AskRequest is the request body for POST /api/v1/ask.
type AskRequest struct {
	Input string `json:"input"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleListDocuments(c echo.Context) error {
	docs, err := s.ingest.ListDocuments()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return c.JSON(http.StatusOK, docs)
}

func (s *Server) handleAddDocument(c echo.Context) error {
	var req AddDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	doc, chunks, err := s.ingest.AddDocument(req.Title, req.Text)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, AddDocumentResponse{
		ID:     doc.ID,
		Title:  doc.Title,
		Chunks: chunks,
	})
}

func (s *Server) handleGetDocument(c echo.Context) error {
	doc, err := s.ingest.GetDocument(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(c echo.Context) error {
	if err := s.ingest.RemoveDocument(c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleStats(c echo.Context) error {
	stats, err := s.ingest.Stats()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) handleSearch(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query field is required")
	}
	topK := req.TopK
	if topK <= 0 {
		topK = s.topK
	}
	results, err := s.retrieve.Retrieve(req.Query, topK)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if results == nil {
		results = []domain.ScoredChunk{}
	}
	return c.JSON(http.StatusOK, SearchResponse{Query: req.Query, Results: results})
}

func (s *Server) handleAsk(c echo.Context) error {
	if s.ask == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "model access is not configured")
	}
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Input == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "input field is required")
	}
	diagnosis, err := s.ask.Ask(c.Request().Context(), req.Input)
	if err != nil {
		s.log.Error().Err(err).Msg("diagnosis failed")
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, diagnosis)
}

// Start starts the HTTP server and blocks until it exits.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.log.Info().Str("addr", addr).Msg("starting http server")
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down http server")
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying router for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
