package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"

	"github.com/filestruct/filestruct/internal/models"
	"github.com/filestruct/filestruct/pkg/config"
	"github.com/filestruct/filestruct/pkg/manager"
	"github.com/filestruct/filestruct/pkg/report"
	"github.com/filestruct/filestruct/pkg/telemetry"
)

// Server exposes the file-structure manager over HTTP.
type Server struct {
	config  *config.Config
	logger  *logrus.Logger
	manager *manager.Manager
	engine  *gin.Engine
	server  *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	mgr, err := manager.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create manager: %w", err)
	}

	// Set gin mode based on log level
	if logger.Level == logrus.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(ginLogger(logger))

	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware("filestruct"))
	}

	engine.Use(corsMiddleware())

	if cfg.Server.SessionAPIKey != "" {
		engine.Use(authMiddleware(cfg.Server.SessionAPIKey))
	}

	server := &Server{
		config:  cfg,
		logger:  logger,
		manager: mgr,
		engine:  engine,
	}

	server.setupRoutes()

	return server, nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Server.Port),
		Handler: s.engine,
	}

	s.logger.Infof("Starting server on port %d", s.config.Server.Port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Engine returns the gin engine for testing purposes
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health check
	s.engine.GET("/alive", s.handleAlive)

	// Server info
	s.engine.GET("/server_info", s.handleServerInfo)

	// Structure access
	s.engine.GET("/structure", s.handleGetStructure)
	s.engine.GET("/structure/list", s.handleListDirectories)

	// Structure mutation
	s.engine.POST("/structure/directories", s.handleAddDirectory)
	s.engine.DELETE("/structure/directories", s.handleRemoveDirectory)
	s.engine.POST("/structure/files", s.handleAddFile)
	s.engine.DELETE("/structure/files", s.handleRemoveFile)

	// Persistence
	s.engine.POST("/save", s.handleSave)
	s.engine.POST("/load", s.handleLoad)

	// Reporting
	s.engine.GET("/report", s.handleReport)
}

// handleAlive handles health check requests
func (s *Server) handleAlive(c *gin.Context) {
	if s.manager == nil {
		c.JSON(http.StatusOK, gin.H{"status": "not initialized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleServerInfo handles server info requests
func (s *Server) handleServerInfo(c *gin.Context) {
	currentTime := time.Now()
	info := s.manager.Info()

	response := models.ServerInfoResponse{
		Uptime:    currentTime.Sub(info.StartTime).Seconds(),
		IdleTime:  currentTime.Sub(info.LastOpTime).Seconds(),
		Resources: s.manager.SystemResources(),
	}

	c.JSON(http.StatusOK, response)
}

// handleGetStructure returns the current structure export.
func (s *Server) handleGetStructure(c *gin.Context) {
	c.JSON(http.StatusOK, s.manager.Export())
}

// handleListDirectories returns the top-level directory names.
func (s *Server) handleListDirectories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"directories": s.manager.ListDirectories()})
}

// handleAddDirectory adds a directory at the requested path.
func (s *Server) handleAddDirectory(c *gin.Context) {
	ctx, span := otel.Tracer("filestruct").Start(c.Request.Context(), "handle_add_directory")
	defer span.End()

	var req models.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if s.config.Telemetry.Enabled {
		telemetry.ReportJSON(ctx, s.logger, "add_directory_request", req)
	}

	if err := s.manager.AddDirectory(ctx, req.Path, req.Name); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// handleRemoveDirectory removes a directory subtree.
func (s *Server) handleRemoveDirectory(c *gin.Context) {
	ctx, span := otel.Tracer("filestruct").Start(c.Request.Context(), "handle_remove_directory")
	defer span.End()

	var req models.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.manager.RemoveDirectory(ctx, req.Path, req.Name); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// handleAddFile adds a file at the requested path.
func (s *Server) handleAddFile(c *gin.Context) {
	ctx, span := otel.Tracer("filestruct").Start(c.Request.Context(), "handle_add_file")
	defer span.End()

	var req models.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if s.config.Telemetry.Enabled {
		telemetry.ReportJSON(ctx, s.logger, "add_file_request", req)
	}

	if err := s.manager.AddFile(ctx, req.Path, req.Name, req.Content); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// handleRemoveFile removes a file.
func (s *Server) handleRemoveFile(c *gin.Context) {
	ctx, span := otel.Tracer("filestruct").Start(c.Request.Context(), "handle_remove_file")
	defer span.End()

	var req models.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.manager.RemoveFile(ctx, req.Path, req.Name); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// handleSave persists the current structure.
func (s *Server) handleSave(c *gin.Context) {
	if err := s.manager.Save(c.Request.Context()); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// handleLoad reloads the structure from the store.
func (s *Server) handleLoad(c *gin.Context) {
	if err := s.manager.Load(c.Request.Context()); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "loaded"})
}

// handleReport renders the markdown report of the current structure.
func (s *Server) handleReport(c *gin.Context) {
	content := report.Markdown().Format(s.manager.Structure())
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(content))
}

// respondError maps the model error taxonomy onto HTTP status codes.
func (s *Server) respondError(c *gin.Context, err error) {
	var duplicate *models.DuplicateNameError
	var notFound *models.NotFoundError
	var invalid *models.InvalidNameError
	var malformed *models.MalformedDataError

	switch {
	case errors.As(err, &duplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &invalid), errors.As(err, &malformed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Errorf("Operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ginLogger creates a gin logger middleware using logrus
func ginLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		entry := logger.WithFields(logrus.Fields{
			"status":     statusCode,
			"method":     c.Request.Method,
			"path":       path,
			"ip":         c.ClientIP(),
			"latency":    latency,
			"user_agent": c.Request.UserAgent(),
		})

		if raw != "" {
			entry = entry.WithField("query", raw)
		}

		if statusCode >= 500 {
			entry.Error("Server error")
		} else if statusCode >= 400 {
			entry.Warn("Client error")
		} else {
			entry.Info("Request completed")
		}
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Session-API-Key")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// authMiddleware validates API key
func authMiddleware(expectedAPIKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-Session-API-Key")
		if apiKey != expectedAPIKey {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid API Key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
