// Package server exposes the task operations over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskpop/internal/joke"
	"taskpop/internal/priority"
	"taskpop/internal/service"
	"taskpop/internal/todo"
)

const (
	// DefaultAddr is the listen address of serve.
	DefaultAddr = "127.0.0.1:8080"

	requestTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// JokeSource supplies GET /api/joke.
type JokeSource interface {
	Display(ctx context.Context) joke.Joke
}

// Server is the HTTP API over a todo.Service.
type Server struct {
	svc     *todo.Service
	jokes   JokeSource
	logger  *log.Logger
	metrics *metrics
	engine  *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithJokes enables GET /api/joke.
func WithJokes(j JokeSource) Option {
	return func(s *Server) { s.jokes = j }
}

// New builds the router.
func New(svc *todo.Service, opts ...Option) *Server {
	s := &Server{svc: svc, metrics: newMetrics()}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.metrics.middleware(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.GET("/tasks", s.listTasks)
		api.POST("/tasks", s.addTask)
		api.DELETE("/tasks", s.clearAll)
		api.DELETE("/tasks/completed", s.clearCompleted)
		api.POST("/tasks/:id/toggle", s.toggleTask)
		api.GET("/color/:priority", s.color)
		api.GET("/joke", s.joke)
	}

	s.engine = r
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

type addRequest struct {
	Text     string `json:"text"`
	Priority string `json:"priority"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) listTasks(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	tasks, err := s.svc.List(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	open := len(tasks.Open())
	s.metrics.observeTasks(open, len(tasks)-open)
	c.JSON(http.StatusOK, service.Document{Tasks: tasks})
}

func (s *Server) addTask(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	task, err := s.svc.Add(ctx, req.Text, req.Priority)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) toggleTask(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	task, err := s.svc.Toggle(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) clearAll(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := s.svc.ClearAll(ctx); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) clearCompleted(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	removed, err := s.svc.ClearCompleted(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (s *Server) color(c *gin.Context) {
	p, err := priority.Parse(c.Param("priority"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Field: "priority"})
		return
	}
	color := priority.ColorFor(p)
	c.JSON(http.StatusOK, gin.H{
		"priority": p,
		"color":    color.String(),
		"hex":      color.Hex(),
	})
}

func (s *Server) joke(c *gin.Context) {
	if s.jokes == nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "jokes are disabled"})
		return
	}
	c.JSON(http.StatusOK, s.jokes.Display(c.Request.Context()))
}

// fail maps an operation error to a response.
func (s *Server) fail(c *gin.Context, err error) {
	var ve *todo.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Field: ve.Field})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrAuth):
		c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
