// Package devapi serves a local, read-only copy of the jobs API from an
// in-memory store, for running the terminal client and the MCP server
// without the real backend.
package devapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qyinm/acadjobs/logging"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type handler struct {
	store *Store
	log   *logging.Logger
}

// jobsQuery binds the /api/jobs query string.
type jobsQuery struct {
	Search     string `form:"search"`
	Category   string `form:"category"`
	University string `form:"university"`
	Location   string `form:"location"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1"`
}

// NewRouter wires the API routes over store.
func NewRouter(store *Store, log *logging.Logger) *gin.Engine {
	if log == nil {
		log = logging.Nop()
	}
	h := &handler{store: store, log: log}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	config.AllowHeaders = []string{"Origin", "Accept", "Content-Type", "X-Request-ID"}
	r.Use(cors.New(config))

	r.GET("/", h.root)
	api := r.Group("/api")
	{
		api.GET("/jobs", h.listJobs)
		api.GET("/jobs/:id", h.getJob)
		api.GET("/stats", h.stats)
		api.GET("/sources", h.sources)
	}
	return r
}

func (h *handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Academic Jobs API for London", "status": "active"})
}

func (h *handler) listJobs(c *gin.Context) {
	var q jobsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if q.Page == 0 {
		q.Page = 1
	}
	switch {
	case q.Limit == 0:
		q.Limit = defaultLimit
	case q.Limit > maxLimit:
		q.Limit = maxLimit
	}

	page := h.store.Find(Filter{
		Search:     q.Search,
		Category:   q.Category,
		University: q.University,
		Location:   q.Location,
	}, q.Page, q.Limit)
	c.JSON(http.StatusOK, toJobsJSON(page))
}

func (h *handler) getJob(c *gin.Context) {
	rec, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Job not found"})
		return
	}
	c.JSON(http.StatusOK, toJobJSON(rec))
}

func (h *handler) stats(c *gin.Context) {
	c.JSON(http.StatusOK, toStatsJSON(h.store.Stats()))
}

func (h *handler) sources(c *gin.Context) {
	c.JSON(http.StatusOK, toSourcesJSON(h.store.Sources()))
}

// requestLogger logs one line per request, tagged with the caller's
// X-Request-ID or a fresh one.
func requestLogger(log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)

		c.Next()

		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", id,
		)
	}
}

// Server runs the router on addr until its context is cancelled.
type Server struct {
	http *http.Server
	log  *logging.Logger
}

func NewServer(addr string, handler http.Handler, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		log: log,
	}
}

func (s *Server) Addr() string { return s.http.Addr }

// Run serves until ctx is done, then shuts down within timeout.
func (s *Server) Run(ctx context.Context, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("dev api listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.log.Warn("graceful shutdown completed with error", "err", err)
		return err
	}
	s.log.Info("graceful shutdown completed successfully")
	return nil
}
