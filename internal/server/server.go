// Package server exposes the progression engine over a local HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khalari/khalari/internal/engine"
	"github.com/khalari/khalari/internal/metrics"
	"github.com/khalari/khalari/internal/quiz"
	"github.com/khalari/khalari/internal/roadmap"
)

// QuizSource generates quiz questions for a module.
type QuizSource interface {
	GenerateQuiz(ctx context.Context, m roadmap.Module) ([]quiz.Question, error)
}

// Config configures the API server.
type Config struct {
	Addr          string
	JWTSecret     string
	WebhookSecret string
}

// quizExpiry drops quizzes that were started and never submitted.
const quizExpiry = time.Hour

type pendingQuiz struct {
	module    int
	questions []quiz.Question
	started   time.Time
}

// Server serves the API. It holds generated quizzes between the start and
// submit calls so answers are graded server-side.
type Server struct {
	cfg     Config
	svc     *engine.Service
	quizzes QuizSource
	logger  *zap.Logger
	router  *gin.Engine

	mu      sync.Mutex
	pending map[string]pendingQuiz
}

// New builds the router. quizzes may be nil, in which case quiz start
// requests fail.
func New(cfg Config, svc *engine.Service, quizzes QuizSource, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:     cfg,
		svc:     svc,
		quizzes: quizzes,
		logger:  logger.Named("server"),
		pending: make(map[string]pendingQuiz),
	}

	r := gin.New()
	r.Use(gin.Recovery(), metrics.Middleware(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) { success(c, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.POST("/api/payments/webhook", s.handleWebhook)

	api := r.Group("/api", s.auth())
	api.GET("/profile", s.handleProfile)
	api.GET("/roadmap", s.handleRoadmap)
	api.GET("/activity", s.handleActivity)
	api.POST("/modules/:index/bypass", s.handleBypass)
	api.POST("/modules/:index/quiz/start", s.handleQuizStart)
	api.POST("/modules/:index/quiz", s.handleQuizSubmit)

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("api shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			fail(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := ParseToken(s.cfg.JWTSecret, tokenString)
		if err != nil {
			s.logger.Debug("rejected token", zap.Error(err))
			fail(c, http.StatusUnauthorized, "invalid token")
			return
		}
		c.Set("claims", claims)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func (s *Server) newQuiz(module int, qs []quiz.Question) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	// One open quiz per module; a new start replaces the old one.
	for k, p := range s.pending {
		if p.module == module || now.Sub(p.started) > quizExpiry {
			delete(s.pending, k)
		}
	}
	s.pending[id] = pendingQuiz{module: module, questions: qs, started: now}
	return id
}

func (s *Server) takeQuiz(id string, module int) (pendingQuiz, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[id]
	if !ok || p.module != module {
		return pendingQuiz{}, false
	}
	delete(s.pending, id)
	return p, true
}
