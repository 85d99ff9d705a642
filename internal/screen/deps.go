package screen

import (
	"context"

	"go.uber.org/zap"

	"github.com/khalari/khalari/internal/career"
	"github.com/khalari/khalari/internal/engine"
	"github.com/khalari/khalari/internal/quiz"
	"github.com/khalari/khalari/internal/roadmap"
	"github.com/khalari/khalari/internal/video"
)

// Content is the part of the content generator the screens call.
type Content interface {
	GenerateRoadmap(ctx context.Context, topic, lang string) (*roadmap.Roadmap, error)
	GenerateQuiz(ctx context.Context, m roadmap.Module) ([]quiz.Question, error)
	SuggestTopics(ctx context.Context, query string) []string
}

// Deps carries the services shared by every screen.
type Deps struct {
	Engine  *engine.Service
	Content Content
	Videos  video.Searcher
	Jobs    *career.Board // optional
	Logger  *zap.Logger

	// PaymentKeyID is passed to checkout for diamond purchases.
	PaymentKeyID string
}

// Log returns the logger, never nil.
func (d Deps) Log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
