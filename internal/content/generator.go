// Package content generates roadmaps, quizzes, topic suggestions, resume
// feedback and chat replies through an llm.Provider.
package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khalari/khalari/internal/llm"
	"github.com/khalari/khalari/internal/quiz"
	"github.com/khalari/khalari/internal/roadmap"
)

// ErrGeneration wraps every failure to produce content. Callers show a
// retry prompt; no learner state has been touched.
var ErrGeneration = errors.New("content generation failed")

// Generator produces learning content from an LLM.
type Generator struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a Generator. logger may be nil.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		provider: provider,
		config:   cfg,
		logger:   logger.Named("content"),
		now:      time.Now,
	}
}

type roadmapOutput struct {
	Modules []roadmap.Module `json:"modules"`
}

type suggestionsOutput struct {
	Suggestions []string `json:"suggestions"`
}

// GenerateRoadmap asks for the roadmap and its further topics concurrently
// and waits for both. A further-topics failure leaves the list empty; a
// roadmap failure is returned wrapped in ErrGeneration.
func (g *Generator) GenerateRoadmap(ctx context.Context, topic, lang string) (*roadmap.Roadmap, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: empty topic", ErrGeneration)
	}

	var (
		modules []roadmap.Module
		further []string
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		modules, err = g.roadmapModules(egCtx, topic, lang)
		return err
	})
	eg.Go(func() error {
		further = g.FurtherTopics(egCtx, topic)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	rm := &roadmap.Roadmap{
		ID:            uuid.NewString(),
		Topic:         topic,
		Language:      lang,
		Modules:       modules,
		FurtherTopics: further,
		CreatedAt:     g.now(),
	}
	if err := rm.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return rm, nil
}

func (g *Generator) roadmapModules(ctx context.Context, topic, lang string) ([]roadmap.Module, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeRoadmap)

	var out roadmapOutput
	req := llm.Request{
		System:      roadmapSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildRoadmapMessage(topic, lang)}},
		Schema:      RoadmapSchema,
		MaxTokens:   g.config.RoadmapMaxTokens,
		Temperature: g.config.Temperature,
	}
	if err := g.generate(ctx, req, &out); err != nil {
		return nil, err
	}

	modules := make([]roadmap.Module, 0, len(out.Modules))
	for _, m := range out.Modules {
		m.Title = strings.TrimSpace(m.Title)
		if m.Title == "" {
			continue
		}
		if m.VideoQuery == "" {
			m.VideoQuery = m.Title + " tutorial"
		}
		modules = append(modules, m)
	}
	if len(modules) > roadmap.MaxModules {
		modules = modules[:roadmap.MaxModules]
	}
	if len(modules) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, roadmap.ErrEmptyRoadmap)
	}
	if len(modules) < roadmap.MinModules {
		g.logger.Info("short roadmap accepted", zap.String("topic", topic), zap.Int("modules", len(modules)))
	}
	return modules, nil
}

// SuggestTopics returns autocompletions for a partially typed topic. Any
// failure yields an empty list.
func (g *Generator) SuggestTopics(ctx context.Context, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	return g.suggestions(llm.WithPurpose(ctx, llm.PurposeSuggestions),
		buildSuggestionsMessage(query, g.config.SuggestionCount), g.config.SuggestionCount)
}

// FurtherTopics returns topics to study after finishing topic. Any failure
// yields an empty list.
func (g *Generator) FurtherTopics(ctx context.Context, topic string) []string {
	return g.suggestions(llm.WithPurpose(ctx, llm.PurposeFurtherTopics),
		buildFurtherTopicsMessage(topic, g.config.FurtherTopicCount), g.config.FurtherTopicCount)
}

func (g *Generator) suggestions(ctx context.Context, msg string, limit int) []string {
	var out suggestionsOutput
	req := llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: msg}},
		Schema:      SuggestionsSchema,
		MaxTokens:   512,
		Temperature: g.config.Temperature,
	}
	if err := g.generate(ctx, req, &out); err != nil {
		g.logger.Debug("suggestions unavailable", zap.String("purpose", llm.PurposeFrom(ctx)), zap.Error(err))
		return nil
	}

	seen := make(map[string]bool, len(out.Suggestions))
	topics := make([]string, 0, len(out.Suggestions))
	for _, s := range out.Suggestions {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		topics = append(topics, s)
	}
	if limit > 0 && len(topics) > limit {
		topics = topics[:limit]
	}
	return topics
}

type quizOutput struct {
	Questions []struct {
		Question    string   `json:"question"`
		Options     []string `json:"options"`
		Answer      string   `json:"answer"`
		Explanation string   `json:"explanation"`
	} `json:"questions"`
}

// GenerateQuiz produces multiple-choice questions for a module. Questions
// without exactly four options, or whose answer matches none of them, are
// dropped. A quiz left empty is an error.
func (g *Generator) GenerateQuiz(ctx context.Context, m roadmap.Module) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	var out quizOutput
	req := llm.Request{
		System:      quizSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildQuizMessage(m, g.config.QuizQuestions)}},
		Schema:      QuizSchema,
		MaxTokens:   g.config.QuizMaxTokens,
		Temperature: g.config.Temperature,
	}
	if err := g.generate(ctx, req, &out); err != nil {
		return nil, err
	}

	questions := make([]quiz.Question, 0, len(out.Questions))
	for i, raw := range out.Questions {
		q := quiz.Question{
			Prompt:      strings.TrimSpace(raw.Question),
			Options:     raw.Options,
			Correct:     answerIndex(raw.Options, raw.Answer),
			Explanation: raw.Explanation,
		}
		if err := q.Validate(); err != nil {
			g.logger.Debug("dropping quiz question", zap.Int("index", i), zap.Error(err))
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, quiz.ErrNoQuestions)
	}
	return questions, nil
}

// answerIndex finds the option matching answer, ignoring case and
// surrounding whitespace. Returns -1 when nothing matches.
func answerIndex(options []string, answer string) int {
	answer = strings.TrimSpace(answer)
	for i, o := range options {
		if strings.EqualFold(strings.TrimSpace(o), answer) {
			return i
		}
	}
	return -1
}

// generate runs req and decodes the structured response into v.
func (g *Generator) generate(ctx context.Context, req llm.Request, v any) error {
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrGeneration, llm.PurposeFrom(ctx), err)
	}
	if err := resp.Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrGeneration, llm.PurposeFrom(ctx), err)
	}
	return nil
}
