package cmd

import (
	"errors"
	"fmt"

	"github.com/khalari/khalari/internal/career"
	"github.com/khalari/khalari/internal/config"
	"github.com/khalari/khalari/internal/content"
	"github.com/khalari/khalari/internal/engine"
	"github.com/khalari/khalari/internal/llm"
	"github.com/khalari/khalari/internal/logging"
	"github.com/khalari/khalari/internal/store"
	"github.com/khalari/khalari/internal/video"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is everything a command needs, opened once per invocation.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
	svc    *engine.Service

	// gen is nil when no LLM provider is configured; genErr says why.
	gen    *content.Generator
	genErr error
}

// loadConfig reads the config and applies the persistent flags. console
// echoes logs to stderr and is off for the TUI, which owns the terminal.
func loadConfig(cmd *cobra.Command, console bool) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{File: file})
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	if dbPath != "" {
		cfg.DB.Path = dbPath
	} else if err := store.EnsureDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Log.Level = "debug"
		cfg.Log.Console = true
	}
	if !console {
		cfg.Log.Console = false
	}
	return cfg, nil
}

// openEnv loads config, opens the store and restores the engine state.
// withContent also builds the content generator when a provider is set up.
func openEnv(cmd *cobra.Command, console, withContent bool) (*env, error) {
	cfg, err := loadConfig(cmd, console)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	st, err := store.Open(cfg.DB.Path)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	svc := engine.NewService(engine.Repos{
		Learners: st.LearnerRepo(),
		Activity: st.ActivityRepo(),
		Roadmaps: st.RoadmapRepo(),
		Events:   st.EventRepo(),
	}, logger)
	if err := svc.Load(cmd.Context()); err != nil {
		st.Close()
		_ = logger.Sync()
		return nil, fmt.Errorf("load learner: %w", err)
	}

	e := &env{cfg: cfg, logger: logger, store: st, svc: svc}
	if withContent {
		provider, err := llm.NewProvider(cmd.Context(), cfg.LLM, st.EventRepo(), logger)
		if err != nil {
			e.genErr = err
			logger.Info("content generation unavailable", zap.Error(err))
		} else {
			e.gen = content.New(provider, content.DefaultConfig(), logger)
		}
	}
	return e, nil
}

// generator returns the content generator or a user-facing error.
func (e *env) generator() (*content.Generator, error) {
	if e.gen != nil {
		return e.gen, nil
	}
	if errors.Is(e.genErr, llm.ErrNotConfigured) {
		return nil, fmt.Errorf("%w: set an API key (e.g. ANTHROPIC_API_KEY) or llm.provider in the config", llm.ErrNotConfigured)
	}
	return nil, e.genErr
}

func (e *env) videos() video.Searcher {
	return video.New(e.cfg.Video, e.logger)
}

func (e *env) jobs() *career.Board {
	return career.NewBoard(e.store.EventRepo(), e.logger)
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("close store", zap.Error(err))
	}
	_ = e.logger.Sync()
}

// requireOnboarded fails commands that act on the learner before a
// profile exists.
func (e *env) requireOnboarded() error {
	if !e.svc.Onboarded() {
		return errors.New("no learner profile yet: run `khalari onboard` or start `khalari`")
	}
	return nil
}
