// Package roadmap models a generated learning roadmap and the unlock state
// machine that gates progress through its modules.
package roadmap

import (
	"errors"
	"fmt"
	"time"
)

// Size bounds requested from the content generator.
const (
	MinModules = 5
	MaxModules = 7
)

var (
	// ErrModuleIndex is returned for an index outside the active roadmap.
	ErrModuleIndex = errors.New("module index out of range")

	// ErrModuleLocked is returned when acting on a module whose predecessor
	// is not completed.
	ErrModuleLocked = errors.New("module is locked")

	// ErrModuleCompleted is returned when bypassing a module that is
	// already completed.
	ErrModuleCompleted = errors.New("module is already completed")

	// ErrEmptyRoadmap is returned for a roadmap without modules.
	ErrEmptyRoadmap = errors.New("roadmap has no modules")
)

// Module is one tile of learning content.
type Module struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Concepts    []string `json:"concepts"`
	VideoQuery  string   `json:"videoQuery"`
}

// Roadmap is an ordered list of modules for one topic. It is immutable once
// created; changing it means generating a new one.
type Roadmap struct {
	ID            string
	Topic         string
	Language      string // content language code, e.g. "en"
	Modules       []Module
	FurtherTopics []string
	CreatedAt     time.Time
}

// Validate checks that the roadmap can back a progress tracker.
func (r *Roadmap) Validate() error {
	if len(r.Modules) == 0 {
		return ErrEmptyRoadmap
	}
	for i, m := range r.Modules {
		if m.Title == "" {
			return fmt.Errorf("module %d: empty title", i)
		}
	}
	return nil
}

// Module returns the module at index i.
func (r *Roadmap) Module(i int) (Module, error) {
	if i < 0 || i >= len(r.Modules) {
		return Module{}, fmt.Errorf("%w: %d", ErrModuleIndex, i)
	}
	return r.Modules[i], nil
}

// Len returns the number of modules.
func (r *Roadmap) Len() int {
	return len(r.Modules)
}
