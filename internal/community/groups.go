// Package community manages study groups: a seeded directory the learner
// can join plus groups the learner creates.
package community

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khalari/khalari/internal/store"
)

var (
	ErrUnknownGroup = errors.New("unknown study group")
	ErrInvalidGroup = errors.New("invalid study group")
)

// Group is a study group as shown to the learner.
type Group struct {
	ID          string
	Name        string
	Topic       string
	Description string
	Members     int
	Joined      bool
	CreatedAt   time.Time
}

// Directory holds the groups every install starts with.
var Directory = []Group{
	{ID: "sg-1", Name: "ML Pioneers", Topic: "Machine Learning", Members: 24,
		Description: "Exploring the frontiers of machine learning, from neural networks to reinforcement learning."},
	{ID: "sg-2", Name: "React Enthusiasts", Topic: "ReactJS", Members: 42,
		Description: "All things React: hooks, state management and the latest ecosystem tools."},
	{ID: "sg-3", Name: "Python for Data Science", Topic: "Python", Members: 58,
		Description: "Pandas, NumPy, Matplotlib and the rest of the Python data stack."},
	{ID: "sg-4", Name: "Design Thinkers", Topic: "UX/UI Design", Members: 15,
		Description: "User-centered design, prototyping and usability testing."},
	{ID: "sg-5", Name: "LeetCode Challengers", Topic: "Algorithms & Data Structures", Members: 78,
		Description: "Daily problem solving and interview prep."},
	{ID: "sg-6", Name: "AWS Cloud Architects", Topic: "Cloud Computing", Members: 33,
		Description: "Scalable, resilient systems on Amazon Web Services."},
}

// Listing splits groups by membership.
type Listing struct {
	Mine   []Group
	Others []Group
}

// Service reads and updates study groups.
type Service struct {
	repo   store.CommunityRepo
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a Service. logger may be nil.
func NewService(repo store.CommunityRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger.Named("community"), now: time.Now}
}

// Seed stores the directory groups that are not stored yet. Existing groups
// keep their membership state.
func (s *Service) Seed(ctx context.Context) error {
	stored, err := s.repo.Groups(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(stored))
	for _, g := range stored {
		have[g.ID] = true
	}
	for _, g := range Directory {
		if have[g.ID] {
			continue
		}
		if err := s.repo.Upsert(ctx, toRecord(g)); err != nil {
			return err
		}
	}
	return nil
}

// List returns all groups, newest first, split into joined and not joined.
func (s *Service) List(ctx context.Context) (Listing, error) {
	if err := s.Seed(ctx); err != nil {
		return Listing{}, err
	}
	recs, err := s.repo.Groups(ctx)
	if err != nil {
		return Listing{}, err
	}
	var l Listing
	for _, r := range recs {
		g := fromRecord(r)
		if g.Joined {
			l.Mine = append(l.Mine, g)
		} else {
			l.Others = append(l.Others, g)
		}
	}
	return l, nil
}

// Join adds the learner to a group. It reports false when already a member.
func (s *Service) Join(ctx context.Context, id string) (bool, error) {
	if err := s.Seed(ctx); err != nil {
		return false, err
	}
	joined, err := s.repo.Join(ctx, id)
	if err != nil {
		return false, err
	}
	if joined {
		s.logger.Info("joined study group", zap.String("group_id", id))
		return true, nil
	}
	recs, err := s.repo.Groups(ctx)
	if err != nil {
		return false, err
	}
	for _, r := range recs {
		if r.ID == id {
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownGroup, id)
}

// Create stores a new group with the learner as its only member.
func (s *Service) Create(ctx context.Context, name, topic, description string) (Group, error) {
	name = strings.TrimSpace(name)
	topic = strings.TrimSpace(topic)
	if name == "" || topic == "" {
		return Group{}, fmt.Errorf("%w: name and topic are required", ErrInvalidGroup)
	}
	g := Group{
		ID:          "sg-" + uuid.NewString(),
		Name:        name,
		Topic:       topic,
		Description: strings.TrimSpace(description),
		Members:     1,
		Joined:      true,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Upsert(ctx, toRecord(g)); err != nil {
		return Group{}, err
	}
	s.logger.Info("created study group", zap.String("group_id", g.ID), zap.String("topic", topic))
	return g, nil
}

func toRecord(g Group) store.StudyGroupRecord {
	return store.StudyGroupRecord{
		ID: g.ID, Name: g.Name, Topic: g.Topic, Description: g.Description,
		Members: g.Members, Joined: g.Joined, CreatedAt: g.CreatedAt,
	}
}

func fromRecord(r store.StudyGroupRecord) Group {
	return Group{
		ID: r.ID, Name: r.Name, Topic: r.Topic, Description: r.Description,
		Members: r.Members, Joined: r.Joined, CreatedAt: r.CreatedAt,
	}
}
