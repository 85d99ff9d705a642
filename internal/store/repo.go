package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LearnerRecord is the stored form of the single local learner.
type LearnerRecord struct {
	Name               string
	Bio                string
	Phone              string
	PreferredLanguage  string
	CreatedAt          time.Time
	Balance            int
	CurrentStreak      int
	HighestStreak      int
	LastActivity       string // YYYY-MM-DD, empty when none
	BypassAttemptsUsed int
}

// LearnerRepo persists the learner profile.
type LearnerRepo interface {
	// Get returns the learner, or nil if none has been created yet.
	Get(ctx context.Context) (*LearnerRecord, error)

	// Save creates or replaces the learner.
	Save(ctx context.Context, rec LearnerRecord) error
}

// ActivityRecord is one day of learning activity.
type ActivityRecord struct {
	Day                string // YYYY-MM-DD
	TimeSpentSeconds   int64
	CompletedAnyModule bool
}

// ActivityRepo persists the per-day activity ledger.
type ActivityRepo interface {
	// Append merges rec into the stored entry for its day: time adds up and
	// the completion flag is sticky.
	Append(ctx context.Context, rec ActivityRecord) error

	// Since returns entries on or after day (YYYY-MM-DD), oldest first.
	// An empty day returns everything.
	Since(ctx context.Context, day string) ([]ActivityRecord, error)
}

// RoadmapModule is the stored form of one roadmap module.
type RoadmapModule struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Concepts    []string `json:"concepts"`
	VideoQuery  string   `json:"videoQuery"`
}

// RoadmapRecord is a stored roadmap with its progress.
type RoadmapRecord struct {
	ID            string
	Topic         string
	Language      string
	Modules       []RoadmapModule
	FurtherTopics []string
	Progress      []bool
	BonusAwarded  bool
	Active        bool
	CreatedAt     time.Time
}

// RoadmapRepo persists roadmaps. Exactly one roadmap is active at a time.
type RoadmapRepo interface {
	// Active returns the active roadmap, or nil if none.
	Active(ctx context.Context) (*RoadmapRecord, error)

	// Create stores rec as the new active roadmap and deactivates the rest.
	Create(ctx context.Context, rec RoadmapRecord) error

	// SaveProgress updates the completion vector of roadmap id.
	SaveProgress(ctx context.Context, id string, progress []bool, bonusAwarded bool) error

	// List returns roadmaps newest first.
	List(ctx context.Context, opts QueryOpts) ([]RoadmapRecord, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// PurchaseData describes a confirmed diamond purchase.
type PurchaseData struct {
	PaymentID   string
	PackID      string
	Diamonds    int
	AmountPaise int64
}

// PurchaseRecord is a stored purchase.
type PurchaseRecord struct {
	Sequence  int64
	Timestamp time.Time
	PurchaseData
}

// JobApplicationRecord is a stored job application.
type JobApplicationRecord struct {
	JobID     string
	Sequence  int64
	Timestamp time.Time
}

// ChatMessageData is one message of an assistant chat thread.
type ChatMessageData struct {
	ThreadID string
	Role     string
	Content  string
}

// ChatMessageRecord is a stored chat message.
type ChatMessageRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	ChatMessageData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// AppendPurchase records a purchase. It reports false when the payment
	// ID was already recorded.
	AppendPurchase(ctx context.Context, data PurchaseData) (bool, error)
	QueryPurchases(ctx context.Context, opts QueryOpts) ([]PurchaseRecord, error)

	// AppendJobApplication records an application; repeats are ignored.
	AppendJobApplication(ctx context.Context, jobID string) error
	QueryJobApplications(ctx context.Context, opts QueryOpts) ([]JobApplicationRecord, error)

	AppendChatMessage(ctx context.Context, data ChatMessageData) error
	ChatThread(ctx context.Context, threadID string, opts QueryOpts) ([]ChatMessageRecord, error)
	LatestChatThread(ctx context.Context) (string, error)
}

// StudyGroupRecord is a stored study group.
type StudyGroupRecord struct {
	ID          string
	Name        string
	Topic       string
	Description string
	Members     int
	Joined      bool
	CreatedAt   time.Time
}

// CommunityRepo persists study groups and the learner's memberships.
type CommunityRepo interface {
	// Upsert stores g, replacing an existing group with the same ID.
	Upsert(ctx context.Context, g StudyGroupRecord) error

	// Join marks the group joined and bumps its member count once.
	Join(ctx context.Context, id string) (bool, error)

	// Groups returns every stored group, newest first.
	Groups(ctx context.Context) ([]StudyGroupRecord, error)
}
