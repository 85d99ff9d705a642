package content

// Config controls generation budgets.
type Config struct {
	// QuizQuestions is the number of questions requested per quiz.
	QuizQuestions int

	// SuggestionCount is the number of topic autocompletions requested.
	SuggestionCount int

	// FurtherTopicCount is the number of follow-up topics requested.
	FurtherTopicCount int

	RoadmapMaxTokens int
	QuizMaxTokens    int
	ResumeMaxTokens  int
	ChatMaxTokens    int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// ChatHistory caps how many prior chat messages are sent.
	ChatHistory int
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		QuizQuestions:     15,
		SuggestionCount:   4,
		FurtherTopicCount: 3,
		RoadmapMaxTokens:  4096,
		QuizMaxTokens:     8192,
		ResumeMaxTokens:   4096,
		ChatMaxTokens:     1024,
		Temperature:       0.7,
		ChatHistory:       20,
	}
}
