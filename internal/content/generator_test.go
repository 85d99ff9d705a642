package content

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/khalari/khalari/internal/llm"
	"github.com/khalari/khalari/internal/roadmap"
)

const roadmapJSON = `{"modules":[
 {"title":"Syntax","description":"Basics.","concepts":["vars","funcs"],"videoQuery":"go syntax"},
 {"title":"Types","description":"Types.","concepts":["structs"],"videoQuery":"go types"},
 {"title":"Slices","description":"Slices.","concepts":["append"],"videoQuery":""},
 {"title":"Maps","description":"Maps.","concepts":["hash"],"videoQuery":"go maps"},
 {"title":"Goroutines","description":"Concurrency.","concepts":["go"],"videoQuery":"goroutines"}
]}`

func routed(schema *llm.Schema, body string) (string, llm.MockResponse) {
	return schema.Name, llm.MockResponse{Content: json.RawMessage(body)}
}

func newGenerator(mock *llm.MockProvider) *Generator {
	return New(mock, DefaultConfig(), nil)
}

func TestGenerateRoadmap(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Route(routed(RoadmapSchema, roadmapJSON))
	mock.Route(routed(SuggestionsSchema, `{"suggestions":["Generics","Concurrency patterns","generics","Profiling"]}`))

	rm, err := newGenerator(mock).GenerateRoadmap(context.Background(), "  Go  ", "hi")
	if err != nil {
		t.Fatalf("GenerateRoadmap: %v", err)
	}
	if rm.Topic != "Go" || rm.Language != "hi" {
		t.Fatalf("topic/lang = %q/%q", rm.Topic, rm.Language)
	}
	if rm.ID == "" || rm.CreatedAt.IsZero() {
		t.Fatal("expected id and creation time")
	}
	if rm.Len() != 5 {
		t.Fatalf("modules = %d, want 5", rm.Len())
	}
	if rm.Modules[2].VideoQuery != "Slices tutorial" {
		t.Fatalf("empty video query should default, got %q", rm.Modules[2].VideoQuery)
	}
	if len(rm.FurtherTopics) != 3 || rm.FurtherTopics[1] != "Concurrency patterns" {
		t.Fatalf("further topics = %v", rm.FurtherTopics)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("calls = %d, want 2", mock.CallCount())
	}
	for _, c := range mock.Calls {
		if c.Schema == RoadmapSchema && !strings.Contains(c.Messages[0].Content, "Hindi") {
			t.Fatalf("roadmap prompt should name the language: %q", c.Messages[0].Content)
		}
	}
}

func TestGenerateRoadmap_FurtherTopicsFailureDegrades(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Route(routed(RoadmapSchema, roadmapJSON))
	mock.Route(SuggestionsSchema.Name, llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})

	rm, err := newGenerator(mock).GenerateRoadmap(context.Background(), "Go", "en")
	if err != nil {
		t.Fatalf("GenerateRoadmap: %v", err)
	}
	if len(rm.FurtherTopics) != 0 {
		t.Fatalf("further topics = %v, want empty", rm.FurtherTopics)
	}
}

func TestGenerateRoadmap_Failure(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Route(RoadmapSchema.Name, llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	mock.Route(routed(SuggestionsSchema, `{"suggestions":["Generics"]}`))

	_, err := newGenerator(mock).GenerateRoadmap(context.Background(), "Go", "en")
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestGenerateRoadmap_Truncates(t *testing.T) {
	var mods []string
	for i := 0; i < 9; i++ {
		mods = append(mods, `{"title":"M","description":"d","concepts":[],"videoQuery":"q"}`)
	}
	mock := llm.NewMockProvider()
	mock.Route(routed(RoadmapSchema, `{"modules":[`+strings.Join(mods, ",")+`]}`))
	mock.Route(routed(SuggestionsSchema, `{"suggestions":[]}`))

	rm, err := newGenerator(mock).GenerateRoadmap(context.Background(), "Go", "en")
	if err != nil {
		t.Fatalf("GenerateRoadmap: %v", err)
	}
	if rm.Len() != roadmap.MaxModules {
		t.Fatalf("modules = %d, want %d", rm.Len(), roadmap.MaxModules)
	}
}

func TestGenerateRoadmap_EmptyTopic(t *testing.T) {
	mock := llm.NewMockProvider()
	if _, err := newGenerator(mock).GenerateRoadmap(context.Background(), " ", "en"); !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatal("no request expected for an empty topic")
	}
}

func TestSuggestTopics(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Route(routed(SuggestionsSchema, `{"suggestions":["Python basics","Python for data","Python web","Python testing","Python async"]}`))

	got := newGenerator(mock).SuggestTopics(context.Background(), "pyth")
	if len(got) != 4 {
		t.Fatalf("suggestions = %v, want 4", got)
	}

	// No canned response: failure degrades to empty.
	if got := newGenerator(mock).SuggestTopics(context.Background(), "pyth"); len(got) != 0 {
		t.Fatalf("expected empty suggestions on failure, got %v", got)
	}
}

func TestGenerateQuiz(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Route(routed(QuizSchema, `{"questions":[
	 {"question":"What starts a goroutine?","options":["go","run","spawn","thread"],"answer":" Go ","explanation":"The go keyword."},
	 {"question":"Three options","options":["a","b","c"],"answer":"a","explanation":""},
	 {"question":"No match","options":["a","b","c","d"],"answer":"e","explanation":""},
	 {"question":"Closes a channel?","options":["end","close","stop","done"],"answer":"close","explanation":""}
	]}`))

	m := roadmap.Module{Title: "Goroutines", Concepts: []string{"go", "channels"}}
	qs, err := newGenerator(mock).GenerateQuiz(context.Background(), m)
	if err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("questions = %d, want 2", len(qs))
	}
	if qs[0].Correct != 0 || qs[1].Correct != 1 {
		t.Fatalf("correct indices = %d, %d", qs[0].Correct, qs[1].Correct)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "channels") {
		t.Fatal("quiz prompt should list the module concepts")
	}
}

func TestGenerateQuiz_AllDropped(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Route(routed(QuizSchema, `{"questions":[{"question":"q","options":["a","b","c","d"],"answer":"x","explanation":""}]}`))

	_, err := newGenerator(mock).GenerateQuiz(context.Background(), roadmap.Module{Title: "M"})
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestAnalyzeResume(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Route(routed(ResumeAnalysisSchema, `{"atsScore":130,"feedback":["a","b","c","d","e"]}`))

	a, err := newGenerator(mock).AnalyzeResume(context.Background(), "# Jane Doe\n\nGo developer")
	if err != nil {
		t.Fatalf("AnalyzeResume: %v", err)
	}
	if a.ATSScore != 100 {
		t.Fatalf("score = %d, want clamped 100", a.ATSScore)
	}
	if len(a.Feedback) != 4 {
		t.Fatalf("feedback = %d, want 4", len(a.Feedback))
	}
}

func TestEnhanceResume(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Route(routed(EnhancedResumeSchema, `{"enhancedMarkdown":"# Jane Doe\n\nSenior Go developer"}`))

	md, err := newGenerator(mock).EnhanceResume(context.Background(), "# Jane Doe", []string{"Quantify impact"})
	if err != nil {
		t.Fatalf("EnhanceResume: %v", err)
	}
	if !strings.HasPrefix(md, "# Jane Doe") {
		t.Fatalf("markdown = %q", md)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "- Quantify impact") {
		t.Fatal("enhance prompt should list feedback")
	}
}

func TestChat(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("  A slice is a view over an array.  "))

	history := []ChatMessage{
		{FromUser: false, Text: "Hi! I'm Kael."},
		{FromUser: true, Text: "What is a slice?"},
	}
	reply, err := newGenerator(mock).Chat(context.Background(), history)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "A slice is a view over an array." {
		t.Fatalf("reply = %q", reply)
	}
	if msgs := mock.Calls[0].Messages; len(msgs) != 1 || msgs[0].Role != llm.RoleUser {
		t.Fatalf("leading assistant turn should be dropped: %+v", msgs)
	}

	if _, err := newGenerator(mock).Chat(context.Background(), history[:1]); !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration for history ending with assistant, got %v", err)
	}
}
