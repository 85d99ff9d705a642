package content

import (
	"fmt"
	"strings"

	"github.com/khalari/khalari/internal/learner"
	"github.com/khalari/khalari/internal/roadmap"
)

const roadmapSystemPrompt = `You design learning roadmaps for beginners aged 18 to 35.

Rules:
- Keep the tone encouraging, modern and clear.
- Break the topic into 5-7 logical, sequential modules, flowing from fundamental principles to more advanced applications.
- Each module has a concise title, a one-sentence description, 3-5 key concepts and a short YouTube search query that finds tutorial videos for those concepts.`

const quizSystemPrompt = `You write multiple-choice quizzes for beginners who have just studied a topic.

Rules:
- Every question has exactly 4 distinct options and exactly one correct answer.
- The answer field must repeat the text of the correct option exactly.
- Distractors should reflect common misconceptions, not obviously wrong values.
- Do not repeat questions.`

const resumeSystemPrompt = `You are an expert career coach and an Applicant Tracking System (ATS).`

const chatSystemPrompt = `You are Kael, a friendly and encouraging study assistant for Khalari.
- Keep responses concise, conversational and easy to understand.
- Detect the language of the user's last message and reply in that language.
- Help with learning questions: explain concepts, answer questions about study topics, give learning advice.
- Politely decline questions unrelated to learning or education.`

func languageInstruction(code string) string {
	if code == "" || code == "en" {
		return "Write in English."
	}
	return fmt.Sprintf("Write all titles, descriptions, concepts and search queries in %s.", learner.LanguageName(code))
}

func buildRoadmapMessage(topic, lang string) string {
	return fmt.Sprintf("Create a step-by-step learning roadmap on %q. %s", topic, languageInstruction(lang))
}

func buildSuggestionsMessage(query string, n int) string {
	return fmt.Sprintf("Based on the input %q, suggest %d relevant and interesting learning topics that complete it. Keep them concise.", query, n)
}

func buildFurtherTopicsMessage(topic string, n int) string {
	return fmt.Sprintf("A learner has just completed a roadmap for %q. Suggest %d related or more advanced topics to learn next.", topic, n)
}

func buildQuizMessage(m roadmap.Module, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", m.Title)
	if m.Description != "" {
		fmt.Fprintf(&b, "Summary: %s\n", m.Description)
	}
	fmt.Fprintf(&b, "Concepts: %s\n", strings.Join(m.Concepts, ", "))
	fmt.Fprintf(&b, "Questions: %d\n", n)
	return b.String()
}

func buildAnalyzeMessage(resume string) string {
	return "Analyze the following resume. Estimate an ATS score between 0 and 100 based on keyword optimization, structure, clarity and impact, and give 3-4 specific, actionable feedback points.\n\nResume:\n---\n" +
		resume + "\n---"
}

func buildEnhanceMessage(resume string, feedback []string) string {
	var b strings.Builder
	b.WriteString("Rewrite and enhance the following resume using the feedback. Improve clarity, impact and keyword relevance. Return a complete resume in the same markdown format.\n\n")
	b.WriteString("Original resume:\n---\n")
	b.WriteString(resume)
	b.WriteString("\n---\n\nFeedback to incorporate:\n")
	for _, f := range feedback {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	return b.String()
}
