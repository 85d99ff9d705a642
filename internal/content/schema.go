package content

import "github.com/khalari/khalari/internal/llm"

// Schemas follow the strict structured-output subset: every property is
// required and no additional properties are allowed.

// RoadmapSchema is the structured output of GenerateRoadmap.
var RoadmapSchema = &llm.Schema{
	Name:        "learning-roadmap",
	Description: "A sequential learning roadmap of 5-7 modules",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"modules": map[string]any{
				"type":        "array",
				"description": "The learning modules, from fundamentals to advanced applications",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Concise title of the module",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "One sentence on what the learner will learn",
						},
						"concepts": map[string]any{
							"type":        "array",
							"description": "3-5 key concepts covered in the module",
							"items":       map[string]any{"type": "string"},
						},
						"videoQuery": map[string]any{
							"type":        "string",
							"description": "A concise YouTube search query for tutorials on these concepts",
						},
					},
					"required":             []any{"title", "description", "concepts", "videoQuery"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"modules"},
		"additionalProperties": false,
	},
}

// SuggestionsSchema is shared by topic autocompletion and further topics.
var SuggestionsSchema = &llm.Schema{
	Name:        "topic-suggestions",
	Description: "A short list of learning topic suggestions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"suggestions": map[string]any{
				"type":        "array",
				"description": "Concise topic names",
				"items":       map[string]any{"type": "string"},
			},
		},
		"required":             []any{"suggestions"},
		"additionalProperties": false,
	},
}

// QuizSchema is the structured output of GenerateQuiz.
var QuizSchema = &llm.Schema{
	Name:        "module-quiz",
	Description: "Multiple-choice questions with exactly 4 options each",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"options": map[string]any{
							"type":        "array",
							"description": "Exactly 4 possible answers",
							"items":       map[string]any{"type": "string"},
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The correct answer, exactly matching one of the options",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One sentence on why the answer is correct",
						},
					},
					"required":             []any{"question", "options", "answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// ResumeAnalysisSchema is the structured output of AnalyzeResume.
var ResumeAnalysisSchema = &llm.Schema{
	Name:        "resume-analysis",
	Description: "An ATS score and 3-4 actionable feedback points",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"atsScore": map[string]any{
				"type":        "integer",
				"description": "Estimated Applicant Tracking System score from 0 to 100",
			},
			"feedback": map[string]any{
				"type":        "array",
				"description": "3-4 specific, actionable improvements",
				"items":       map[string]any{"type": "string"},
			},
		},
		"required":             []any{"atsScore", "feedback"},
		"additionalProperties": false,
	},
}

// EnhancedResumeSchema is the structured output of EnhanceResume.
var EnhancedResumeSchema = &llm.Schema{
	Name:        "enhanced-resume",
	Description: "The full rewritten resume in markdown",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"enhancedMarkdown": map[string]any{
				"type":        "string",
				"description": "The complete resume rewritten in the original markdown layout",
			},
		},
		"required":             []any{"enhancedMarkdown"},
		"additionalProperties": false,
	},
}
