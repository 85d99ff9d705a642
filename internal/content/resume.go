package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/khalari/khalari/internal/llm"
)

// ResumeAnalysis is an ATS-style assessment of a resume.
type ResumeAnalysis struct {
	ATSScore int      `json:"atsScore"`
	Feedback []string `json:"feedback"`
}

// AnalyzeResume scores a markdown resume and lists improvements.
func (g *Generator) AnalyzeResume(ctx context.Context, markdown string) (*ResumeAnalysis, error) {
	if strings.TrimSpace(markdown) == "" {
		return nil, fmt.Errorf("%w: empty resume", ErrGeneration)
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeResumeAnalyze)

	var out ResumeAnalysis
	req := llm.Request{
		System:      resumeSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildAnalyzeMessage(markdown)}},
		Schema:      ResumeAnalysisSchema,
		MaxTokens:   g.config.ResumeMaxTokens,
		Temperature: 0.2,
	}
	if err := g.generate(ctx, req, &out); err != nil {
		return nil, err
	}

	out.ATSScore = min(max(out.ATSScore, 0), 100)
	if len(out.Feedback) > 4 {
		out.Feedback = out.Feedback[:4]
	}
	return &out, nil
}

type enhancedOutput struct {
	EnhancedMarkdown string `json:"enhancedMarkdown"`
}

// EnhanceResume rewrites a markdown resume incorporating feedback.
func (g *Generator) EnhanceResume(ctx context.Context, markdown string, feedback []string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", fmt.Errorf("%w: empty resume", ErrGeneration)
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeResumeEnhance)

	var out enhancedOutput
	req := llm.Request{
		System:      resumeSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildEnhanceMessage(markdown, feedback)}},
		Schema:      EnhancedResumeSchema,
		MaxTokens:   g.config.ResumeMaxTokens,
		Temperature: g.config.Temperature,
	}
	if err := g.generate(ctx, req, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.EnhancedMarkdown) == "" {
		return "", fmt.Errorf("%w: empty enhanced resume", ErrGeneration)
	}
	return out.EnhancedMarkdown, nil
}
