package gemini

import (
	"context"
	_ "embed"
	"strings"

	"resume-screener/internal/ai"
	"resume-screener/internal/resume"
)

//go:embed parse_prompt.md
var parsePrompt string

//go:embed score_prompt.md
var scorePrompt string

// contentGenerator is implemented by Generator and by test stubs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Backend extracts structured resume data and scores via Gemini.
type Backend struct {
	generator contentGenerator
}

func NewBackend(generator contentGenerator) *Backend {
	return &Backend{generator: generator}
}

func (b *Backend) Name() string { return ai.BackendGemini }

// Parse extracts structured candidate data from raw resume text.
func (b *Backend) Parse(ctx context.Context, resumeText string) (*resume.Structured, error) {
	prompt := strings.ReplaceAll(parsePrompt, "{{RESUME_TEXT}}", resumeText)

	raw, err := b.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, &resume.BackendInvocationError{Backend: b.Name(), Err: err}
	}

	return ai.DecodeStructured(b.Name(), raw)
}

// Score rates the resume against the given job description.
func (b *Backend) Score(ctx context.Context, resumeText, jobDescription string) (*resume.Score, error) {
	prompt := strings.ReplaceAll(scorePrompt, "{{RESUME_TEXT}}", resumeText)
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", jobDescription)

	raw, err := b.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, &resume.BackendInvocationError{Backend: b.Name(), Err: err}
	}

	return ai.DecodeScore(b.Name(), raw, 0)
}
