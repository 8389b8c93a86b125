package openaichat

import (
	"context"
	_ "embed"
	"strings"

	"resume-screener/internal/ai"
	"resume-screener/internal/resume"
)

//go:embed gpt4_parse_prompt.md
var gpt4ParsePrompt string

//go:embed gpt4_score_prompt.md
var gpt4ScorePrompt string

//go:embed deepseek_parse_prompt.md
var deepseekParsePrompt string

//go:embed deepseek_score_prompt.md
var deepseekScorePrompt string

//go:embed llama_parse_prompt.md
var llamaParsePrompt string

//go:embed llama_score_prompt.md
var llamaScorePrompt string

// contentGenerator is implemented by Client and by test stubs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Backend runs parse and score prompts against a chat completion endpoint.
// The three supported model families share one code path; they differ only
// in prompt wording and in how many reasons survive the score decode.
type Backend struct {
	name        string
	generator   contentGenerator
	parsePrompt string
	scorePrompt string
	reasonLimit int
}

func NewGPT4Backend(generator contentGenerator) *Backend {
	return &Backend{
		name:        ai.BackendGPT4,
		generator:   generator,
		parsePrompt: gpt4ParsePrompt,
		scorePrompt: gpt4ScorePrompt,
	}
}

// NewDeepSeekBackend keeps only the top reasonLimit entries of each reasons
// list; DeepSeek tends to over-produce. Zero disables the cut.
func NewDeepSeekBackend(generator contentGenerator, reasonLimit int) *Backend {
	return &Backend{
		name:        ai.BackendDeepSeek,
		generator:   generator,
		parsePrompt: deepseekParsePrompt,
		scorePrompt: deepseekScorePrompt,
		reasonLimit: reasonLimit,
	}
}

func NewLlamaBackend(generator contentGenerator) *Backend {
	return &Backend{
		name:        ai.BackendLlama,
		generator:   generator,
		parsePrompt: llamaParsePrompt,
		scorePrompt: llamaScorePrompt,
	}
}

func (b *Backend) Name() string { return b.name }

func (b *Backend) Parse(ctx context.Context, resumeText string) (*resume.Structured, error) {
	prompt := strings.ReplaceAll(b.parsePrompt, "{{RESUME_TEXT}}", resumeText)

	raw, err := b.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, &resume.BackendInvocationError{Backend: b.name, Err: err}
	}

	return ai.DecodeStructured(b.name, raw)
}

func (b *Backend) Score(ctx context.Context, resumeText, jobDescription string) (*resume.Score, error) {
	prompt := strings.ReplaceAll(b.scorePrompt, "{{RESUME_TEXT}}", resumeText)
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", jobDescription)

	raw, err := b.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, &resume.BackendInvocationError{Backend: b.name, Err: err}
	}

	return ai.DecodeScore(b.name, raw, b.reasonLimit)
}
