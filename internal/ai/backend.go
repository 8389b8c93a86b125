// Package ai defines the capability seam between the batch scheduler and the
// interchangeable model backends.
package ai

import (
	"context"

	"go.uber.org/zap"

	"resume-screener/internal/resume"
)

// Known backend identifiers.
const (
	BackendGemini   = "gemini"
	BackendGPT4     = "gpt4"
	BackendDeepSeek = "deepseek"
	BackendLlama    = "llama"

	// DefaultBackend is used when the caller supplies an unknown identifier.
	DefaultBackend = BackendGemini
)

// Backend is the uniform two-operation contract every model adapter
// implements. Callers select an adapter once, up front; nothing downstream
// may branch on which variant is active.
type Backend interface {
	// Name returns the backend identifier used in records and logs.
	Name() string
	// Parse structures raw resume text into typed fields. Fields the model
	// omits come back as zero values, never nil.
	Parse(ctx context.Context, resumeText string) (*resume.Structured, error)
	// Score judges the resume against a job description. Both reason lists
	// of the result are guaranteed non-empty.
	Score(ctx context.Context, resumeText, jobDescription string) (*resume.Score, error)
}

// NormalizeID maps a caller-supplied backend identifier onto a known one,
// falling back to the default for anything unrecognized.
func NormalizeID(id string, logger *zap.Logger) string {
	switch id {
	case BackendGemini, BackendGPT4, BackendDeepSeek, BackendLlama:
		return id
	default:
		if logger != nil && id != "" {
			logger.Warn("unknown backend identifier, falling back to default",
				zap.String("requested", id),
				zap.String("fallback", DefaultBackend),
			)
		}
		return DefaultBackend
	}
}
