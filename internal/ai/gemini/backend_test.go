package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-screener/internal/resume"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestParseSubstitutesResumeText(t *testing.T) {
	stub := &stubGenerator{response: `{"fullName": "Ada Lovelace"}`}
	backend := NewBackend(stub)

	parsed, err := backend.Parse(context.Background(), "Ada Lovelace, analyst engine programmer")
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", parsed.FullName)
	assert.Contains(t, stub.lastPrompt, "Ada Lovelace, analyst engine programmer")
	assert.False(t, strings.Contains(stub.lastPrompt, "{{RESUME_TEXT}}"))
}

func TestParseGeneratorFailure(t *testing.T) {
	stub := &stubGenerator{err: errors.New("quota exceeded")}
	backend := NewBackend(stub)

	_, err := backend.Parse(context.Background(), "text")
	require.Error(t, err)

	var invErr *resume.BackendInvocationError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, "gemini", invErr.Backend)
}

func TestScoreSubstitutesBothPlaceholders(t *testing.T) {
	stub := &stubGenerator{response: "```json\n" + `{
		"aiScore": 88,
		"positionMatch": true,
		"matchReasons": ["strong Go background"],
		"mismatchReasons": ["no kubernetes exposure"]
	}` + "\n```"}
	backend := NewBackend(stub)

	score, err := backend.Score(context.Background(), "resume body", "Senior Go Engineer")
	require.NoError(t, err)

	assert.Equal(t, 88, score.AIScore)
	assert.True(t, score.PositionMatch)
	assert.Contains(t, stub.lastPrompt, "resume body")
	assert.Contains(t, stub.lastPrompt, "Senior Go Engineer")
	assert.False(t, strings.Contains(stub.lastPrompt, "{{JOB_DESCRIPTION}}"))
}

func TestScoreRejectsMissingReasons(t *testing.T) {
	stub := &stubGenerator{response: `{"aiScore": 40, "positionMatch": false, "matchReasons": [], "mismatchReasons": []}`}
	backend := NewBackend(stub)

	_, err := backend.Score(context.Background(), "resume body", "position")
	require.Error(t, err)

	var valErr *resume.ScoreValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestBackendName(t *testing.T) {
	assert.Equal(t, "gemini", NewBackend(&stubGenerator{}).Name())
}
