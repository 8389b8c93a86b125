package ai

import (
	"testing"

	"go.uber.org/zap"
)

func TestNormalizeID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{BackendGemini, BackendGemini},
		{BackendGPT4, BackendGPT4},
		{BackendDeepSeek, BackendDeepSeek},
		{BackendLlama, BackendLlama},
		{"", DefaultBackend},
		{"claude", DefaultBackend},
		{"GEMINI", DefaultBackend},
	}

	for _, tt := range tests {
		if got := NormalizeID(tt.in, zap.NewNop()); got != tt.want {
			t.Fatalf("NormalizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
