package resume

import (
	"errors"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		format Format
		ok     bool
	}{
		{"cv.pdf", FormatPDF, true},
		{"cv.PDF", FormatPDF, true},
		{"letter.docx", FormatDOCX, true},
		{"scan.png", FormatPNG, true},
		{"scan.jpg", FormatJPG, true},
		{"scan.JPEG", FormatJPEG, true},
		{"notes.txt", "", false},
		{"archive.zip", "", false},
		{"noext", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, err := DetectFormat(tt.path)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if format != tt.format {
					t.Fatalf("expected %s, got %s", tt.format, format)
				}
				return
			}

			var unsupported *UnsupportedFormatError
			if !errors.As(err, &unsupported) {
				t.Fatalf("expected UnsupportedFormatError, got %v", err)
			}
		})
	}
}

func TestNewDocumentDefaultsFileName(t *testing.T) {
	doc, err := NewDocument("", "/tmp/uploads/jane-doe.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.FileName != "jane-doe.pdf" {
		t.Fatalf("expected base name fallback, got %q", doc.FileName)
	}
}

func TestStructuredNormalizeBackfillsCollections(t *testing.T) {
	s := &Structured{
		Experience: []ExperienceEntry{
			{Company: "Acme"},
			{Company: "Globex", Responsibilities: []string{"ship"}},
		},
	}
	s.Normalize()

	if s.Experience[0].Responsibilities == nil {
		t.Fatal("expected responsibilities to be back-filled")
	}
	if len(s.Experience[1].Responsibilities) != 1 {
		t.Fatal("expected existing responsibilities to be preserved")
	}

	empty := &Structured{}
	empty.Normalize()
	if empty.Experience == nil {
		t.Fatal("expected experience to be back-filled")
	}
}

func TestScoreValidate(t *testing.T) {
	t.Parallel()

	valid := &Score{
		AIScore:         80,
		MatchReasons:    []string{"relevant stack"},
		MismatchReasons: []string{"missing certifications"},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missingMatch := &Score{MismatchReasons: []string{"gap"}}
	var vErr *ScoreValidationError
	if err := missingMatch.Validate(); !errors.As(err, &vErr) || vErr.Field != "matchReasons" {
		t.Fatalf("expected matchReasons validation error, got %v", err)
	}

	missingMismatch := &Score{MatchReasons: []string{"fit"}}
	if err := missingMismatch.Validate(); !errors.As(err, &vErr) || vErr.Field != "mismatchReasons" {
		t.Fatalf("expected mismatchReasons validation error, got %v", err)
	}
}
