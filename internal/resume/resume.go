package resume

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the on-disk encoding of an uploaded resume.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatPNG  Format = "png"
	FormatJPG  Format = "jpg"
	FormatJPEG Format = "jpeg"
)

// Document is one uploaded resume file with a known format. The file at Path
// is owned by exactly one batch run and is removed once processing finishes,
// whether it succeeded or not.
type Document struct {
	FileName string
	Path     string
	Format   Format
}

// DetectFormat maps a file path to its resume format based on the extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".png":
		return FormatPNG, nil
	case ".jpg":
		return FormatJPG, nil
	case ".jpeg":
		return FormatJPEG, nil
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
}

// NewDocument builds a Document from a stored file path, failing for
// unsupported extensions.
func NewDocument(fileName, path string) (Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Document{}, err
	}

	if strings.TrimSpace(fileName) == "" {
		fileName = filepath.Base(path)
	}

	return Document{FileName: fileName, Path: path, Format: format}, nil
}

// Education is the single highest qualification extracted from a resume.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// ExperienceEntry is one job in the work history, in resume order.
type ExperienceEntry struct {
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
}

// Structured is the normalized field extraction of a resume's content as
// returned by an AI backend's parse operation.
type Structured struct {
	FullName       string            `json:"fullName"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	PostAppliedFor string            `json:"postAppliedFor"`
	Education      Education         `json:"education"`
	Experience     []ExperienceEntry `json:"experience"`
}

// Normalize back-fills missing collections so that no field of the structure
// is ever nil. Backends tolerate arbitrarily incomplete model output; absent
// fields become their zero values instead of failing the document.
func (s *Structured) Normalize() {
	if s.Experience == nil {
		s.Experience = []ExperienceEntry{}
	}
	for i := range s.Experience {
		if s.Experience[i].Responsibilities == nil {
			s.Experience[i].Responsibilities = []string{}
		}
	}
}

// Score is an AI backend's judgment of resume-to-job fit.
type Score struct {
	AIScore         int      `json:"aiScore"`
	PositionMatch   bool     `json:"positionMatch"`
	MatchReasons    []string `json:"matchReasons"`
	MismatchReasons []string `json:"mismatchReasons"`
}

// Validate enforces that both reason lists carry at least one entry. A
// syntactically valid reply without reasons is rejected rather than silently
// accepted.
func (s *Score) Validate() error {
	if len(s.MatchReasons) == 0 {
		return &ScoreValidationError{Field: "matchReasons"}
	}
	if len(s.MismatchReasons) == 0 {
		return &ScoreValidationError{Field: "mismatchReasons"}
	}
	return nil
}

// TotalExperience is the normalized sum of all experience durations.
type TotalExperience struct {
	Years     int    `json:"years"`
	Months    int    `json:"months"`
	Formatted string `json:"formatted"`
}

// Record is the final per-document result: structured fields, the derived
// experience total and the scoring outcome, when a job description was
// supplied.
type Record struct {
	FileName string `json:"fileName"`
	Structured
	TotalExperience TotalExperience `json:"totalExperience"`
	AIScore         int             `json:"aiScore"`
	PositionMatch   bool            `json:"positionMatch"`
	MatchReasons    []string        `json:"matchReasons,omitempty"`
	MismatchReasons []string        `json:"mismatchReasons,omitempty"`
	ModelType       string          `json:"modelType"`
}

// ProcessingError reports a single document's failure. A document yields
// either a Record or a ProcessingError, never both.
type ProcessingError struct {
	FileName string `json:"fileName"`
	Message  string `json:"error"`
}

func (e ProcessingError) String() string {
	return fmt.Sprintf("%s: %s", e.FileName, e.Message)
}
