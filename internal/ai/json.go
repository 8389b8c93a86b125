package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"resume-screener/internal/resume"
)

// ExtractObject locates the first top-level JSON object in a model reply.
// Replies routinely arrive wrapped in code fences or surrounded by prose, and
// string values may themselves contain braces, so the scan tracks string
// boundaries and escapes instead of matching brackets naively.
func ExtractObject(raw string) (string, error) {
	cleaned := stripFences(strings.TrimSpace(raw))

	start := strings.IndexByte(cleaned, '{')
	if start == -1 {
		return "", errors.New("no JSON object found in response")
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(cleaned); i++ {
		c := cleaned[i]

		if escaped {
			escaped = false
			continue
		}

		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return cleaned[start : i+1], nil
				}
			}
		}
	}

	return "", errors.New("unterminated JSON object in response")
}

func stripFences(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")
	return strings.TrimSpace(raw)
}

// DecodeStructured turns a raw model reply into a normalized Structured
// resume. Missing fields are back-filled with zero values; only a reply with
// no decodable JSON object at all fails.
func DecodeStructured(backendName, raw string) (*resume.Structured, error) {
	data, err := decodeObject(backendName, raw)
	if err != nil {
		return nil, err
	}

	var structured resume.Structured
	if err := decodeInto(data, &structured); err != nil {
		return nil, &resume.ParseError{Backend: backendName, Err: err}
	}

	structured.Normalize()
	return &structured, nil
}

// DecodeScore turns a raw model reply into a validated Score. When
// reasonLimit is positive, each reason list is truncated to at most that many
// entries after validation.
func DecodeScore(backendName, raw string, reasonLimit int) (*resume.Score, error) {
	data, err := decodeObject(backendName, raw)
	if err != nil {
		return nil, err
	}

	var score resume.Score
	if err := decodeInto(data, &score); err != nil {
		return nil, &resume.ParseError{Backend: backendName, Err: err}
	}

	if err := score.Validate(); err != nil {
		return nil, err
	}

	if reasonLimit > 0 {
		if len(score.MatchReasons) > reasonLimit {
			score.MatchReasons = score.MatchReasons[:reasonLimit]
		}
		if len(score.MismatchReasons) > reasonLimit {
			score.MismatchReasons = score.MismatchReasons[:reasonLimit]
		}
	}

	return &score, nil
}

func decodeObject(backendName, raw string) (map[string]any, error) {
	object, err := ExtractObject(raw)
	if err != nil {
		return nil, &resume.ParseError{Backend: backendName, Err: err}
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(object), &data); err != nil {
		return nil, &resume.ParseError{Backend: backendName, Err: err}
	}

	return data, nil
}

func decodeInto(data map[string]any, target any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return fmt.Errorf("building decoder: %w", err)
	}

	return decoder.Decode(data)
}
