// Package match implements the lexical position-match heuristic.
package match

import (
	"regexp"
	"strings"
)

var tokenSplitter = regexp.MustCompile(`[\s,/]+`)

// Positions reports whether the applied-for position shares at least one
// token with the job description. Tokens are compared by exact equality after
// lower-casing; substrings never count. Empty inputs never match.
func Positions(appliedPosition, jobDescription string) bool {
	if appliedPosition == "" || jobDescription == "" {
		return false
	}

	applied := tokenize(appliedPosition)
	if len(applied) == 0 {
		return false
	}

	for token := range tokenize(jobDescription) {
		if _, ok := applied[token]; ok {
			return true
		}
	}

	return false
}

func tokenize(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, token := range tokenSplitter.Split(strings.ToLower(s), -1) {
		if token == "" {
			continue
		}
		tokens[token] = struct{}{}
	}
	return tokens
}
