// Package studyguide contains the pure business logic for discussion
// materials. This file parses provider responses.
package studyguide

import (
	"encoding/json"
	"strings"
)

// ParseQuestions extracts question strings from a model response. The
// provider is asked for a JSON array; fenced code blocks and plain-text
// lists are handled as fallbacks. At most MaxQuestionsPerType questions
// are returned.
func ParseQuestions(raw string) []string {
	text := stripFence(strings.TrimSpace(raw))
	if text == "" {
		return nil
	}

	var questions []string
	if err := json.Unmarshal([]byte(text), &questions); err == nil {
		return Clamp(questions)
	}

	// Plain-text fallback: one question per line, short noise skipped.
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = trimListMarker(strings.TrimSpace(line))
		if len(line) > 10 {
			lines = append(lines, line)
		}
	}
	return Clamp(lines)
}

// stripFence removes a surrounding markdown code fence if present.
func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// trimListMarker strips leading bullets and "1." style numbering.
func trimListMarker(line string) string {
	line = strings.TrimLeft(line, "-*• ")
	if i := strings.IndexByte(line, '.'); i > 0 && i <= 3 && isDigits(line[:i]) {
		return strings.TrimSpace(line[i+1:])
	}
	return strings.TrimSpace(line)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
