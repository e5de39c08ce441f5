package helpers

import (
	"strings"
)

// LastField returns the trimmed substring after the last occurrence of sep.
// If sep does not occur, the whole trimmed string is returned.
func LastField(target string, sep string) string {
	idx := strings.LastIndex(target, sep)
	if idx < 0 {
		return strings.TrimSpace(target)
	}
	return strings.TrimSpace(target[idx+len(sep):])
}

// NonEmptyLines splits text into lines, trims each, and drops empty ones.
func NonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
