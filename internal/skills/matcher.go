// Package skills maps free-text study plans onto the fixed skill taxonomy
// and computes per-skill completion.
package skills

import "strings"

// Normalize lowercases text, treats dots as spaces (so "react.js" equals
// "react js"), drops everything that is not alphanumeric, and collapses
// whitespace.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == ' ', r == '\t', r == '\n':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Matches reports whether every word of the keyword phrase occurs as a whole
// word somewhere in the text, independent of order or adjacency. Matching is
// case- and punctuation-insensitive and total over any input.
func Matches(text, phrase string) bool {
	phraseWords := strings.Fields(Normalize(phrase))
	if len(phraseWords) == 0 {
		return false
	}

	textWords := make(map[string]bool)
	for _, w := range strings.Fields(Normalize(text)) {
		textWords[w] = true
	}

	for _, w := range phraseWords {
		if !textWords[w] {
			return false
		}
	}
	return true
}
