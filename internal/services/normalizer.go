package services

import (
	"strings"
	"unicode"
)

type TextNormalizer interface {
	Normalize(text string) string
}

type textNormalizer struct{}

func NewTextNormalizer() TextNormalizer {
	return &textNormalizer{}
}

// Normalize canonicalizes free text into the form used as the embedding cache
// key: lower-cased, punctuation treated as separators, whitespace collapsed
// to single spaces. Empty or blank input maps to the empty string, which the
// encoder treats as the zero-information sentinel. Identical input always
// yields identical output; cache-key stability depends on it.
func (n *textNormalizer) Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastSpace := true
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case r == '+' || r == '#':
			// Keep tech tokens like "c++" and "c#" intact.
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimSpace(b.String())
}
