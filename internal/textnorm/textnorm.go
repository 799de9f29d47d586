// Package textnorm normalizes mention and answer text before comparison.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	// punctRE matches characters dropped during normalization. The ampersand is
	// kept because maintenance records abbreviate actions with it (e.g. "R&R").
	punctRE = regexp.MustCompile(`[^\w\s&]`)
	// spacesRE matches runs of whitespace for collapsing.
	spacesRE = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text, strips punctuation except '&', and collapses
// whitespace to single spaces.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = punctRE.ReplaceAllString(text, " ")
	text = spacesRE.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Tokens returns the normalized whitespace-separated tokens of text.
func Tokens(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}

// TokenSet returns the set of normalized tokens of text.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokens(text)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}
