package textmetric

import (
	"regexp"
	"strings"
)

var (
	// nonAlphaNumRE matches runs of characters outside [a-z0-9].
	nonAlphaNumRE = regexp.MustCompile(`[^a-z0-9]+`)
	// spacesRE matches runs of whitespace.
	spacesRE = regexp.MustCompile(`\s+`)
)

// Tokenize lowercases text, replaces punctuation with spaces, splits on
// whitespace and optionally applies Porter stemming to tokens longer than
// three characters.
func Tokenize(text string, useStemmer bool) []string {
	text = strings.ToLower(text)
	text = nonAlphaNumRE.ReplaceAllString(text, " ")
	parts := spacesRE.Split(strings.TrimSpace(text), -1)
	tokens := make([]string, 0, len(parts))
	for _, token := range parts {
		if token == "" {
			continue
		}
		if useStemmer && len(token) > 3 {
			token = porterStem(token)
		}
		tokens = append(tokens, token)
	}
	return tokens
}
