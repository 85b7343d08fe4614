// Package textutil provides the shared tokenizer used by query building,
// diversification, and sentence scoring.
package textutil

import "strings"

// Tokenize lowercases text and splits it into tokens of letters, digits,
// underscores, dots, and dashes. Returns nil for empty input.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if isTokenRune(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}
	fields := strings.Fields(builder.String())
	tokens := fields[:0]
	for _, field := range fields {
		// Sentence punctuation survives the rune filter ("schema." or
		// "--flag"); trim it so overlap comparisons see the bare token.
		field = strings.Trim(field, ".-")
		if field != "" {
			tokens = append(tokens, field)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// TokenSet returns the distinct tokens of text as a set.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

// Jaccard computes the Jaccard similarity of two token sets. Empty sets have
// zero similarity to everything.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	var shared int
	for token := range small {
		if _, ok := large[token]; ok {
			shared++
		}
	}
	if shared == 0 {
		return 0
	}
	return float64(shared) / float64(len(a)+len(b)-shared)
}

func isTokenRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_' || r == '.' || r == '-':
		return true
	default:
		return false
	}
}
