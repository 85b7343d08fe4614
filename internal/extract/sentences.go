// Package extract builds the compact evidence context from capped candidates
// and attempts a deterministic answer from it before any generative fallback.
package extract

import "strings"

// lineSplitThreshold is the text size above which sentence splitting switches
// to line-based splitting. Large chunks are usually code or schema dumps,
// where punctuation-based boundaries cut statements in half.
const lineSplitThreshold = 4000

// splitSentences splits prose at punctuation followed by a capital letter or
// digit. Text longer than lineSplitThreshold is split on newlines instead.
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if len(text) > lineSplitThreshold {
		return splitLines(text)
	}

	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// Boundary: terminator, then whitespace, then capital or digit.
		j := i + 1
		for j < len(runes) && (runes[j] == ' ' || runes[j] == '\t' || runes[j] == '\n' || runes[j] == '\r') {
			j++
		}
		if j == i+1 || j >= len(runes) {
			continue
		}
		next := runes[j]
		if (next >= 'A' && next <= 'Z') || (next >= '0' && next <= '9') {
			if sentence := strings.TrimSpace(string(runes[start:i+1])); sentence != "" {
				sentences = append(sentences, sentence)
			}
			start = j
			i = j - 1
		}
	}
	if sentence := strings.TrimSpace(string(runes[start:])); sentence != "" {
		sentences = append(sentences, sentence)
	}
	return sentences
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// firstLine returns the first non-empty line of text, trimmed.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
