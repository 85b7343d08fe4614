package extract

import (
	"regexp"
	"strings"

	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/tags"
)

// maxSpanLen bounds every deterministic answer; it matches the normalizer's
// final truncation limit.
const maxSpanLen = 180

// pathPattern matches a filesystem path with an extension, e.g. docs/guide.md
// or sql/migrations/001_init.sql.
var pathPattern = regexp.MustCompile(`(?:[A-Za-z0-9_.-]+/)+[A-Za-z0-9_.-]+\.[A-Za-z0-9]{1,6}`)

// quotedPattern captures double-quoted phrases.
var quotedPattern = regexp.MustCompile(`"([^"\n]+)"`)

// annotationPrefix strips the "[source#chunk:id] " marker the assembler puts
// on each context line, so provenance annotations never match as answers.
var annotationPrefix = regexp.MustCompile(`^\[[^\]]+\]\s*`)

// ExtractSpan attempts a rule-based answer from the assembled context. The
// priority chain tries the cheapest unambiguous signal first:
//
//  1. a path token with an extension
//  2. the shortest schema-definition line (database-workflow tags only)
//  3. the longest double-quoted phrase no longer than 180 characters
//  4. the first line no longer than 180 characters that is not a header
//
// A miss returns ("", false) and is the normal signal to invoke the
// generative fallback; it is not an error.
func ExtractSpan(contextText, question string, tag tags.Tag) (string, bool) {
	lines := contentLines(contextText)
	if len(lines) == 0 {
		return "", false
	}

	// Path match.
	for _, line := range lines {
		if match := pathPattern.FindString(line); match != "" {
			return match, true
		}
	}

	// Schema-definition line, shortest wins.
	if tag.IsDatabase() {
		var best string
		for _, line := range lines {
			if !containsSchemaKeyword(strings.ToLower(line)) {
				continue
			}
			if best == "" || len(line) < len(best) {
				best = line
			}
		}
		if best != "" {
			return truncateSpan(best), true
		}
	}

	// Longest quoted phrase.
	var quoted string
	for _, line := range lines {
		for _, match := range quotedPattern.FindAllStringSubmatch(line, -1) {
			if phrase := match[1]; len(phrase) > len(quoted) && len(phrase) <= maxSpanLen {
				quoted = phrase
			}
		}
	}
	if quoted != "" {
		return quoted, true
	}

	// First short standalone line.
	for _, line := range lines {
		if len(line) <= maxSpanLen && !isSectionHeader(line) {
			return line, true
		}
	}

	return "", false
}

// contentLines splits context text into trimmed, non-empty lines with any
// provenance annotation removed.
func contentLines(contextText string) []string {
	var lines []string
	for _, raw := range strings.Split(contextText, "\n") {
		line := strings.TrimSpace(annotationPrefix.ReplaceAllString(strings.TrimSpace(raw), ""))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// isSectionHeader reports markdown-style headers and horizontal rules.
func isSectionHeader(line string) bool {
	if strings.HasPrefix(line, "#") {
		return true
	}
	trimmed := strings.TrimRight(line, "=-")
	return trimmed == "" && len(line) >= 3
}

func truncateSpan(s string) string {
	if len(s) <= maxSpanLen {
		return s
	}
	return s[:maxSpanLen]
}
