package extract

import (
	"strings"

	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/tags"
)

// maxAnswerLen is the hard answer length bound after normalization.
const maxAnswerLen = 180

// UnknownAnswer is the sentinel for answers that normalize to nothing.
const UnknownAnswer = "unknown"

// NormalizeAnswer canonicalizes an answer from either the span extractor or
// the generative fallback: trims it, strips trailing semicolons and
// backticks, collapses internal whitespace, applies database-workflow line
// reduction, and hard-truncates to 180 characters (177 plus an ellipsis when
// truncation occurs). Empty input normalizes to UnknownAnswer. The operation
// is idempotent.
func NormalizeAnswer(answer string, tag tags.Tag) string {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return UnknownAnswer
	}

	if tag.IsDatabase() {
		answer = reduceDatabaseAnswer(answer)
	}

	answer = strings.TrimRight(answer, ";` \t")
	answer = strings.Join(strings.Fields(answer), " ")
	if answer == "" {
		return UnknownAnswer
	}

	if len(answer) > maxAnswerLen {
		answer = answer[:maxAnswerLen-3] + "..."
	}
	return answer
}

// reduceDatabaseAnswer keeps only the most specific line of a multi-line
// database answer: the shortest schema-definition line when several lines
// carry schema keywords, otherwise the first line.
func reduceDatabaseAnswer(answer string) string {
	lines := splitLines(answer)
	if len(lines) <= 1 {
		return answer
	}

	var schemaLines []string
	for _, line := range lines {
		if containsSchemaKeyword(strings.ToLower(line)) {
			schemaLines = append(schemaLines, line)
		}
	}
	if len(schemaLines) > 1 {
		best := schemaLines[0]
		for _, line := range schemaLines[1:] {
			if len(line) < len(best) {
				best = line
			}
		}
		return best
	}

	return lines[0]
}
