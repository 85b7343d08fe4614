package extract

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/tags"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/textutil"
)

// Sentence score bonuses.
const (
	phraseBonus    = 0.40
	fileBonus      = 0.20
	sqlBonus       = 0.35
	cmdBonus       = 0.10
	idxBonus       = 0.05
	tagBonus       = 0.20
	firstLineBoost = 1.15
)

// schemaKeywords mark schema-definition statements.
var schemaKeywords = []string{
	"create table",
	"create index",
	"create unique index",
	"create extension",
	"create view",
	"create materialized view",
	"alter table",
}

// commandVerbs are the data-manipulation/definition verbs a statement can
// begin with.
var commandVerbs = []string{"create", "alter", "drop", "insert", "update", "delete", "select"}

// indexMethods are index-method hints worth a small boost.
var indexMethods = map[string]struct{}{
	"gin": {}, "gist": {}, "ivfflat": {}, "hnsw": {},
}

// opsTokens trigger the ops_health tag bonus.
var opsTokens = map[string]struct{}{
	"health": {}, "healthcheck": {}, "monitor": {}, "monitoring": {}, "alert": {},
	"alerts": {}, "uptime": {}, "incident": {}, "oncall": {}, "slo": {},
	"latency": {}, "metrics": {},
}

// rolloutTokens trigger the meta_ops tag bonus.
var rolloutTokens = map[string]struct{}{
	"rollout": {}, "rollback": {}, "deploy": {}, "deployment": {}, "deploys": {},
	"release": {}, "canary": {}, "migration": {}, "migrate": {}, "cutover": {},
}

// scoreSentence computes the relevance of one sentence against the query.
// isFirstLine marks a sentence that is literally the first line of its source
// chunk text.
func scoreSentence(sentence string, queryTokens map[string]struct{}, sourcePath string, hints []string, tag tags.Tag, isFirstLine bool) float64 {
	sentenceTokens := textutil.Tokenize(sentence)
	if len(sentenceTokens) == 0 {
		return 0
	}

	var matched int
	seen := make(map[string]struct{}, len(sentenceTokens))
	for _, token := range sentenceTokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		if _, ok := queryTokens[token]; ok {
			matched++
		}
	}
	overlap := float64(matched) / math.Max(1, math.Sqrt(float64(len(sentenceTokens))))

	score := overlap
	lower := strings.ToLower(sentence)

	for _, hint := range hints {
		if hint != "" && strings.Contains(lower, strings.ToLower(hint)) {
			score += phraseBonus
			break
		}
	}

	if fileTokens := fileNameTokens(sourcePath); len(fileTokens) > 0 {
		for token := range seen {
			if _, ok := fileTokens[token]; ok {
				score += fileBonus
				break
			}
		}
	}

	if strings.Contains(sentence, "```") || containsSchemaKeyword(lower) {
		score += sqlBonus
	}

	if startsWithCommandVerb(lower) {
		score += cmdBonus
	}

	for token := range seen {
		if _, ok := indexMethods[token]; ok {
			score += idxBonus
			break
		}
	}

	score += tagTokenBonus(tag, seen)

	if isFirstLine && isDefinitionCommand(lower) {
		score *= firstLineBoost
	}

	return score
}

// tagTokenBonus returns the bonus for tag-specific vocabulary in the sentence.
func tagTokenBonus(tag tags.Tag, sentenceTokens map[string]struct{}) float64 {
	var vocabulary map[string]struct{}
	switch tag {
	case tags.TagOpsHealth:
		vocabulary = opsTokens
	case tags.TagMetaOps:
		vocabulary = rolloutTokens
	default:
		return 0
	}
	for token := range sentenceTokens {
		if _, ok := vocabulary[token]; ok {
			return tagBonus
		}
	}
	return 0
}

// fileNameTokens derives tokens from the base name of the source file.
func fileNameTokens(sourcePath string) map[string]struct{} {
	if sourcePath == "" {
		return nil
	}
	base := filepath.Base(sourcePath)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return textutil.TokenSet(base)
}

func containsSchemaKeyword(lower string) bool {
	for _, keyword := range schemaKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func startsWithCommandVerb(lower string) bool {
	trimmed := strings.TrimSpace(lower)
	for _, verb := range commandVerbs {
		if strings.HasPrefix(trimmed, verb+" ") {
			return true
		}
	}
	return false
}

// isDefinitionCommand reports whether the sentence is a data-definition
// statement (create/alter/drop), the only commands the first-line boost
// applies to.
func isDefinitionCommand(lower string) bool {
	trimmed := strings.TrimSpace(lower)
	for _, verb := range []string{"create", "alter", "drop"} {
		if strings.HasPrefix(trimmed, verb+" ") {
			return true
		}
	}
	return false
}
