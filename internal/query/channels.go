// Package query derives the per-channel query representations the retrieval
// fuser issues against the document store.
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/tags"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/textutil"
)

const maxShortTokens = 8

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {}, "by": {},
	"can": {}, "do": {}, "does": {}, "for": {}, "from": {}, "has": {}, "have": {}, "how": {},
	"i": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {}, "or": {}, "should": {},
	"the": {}, "to": {}, "was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "why": {}, "with": {},
}

// ChannelQuerySet holds the query representations for one question+tag pair.
// It is built once and consumed read-only by the fuser.
type ChannelQuerySet struct {
	// Short is a compact keyword form of the question. The shipped fuser
	// queries only the Lexical, Title, and Vector channels; Short is part of
	// the set's contract for store adapters that rank against a condensed
	// query form.
	Short string
	// Title is the title-weighted form, biased by distinct question keywords.
	Title string
	// Lexical is the full lexical form fed to the full-text channel.
	Lexical string
	// Vector is the optional dense representation of the question. Nil when
	// no embedder is configured.
	Vector []float32
}

// Empty reports whether the set carries no usable query. The fuser must not
// be invoked with an empty set.
func (s ChannelQuerySet) Empty() bool {
	return s.Lexical == ""
}

// Embedder produces dense vectors for query text. The vector channel is
// skipped when no embedder is available.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Strategy derives the textual channel forms from a question and tag. The
// exact derivation is pluggable; Heuristic is the shipped default.
type Strategy interface {
	Derive(question string, tag tags.Tag) (short, title, lexical string)
}

// Builder turns a raw question and tag into a ChannelQuerySet.
type Builder struct {
	strategy Strategy
	embedder Embedder
}

// NewBuilder creates a Builder. strategy may be nil, in which case the
// heuristic default is used. embedder may be nil to disable the vector channel.
func NewBuilder(strategy Strategy, embedder Embedder) *Builder {
	if strategy == nil {
		strategy = Heuristic{}
	}
	return &Builder{strategy: strategy, embedder: embedder}
}

// Build derives the channel queries for question and tag. A whitespace-only
// question yields an empty set and no embedder call; callers short-circuit on
// Empty before fusing. The textual channels are deterministic for identical
// (question, tag) pairs.
func (b *Builder) Build(ctx context.Context, question string, tag tags.Tag) (ChannelQuerySet, error) {
	if strings.TrimSpace(question) == "" {
		return ChannelQuerySet{}, nil
	}

	short, title, lexical := b.strategy.Derive(question, tag)
	set := ChannelQuerySet{Short: short, Title: title, Lexical: lexical}

	if b.embedder != nil {
		vector, err := b.embedder.EmbedQuery(ctx, question)
		if err != nil {
			return ChannelQuerySet{}, fmt.Errorf("failed to embed question: %w", err)
		}
		set.Vector = vector
	}

	return set, nil
}

// Heuristic is the default channel derivation: the lexical form is the
// normalized token stream of the question, the short form keeps the first
// few non-stopword tokens, and the title form is the distinct non-stopword
// tokens plus the tag's own tokens.
type Heuristic struct{}

// Derive implements Strategy.
func (Heuristic) Derive(question string, tag tags.Tag) (short, title, lexical string) {
	tokens := textutil.Tokenize(question)
	if len(tokens) == 0 {
		// Punctuation-only questions still get a lexical channel so the
		// contract "non-empty question, non-empty lexical form" holds.
		lexical = strings.ToLower(strings.TrimSpace(question))
		return lexical, lexical, lexical
	}

	lexical = strings.Join(tokens, " ")

	keywords := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if _, stop := stopwords[token]; stop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
	}
	if len(keywords) == 0 {
		keywords = tokens
	}

	shortTokens := keywords
	if len(shortTokens) > maxShortTokens {
		shortTokens = shortTokens[:maxShortTokens]
	}
	short = strings.Join(shortTokens, " ")

	titleTokens := keywords
	if tag != tags.TagGeneral {
		titleTokens = append(append([]string{}, keywords...), textutil.Tokenize(tag.String())...)
	}
	title = strings.Join(titleTokens, " ")

	return short, title, lexical
}
