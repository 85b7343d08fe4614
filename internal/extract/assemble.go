package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/retrieval"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/tags"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/textutil"
)

// Assembler defaults.
const (
	DefaultPerChunk = 2
	DefaultTotal    = 10
)

// retrievalTieBreak nudges equal-scoring sentences toward higher-ranked
// chunks.
const retrievalTieBreak = 1e-6

// SentencePick is one scored sentence kept for the context, with enough
// provenance to annotate and audit it.
type SentencePick struct {
	SourcePath string  `json:"source_path"`
	ChunkID    string  `json:"chunk_id"`
	Sentence   string  `json:"sentence"`
	Score      float64 `json:"score"`
	// Retrieval is the originating candidate's retrieval score, used only as
	// a tie-break during selection.
	Retrieval float64 `json:"retrieval"`
}

// ContextBundle is the assembled evidence context: annotated lines joined by
// newlines, plus the picks that produced them in final order.
type ContextBundle struct {
	Text  string
	Picks []SentencePick
}

// AssembleOptions bounds the context: at most PerChunk sentences per
// candidate and Total sentences overall.
type AssembleOptions struct {
	PerChunk int
	Total    int
}

// DefaultAssembleOptions returns the standard context budget.
func DefaultAssembleOptions() AssembleOptions {
	return AssembleOptions{PerChunk: DefaultPerChunk, Total: DefaultTotal}
}

// Assemble splits each candidate's text into sentences, scores them against
// the question, keeps the best PerChunk per candidate and the best Total
// overall, and renders the annotated context. It never fails; an empty
// candidate list yields an empty bundle.
func Assemble(candidates []*retrieval.Candidate, question string, tag tags.Tag, hints []string, opts AssembleOptions) ContextBundle {
	if opts.PerChunk <= 0 {
		opts.PerChunk = DefaultPerChunk
	}
	if opts.Total <= 0 {
		opts.Total = DefaultTotal
	}
	if len(candidates) == 0 {
		return ContextBundle{}
	}

	queryTokens := textutil.TokenSet(question)

	var pool []SentencePick
	for _, cand := range candidates {
		text := cand.Text
		if strings.TrimSpace(text) == "" {
			continue
		}
		first := firstLine(text)
		retrievalScore := cand.RetrievalScore()

		var picks []SentencePick
		for _, sentence := range splitSentences(text) {
			score := scoreSentence(sentence, queryTokens, cand.SourcePath, hints, tag, sentence == first)
			if score <= 0 {
				continue
			}
			picks = append(picks, SentencePick{
				SourcePath: cand.SourcePath,
				ChunkID:    cand.ChunkID,
				Sentence:   sentence,
				Score:      score + retrievalTieBreak*retrievalScore,
				Retrieval:  retrievalScore,
			})
		}

		sort.SliceStable(picks, func(i, j int) bool { return picks[i].Score > picks[j].Score })
		if len(picks) > opts.PerChunk {
			picks = picks[:opts.PerChunk]
		}
		pool = append(pool, picks...)
	}

	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Score > pool[j].Score })
	if len(pool) > opts.Total {
		pool = pool[:opts.Total]
	}
	if len(pool) == 0 {
		return ContextBundle{}
	}

	lines := make([]string, len(pool))
	for i, pick := range pool {
		lines[i] = fmt.Sprintf("[%s#chunk:%s] %s", pick.SourcePath, pick.ChunkID, pick.Sentence)
	}

	return ContextBundle{Text: strings.Join(lines, "\n"), Picks: pool}
}
