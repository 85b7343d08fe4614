package pipeline

import (
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/extract"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/retrieval"
)

// Answer provenance values.
const (
	// ProvenanceRule marks answers produced by the deterministic span extractor.
	ProvenanceRule = "rule"
	// ProvenanceGenerative marks answers produced by the generative fallback.
	ProvenanceGenerative = "generative"
)

// AskRequest represents one question for the pipeline.
type AskRequest struct {
	// Question is the user's question to answer.
	Question string `json:"question"`
	// Tag routes the question to tag-specific scoring and limits.
	// Unknown values fall back to the general tag.
	Tag string `json:"tag,omitempty"`
	// Hints are optional phrases that boost matching sentences during
	// context assembly.
	Hints []string `json:"hints,omitempty"`
	// Debug enables debug mode, returning per-candidate retrieval scores.
	Debug bool `json:"debug,omitempty"`
}

// AskResponse represents the pipeline's answer.
type AskResponse struct {
	// Answer is the normalized final answer.
	Answer string `json:"answer"`
	// Provenance records whether the answer came from the deterministic
	// extractor ("rule") or the generative fallback ("generative").
	Provenance string `json:"provenance"`
	// Context is the assembled extractive evidence context.
	Context string `json:"context,omitempty"`
	// Picks are the scored sentences the context was assembled from.
	Picks []extract.SentencePick `json:"picks,omitempty"`
	// Debug contains retrieval detail when debug mode is enabled.
	Debug *DebugInfo `json:"debug,omitempty"`
}

// DebugInfo contains detailed retrieval information for debugging and evaluation.
type DebugInfo struct {
	// Candidates lists the post-cap candidates with their component scores.
	Candidates []CandidateDebug `json:"candidates"`
}

// CandidateDebug is one retrieved candidate with scoring information.
type CandidateDebug struct {
	// SourcePath is the originating file path of the chunk.
	SourcePath string `json:"source_path"`
	// ChunkID identifies the chunk within its source file.
	ChunkID string `json:"chunk_id"`
	// ScoreLexical is the lexical channel score.
	ScoreLexical float64 `json:"score_lexical,omitempty"`
	// ScoreTitle is the title channel score.
	ScoreTitle float64 `json:"score_title,omitempty"`
	// ScoreVector is the vector channel score.
	ScoreVector float64 `json:"score_vector,omitempty"`
	// ScoreFused is the blended retrieval score.
	ScoreFused float64 `json:"score_fused"`
	// ScoreDiversified is the MMR-adjusted score, when diversification ran.
	ScoreDiversified float64 `json:"score_diversified,omitempty"`
	// Rank is the candidate's rank after capping (1-based).
	Rank int `json:"rank"`
}

// Options carries the pipeline knobs. Values are explicit; there is no global
// mutable state. Channel weights are not here: they are fixed at NewFuser
// time. Zero fields default field by field, see NewEngine.
type Options struct {
	// Alpha balances relevance against novelty during diversification.
	Alpha float64
	// PerFilePenalty discounts repeated picks from the same source file.
	PerFilePenalty float64
	// SourceCap bounds candidates per source file after diversification.
	SourceCap int
	// Assemble bounds the extractive context.
	Assemble extract.AssembleOptions
	// Pack bounds the generative-fallback context.
	Pack extract.PackOptions
}

// DefaultOptions returns the standard pipeline knobs.
func DefaultOptions() Options {
	return Options{
		Alpha:          retrieval.DefaultAlpha,
		PerFilePenalty: retrieval.DefaultPerFilePenalty,
		SourceCap:      retrieval.DefaultSourceCap,
		Assemble:       extract.DefaultAssembleOptions(),
		Pack:           extract.DefaultPackOptions(),
	}
}
