// Package pipeline orchestrates one question end to end: channel building,
// hybrid retrieval, diversification, capping, extractive context assembly,
// span extraction, and answer normalization, with an optional generative
// fallback when no rule answer is found.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/contextutil"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/extract"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/query"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/retrieval"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/tags"
)

// ErrEmptyQuestion is returned when the request carries no question text.
var ErrEmptyQuestion = errors.New("question must not be empty")

// AnswerGenerator produces a free-form answer from evidence context. It is
// only consulted when the deterministic extractor misses.
type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, question, contextText string) (string, error)
}

// Engine answers questions over the document store.
type Engine interface {
	// Ask answers a question by retrieving evidence chunks and extracting
	// or generating an answer from them.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// engine implements the Engine interface.
type engine struct {
	builder   *query.Builder
	fuser     *retrieval.Fuser
	limits    tags.LimitsProvider
	generator AnswerGenerator
	opts      Options
}

// NewEngine creates a pipeline engine. generator may be nil; extractor misses
// then normalize to the unknown-answer sentinel instead of falling back.
// Zero Options fields fall back to their defaults field by field, so a caller
// overriding one knob keeps the standard values for the rest.
func NewEngine(builder *query.Builder, fuser *retrieval.Fuser, limits tags.LimitsProvider, generator AnswerGenerator, opts Options) Engine {
	if opts.Alpha == 0 {
		opts.Alpha = retrieval.DefaultAlpha
	}
	if opts.PerFilePenalty == 0 {
		opts.PerFilePenalty = retrieval.DefaultPerFilePenalty
	}
	if opts.SourceCap == 0 {
		opts.SourceCap = retrieval.DefaultSourceCap
	}
	// Assemble and Pack self-default their zero fields downstream.
	return &engine{
		builder:   builder,
		fuser:     fuser,
		limits:    limits,
		generator: generator,
		opts:      opts,
	}
}

// Ask runs the full pipeline for one question.
func (e *engine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return AskResponse{}, ErrEmptyQuestion
	}

	tag := tags.Parse(req.Tag)

	logger.InfoContext(ctx, "ask started",
		"tag", tag.String(),
		"hints", len(req.Hints),
		"debug", req.Debug,
	)

	qs, err := e.builder.Build(ctx, question, tag)
	if err != nil {
		logger.ErrorContext(ctx, "failed to build channel queries", "error", err)
		return AskResponse{}, fmt.Errorf("failed to build channel queries: %w", err)
	}
	if qs.Empty() {
		// Nothing to retrieve with; answer honestly rather than guess.
		return AskResponse{Answer: extract.UnknownAnswer, Provenance: ProvenanceRule}, nil
	}

	limits := e.limits.LimitsFor(tag)

	candidates, err := e.fuser.Fuse(ctx, qs, tag, limits.Shortlist, req.Debug)
	if err != nil {
		return AskResponse{}, fmt.Errorf("retrieval failed: %w", err)
	}

	diversified := retrieval.Diversify(candidates, e.opts.Alpha, e.opts.PerFilePenalty, limits.TopK)

	capped, err := retrieval.CapBySource(diversified, e.opts.SourceCap, limits.TopK)
	if err != nil {
		return AskResponse{}, fmt.Errorf("source capping failed: %w", err)
	}

	bundle := extract.Assemble(capped, question, tag, req.Hints, e.opts.Assemble)

	resp := AskResponse{
		Context: bundle.Text,
		Picks:   bundle.Picks,
	}
	if req.Debug {
		resp.Debug = &DebugInfo{Candidates: debugCandidates(capped)}
	}

	if span, ok := extract.ExtractSpan(bundle.Text, question, tag); ok {
		resp.Answer = extract.NormalizeAnswer(span, tag)
		resp.Provenance = ProvenanceRule
		logger.InfoContext(ctx, "ask answered", "provenance", resp.Provenance, "candidates", len(capped))
		return resp, nil
	}

	generated, err := e.generateFallback(ctx, question, capped)
	if err != nil {
		logger.ErrorContext(ctx, "generative fallback failed", "error", err)
		return AskResponse{}, err
	}

	resp.Answer = extract.NormalizeAnswer(generated, tag)
	if generated == "" {
		resp.Provenance = ProvenanceRule
	} else {
		resp.Provenance = ProvenanceGenerative
	}

	logger.InfoContext(ctx, "ask answered", "provenance", resp.Provenance, "candidates", len(capped))
	return resp, nil
}

// generateFallback packs the capped candidates into a budgeted context and
// asks the generator. Returns empty text when no generator is configured or
// there is no evidence to pack.
func (e *engine) generateFallback(ctx context.Context, question string, capped []*retrieval.Candidate) (string, error) {
	if e.generator == nil || len(capped) == 0 {
		return "", nil
	}

	ranked := make([]extract.RankedDoc, 0, len(capped))
	texts := make(map[string]string, len(capped))
	for _, cand := range capped {
		ranked = append(ranked, extract.RankedDoc{ID: cand.Key(), Score: cand.RetrievalScore()})
		texts[cand.Key()] = cand.Text
	}

	packed := extract.PackContext(ranked, texts, e.opts.Pack)
	if packed == "" {
		return "", nil
	}

	answer, err := e.generator.GenerateAnswer(ctx, question, packed)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	return answer, nil
}

// debugCandidates maps capped candidates to their debug view, ranks 1-based.
func debugCandidates(capped []*retrieval.Candidate) []CandidateDebug {
	out := make([]CandidateDebug, 0, len(capped))
	for i, cand := range capped {
		out = append(out, CandidateDebug{
			SourcePath:       cand.SourcePath,
			ChunkID:          cand.ChunkID,
			ScoreLexical:     cand.Score(retrieval.ScoreLexical),
			ScoreTitle:       cand.Score(retrieval.ScoreTitle),
			ScoreVector:      cand.Score(retrieval.ScoreVector),
			ScoreFused:       cand.Score(retrieval.ScoreFused),
			ScoreDiversified: cand.Score(retrieval.ScoreDiversified),
			Rank:             i + 1,
		})
	}
	return out
}
