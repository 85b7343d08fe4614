package retrieval

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/contextutil"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/query"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/store"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/tags"
)

// Weights blends the normalized per-channel scores into the fused score.
type Weights struct {
	Lexical float64
	Title   float64
	Vector  float64
}

// DefaultWeights favors the lexical channel, with vector similarity second
// and title matches as a smaller boost.
var DefaultWeights = Weights{Lexical: 0.50, Vector: 0.35, Title: 0.15}

// Fuser issues the channel queries against the document store and merges the
// results into one ranked candidate list.
type Fuser struct {
	store   store.DocumentStore
	weights Weights
}

// NewFuser creates a Fuser over the given store. Zero weights fall back to
// DefaultWeights.
func NewFuser(docs store.DocumentStore, weights Weights) *Fuser {
	if weights == (Weights{}) {
		weights = DefaultWeights
	}
	return &Fuser{store: docs, weights: weights}
}

// Fuse runs the lexical, title, and (when present) vector queries
// concurrently, then merges the rows into at most shortlist candidates ranked
// by fused score. Per-channel component scores are retained on each candidate
// when keepComponents is set. Any channel failure fails the whole call; a
// partial merge is never returned.
func (f *Fuser) Fuse(ctx context.Context, qs query.ChannelQuerySet, tag tags.Tag, shortlist int, keepComponents bool) ([]*Candidate, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if qs.Empty() {
		return nil, fmt.Errorf("empty channel query set")
	}
	if shortlist <= 0 {
		shortlist = tags.DefaultLimits.Shortlist
	}

	var lexRows, titleRows, vecRows []store.Row
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := f.store.SearchLexical(gctx, qs.Lexical, shortlist)
		if err != nil {
			return fmt.Errorf("lexical channel failed: %w", err)
		}
		lexRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := f.store.SearchTitle(gctx, qs.Title, shortlist)
		if err != nil {
			return fmt.Errorf("title channel failed: %w", err)
		}
		titleRows = rows
		return nil
	})
	if len(qs.Vector) > 0 {
		g.Go(func() error {
			rows, err := f.store.SearchVector(gctx, qs.Vector, shortlist)
			if err != nil {
				return fmt.Errorf("vector channel failed: %w", err)
			}
			vecRows = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.ErrorContext(ctx, "retrieval channel failed", "tag", tag.String(), "error", err)
		return nil, err
	}

	byKey := make(map[string]*Candidate)
	merge := func(rows []store.Row, component string) {
		for _, row := range rows {
			key := row.SourcePath + "#" + row.ChunkID
			cand, ok := byKey[key]
			if !ok {
				cand = &Candidate{
					SourcePath: row.SourcePath,
					ChunkID:    row.ChunkID,
					Text:       row.ResolveText(),
				}
				byKey[key] = cand
			}
			if cand.Text == "" {
				cand.Text = row.ResolveText()
			}
			if row.Score > cand.Score(component) {
				cand.SetScore(component, row.Score)
			}
		}
	}
	merge(lexRows, ScoreLexical)
	merge(titleRows, ScoreTitle)
	merge(vecRows, ScoreVector)

	maxLex := maxComponent(byKey, ScoreLexical)
	maxTitle := maxComponent(byKey, ScoreTitle)
	maxVec := maxComponent(byKey, ScoreVector)

	candidates := make([]*Candidate, 0, len(byKey))
	for _, cand := range byKey {
		fused := f.weights.Lexical*normalized(cand.Score(ScoreLexical), maxLex) +
			f.weights.Title*normalized(cand.Score(ScoreTitle), maxTitle) +
			f.weights.Vector*normalized(cand.Score(ScoreVector), maxVec)
		cand.SetScore(ScoreFused, fused)
		candidates = append(candidates, cand)
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score(ScoreFused) != b.Score(ScoreFused) {
			return a.Score(ScoreFused) > b.Score(ScoreFused)
		}
		if a.Score(ScoreLexical) != b.Score(ScoreLexical) {
			return a.Score(ScoreLexical) > b.Score(ScoreLexical)
		}
		if a.SourcePath != b.SourcePath {
			return a.SourcePath < b.SourcePath
		}
		return a.ChunkID < b.ChunkID
	})

	if len(candidates) > shortlist {
		candidates = candidates[:shortlist]
	}

	if !keepComponents {
		for _, cand := range candidates {
			fused := cand.Score(ScoreFused)
			cand.Scores = map[string]float64{ScoreFused: fused}
		}
	}

	logger.DebugContext(ctx, "fused retrieval channels",
		"tag", tag.String(),
		"lexical_rows", len(lexRows),
		"title_rows", len(titleRows),
		"vector_rows", len(vecRows),
		"candidates", len(candidates),
	)

	return candidates, nil
}

// maxComponent finds the largest value of a component score across candidates.
func maxComponent(byKey map[string]*Candidate, component string) float64 {
	var max float64
	for _, cand := range byKey {
		if s := cand.Score(component); s > max {
			max = s
		}
	}
	return max
}

// normalized scales score by the channel maximum so channels with different
// score ranges blend comparably.
func normalized(score, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return score / max
}
