// Package retrieval turns channel queries into a ranked, diversified, and
// source-capped candidate list.
package retrieval

import "github.com/TheMonk2121/ai-dev-tasks-sub022/internal/textutil"

// Component score names recorded on a Candidate as it moves through the
// pipeline.
const (
	ScoreLexical     = "lexical"
	ScoreTitle       = "title"
	ScoreVector      = "vector"
	ScoreFused       = "fused"
	ScoreDiversified = "diversified"
)

// Candidate is one retrieved chunk. Identity (SourcePath, ChunkID) and Text
// are fixed once fetched; Scores accumulate as the candidate passes through
// fusion, diversification, and capping.
type Candidate struct {
	SourcePath string
	ChunkID    string
	Text       string
	Scores     map[string]float64

	// tokens caches the text token set for similarity computations.
	tokens map[string]struct{}
}

// Key returns the candidate identity as "sourcePath#chunkID".
func (c *Candidate) Key() string {
	return c.SourcePath + "#" + c.ChunkID
}

// Score returns the named component score, or zero when absent.
func (c *Candidate) Score(name string) float64 {
	if c.Scores == nil {
		return 0
	}
	return c.Scores[name]
}

// SetScore records a named component score.
func (c *Candidate) SetScore(name string, value float64) {
	if c.Scores == nil {
		c.Scores = make(map[string]float64, 4)
	}
	c.Scores[name] = value
}

// RetrievalScore is the candidate's current rank signal: the diversified
// score once diversification has run, else the fused score.
func (c *Candidate) RetrievalScore() float64 {
	if c.Scores == nil {
		return 0
	}
	if score, ok := c.Scores[ScoreDiversified]; ok {
		return score
	}
	return c.Scores[ScoreFused]
}

// tokenSet lazily computes and caches the candidate's text tokens.
func (c *Candidate) tokenSet() map[string]struct{} {
	if c.tokens == nil {
		c.tokens = textutil.TokenSet(c.Text)
	}
	return c.tokens
}
