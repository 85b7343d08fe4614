package retrieval

import "github.com/TheMonk2121/ai-dev-tasks-sub022/internal/textutil"

// MMR defaults.
const (
	DefaultAlpha          = 0.85
	DefaultPerFilePenalty = 0.10
)

// Diversify re-orders candidates by Maximal Marginal Relevance: each round it
// selects the candidate maximizing
//
//	alpha*relevance - (1-alpha)*maxSimilarityToSelected - perFilePenalty*sameFileCount
//
// where similarity is the token Jaccard of candidate texts. Selection stops
// after k candidates or when the input is exhausted. Ties keep the earlier
// (higher-ranked) candidate, so the result is deterministic for identical
// inputs and weights. The diversified score is recorded on each selected
// candidate; unselected candidates are not mutated.
func Diversify(candidates []*Candidate, alpha, perFilePenalty float64, k int) []*Candidate {
	if len(candidates) == 0 || k <= 0 {
		return nil
	}
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	if perFilePenalty < 0 {
		perFilePenalty = DefaultPerFilePenalty
	}
	if k > len(candidates) {
		k = len(candidates)
	}

	selected := make([]*Candidate, 0, k)
	selectedSets := make([]map[string]struct{}, 0, k)
	fileCounts := make(map[string]int)
	remaining := append([]*Candidate(nil), candidates...)

	for len(selected) < k && len(remaining) > 0 {
		bestIdx := -1
		bestScore := 0.0
		for i, cand := range remaining {
			relevance := cand.Score(ScoreFused)

			var maxSim float64
			if len(selectedSets) > 0 {
				set := cand.tokenSet()
				for _, other := range selectedSets {
					if sim := textutil.Jaccard(set, other); sim > maxSim {
						maxSim = sim
					}
				}
			}

			score := alpha*relevance - (1-alpha)*maxSim -
				perFilePenalty*float64(fileCounts[cand.SourcePath])
			if bestIdx == -1 || score > bestScore {
				bestIdx = i
				bestScore = score
			}
		}

		chosen := remaining[bestIdx]
		chosen.SetScore(ScoreDiversified, bestScore)
		selected = append(selected, chosen)
		selectedSets = append(selectedSets, chosen.tokenSet())
		fileCounts[chosen.SourcePath]++
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return selected
}
