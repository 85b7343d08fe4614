package retrieval

import "fmt"

// DefaultSourceCap is the per-source candidate ceiling applied after
// diversification.
const DefaultSourceCap = 5

// CapBySource drops any candidate once its source file has already
// contributed cap candidates, preserving relative order, then truncates the
// result to min(topk, len). Candidates are never mutated. A negative cap is
// invalid and rejected; cap zero drops everything. topk <= 0 disables the
// final truncation.
func CapBySource(candidates []*Candidate, cap, topk int) ([]*Candidate, error) {
	if cap < 0 {
		return nil, fmt.Errorf("per-source cap must not be negative, got %d", cap)
	}

	kept := make([]*Candidate, 0, len(candidates))
	perSource := make(map[string]int)
	for _, cand := range candidates {
		if perSource[cand.SourcePath] >= cap {
			continue
		}
		perSource[cand.SourcePath]++
		kept = append(kept, cand)
	}

	if topk > 0 && len(kept) > topk {
		kept = kept[:topk]
	}

	return kept, nil
}
