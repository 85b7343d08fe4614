package retrieval

import (
	"reflect"
	"testing"
)

func mmrCandidate(source, chunk, text string, fused float64) *Candidate {
	c := &Candidate{SourcePath: source, ChunkID: chunk, Text: text}
	c.SetScore(ScoreFused, fused)
	return c
}

func TestDiversifyPrefersNovelContent(t *testing.T) {
	// Two near-duplicate chunks and one distinct chunk with slightly lower
	// relevance: the distinct chunk should displace the duplicate.
	candidates := []*Candidate{
		mmrCandidate("a.md", "0", "postgres index creation with ivfflat lists", 1.0),
		mmrCandidate("a.md", "1", "postgres index creation with ivfflat lists and probes", 0.95),
		mmrCandidate("b.md", "0", "rollout checklist for deploys", 0.7),
	}

	selected := Diversify(candidates, 0.5, 0.10, 2)
	if len(selected) != 2 {
		t.Fatalf("expected 2 selections, got %d", len(selected))
	}
	if selected[0].Key() != "a.md#0" {
		t.Fatalf("most relevant candidate should go first, got %s", selected[0].Key())
	}
	if selected[1].Key() != "b.md#0" {
		t.Fatalf("expected the distinct chunk second, got %s", selected[1].Key())
	}
}

func TestDiversifyPerFilePenalty(t *testing.T) {
	candidates := []*Candidate{
		mmrCandidate("a.md", "0", "alpha topic one", 1.0),
		mmrCandidate("a.md", "1", "beta topic two", 0.98),
		mmrCandidate("b.md", "0", "gamma topic three", 0.90),
	}

	// With a heavy per-file penalty the second a.md chunk loses to b.md even
	// though its relevance is higher.
	selected := Diversify(candidates, 1.0, 0.5, 2)
	if selected[1].Key() != "b.md#0" {
		t.Fatalf("per-file penalty should push b.md ahead, got %s", selected[1].Key())
	}
}

func TestDiversifyDeterministic(t *testing.T) {
	build := func() []*Candidate {
		return []*Candidate{
			mmrCandidate("a.md", "0", "shared words here", 0.8),
			mmrCandidate("b.md", "0", "shared words here", 0.8),
			mmrCandidate("c.md", "0", "totally different content", 0.6),
		}
	}

	first := Diversify(build(), DefaultAlpha, DefaultPerFilePenalty, 3)
	keys := func(cands []*Candidate) []string {
		out := make([]string, len(cands))
		for i, c := range cands {
			out[i] = c.Key()
		}
		return out
	}
	want := keys(first)

	for i := 0; i < 10; i++ {
		got := keys(Diversify(build(), DefaultAlpha, DefaultPerFilePenalty, 3))
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("run %d: ordering changed: %v vs %v", i, got, want)
		}
	}
}

func TestDiversifyExhaustsInput(t *testing.T) {
	candidates := []*Candidate{
		mmrCandidate("a.md", "0", "one", 1.0),
		mmrCandidate("b.md", "0", "two", 0.5),
	}

	selected := Diversify(candidates, DefaultAlpha, DefaultPerFilePenalty, 10)
	if len(selected) != 2 {
		t.Fatalf("expected all candidates when k exceeds input, got %d", len(selected))
	}

	if Diversify(nil, DefaultAlpha, DefaultPerFilePenalty, 5) != nil {
		t.Fatal("empty input should yield nil")
	}
	if Diversify(candidates, DefaultAlpha, DefaultPerFilePenalty, 0) != nil {
		t.Fatal("k=0 should yield nil")
	}
}

func TestDiversifyRecordsScore(t *testing.T) {
	candidates := []*Candidate{mmrCandidate("a.md", "0", "content", 0.9)}
	selected := Diversify(candidates, DefaultAlpha, DefaultPerFilePenalty, 1)
	if _, ok := selected[0].Scores[ScoreDiversified]; !ok {
		t.Fatal("diversified score should be recorded on selection")
	}
}
