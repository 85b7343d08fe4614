package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/query"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/store"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/tags"
)

// fakeStore serves canned rows per channel and can fail a single channel.
type fakeStore struct {
	lexical   []store.Row
	title     []store.Row
	vector    []store.Row
	lexErr    error
	titleErr  error
	vectorErr error
}

func (f *fakeStore) SearchLexical(ctx context.Context, q string, limit int) ([]store.Row, error) {
	return f.lexical, f.lexErr
}

func (f *fakeStore) SearchTitle(ctx context.Context, q string, limit int) ([]store.Row, error) {
	return f.title, f.titleErr
}

func (f *fakeStore) SearchVector(ctx context.Context, v []float32, limit int) ([]store.Row, error) {
	return f.vector, f.vectorErr
}

func testQuerySet(withVector bool) query.ChannelQuerySet {
	qs := query.ChannelQuerySet{
		Short:   "vector index",
		Title:   "vector index db_workflows",
		Lexical: "how do we create the vector index",
	}
	if withVector {
		qs.Vector = []float32{0.1, 0.2}
	}
	return qs
}

func TestFuseMergesChannels(t *testing.T) {
	docs := &fakeStore{
		lexical: []store.Row{
			{SourcePath: "sql/schema.sql", ChunkID: "0", Text: "CREATE INDEX ...", Score: 4.0},
			{SourcePath: "docs/guide.md", ChunkID: "2", Text: "See the guide.", Score: 2.0},
		},
		title: []store.Row{
			{SourcePath: "sql/schema.sql", ChunkID: "0", Text: "CREATE INDEX ...", Score: 1.0},
		},
		vector: []store.Row{
			{SourcePath: "docs/guide.md", ChunkID: "2", Text: "See the guide.", Score: 0.9},
			{SourcePath: "docs/other.md", ChunkID: "1", Text: "Unrelated text.", Score: 0.5},
		},
	}
	fuser := NewFuser(docs, Weights{})

	candidates, err := fuser.Fuse(context.Background(), testQuerySet(true), tags.TagDBWorkflows, 10, true)
	if err != nil {
		t.Fatalf("Fuse returned error: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("expected 3 merged candidates, got %d", len(candidates))
	}

	// schema.sql#0 tops the list: max lexical plus a title hit.
	top := candidates[0]
	if top.Key() != "sql/schema.sql#0" {
		t.Fatalf("expected schema chunk first, got %s", top.Key())
	}
	if top.Score(ScoreLexical) != 4.0 || top.Score(ScoreTitle) != 1.0 {
		t.Fatalf("component scores not retained: %+v", top.Scores)
	}
	if top.Score(ScoreFused) <= candidates[1].Score(ScoreFused) {
		t.Fatal("fused scores should be descending")
	}
}

func TestFuseDropsComponentsWhenNotRequested(t *testing.T) {
	docs := &fakeStore{
		lexical: []store.Row{{SourcePath: "a.md", ChunkID: "0", Text: "alpha", Score: 1.0}},
		title:   []store.Row{},
	}
	fuser := NewFuser(docs, Weights{})

	candidates, err := fuser.Fuse(context.Background(), testQuerySet(false), tags.TagGeneral, 10, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if _, ok := candidates[0].Scores[ScoreLexical]; ok {
		t.Fatal("lexical component should be dropped when keepComponents is false")
	}
	if _, ok := candidates[0].Scores[ScoreFused]; !ok {
		t.Fatal("fused score must always be present")
	}
}

func TestFuseChannelFailureFailsWholeCall(t *testing.T) {
	docs := &fakeStore{
		lexical:  []store.Row{{SourcePath: "a.md", ChunkID: "0", Text: "alpha", Score: 1.0}},
		titleErr: errors.New("store unreachable"),
	}
	fuser := NewFuser(docs, Weights{})

	if _, err := fuser.Fuse(context.Background(), testQuerySet(false), tags.TagGeneral, 10, true); err == nil {
		t.Fatal("expected hard failure when a channel errors")
	}
}

func TestFuseEmptyQuerySetRejected(t *testing.T) {
	fuser := NewFuser(&fakeStore{}, Weights{})
	if _, err := fuser.Fuse(context.Background(), query.ChannelQuerySet{}, tags.TagGeneral, 10, true); err == nil {
		t.Fatal("expected error for empty query set")
	}
}

func TestFuseShortlistTruncation(t *testing.T) {
	docs := &fakeStore{
		lexical: []store.Row{
			{SourcePath: "a.md", ChunkID: "0", Text: "one", Score: 3.0},
			{SourcePath: "b.md", ChunkID: "0", Text: "two", Score: 2.0},
			{SourcePath: "c.md", ChunkID: "0", Text: "three", Score: 1.0},
		},
	}
	fuser := NewFuser(docs, Weights{})

	candidates, err := fuser.Fuse(context.Background(), testQuerySet(false), tags.TagGeneral, 2, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected shortlist of 2, got %d", len(candidates))
	}
}

func TestFuseTieBreakDeterministic(t *testing.T) {
	// Two candidates with identical lexical scores: the lexically earlier
	// source path must win.
	docs := &fakeStore{
		lexical: []store.Row{
			{SourcePath: "z.md", ChunkID: "0", Text: "same", Score: 2.0},
			{SourcePath: "a.md", ChunkID: "0", Text: "same", Score: 2.0},
		},
	}
	fuser := NewFuser(docs, Weights{})

	for i := 0; i < 5; i++ {
		candidates, err := fuser.Fuse(context.Background(), testQuerySet(false), tags.TagGeneral, 10, true)
		if err != nil {
			t.Fatal(err)
		}
		if candidates[0].SourcePath != "a.md" {
			t.Fatalf("run %d: expected a.md first on tie, got %s", i, candidates[0].SourcePath)
		}
	}
}
