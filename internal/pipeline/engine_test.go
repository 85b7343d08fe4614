package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/query"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/retrieval"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/store"
	store_mocks "github.com/TheMonk2121/ai-dev-tasks-sub022/internal/store/mocks"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/tags"
	tags_mocks "github.com/TheMonk2121/ai-dev-tasks-sub022/internal/tags/mocks"
)

// stubGenerator records the fallback call.
type stubGenerator struct {
	answer  string
	err     error
	called  bool
	gotCtx  string
	gotQues string
}

func (s *stubGenerator) GenerateAnswer(ctx context.Context, question, contextText string) (string, error) {
	s.called = true
	s.gotQues = question
	s.gotCtx = contextText
	return s.answer, s.err
}

func newTestEngine(t *testing.T, docs store.DocumentStore, generator AnswerGenerator) Engine {
	t.Helper()

	ctrl := gomock.NewController(t)
	limits := tags_mocks.NewMockLimitsProvider(ctrl)
	limits.EXPECT().LimitsFor(gomock.Any()).Return(tags.DefaultLimits).AnyTimes()

	builder := query.NewBuilder(query.Heuristic{}, nil)
	fuser := retrieval.NewFuser(docs, retrieval.Weights{})
	return NewEngine(builder, fuser, limits, generator, DefaultOptions())
}

func TestEngine_Ask_RuleAnswer(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := store_mocks.NewMockDocumentStore(ctrl)

	rows := []store.Row{
		{SourcePath: "docs/guide.md", ChunkID: "c1", Text: "The schema is defined in docs/schema.sql.", Score: 3.0},
	}
	docs.EXPECT().SearchLexical(gomock.Any(), gomock.Any(), gomock.Any()).Return(rows, nil)
	docs.EXPECT().SearchTitle(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	gen := &stubGenerator{}
	e := newTestEngine(t, docs, gen)

	resp, err := e.Ask(context.Background(), AskRequest{Question: "Where is the schema defined?"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if resp.Provenance != ProvenanceRule {
		t.Errorf("Provenance = %q, want %q", resp.Provenance, ProvenanceRule)
	}
	if resp.Answer != "docs/schema.sql" {
		t.Errorf("Answer = %q, want docs/schema.sql", resp.Answer)
	}
	if gen.called {
		t.Error("generator was called despite a rule answer")
	}
	if resp.Context == "" || len(resp.Picks) == 0 {
		t.Error("response is missing the assembled context")
	}
	if resp.Debug != nil {
		t.Error("Debug set without debug mode")
	}
}

func TestEngine_Ask_PartialOptionsKeepDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := store_mocks.NewMockDocumentStore(ctrl)

	rows := []store.Row{
		{SourcePath: "docs/guide.md", ChunkID: "c1", Text: "The schema is defined in docs/schema.sql.", Score: 3.0},
	}
	docs.EXPECT().SearchLexical(gomock.Any(), gomock.Any(), gomock.Any()).Return(rows, nil)
	docs.EXPECT().SearchTitle(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	limits := tags_mocks.NewMockLimitsProvider(ctrl)
	limits.EXPECT().LimitsFor(gomock.Any()).Return(tags.DefaultLimits).AnyTimes()

	// Overriding one knob must not zero the others; an unset source cap in
	// particular would otherwise drop every candidate.
	e := NewEngine(
		query.NewBuilder(query.Heuristic{}, nil),
		retrieval.NewFuser(docs, retrieval.Weights{}),
		limits,
		nil,
		Options{Alpha: 0.85},
	)

	resp, err := e.Ask(context.Background(), AskRequest{Question: "Where is the schema defined?"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if resp.Answer != "docs/schema.sql" {
		t.Errorf("Answer = %q, want docs/schema.sql", resp.Answer)
	}
	if resp.Context == "" || len(resp.Picks) == 0 {
		t.Error("response is missing the assembled context")
	}
}

func TestEngine_Ask_EmptyQuestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := store_mocks.NewMockDocumentStore(ctrl)

	e := newTestEngine(t, docs, nil)

	if _, err := e.Ask(context.Background(), AskRequest{Question: "   "}); !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("Ask() error = %v, want ErrEmptyQuestion", err)
	}
}

func TestEngine_Ask_GenerativeFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := store_mocks.NewMockDocumentStore(ctrl)

	// No token overlap with the question, so no sentence is picked and the
	// extractor misses.
	rows := []store.Row{
		{SourcePath: "notes/storage.md", ChunkID: "c1", Text: "Durability relies on fsync batching.", Score: 1.0},
	}
	docs.EXPECT().SearchLexical(gomock.Any(), gomock.Any(), gomock.Any()).Return(rows, nil)
	docs.EXPECT().SearchTitle(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	gen := &stubGenerator{answer: "It relies on fsync batching for durability."}
	e := newTestEngine(t, docs, gen)

	resp, err := e.Ask(context.Background(), AskRequest{Question: "explain crash consistency guarantees"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if !gen.called {
		t.Fatal("generator was not called on extractor miss")
	}
	if resp.Provenance != ProvenanceGenerative {
		t.Errorf("Provenance = %q, want %q", resp.Provenance, ProvenanceGenerative)
	}
	if resp.Answer != "It relies on fsync batching for durability." {
		t.Errorf("Answer = %q", resp.Answer)
	}
	if !strings.Contains(gen.gotCtx, "[doc:notes/storage.md#c1]") {
		t.Errorf("packed context %q is missing the doc header", gen.gotCtx)
	}
}

func TestEngine_Ask_NoGeneratorMissIsUnknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := store_mocks.NewMockDocumentStore(ctrl)

	rows := []store.Row{
		{SourcePath: "notes/storage.md", ChunkID: "c1", Text: "Durability relies on fsync batching.", Score: 1.0},
	}
	docs.EXPECT().SearchLexical(gomock.Any(), gomock.Any(), gomock.Any()).Return(rows, nil)
	docs.EXPECT().SearchTitle(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	e := newTestEngine(t, docs, nil)

	resp, err := e.Ask(context.Background(), AskRequest{Question: "explain crash consistency guarantees"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if resp.Answer != "unknown" {
		t.Errorf("Answer = %q, want unknown", resp.Answer)
	}
	if resp.Provenance != ProvenanceRule {
		t.Errorf("Provenance = %q, want %q", resp.Provenance, ProvenanceRule)
	}
}

func TestEngine_Ask_RetrievalFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := store_mocks.NewMockDocumentStore(ctrl)

	docs.EXPECT().SearchLexical(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("fts index gone")).AnyTimes()
	docs.EXPECT().SearchTitle(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	e := newTestEngine(t, docs, nil)

	if _, err := e.Ask(context.Background(), AskRequest{Question: "anything at all"}); err == nil {
		t.Fatal("Ask() error = nil, want retrieval failure")
	}
}

func TestEngine_Ask_GeneratorFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := store_mocks.NewMockDocumentStore(ctrl)

	rows := []store.Row{
		{SourcePath: "notes/storage.md", ChunkID: "c1", Text: "Durability relies on fsync batching.", Score: 1.0},
	}
	docs.EXPECT().SearchLexical(gomock.Any(), gomock.Any(), gomock.Any()).Return(rows, nil)
	docs.EXPECT().SearchTitle(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	gen := &stubGenerator{err: errors.New("model offline")}
	e := newTestEngine(t, docs, gen)

	if _, err := e.Ask(context.Background(), AskRequest{Question: "explain crash consistency guarantees"}); err == nil {
		t.Fatal("Ask() error = nil, want generator failure")
	}
}

func TestEngine_Ask_DebugScores(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := store_mocks.NewMockDocumentStore(ctrl)

	rows := []store.Row{
		{SourcePath: "docs/guide.md", ChunkID: "c1", Text: "The schema is defined in docs/schema.sql.", Score: 3.0},
		{SourcePath: "docs/other.md", ChunkID: "c1", Text: "The schema notes also mention defaults.", Score: 1.0},
	}
	docs.EXPECT().SearchLexical(gomock.Any(), gomock.Any(), gomock.Any()).Return(rows, nil)
	docs.EXPECT().SearchTitle(gomock.Any(), gomock.Any(), gomock.Any()).Return(rows[:1], nil)

	e := newTestEngine(t, docs, nil)

	resp, err := e.Ask(context.Background(), AskRequest{Question: "Where is the schema defined?", Debug: true})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if resp.Debug == nil {
		t.Fatal("Debug is nil in debug mode")
	}
	if len(resp.Debug.Candidates) != 2 {
		t.Fatalf("got %d debug candidates, want 2", len(resp.Debug.Candidates))
	}

	top := resp.Debug.Candidates[0]
	if top.Rank != 1 {
		t.Errorf("top Rank = %d, want 1", top.Rank)
	}
	if top.SourcePath != "docs/guide.md" {
		t.Errorf("top SourcePath = %q, want docs/guide.md", top.SourcePath)
	}
	if top.ScoreLexical == 0 || top.ScoreTitle == 0 {
		t.Error("component scores were not retained in debug mode")
	}
	if top.ScoreFused <= resp.Debug.Candidates[1].ScoreFused {
		t.Error("debug candidates are not ranked by fused score")
	}
}

func TestEngine_Ask_TagRouting(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := store_mocks.NewMockDocumentStore(ctrl)

	rows := []store.Row{
		{SourcePath: "db/schema.md", ChunkID: "c1", Text: "CREATE TABLE events (id BIGINT PRIMARY KEY, payload JSONB);", Score: 2.0},
	}
	docs.EXPECT().SearchLexical(gomock.Any(), gomock.Any(), gomock.Any()).Return(rows, nil)
	docs.EXPECT().SearchTitle(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	e := newTestEngine(t, docs, nil)

	resp, err := e.Ask(context.Background(), AskRequest{
		Question: "what is the events table definition",
		Tag:      "db_workflows",
	})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if resp.Provenance != ProvenanceRule {
		t.Fatalf("Provenance = %q, want %q", resp.Provenance, ProvenanceRule)
	}
	if !strings.HasPrefix(resp.Answer, "CREATE TABLE events") {
		t.Errorf("Answer = %q, want the schema line", resp.Answer)
	}
	if strings.HasSuffix(resp.Answer, ";") {
		t.Errorf("Answer %q keeps the trailing semicolon", resp.Answer)
	}
}
