package extract

import (
	"strings"
	"testing"
)

func TestPackContextBasic(t *testing.T) {
	ranked := []RankedDoc{
		{ID: "guide", Score: 0.9},
		{ID: "schema", Score: 0.7},
	}
	texts := map[string]string{
		"guide":  "First sentence here. Second sentence follows. Third is dropped.",
		"schema": "Schema notes live here.",
	}

	got := PackContext(ranked, texts, DefaultPackOptions())
	blocks := strings.Split(got, "\n\n")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %q", len(blocks), got)
	}
	if !strings.HasPrefix(blocks[0], "[doc:guide] ") {
		t.Fatalf("unexpected first block: %q", blocks[0])
	}
	if strings.Contains(blocks[0], "Third is dropped") {
		t.Fatal("snippet should keep only the first two sentences")
	}
	if !strings.HasPrefix(blocks[1], "[doc:schema] ") {
		t.Fatalf("unexpected second block: %q", blocks[1])
	}
}

func TestPackContextBudget(t *testing.T) {
	ranked := []RankedDoc{
		{ID: "a", Score: 3},
		{ID: "b", Score: 2},
		{ID: "c", Score: 1},
	}
	long := strings.Repeat("x", 2000)
	texts := map[string]string{"a": long, "b": long, "c": long}

	got := PackContext(ranked, texts, PackOptions{MaxChars: 100, PerDoc: 2})
	if strings.Contains(got, "\n\n") {
		t.Fatalf("expected at most one block, got %q", got)
	}
	header := "[doc:a] "
	if !strings.HasPrefix(got, header) {
		t.Fatalf("unexpected block: %q", got)
	}
	if len(got) > 100+len(header) {
		t.Fatalf("block length %d exceeds budget plus header", len(got))
	}
}

func TestPackContextPerDocCap(t *testing.T) {
	ranked := []RankedDoc{
		{ID: "a", Score: 5},
		{ID: "a", Score: 4},
		{ID: "a", Score: 3},
		{ID: "b", Score: 2},
	}
	texts := map[string]string{"a": "Doc a text.", "b": "Doc b text."}

	got := PackContext(ranked, texts, DefaultPackOptions())
	if strings.Count(got, "[doc:a]") != 2 {
		t.Fatalf("expected doc a capped at 2 blocks, got %q", got)
	}
	if strings.Count(got, "[doc:b]") != 1 {
		t.Fatalf("expected one doc b block, got %q", got)
	}
}

func TestPackContextMissingText(t *testing.T) {
	ranked := []RankedDoc{{ID: "ghost", Score: 1}, {ID: "real", Score: 0.5}}
	texts := map[string]string{"real": "Real content."}

	got := PackContext(ranked, texts, DefaultPackOptions())
	if !strings.HasPrefix(got, "[doc:real] ") {
		t.Fatalf("missing-text doc should be skipped, got %q", got)
	}
}

func TestPackContextEmptyInput(t *testing.T) {
	if got := PackContext(nil, nil, DefaultPackOptions()); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestPackContextDeterministic(t *testing.T) {
	ranked := []RankedDoc{
		{ID: "b", Score: 1},
		{ID: "a", Score: 1},
	}
	texts := map[string]string{"a": "Alpha text.", "b": "Beta text."}

	first := PackContext(ranked, texts, DefaultPackOptions())
	for i := 0; i < 5; i++ {
		if got := PackContext(ranked, texts, DefaultPackOptions()); got != first {
			t.Fatalf("packing not deterministic: %q vs %q", got, first)
		}
	}
	// Equal scores order by ID.
	if !strings.HasPrefix(first, "[doc:a] ") {
		t.Fatalf("expected doc a first on score tie, got %q", first)
	}
}
