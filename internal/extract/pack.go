package extract

import (
	"fmt"
	"sort"
	"strings"
)

// Packer defaults.
const (
	DefaultPackMaxChars = 1600
	DefaultPackPerDoc   = 2
	packSnippetLimit    = 600
	packSnippetMaxSents = 2
)

// RankedDoc is a (source-id, score) pair fed to the packer.
type RankedDoc struct {
	ID    string
	Score float64
}

// PackOptions bounds the packed context by total characters and per-document
// block count.
type PackOptions struct {
	MaxChars int
	PerDoc   int
}

// DefaultPackOptions returns the standard packing budget.
func DefaultPackOptions() PackOptions {
	return PackOptions{MaxChars: DefaultPackMaxChars, PerDoc: DefaultPackPerDoc}
}

// PackContext packs ranked documents into a flat, character-budgeted context.
// For each pair in descending score order it takes the first two sentences
// (or the first 600 characters, whichever is shorter) of the document text,
// formats the block as "[doc:ID] snippet", and stops accepting blocks once
// adding one would exceed the budget. The first block is always emitted, with
// its snippet truncated to the budget if needed, so a tiny budget still
// yields usable context. Blocks are joined by a blank line. Pure and
// deterministic; an empty candidate list yields an empty string.
func PackContext(ranked []RankedDoc, texts map[string]string, opts PackOptions) string {
	if opts.MaxChars <= 0 {
		opts.MaxChars = DefaultPackMaxChars
	}
	if opts.PerDoc <= 0 {
		opts.PerDoc = DefaultPackPerDoc
	}
	if len(ranked) == 0 {
		return ""
	}

	ordered := append([]RankedDoc(nil), ranked...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Score != ordered[j].Score {
			return ordered[i].Score > ordered[j].Score
		}
		return ordered[i].ID < ordered[j].ID
	})

	var blocks []string
	var used int
	perDoc := make(map[string]int)
	for _, doc := range ordered {
		if perDoc[doc.ID] >= opts.PerDoc {
			continue
		}
		text, ok := texts[doc.ID]
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}

		snippet := leadingSnippet(text)
		block := fmt.Sprintf("[doc:%s] %s", doc.ID, snippet)

		if len(blocks) == 0 {
			if len(snippet) > opts.MaxChars {
				snippet = strings.TrimSpace(snippet[:opts.MaxChars])
				block = fmt.Sprintf("[doc:%s] %s", doc.ID, snippet)
			}
			blocks = append(blocks, block)
			used = len(block)
			perDoc[doc.ID]++
			continue
		}

		if used+2+len(block) > opts.MaxChars {
			break
		}
		blocks = append(blocks, block)
		used += 2 + len(block)
		perDoc[doc.ID]++
	}

	return strings.Join(blocks, "\n\n")
}

// leadingSnippet extracts the first two sentences of text, capped at 600
// characters.
func leadingSnippet(text string) string {
	sentences := splitSentences(text)
	var snippet string
	if len(sentences) == 0 {
		snippet = strings.TrimSpace(text)
	} else if len(sentences) > packSnippetMaxSents {
		snippet = strings.Join(sentences[:packSnippetMaxSents], " ")
	} else {
		snippet = strings.Join(sentences, " ")
	}
	if len(snippet) > packSnippetLimit {
		snippet = strings.TrimSpace(snippet[:packSnippetLimit])
	}
	return snippet
}
