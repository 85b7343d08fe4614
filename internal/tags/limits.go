package tags

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_limits_provider.go -package=mocks github.com/TheMonk2121/ai-dev-tasks-sub022/internal/tags LimitsProvider

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Limits holds the per-tag retrieval ceilings: how many candidates the fuser
// shortlists and how many survive the final cap.
type Limits struct {
	Shortlist int `yaml:"shortlist"`
	TopK      int `yaml:"topk"`
}

// DefaultLimits applies when a tag has no configured entry.
var DefaultLimits = Limits{Shortlist: 24, TopK: 8}

// LimitsProvider resolves retrieval limits for a tag. The pipeline calls it
// once per retrieval.
type LimitsProvider interface {
	LimitsFor(tag Tag) Limits
}

// FileLimits is a LimitsProvider backed by an optional YAML file mapping tag
// names to limits. Missing file or missing entries fall back to DefaultLimits.
type FileLimits struct {
	byTag map[Tag]Limits
}

// LoadLimits reads a YAML limits file. A missing file is not an error; it
// yields a provider that returns DefaultLimits for every tag.
func LoadLimits(path string) (*FileLimits, error) {
	fl := &FileLimits{byTag: make(map[Tag]Limits)}
	if path == "" {
		return fl, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fl, nil
		}
		return nil, fmt.Errorf("failed to read limits file: %w", err)
	}

	var raw map[string]Limits
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse limits file: %w", err)
	}

	for name, limits := range raw {
		if limits.Shortlist <= 0 {
			limits.Shortlist = DefaultLimits.Shortlist
		}
		if limits.TopK <= 0 {
			limits.TopK = DefaultLimits.TopK
		}
		fl.byTag[Parse(name)] = limits
	}

	return fl, nil
}

// LimitsFor returns the configured limits for tag, or DefaultLimits when the
// tag has no entry.
func (f *FileLimits) LimitsFor(tag Tag) Limits {
	if limits, ok := f.byTag[tag]; ok {
		return limits
	}
	return DefaultLimits
}
