// Package tags defines the closed set of topical tags a question can carry
// and the per-tag retrieval limits keyed on them.
package tags

// Tag is a topical label attached to a question. It selects scoring bonuses
// and per-tag retrieval limits throughout the pipeline.
type Tag int

const (
	// TagGeneral is the fallback for unrecognized or empty tag strings.
	TagGeneral Tag = iota
	// TagOpsHealth marks operational-health questions (monitoring, alerts).
	TagOpsHealth
	// TagMetaOps marks rollout/deployment workflow questions.
	TagMetaOps
	// TagDBWorkflows marks database schema and migration workflow questions.
	TagDBWorkflows
)

// Parse maps a raw tag string to a Tag. Unknown strings map to TagGeneral
// rather than failing, so an unrecognized tag degrades to default behavior.
func Parse(s string) Tag {
	switch s {
	case "ops_health":
		return TagOpsHealth
	case "meta_ops":
		return TagMetaOps
	case "db_workflows", "database_workflows":
		return TagDBWorkflows
	default:
		return TagGeneral
	}
}

// String returns the canonical string form of the tag.
func (t Tag) String() string {
	switch t {
	case TagOpsHealth:
		return "ops_health"
	case TagMetaOps:
		return "meta_ops"
	case TagDBWorkflows:
		return "db_workflows"
	default:
		return "general"
	}
}

// IsDatabase reports whether the tag selects database-workflow behavior
// (schema-line extraction and normalization).
func (t Tag) IsDatabase() bool {
	return t == TagDBWorkflows
}
