// Package report implements the generic report assembler: one retrieval
// routine that, driven by a per-report Config, filters a primary collection,
// enriches each record from its related collections, applies deferred
// cross-entity predicates, and paginates the result.
package report

import (
	"github.com/Knetic/govaluate"
)

// FieldRef names a field either on the primary record (empty Relation) or on
// a related entity (Relation matches a Relation.Name in the same Config).
type FieldRef struct {
	Relation string
	Field    string
}

// FilterDef maps an exact-match filter key to its target field. Targets on a
// related entity are evaluated after enrichment (deferred predicates).
type FilterDef struct {
	Key    string
	Target FieldRef
}

// SearchDef maps a substring-search key to its target field, with the same
// deferral rule as FilterDef.
type SearchDef struct {
	Key    string
	Target FieldRef
}

// Relation describes a foreign key to resolve. Fields lists the related
// fields contributed to the output row, flattened to top-level keys unless
// Nested is set, in which case they appear under a sub-object keyed by Name.
type Relation struct {
	Name       string
	Collection string
	ForeignKey string
	Fields     []string
	Nested     bool
}

// ComputedField evaluates a formula over the primary record's numeric fields.
type ComputedField struct {
	Name string
	expr *govaluate.EvaluableExpression
}

// MustComputed compiles a formula at config-definition time; a bad formula is
// a programming error.
func MustComputed(name, formula string) ComputedField {
	expr, err := govaluate.NewEvaluableExpression(formula)
	if err != nil {
		panic(err)
	}
	return ComputedField{Name: name, expr: expr}
}

// Config is the declarative description of one report variant.
type Config struct {
	Name       string   // response key and route segment, e.g. "salesReports"
	Collection string   // primary collection
	DateField  string   // field the dateFrom/dateTo filters apply to
	Roles      []string // endpoint allow-list
	Filters    []FilterDef
	Searches   []SearchDef
	Relations  []Relation
	Fields     []string // primary-record fields to project
	Computed   []ComputedField
}

// FilterKeys returns the recognized filter vocabulary, which always includes
// the date bounds.
func (c *Config) FilterKeys() []string {
	keys := []string{"dateFrom", "dateTo"}
	for _, f := range c.Filters {
		keys = append(keys, f.Key)
	}
	return keys
}

func (c *Config) SearchKeys() []string {
	keys := make([]string, 0, len(c.Searches))
	for _, s := range c.Searches {
		keys = append(keys, s.Key)
	}
	return keys
}

func (c *Config) relationIndex(name string) int {
	for i := range c.Relations {
		if c.Relations[i].Name == name {
			return i
		}
	}
	return -1
}
