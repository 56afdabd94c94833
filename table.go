package trail

import (
	"cmp"
	"slices"
)

// Rule associates a pattern with the parameters merged into the route when the pattern matches.
type Rule struct {
	Pattern string
	Params  Params
}

// Table is an ordered list of rules. The order of the rules is the tie-break order when two
// patterns match the same number of characters.
type Table []Rule

// Patterns returns the patterns of the table in order.
func (t Table) Patterns() []string {
	patterns := make([]string, len(t))
	for i := range t {
		patterns[i] = t[i].Pattern
	}
	return patterns
}

// byPatternLength returns a copy of t sorted by pattern length, longest first. Rules with the
// same length keep their relative order.
func (t Table) byPatternLength() Table {
	sorted := slices.Clone(t)
	slices.SortStableFunc(sorted, func(a, b Rule) int {
		return cmp.Compare(len(b.Pattern), len(a.Pattern))
	})
	return sorted
}
