package trail

import (
	"github.com/tigerwill90/trail/internal/pattern"
)

// ParameterMatcher matches a table of paths with parameter placeholders. Placeholders are defined as:
//
//	[prefix+]name[=format[(length)]][?]
//
//   - Prefix: any number of characters except "]" and "+" followed by a single "+". The prefix is
//     matched but not captured.
//   - Name: a letter followed by letters, digits or "_". The captured text is set as route parameter.
//   - Format: "=" followed by any ([^/]), char ([a-z]), number ([0-9]) or alpha ([a-z0-9_-]). Defaults to any.
//   - Length: a single number or a range like 1-2 enclosed in parenthesis. Defaults to one or more.
//   - Optional: a trailing "?" makes the placeholder, prefix included, optional.
//
// For example, the pattern /archive/[year=number(4)][/+month=number(1-2)?] matches /archive/2015/9 and
// /archive/2015. Patterns are compiled to regular expressions on every call and then matched like a
// [RegexMatcher], which means the longest match wins and identical matches are ambiguous. A pattern
// without placeholders matches literally.
type ParameterMatcher struct {
	table   Table
	partial bool
}

// NewParameterMatcher returns a [ParameterMatcher] for the table. See [WithPartialMatches].
func NewParameterMatcher(t Table, opts ...MatcherOption) *ParameterMatcher {
	cfg := newMatcherConfig(opts)
	return &ParameterMatcher{
		table:   t,
		partial: cfg.partial,
	}
}

// Match implements [Matcher]. An invalid placeholder returns an error that is ErrInvalidParameter,
// an unknown format returns an error that is ErrUnknownFormat.
func (m *ParameterMatcher) Match(r *Route) error {
	rules, err := m.compile()
	if err != nil {
		return err
	}
	return matchLongest(r, rules, m.partial)
}

// Validate compiles every pattern of the table and returns the first error. The returned error
// is ErrInvalidPattern.
func (m *ParameterMatcher) Validate() error {
	_, err := m.compile()
	return err
}

func (m *ParameterMatcher) String() string {
	return "parameter"
}

func (m *ParameterMatcher) compile() ([]compiledRule, error) {
	rules := make([]compiledRule, 0, len(m.table))
	for _, rule := range m.table {
		compiled, err := pattern.Compile(rule.Pattern)
		if err != nil {
			return nil, err
		}
		re, err := compileRegexp(compiled.Expr)
		if err != nil {
			return nil, err
		}
		rules = append(rules, compiledRule{re: re, pattern: rule.Pattern, params: rule.Params})
	}
	return rules, nil
}
