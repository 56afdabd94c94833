package trail

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"

	"github.com/tigerwill90/trail/internal/stringutil"
)

// RegexMatcher matches a table of regular expressions. Every expression is evaluated case-insensitively
// and unanchored against the missing path, and the longest matched text wins. Expressions matching the
// same number of characters are resolved by table order, but two expressions matching the exact same
// text fail the routing pass with an [AmbiguousMatchError]. If partial matches are disabled, the matched
// text must be equal to the whole missing path, ignoring leading and trailing slashes.
//
// Named capture groups that took part in the match are set as route parameters, overriding the table
// parameters with the same name. The route is found when the match leaves nothing but slashes to resolve.
//
// Expressions are compiled on every call; use [RegexMatcher.Validate] to check them ahead of time.
type RegexMatcher struct {
	table   Table
	partial bool
}

// NewRegexMatcher returns a [RegexMatcher] for the table. See [WithPartialMatches].
func NewRegexMatcher(t Table, opts ...MatcherOption) *RegexMatcher {
	cfg := newMatcherConfig(opts)
	return &RegexMatcher{
		table:   t,
		partial: cfg.partial,
	}
}

// Match implements [Matcher].
func (m *RegexMatcher) Match(r *Route) error {
	rules := make([]compiledRule, 0, len(m.table))
	for _, rule := range m.table {
		re, err := compileRegexp(rule.Pattern)
		if err != nil {
			return err
		}
		rules = append(rules, compiledRule{re: re, pattern: rule.Pattern, params: rule.Params})
	}
	return matchLongest(r, rules, m.partial)
}

// Validate compiles every expression of the table and returns the first error. The returned error
// is ErrInvalidPattern.
func (m *RegexMatcher) Validate() error {
	for _, rule := range m.table {
		if _, err := compileRegexp(rule.Pattern); err != nil {
			return err
		}
	}
	return nil
}

func (m *RegexMatcher) String() string {
	return "regex"
}

type compiledRule struct {
	re      *regexp.Regexp
	pattern string
	params  Params
}

type candidate struct {
	match   string
	pattern string
	params  Params
}

func compileRegexp(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, expr, err)
	}
	return re, nil
}

// matchLongest applies the longest match of rules to the route.
func matchLongest(r *Route, rules []compiledRule, partial bool) error {
	missing := r.MissingPath()
	candidates := make([]candidate, 0, len(rules))
	for _, rule := range rules {
		loc := rule.re.FindStringSubmatchIndex(missing)
		if loc == nil {
			continue
		}

		match := missing[loc[0]:loc[1]]
		if !partial && !stringutil.EqualTrimmed(match, missing) {
			continue
		}

		if i := slices.IndexFunc(candidates, func(c candidate) bool { return c.match == match }); i >= 0 {
			return &AmbiguousMatchError{
				Match:    match,
				Patterns: []string{candidates[i].pattern, rule.pattern},
			}
		}

		params := rule.params.Clone()
		for i, name := range rule.re.SubexpNames() {
			if name == "" || loc[2*i] < 0 {
				continue
			}
			params = params.Set(name, missing[loc[2*i]:loc[2*i+1]])
		}

		candidates = append(candidates, candidate{match: match, pattern: rule.pattern, params: params})
	}

	if len(candidates) == 0 {
		return nil
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return cmp.Compare(len(b.match), len(a.match))
	})

	best := candidates[0]
	if err := r.MatchPath(best.match); err != nil {
		return err
	}
	r.mergeParams(best.params)

	if stringutil.TrimSlash(r.MissingPath()) == "" {
		r.Found(nil)
	}
	return nil
}
