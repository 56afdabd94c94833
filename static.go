package trail

import (
	"github.com/tigerwill90/trail/internal/stringutil"
)

// StaticMatcher matches a table of literal paths. The longest path that is a case-insensitive prefix
// of the missing path wins. If partial matches are disabled, the path must be equal to the whole
// missing path, ignoring leading and trailing slashes. A path that would end in the middle of a
// segment, like /path for /pathto, never matches.
//
// The route is found when the matched path leaves nothing but slashes to resolve.
type StaticMatcher struct {
	table   Table
	partial bool
}

// NewStaticMatcher returns a [StaticMatcher] for the table. See [WithPartialMatches].
func NewStaticMatcher(t Table, opts ...MatcherOption) *StaticMatcher {
	cfg := newMatcherConfig(opts)
	return &StaticMatcher{
		table:   t,
		partial: cfg.partial,
	}
}

// Match implements [Matcher].
func (m *StaticMatcher) Match(r *Route) error {
	missing := r.MissingPath()
	for _, rule := range m.table.byPatternLength() {
		if !stringutil.HasPrefixASCIIIgnoreCase(missing, rule.Pattern) || !onBoundary(missing, rule.Pattern) {
			continue
		}

		if !m.partial && !stringutil.EqualTrimmed(rule.Pattern, missing) {
			continue
		}

		if err := r.MatchPath(rule.Pattern); err != nil {
			return err
		}
		r.mergeParams(rule.Params)

		if stringutil.TrimSlash(r.MissingPath()) == "" {
			r.Found(nil)
		}
		return nil
	}

	return nil
}

func (m *StaticMatcher) String() string {
	return "static"
}

// onBoundary reports whether path, once normalized, ends on a segment boundary of missing.
func onBoundary(missing, path string) bool {
	normalized := "/" + stringutil.TrimSlash(path)
	if normalized == "/" {
		return true
	}
	if !stringutil.HasPrefixASCIIIgnoreCase(missing, normalized) {
		return false
	}
	rest := missing[len(normalized):]
	return rest == "" || rest[0] == '/'
}
