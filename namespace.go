package trail

import (
	"github.com/tigerwill90/trail/internal/stringutil"
)

// NamespaceMatcher provides a common path prefix to a chain of matchers. It only engages if the missing
// path starts with the prefix, compared case-insensitively and on a segment boundary. The prefix is then
// consumed as a non-terminal match (see [Route.MatchNonTerminal]) and the chain runs like a [Router]
// chain, stopping at the first matcher that marks the route found.
type NamespaceMatcher struct {
	factory MatcherFactory
	prefix  string
	entries []Entry
}

// NewNamespaceMatcher returns a [NamespaceMatcher] for the prefix and the entries. Use [WithMatcherFactory]
// to resolve [Named] entries.
func NewNamespaceMatcher(prefix string, entries []Entry, opts ...MatcherOption) *NamespaceMatcher {
	cfg := newMatcherConfig(opts)
	return &NamespaceMatcher{
		factory: cfg.factory,
		prefix:  "/" + stringutil.TrimSlash(prefix),
		entries: entries,
	}
}

// Match implements [Matcher].
func (m *NamespaceMatcher) Match(r *Route) error {
	missing := r.MissingPath()
	if !stringutil.HasPrefixASCIIIgnoreCase(missing, m.prefix) || !onBoundary(missing, m.prefix) {
		return nil
	}

	if err := r.MatchNonTerminal(m.prefix); err != nil {
		return err
	}

	return Apply(r, m.entries, m.factory)
}

// Prefix returns the normalized path prefix.
func (m *NamespaceMatcher) Prefix() string {
	return m.prefix
}

// Entries returns a copy of the nested entries.
func (m *NamespaceMatcher) Entries() []Entry {
	entries := make([]Entry, len(m.entries))
	copy(entries, m.entries)
	return entries
}

func (m *NamespaceMatcher) String() string {
	return "namespace:" + m.prefix
}
