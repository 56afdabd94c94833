package trail

import (
	"fmt"
)

type entryKind uint8

const (
	entryInvalid entryKind = iota
	entryMatcher
	entryFunc
	entryNamed
)

// Entry is an item of a matcher chain. It is either a [Matcher] instance, an inline function or the
// name of a matcher resolved by a [MatcherFactory] when the chain runs. Use [Use], [Func] and [Named] to
// build one. The zero Entry is invalid and fails the routing pass with an error that is ErrInvalidMatcher.
type Entry struct {
	matcher Matcher
	fn      func(r *Route) error
	name    string
	kind    entryKind
}

// Use returns an [Entry] for the matcher.
func Use(m Matcher) Entry {
	if m == nil {
		return Entry{}
	}
	return Entry{kind: entryMatcher, matcher: m}
}

// Func returns an [Entry] calling fn with the route.
func Func(fn func(r *Route) error) Entry {
	if fn == nil {
		return Entry{}
	}
	return Entry{kind: entryFunc, fn: fn}
}

// Named returns an [Entry] for the matcher built by the chain's [MatcherFactory] under name.
func Named(name string) Entry {
	return Entry{kind: entryNamed, name: name}
}

// Name returns the matcher name of a [Named] entry, or an empty string.
func (e Entry) Name() string {
	return e.name
}

func (e Entry) String() string {
	switch e.kind {
	case entryMatcher:
		if s, ok := e.matcher.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprintf("%T", e.matcher)
	case entryFunc:
		return "func"
	case entryNamed:
		return "named:" + e.name
	default:
		return "invalid"
	}
}

func (e Entry) apply(r *Route, f MatcherFactory) error {
	switch e.kind {
	case entryMatcher:
		return e.matcher.Match(r)
	case entryFunc:
		return e.fn(r)
	case entryNamed:
		if f == nil {
			return fmt.Errorf("%w to build matcher %q", ErrNoFactory, e.name)
		}
		m, err := f.BuildMatcher(e.name)
		if err != nil {
			return fmt.Errorf("failed to build matcher %q: %w", e.name, err)
		}
		if m == nil {
			return fmt.Errorf("%w: factory returned no matcher for %q", ErrInvalidMatcher, e.name)
		}
		return m.Match(r)
	default:
		return ErrInvalidMatcher
	}
}

// Apply runs the entries against the route in order and stops as soon as the route is found. The factory
// resolves [Named] entries and may be nil if there are none. Apply returns the first error encountered;
// a route that is not found afterward is not an error.
func Apply(r *Route, entries []Entry, f MatcherFactory) error {
	if r.IsFound() {
		return nil
	}
	for _, e := range entries {
		if err := e.apply(r, f); err != nil {
			return err
		}
		if r.IsFound() {
			return nil
		}
	}
	return nil
}
