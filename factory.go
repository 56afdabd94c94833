package trail

import (
	"fmt"
	"slices"
	"sync"
)

// Registry is a [MatcherFactory] resolving names registered with [Registry.Register].
// It is safe for concurrent use.
type Registry struct {
	matchers map[string]Matcher
	mu       sync.RWMutex
}

// NewRegistry returns an empty [Registry].
func NewRegistry() *Registry {
	return &Registry{
		matchers: make(map[string]Matcher),
	}
}

// Register registers the matcher under name. It returns an error that is ErrMatcherExist if the name is
// already registered, or ErrInvalidMatcher if m is nil.
func (r *Registry) Register(name string, m Matcher) error {
	if m == nil {
		return fmt.Errorf("%w: matcher %q cannot be nil", ErrInvalidMatcher, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.matchers[name]; ok {
		return fmt.Errorf("%w: %q", ErrMatcherExist, name)
	}
	r.matchers[name] = m
	return nil
}

// BuildMatcher returns the matcher registered under name, or an error that is ErrMatcherNotFound.
func (r *Registry) BuildMatcher(name string) (Matcher, error) {
	r.mu.RLock()
	m, ok := r.matchers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMatcherNotFound, name)
	}
	return m, nil
}

// Names returns the registered names in lexicographical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.matchers))
	for name := range r.matchers {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}
