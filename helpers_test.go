package trail

import (
	"net/http"
	"net/http/httptest"
	"net/url"
)

func newRequest(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, "http://example.com"+path, nil)
}

// newTestRoute builds the request by hand so that any path, even one that is not a valid request
// target, can be used.
func newTestRoute(path string) *Route {
	return NewRoute(&http.Request{Method: http.MethodGet, URL: &url.URL{Path: path}})
}

// matcherSpy counts its calls and optionally marks the route found.
type matcherSpy struct {
	calls int
	found bool
}

func (m *matcherSpy) Match(r *Route) error {
	m.calls++
	if m.found {
		r.Found(nil)
	}
	return nil
}

type mapFactory map[string]Matcher

func (f mapFactory) BuildMatcher(name string) (Matcher, error) {
	m, ok := f[name]
	if !ok {
		return nil, ErrMatcherNotFound
	}
	return m, nil
}
