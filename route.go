// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tigerwill90/trail/internal/stringutil"
)

// Route holds the state of a single routing pass. The request path is split into a matched part and a
// missing part, the missing part shrinking each time a matcher consumes a segment. A Route is owned by
// one routing pass and must not be shared between goroutines.
type Route struct {
	req     *http.Request
	resp    http.Handler
	params  Params
	matched string
	missing string
	found   bool
}

// NewRoute returns a new unresolved [Route] for the request. The missing path is initialized with the
// request URL path.
func NewRoute(req *http.Request) *Route {
	return &Route{
		req:     req,
		missing: req.URL.Path,
	}
}

// IsFound reports whether the route has been completely resolved.
func (r *Route) IsFound() bool {
	return r.found
}

// Found marks the route as completely resolved. Once found, the remaining matchers of a chain are not
// called. A matcher that knows how to respond to the request may provide a handler, which is recorded
// only if no response was recorded before. The handler may be nil.
func (r *Route) Found(h http.Handler) {
	r.found = true
	if r.resp == nil && h != nil {
		r.resp = h
	}
}

// MatchPath marks path as matched. The path is one or more segments that must be found at the start of
// the missing path, compared case-insensitively. Matching the root path "/" is a no-op unless the
// missing path is empty or "/". It returns an error that is ErrInvalidPath if the missing path does not
// start with path, or if path does not end on a segment boundary.
func (r *Route) MatchPath(path string) error {
	return r.matchPath(path, true)
}

// MatchNonTerminal is like [Route.MatchPath], but path is not allowed to be the last match. If path
// consumes the whole missing path, the missing path becomes "/" so that a following matcher can
// still match the trailing boundary.
func (r *Route) MatchNonTerminal(path string) error {
	return r.matchPath(path, false)
}

func (r *Route) matchPath(path string, last bool) error {
	normalized := "/" + stringutil.TrimSlash(path)
	if normalized == "/" && stringutil.TrimSlash(r.missing) != "" {
		return nil
	}

	if !stringutil.HasPrefixASCIIIgnoreCase(r.missing, normalized) {
		return fmt.Errorf("%w: path %q doesn't start with %q", ErrInvalidPath, r.missing, path)
	}

	match := r.missing[:len(normalized)]
	missing := r.missing[len(normalized):]
	if missing == "" {
		if !last && normalized != "/" {
			missing = "/"
		}
	} else if missing[0] != '/' {
		return fmt.Errorf("%w: path %q doesn't contain %q", ErrInvalidPath, r.missing, path)
	}

	r.matched += match
	r.missing = missing
	return nil
}

// MatchedPath returns the part of the path which has been marked as matched.
func (r *Route) MatchedPath() string {
	return r.matched
}

// MissingPath returns the part of the path which is not resolved yet.
func (r *Route) MissingPath() string {
	return r.missing
}

// Request returns the request of the route.
func (r *Route) Request() *http.Request {
	return r.req
}

// HasResponse reports whether a response handler was recorded.
func (r *Route) HasResponse() bool {
	return r.resp != nil
}

// Response returns the response handler recorded by [Route.Found], if any.
func (r *Route) Response() http.Handler {
	return r.resp
}

// HasParam reports whether the parameter exists.
func (r *Route) HasParam(key string) bool {
	return r.params.Has(key)
}

// Param returns the value of the parameter, or def if the parameter does not exist.
func (r *Route) Param(key string, def any) any {
	if v, ok := r.params.Get(key); ok {
		return v
	}
	return def
}

// SetParam sets the value of a parameter. An existing value is overwritten.
func (r *Route) SetParam(key string, value any) {
	r.params = r.params.Set(key, value)
}

// Params returns a copy of all parameters in insertion order.
func (r *Route) Params() Params {
	return r.params.Clone()
}

// mergeParams sets every parameter of p on the route.
func (r *Route) mergeParams(p Params) {
	for _, param := range p {
		r.params = r.params.Set(param.Key, param.Value)
	}
}

func (r *Route) String() string {
	sb := new(strings.Builder)
	sb.WriteString("matched:")
	sb.WriteString(r.matched)
	sb.WriteString(" missing:")
	sb.WriteString(r.missing)
	if r.found {
		sb.WriteString(" found")
	}
	return sb.String()
}
