// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"
)

// Router resolves a [Route] for a request by running its matcher chain. The chain may be extended with
// [Router.AddMatcher] at any time, but entries are only validated when a request is matched.
// Router is safe for concurrent use.
type Router struct {
	factory  MatcherFactory
	observer Observer
	logger   *slog.Logger
	entries  []Entry
	mu       sync.RWMutex
}

// New returns a ready to use [Router] instance configured with the provided options.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		if err := opt.apply(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Match resolves the route of the request. The route is never nil, even when an error is returned. A route
// that is not found is not an error: the caller decides how to respond, for example with a 404 status.
// Errors are configuration or pattern errors and abort the routing pass.
func (r *Router) Match(req *http.Request) (*Route, error) {
	start := time.Now()

	r.mu.RLock()
	entries := r.entries
	factory := r.factory
	r.mu.RUnlock()

	route := NewRoute(req)
	err := Apply(route, entries, factory)

	elapsed := time.Since(start)
	if r.observer != nil {
		r.observer.ObserveMatch(route, err, elapsed)
	}
	r.log(req.Context(), route, err, elapsed)

	return route, err
}

// AddMatcher appends an entry to the matcher chain.
func (r *Router) AddMatcher(e Entry) {
	r.mu.Lock()
	// Copy on write, a Match in progress keeps its snapshot.
	entries := make([]Entry, len(r.entries), len(r.entries)+1)
	copy(entries, r.entries)
	r.entries = append(entries, e)
	r.mu.Unlock()
}

// Matchers returns a copy of the matcher chain.
func (r *Router) Matchers() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.entries)
}

// SetFactory sets the factory used to resolve [Named] entries.
func (r *Router) SetFactory(f MatcherFactory) {
	r.mu.Lock()
	r.factory = f
	r.mu.Unlock()
}

func (r *Router) log(ctx context.Context, route *Route, err error, elapsed time.Duration) {
	if err != nil {
		r.logger.LogAttrs(
			ctx,
			slog.LevelError,
			"route matching failed",
			slog.String("path", route.Request().URL.Path),
			slog.String("error", err.Error()),
			slog.Duration("elapsed", elapsed),
		)
		return
	}

	if !r.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	msg := "route not found"
	if route.IsFound() {
		msg = "route resolved"
	}
	r.logger.LogAttrs(
		ctx,
		slog.LevelDebug,
		msg,
		slog.String("path", route.Request().URL.Path),
		slog.String("matched", route.MatchedPath()),
		slog.String("missing", route.MissingPath()),
		slog.Int("params", len(route.params)),
		slog.Duration("elapsed", elapsed),
	)
}
