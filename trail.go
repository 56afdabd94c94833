// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

// Package trail resolves a request path into named parameters by running an ordered chain
// of path matchers against a [Route].
//
// Each matcher looks at the missing part of the route path, consumes the segments it knows with
// [Route.MatchPath], records parameters and marks the route found once the path is fully resolved.
// The chain stops at the first matcher that marks the route found.
//
//	r := trail.MustNew()
//	r.AddMatcher(trail.Use(trail.NewParameterMatcher(trail.Table{
//		{Pattern: "/archive/[year=number(4)]/[month=number(1-2)]", Params: trail.Params{{Key: "controller", Value: "archive"}}},
//	})))
//	route, err := r.Match(req)
package trail

import (
	"time"
)

// Matcher inspects a [Route], consumes the known part of its missing path and sets parameters.
// A Matcher must be safe for concurrent use, the route is owned by the caller.
type Matcher interface {
	// Match processes the route. An error aborts the routing pass.
	Match(r *Route) error
}

// The MatcherFunc type is an adapter to allow the use of ordinary functions as [Matcher].
type MatcherFunc func(r *Route) error

// Match calls f(r).
func (f MatcherFunc) Match(r *Route) error {
	return f(r)
}

// MatcherFactory builds the [Matcher] registered under a name. Implementations must be safe
// for concurrent use.
type MatcherFactory interface {
	BuildMatcher(name string) (Matcher, error)
}

// Observer is notified once per [Router.Match] call with the resulting route, the error if any,
// and the time spent matching. Implementations must be safe for concurrent use.
type Observer interface {
	ObserveMatch(r *Route, err error, elapsed time.Duration)
}

// MatcherOption configures the builtin matchers.
type MatcherOption interface {
	applyMatcher(*matcherConfig)
}

type matcherOptionFunc func(*matcherConfig)

func (o matcherOptionFunc) applyMatcher(c *matcherConfig) {
	o(c)
}

type matcherConfig struct {
	factory MatcherFactory
	partial bool
}

func newMatcherConfig(opts []MatcherOption) matcherConfig {
	c := matcherConfig{partial: true}
	for _, opt := range opts {
		opt.applyMatcher(&c)
	}
	return c
}

// WithPartialMatches controls whether a static, regex or parameter matcher may consume only the
// beginning of the missing path. When disabled, a pattern must match the whole missing path, ignoring
// leading and trailing slashes. Enabled by default.
func WithPartialMatches(enable bool) MatcherOption {
	return matcherOptionFunc(func(c *matcherConfig) {
		c.partial = enable
	})
}

// WithMatcherFactory sets the factory used by a [NamespaceMatcher] to resolve [Named] entries.
func WithMatcherFactory(f MatcherFactory) MatcherOption {
	return matcherOptionFunc(func(c *matcherConfig) {
		c.factory = f
	})
}
