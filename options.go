// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

import (
	"fmt"
	"log/slog"
)

type Option interface {
	apply(*Router) error
}

type optionFunc func(*Router) error

func (o optionFunc) apply(r *Router) error {
	return o(r)
}

// WithMatchers appends the entries to the matcher chain of the router.
func WithMatchers(entries ...Entry) Option {
	return optionFunc(func(r *Router) error {
		r.entries = append(r.entries, entries...)
		return nil
	})
}

// WithFactory register the [MatcherFactory] used to resolve [Named] entries. Without a factory,
// a [Named] entry fails the routing pass with an error that is ErrNoFactory.
func WithFactory(f MatcherFactory) Option {
	return optionFunc(func(r *Router) error {
		if f == nil {
			return fmt.Errorf("%w: factory cannot be nil", ErrInvalidConfig)
		}
		r.factory = f
		return nil
	})
}

// WithLogger register the [slog.Handler] used to log routing outcomes. Resolved and unresolved routes are
// logged at debug level, errors at error level. By default, nothing is logged.
func WithLogger(handler slog.Handler) Option {
	return optionFunc(func(r *Router) error {
		if handler == nil {
			return fmt.Errorf("%w: log handler cannot be nil", ErrInvalidConfig)
		}
		r.logger = slog.New(handler)
		return nil
	})
}

// WithObserver register an [Observer] notified on every [Router.Match] call. See the metrics package
// for a Prometheus implementation.
func WithObserver(o Observer) Option {
	return optionFunc(func(r *Router) error {
		if o == nil {
			return fmt.Errorf("%w: observer cannot be nil", ErrInvalidConfig)
		}
		r.observer = o
		return nil
	})
}
