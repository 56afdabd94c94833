// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tigerwill90/trail/internal/pattern"
)

var (
	ErrInvalidConfig   = errors.New("invalid config")
	ErrNoFactory       = fmt.Errorf("%w: no factory available", ErrInvalidConfig)
	ErrInvalidMatcher  = fmt.Errorf("%w: invalid matcher type", ErrInvalidConfig)
	ErrMatcherNotFound = errors.New("matcher not found")
	ErrMatcherExist    = errors.New("matcher already registered")
	ErrInvalidPath     = errors.New("invalid path")
	ErrAmbiguousMatch  = errors.New("ambiguous match")
)

var (
	ErrInvalidPattern   = pattern.ErrInvalidPattern
	ErrInvalidParameter = pattern.ErrInvalidParameter
	ErrUnknownFormat    = pattern.ErrUnknownFormat
)

// AmbiguousMatchError is returned when several patterns of the same matcher produce the exact same
// matched path. Routing tables must not overlap at equal specificity.
type AmbiguousMatchError struct {
	// Match is the matched part of the path.
	Match string
	// Patterns are the conflicting patterns, in table order.
	Patterns []string
}

func (e *AmbiguousMatchError) Error() string {
	var sb strings.Builder
	sb.WriteString("ambiguous match: multiple regular expressions match ")
	sb.WriteByte('"')
	sb.WriteString(e.Match)
	sb.WriteByte('"')
	if len(e.Patterns) > 0 {
		sb.WriteString(": ")
		sb.WriteString(strings.Join(e.Patterns, ", "))
	}
	return sb.String()
}

// Unwrap returns the sentinel value [ErrAmbiguousMatch].
func (e *AmbiguousMatchError) Unwrap() error {
	return ErrAmbiguousMatch
}
