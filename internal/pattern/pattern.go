// Package pattern compiles the placeholder syntax used by parameter patterns
// into regular expressions with named capture groups.
//
// A placeholder is enclosed in square brackets and has the form:
//
//	[prefix+]name[=format[(length)]][?]
//
// The prefix is any run of characters except "]" and "+" followed by a single "+". It is part of the
// match but not of the captured value. The name starts with a letter followed by letters, digits or "_".
// The format is one of any, char, number or alpha, the length is a single number or a range like 1-2, and
// a trailing "?" makes the whole placeholder, prefix included, optional.
package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrInvalidPattern   = errors.New("invalid pattern")
	ErrInvalidParameter = fmt.Errorf("%w: invalid parameter definition", ErrInvalidPattern)
	ErrUnknownFormat    = fmt.Errorf("%w: unknown format", ErrInvalidPattern)
)

var (
	block      = regexp.MustCompile(`\[(.*?)\]`)
	definition = regexp.MustCompile(`^(?:([^+\]]*)\+)?([A-Za-z][A-Za-z0-9_]*)(?:=([a-z]+)(?:\(([0-9]+)(?:-([0-9]+))?\))?)?(\?)?$`)
)

type Format uint8

const (
	FormatAny Format = iota
	FormatChar
	FormatNumber
	FormatAlpha
)

var formats = map[string]Format{
	"any":    FormatAny,
	"char":   FormatChar,
	"number": FormatNumber,
	"alpha":  FormatAlpha,
}

func (f Format) String() string {
	switch f {
	case FormatChar:
		return "char"
	case FormatNumber:
		return "number"
	case FormatAlpha:
		return "alpha"
	default:
		return "any"
	}
}

// class returns the character class matched by a single character of this format.
func (f Format) class() string {
	switch f {
	case FormatChar:
		return `[a-z]`
	case FormatNumber:
		return `[0-9]`
	case FormatAlpha:
		return `[a-z0-9_\-]`
	default:
		return `[^/]`
	}
}

// Placeholder is a parsed placeholder definition.
type Placeholder struct {
	Prefix string
	Name   string
	Format Format
	// Min and Max bound the number of characters. Max is 0 when no length is given,
	// which means one or more characters.
	Min      int
	Max      int
	Optional bool
}

// Regexp returns the regular expression source for this placeholder.
func (p Placeholder) Regexp() string {
	sb := new(strings.Builder)
	if p.Prefix != "" {
		sb.WriteString("(?:")
		sb.WriteString(regexp.QuoteMeta(p.Prefix))
	}
	sb.WriteString("(?P<")
	sb.WriteString(p.Name)
	sb.WriteByte('>')
	sb.WriteString(p.Format.class())
	switch {
	case p.Max == 0:
		sb.WriteByte('+')
	case p.Min == p.Max:
		sb.WriteByte('{')
		sb.WriteString(strconv.Itoa(p.Min))
		sb.WriteByte('}')
	default:
		sb.WriteByte('{')
		sb.WriteString(strconv.Itoa(p.Min))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(p.Max))
		sb.WriteByte('}')
	}
	sb.WriteByte(')')
	if p.Prefix != "" {
		sb.WriteByte(')')
	}
	if p.Optional {
		sb.WriteByte('?')
	}
	return sb.String()
}

// Parse parses a single placeholder definition, without the enclosing brackets.
func Parse(def string) (Placeholder, error) {
	m := definition.FindStringSubmatch(def)
	if m == nil {
		return Placeholder{}, fmt.Errorf("%w %q", ErrInvalidParameter, def)
	}

	p := Placeholder{
		Prefix:   m[1],
		Name:     m[2],
		Optional: m[6] == "?",
	}

	if m[3] != "" {
		format, ok := formats[m[3]]
		if !ok {
			return Placeholder{}, fmt.Errorf("%w %q in %q", ErrUnknownFormat, m[3], def)
		}
		p.Format = format
	}

	if m[4] != "" {
		minLen, err := strconv.Atoi(m[4])
		if err != nil {
			return Placeholder{}, fmt.Errorf("%w %q: %w", ErrInvalidParameter, def, err)
		}
		maxLen := minLen
		if m[5] != "" {
			maxLen, err = strconv.Atoi(m[5])
			if err != nil {
				return Placeholder{}, fmt.Errorf("%w %q: %w", ErrInvalidParameter, def, err)
			}
		}
		if maxLen == 0 || minLen > maxLen {
			return Placeholder{}, fmt.Errorf("%w %q: invalid length", ErrInvalidParameter, def)
		}
		p.Min, p.Max = minLen, maxLen
	}

	return p, nil
}

// Compiled is the regular expression built from a pattern.
type Compiled struct {
	// Expr is the regular expression source. Literal text is escaped.
	Expr string
	// Names lists the capture group names in the order they appear.
	Names []string
}

// Compile replaces every placeholder of pat with its capture group and escapes the
// remaining literal text. A pattern without placeholders compiles to its escaped form.
func Compile(pat string) (Compiled, error) {
	locs := block.FindAllStringSubmatchIndex(pat, -1)

	sb := new(strings.Builder)
	names := make([]string, 0, len(locs))
	last := 0
	for _, loc := range locs {
		sb.WriteString(regexp.QuoteMeta(pat[last:loc[0]]))

		p, err := Parse(pat[loc[2]:loc[3]])
		if err != nil {
			return Compiled{}, err
		}
		if slices.Contains(names, p.Name) {
			return Compiled{}, fmt.Errorf("%w %q: duplicate name %q", ErrInvalidParameter, pat[loc[0]:loc[1]], p.Name)
		}
		names = append(names, p.Name)

		sb.WriteString(p.Regexp())
		last = loc[1]
	}
	sb.WriteString(regexp.QuoteMeta(pat[last:]))

	return Compiled{Expr: sb.String(), Names: names}, nil
}
