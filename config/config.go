// Package config builds a [trail.Router] from a YAML document describing named matchers and the
// router chain.
//
//	router: [blog, admin]
//	matchers:
//	  blog:
//	    type: parameter
//	    routes:
//	      /blog/[id=number][.+format?]: {controller: Blog}
//	  admin:
//	    type: namespace
//	    prefix: /admin
//	    matchers: [admin-pages]
//	  admin-pages:
//	    type: static
//	    routes:
//	      /: {controller: Home}
//
// Routes are an ordered mapping from pattern to parameters: the document order is the table order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/tigerwill90/trail"
	"github.com/tigerwill90/trail/internal/stringutil"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned when the document cannot be decoded.
var ErrInvalidDocument = errors.New("invalid document")

// Matcher types.
const (
	TypeStatic    = "static"
	TypeRegex     = "regex"
	TypeParameter = "parameter"
	TypeNamespace = "namespace"
)

// Config is the decoded document.
type Config struct {
	// Router lists, in order, the names of the matchers of the router chain.
	Router []string `yaml:"router"`
	// Matchers maps a name to a matcher definition.
	Matchers map[string]Matcher `yaml:"matchers"`
}

// Matcher defines a named matcher.
type Matcher struct {
	Type string `yaml:"type"`
	// Partial allows partial matches for static, regex and parameter matchers. Default true.
	Partial *bool `yaml:"partial,omitempty"`
	// Routes is the pattern table of static, regex and parameter matchers.
	Routes Routes `yaml:"routes,omitempty"`
	// Prefix is the path prefix of a namespace matcher.
	Prefix string `yaml:"prefix,omitempty"`
	// Matchers lists the names of the children of a namespace matcher.
	Matchers []string `yaml:"matchers,omitempty"`
}

// Routes is a pattern table decoded from a YAML mapping, in document order.
type Routes trail.Table

// UnmarshalYAML implements [yaml.Unmarshaler].
func (r *Routes) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: routes must be a mapping of pattern to parameters", ErrInvalidDocument, value.Line)
	}

	table := make(Routes, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("%w: line %d: route pattern must be a string", ErrInvalidDocument, key.Line)
		}
		params, err := decodeParams(val)
		if err != nil {
			return err
		}
		table = append(table, trail.Rule{Pattern: key.Value, Params: params})
	}

	*r = table
	return nil
}

// decodeParams decodes a mapping node into parameters, in document order.
func decodeParams(n *yaml.Node) (trail.Params, error) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: route parameters must be a mapping", ErrInvalidDocument, n.Line)
	}

	params := make(trail.Params, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: parameter name must be a string", ErrInvalidDocument, key.Line)
		}
		var v any
		if err := val.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidDocument, val.Line, err)
		}
		params = params.Set(key.Value, v)
	}
	return params, nil
}

// Parse decodes a YAML document. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		if errors.Is(err, ErrInvalidDocument) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return &cfg, nil
}

// Load reads and decodes the YAML document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Build constructs every matcher of the document and registers it by name. It returns the registry and
// the router chain, as [trail.Named] entries resolved by the registry. Patterns are validated eagerly.
// Errors wrap trail.ErrInvalidConfig.
func (c *Config) Build() (*trail.Registry, []trail.Entry, error) {
	names := make([]string, 0, len(c.Matchers))
	for name := range c.Matchers {
		names = append(names, name)
	}
	slices.Sort(names)

	if err := c.checkReferences(names); err != nil {
		return nil, nil, err
	}

	reg := trail.NewRegistry()
	for _, name := range names {
		m, err := c.build(name, c.Matchers[name], reg)
		if err != nil {
			return nil, nil, err
		}
		if err := reg.Register(name, m); err != nil {
			return nil, nil, err
		}
	}

	entries := make([]trail.Entry, 0, len(c.Router))
	for _, name := range c.Router {
		entries = append(entries, trail.Named(name))
	}
	return reg, entries, nil
}

// Router builds the document and returns a router using its chain and registry. The options are
// applied after the ones derived from the document.
func (c *Config) Router(opts ...trail.Option) (*trail.Router, error) {
	reg, entries, err := c.Build()
	if err != nil {
		return nil, err
	}
	return trail.New(append([]trail.Option{trail.WithFactory(reg), trail.WithMatchers(entries...)}, opts...)...)
}

func (c *Config) build(name string, def Matcher, reg *trail.Registry) (trail.Matcher, error) {
	var opts []trail.MatcherOption
	if def.Partial != nil {
		opts = append(opts, trail.WithPartialMatches(*def.Partial))
	}

	if def.Type != TypeNamespace && (def.Prefix != "" || len(def.Matchers) > 0) {
		return nil, fmt.Errorf("%w: matcher %q: prefix and matchers are only allowed for a namespace", trail.ErrInvalidConfig, name)
	}

	switch def.Type {
	case TypeStatic:
		return trail.NewStaticMatcher(trail.Table(def.Routes), opts...), nil
	case TypeRegex:
		m := trail.NewRegexMatcher(trail.Table(def.Routes), opts...)
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%w: matcher %q: %w", trail.ErrInvalidConfig, name, err)
		}
		return m, nil
	case TypeParameter:
		m := trail.NewParameterMatcher(trail.Table(def.Routes), opts...)
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%w: matcher %q: %w", trail.ErrInvalidConfig, name, err)
		}
		return m, nil
	case TypeNamespace:
		if len(def.Routes) > 0 || def.Partial != nil {
			return nil, fmt.Errorf("%w: matcher %q: routes and partial are not allowed for a namespace", trail.ErrInvalidConfig, name)
		}
		if stringutil.TrimSlash(def.Prefix) == "" {
			return nil, fmt.Errorf("%w: matcher %q: namespace prefix cannot be empty", trail.ErrInvalidConfig, name)
		}
		entries := make([]trail.Entry, 0, len(def.Matchers))
		for _, child := range def.Matchers {
			entries = append(entries, trail.Named(child))
		}
		return trail.NewNamespaceMatcher(def.Prefix, entries, trail.WithMatcherFactory(reg)), nil
	default:
		return nil, fmt.Errorf("%w: matcher %q: unknown type %q", trail.ErrInvalidConfig, name, def.Type)
	}
}

// checkReferences reports unknown matcher names and namespace reference cycles.
func (c *Config) checkReferences(names []string) error {
	for _, name := range c.Router {
		if _, ok := c.Matchers[name]; !ok {
			return fmt.Errorf("%w: router references unknown matcher %q", trail.ErrInvalidConfig, name)
		}
	}

	const (
		unvisited = iota
		visiting
		visited
	)
	state := make(map[string]int, len(names))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case visited:
			return nil
		case visiting:
			start := slices.Index(path, name)
			return fmt.Errorf("%w: reference cycle %s", trail.ErrInvalidConfig, strings.Join(append(path[start:], name), " -> "))
		}

		state[name] = visiting
		path = append(path, name)
		for _, child := range c.Matchers[name].Matchers {
			if _, ok := c.Matchers[child]; !ok {
				return fmt.Errorf("%w: matcher %q references unknown matcher %q", trail.ErrInvalidConfig, name, child)
			}
			if err := visit(child, path); err != nil {
				return err
			}
		}
		state[name] = visited
		return nil
	}

	for _, name := range names {
		if err := visit(name, nil); err != nil {
			return err
		}
	}
	return nil
}
