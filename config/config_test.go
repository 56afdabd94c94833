package config

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tigerwill90/trail"
)

const document = `
router: [home, admin, blog]
matchers:
  home:
    type: static
    partial: false
    routes:
      /: {controller: Home}
  admin:
    type: namespace
    prefix: /admin
    matchers: [admin-pages, admin-edit]
  admin-pages:
    type: static
    routes:
      /: {controller: AdminHome}
      /list: {controller: AdminList}
  admin-edit:
    type: regex
    routes:
      /edit/(?<id>[0-9]+): {controller: AdminEdit}
  blog:
    type: parameter
    routes:
      /archive/[year=number(4)]/[month=number(2)]/[day=number(1-2)]: {controller: Archive, view: day}
      /archive[/+year=number][/+month=number?]: {controller: Archive, view: month}
      /blog/[id=number][.+format?]: {controller: Blog, page: 1}
      /about:
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(document))
	require.NoError(t, err)

	assert.Equal(t, []string{"home", "admin", "blog"}, cfg.Router)
	require.Len(t, cfg.Matchers, 5)

	home := cfg.Matchers["home"]
	assert.Equal(t, TypeStatic, home.Type)
	require.NotNil(t, home.Partial)
	assert.False(t, *home.Partial)

	blog := cfg.Matchers["blog"]
	require.Len(t, blog.Routes, 4)
	assert.Equal(t, "/archive/[year=number(4)]/[month=number(2)]/[day=number(1-2)]", blog.Routes[0].Pattern)
	assert.Equal(t, "/archive[/+year=number][/+month=number?]", blog.Routes[1].Pattern)
	assert.Equal(t, trail.Params{{Key: "controller", Value: "Blog"}, {Key: "page", Value: 1}}, blog.Routes[2].Params)
	assert.Equal(t, "/about", blog.Routes[3].Pattern)
	assert.Nil(t, blog.Routes[3].Params)

	admin := cfg.Matchers["admin"]
	assert.Equal(t, "/admin", admin.Prefix)
	assert.Equal(t, []string{"admin-pages", "admin-edit"}, admin.Matchers)
}

func TestParseError(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{name: "empty document", doc: ""},
		{name: "malformed yaml", doc: "router: [home"},
		{name: "unknown field", doc: "routers: [home]"},
		{name: "routes not a mapping", doc: "matchers:\n  home:\n    type: static\n    routes: [/foo]\n"},
		{name: "params not a mapping", doc: "matchers:\n  home:\n    type: static\n    routes:\n      /foo: bar\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Matchers, 5)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_Build(t *testing.T) {
	cfg, err := Parse([]byte(document))
	require.NoError(t, err)

	reg, entries, err := cfg.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "admin-edit", "admin-pages", "blog", "home"}, reg.Names())

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"home", "admin", "blog"}, names)
}

func TestConfig_Router(t *testing.T) {
	cfg, err := Parse([]byte(document))
	require.NoError(t, err)

	r, err := cfg.Router()
	require.NoError(t, err)

	cases := []struct {
		name        string
		path        string
		wantFound   bool
		wantMatched string
		wantParams  trail.Params
	}{
		{
			name:        "home",
			path:        "/",
			wantFound:   true,
			wantMatched: "/",
			wantParams:  trail.Params{{Key: "controller", Value: "Home"}},
		},
		{
			name:        "namespace static",
			path:        "/admin/list",
			wantFound:   true,
			wantMatched: "/admin/list",
			wantParams:  trail.Params{{Key: "controller", Value: "AdminList"}},
		},
		{
			name:        "namespace regex",
			path:        "/admin/edit/12",
			wantFound:   true,
			wantMatched: "/admin/edit/12",
			wantParams:  trail.Params{{Key: "controller", Value: "AdminEdit"}, {Key: "id", Value: "12"}},
		},
		{
			name:        "parameters",
			path:        "/archive/2015/10/09",
			wantFound:   true,
			wantMatched: "/archive/2015/10/09",
			wantParams: trail.Params{
				{Key: "controller", Value: "Archive"},
				{Key: "view", Value: "day"},
				{Key: "year", Value: "2015"},
				{Key: "month", Value: "10"},
				{Key: "day", Value: "09"},
			},
		},
		{
			name:        "literal route without params",
			path:        "/about",
			wantFound:   true,
			wantMatched: "/about",
			wantParams:  trail.Params{},
		},
		{
			name:        "not found",
			path:        "/unknown",
			wantFound:   false,
			wantMatched: "",
			wantParams:  trail.Params{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			route, err := r.Match(httptest.NewRequest("GET", tc.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.wantFound, route.IsFound())
			assert.Equal(t, tc.wantMatched, route.MatchedPath())
			assert.Equal(t, tc.wantParams, route.Params())
		})
	}
}

func TestConfig_BuildError(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown type",
			doc:  "matchers:\n  home:\n    type: wildcard\n",
		},
		{
			name: "unknown router reference",
			doc:  "router: [home]\nmatchers: {}\n",
		},
		{
			name: "unknown namespace reference",
			doc:  "matchers:\n  admin:\n    type: namespace\n    prefix: /admin\n    matchers: [pages]\n",
		},
		{
			name: "empty namespace prefix",
			doc:  "matchers:\n  admin:\n    type: namespace\n    prefix: /\n",
		},
		{
			name: "reference cycle",
			doc: `
matchers:
  a:
    type: namespace
    prefix: /a
    matchers: [b]
  b:
    type: namespace
    prefix: /b
    matchers: [a]
`,
		},
		{
			name: "self reference",
			doc:  "matchers:\n  a:\n    type: namespace\n    prefix: /a\n    matchers: [a]\n",
		},
		{
			name: "invalid regex",
			doc:  "matchers:\n  edit:\n    type: regex\n    routes:\n      /edit/[0-9: {}\n",
		},
		{
			name: "invalid placeholder",
			doc:  "matchers:\n  blog:\n    type: parameter\n    routes:\n      /blog/[en=foobar]: {}\n",
		},
		{
			name: "prefix on static",
			doc:  "matchers:\n  home:\n    type: static\n    prefix: /home\n",
		},
		{
			name: "routes on namespace",
			doc:  "matchers:\n  admin:\n    type: namespace\n    prefix: /admin\n    routes:\n      /: {}\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tc.doc))
			require.NoError(t, err)

			reg, entries, err := cfg.Build()
			assert.ErrorIs(t, err, trail.ErrInvalidConfig)
			assert.Nil(t, reg)
			assert.Nil(t, entries)

			r, err := cfg.Router()
			assert.ErrorIs(t, err, trail.ErrInvalidConfig)
			assert.Nil(t, r)
		})
	}
}

func TestConfig_BuildPatternError(t *testing.T) {
	cfg, err := Parse([]byte("matchers:\n  blog:\n    type: parameter\n    routes:\n      /blog/[en=foobar]: {}\n"))
	require.NoError(t, err)

	_, _, err = cfg.Build()
	assert.ErrorIs(t, err, trail.ErrUnknownFormat)
	assert.ErrorContains(t, err, `matcher "blog"`)
}

func TestConfig_BuildCycleMessage(t *testing.T) {
	cfg, err := Parse([]byte("matchers:\n  a:\n    type: namespace\n    prefix: /a\n    matchers: [b]\n  b:\n    type: namespace\n    prefix: /b\n    matchers: [a]\n"))
	require.NoError(t, err)

	_, _, err = cfg.Build()
	assert.ErrorContains(t, err, "reference cycle a -> b -> a")
}
