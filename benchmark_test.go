package trail

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var benchPaths = []string{
	"/",
	"/admin/list",
	"/admin/edit/42",
	"/archive/2015/10/09",
	"/blog/1",
}

type noopWriter struct {
	h http.Header
}

func (w *noopWriter) Header() http.Header {
	if w.h == nil {
		w.h = make(http.Header)
	}
	return w.h
}

func (w *noopWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func (w *noopWriter) WriteHeader(int) {}

func benchRouter(b *testing.B) *Router {
	b.Helper()
	r, err := New(WithMatchers(
		Use(NewStaticMatcher(Table{{Pattern: "/", Params: Params{{Key: "controller", Value: "Home"}}}}, WithPartialMatches(false))),
		Use(adminNamespace()),
		Use(NewParameterMatcher(parameterTable())),
	))
	require.NoError(b, err)
	return r
}

func benchMatch(b *testing.B, router *Router, paths []string) {
	r := httptest.NewRequest("GET", "/", nil)
	u := r.URL

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for _, path := range paths {
			r.RequestURI = path
			u.Path = path
			_, _ = router.Match(r)
		}
	}
}

func benchServe(b *testing.B, router http.Handler, paths []string) {
	w := new(noopWriter)
	r := httptest.NewRequest("GET", "/", nil)
	u := r.URL

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for _, path := range paths {
			r.RequestURI = path
			u.Path = path
			router.ServeHTTP(w, r)
		}
	}
}

func BenchmarkMatchAll(b *testing.B) {
	benchMatch(b, benchRouter(b), benchPaths)
}

func BenchmarkMatchAllGin(b *testing.B) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	h := func(c *gin.Context) {}
	r.GET("/", h)
	r.GET("/admin/list", h)
	r.GET("/admin/edit/:id", h)
	r.GET("/archive/:year/:month/:day", h)
	r.GET("/blog/:id", h)

	benchServe(b, r, benchPaths)
}

func BenchmarkMatchParallel(b *testing.B) {
	router := benchRouter(b)
	r := httptest.NewRequest("GET", "/archive/2015/10/09", nil)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = router.Match(r)
		}
	})
}

func BenchmarkRegexAmbiguityCheck(b *testing.B) {
	router := MustNew(WithMatchers(Use(NewRegexMatcher(Table{
		{Pattern: "/path/[^/]+"},
		{Pattern: "/.*/file.html"},
		{Pattern: "/path/to/[0-9]+"},
	}))))

	benchMatch(b, router, []string{"/path/to/file.html", "/path/to/10", "/foobar"})
}
