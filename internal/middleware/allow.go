package middleware

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// RouteTable maps route patterns to the HTTP methods registered for
// them. It is populated once after all routes are registered and is
// read-only at request time.
type RouteTable struct {
	methods map[string][]string
}

// NewRouteTable creates an empty route table.
func NewRouteTable() *RouteTable {
	return &RouteTable{methods: make(map[string][]string)}
}

// Populate walks the router and records every registered method per
// route pattern. Call it after route registration, before serving.
func (t *RouteTable) Populate(routes chi.Routes) error {
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		t.methods[route] = append(t.methods[route], method)
		return nil
	})
	if err != nil {
		return err
	}

	for route := range t.methods {
		sort.Strings(t.methods[route])
	}
	return nil
}

// AllowValue returns the comma-joined method list for a route pattern,
// or "" when the pattern is unknown.
func (t *RouteTable) AllowValue(pattern string) string {
	return strings.Join(t.methods[pattern], ", ")
}

// Allow sets the Allow header to the union of methods registered for
// the matched route. The matched pattern is only known after routing,
// so the header is injected when the response header is written.
func Allow(table *RouteTable) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(&allowWriter{ResponseWriter: w, r: r, table: table}, r)
		})
	}
}

type allowWriter struct {
	http.ResponseWriter
	r           *http.Request
	table       *RouteTable
	wroteHeader bool
}

func (w *allowWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		if rctx := chi.RouteContext(w.r.Context()); rctx != nil {
			if allow := w.table.AllowValue(rctx.RoutePattern()); allow != "" {
				w.Header().Set("Allow", allow)
			}
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *allowWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
