package middleware

import "net/http"

// FrameDeny sets X-Frame-Options: deny on every response so it cannot
// be rendered inside a foreign frame.
func FrameDeny(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "deny")
		next.ServeHTTP(w, r)
	})
}
