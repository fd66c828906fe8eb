package middleware

import "net/http"

// AcceptJSON overwrites the inbound Accept header before routing so
// content negotiation is uniform regardless of what the client sent.
func AcceptJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Header.Set("Accept", "application/json")
		next.ServeHTTP(w, r)
	})
}
