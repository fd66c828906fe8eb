package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/authgate/authgate-go/internal/apierror"
	"github.com/authgate/authgate-go/internal/model"
	"github.com/authgate/authgate-go/internal/response"
)

// Authenticator resolves a plaintext bearer token to its owning user.
type Authenticator interface {
	UserFromToken(ctx context.Context, plain string) (*model.User, error)
}

type contextKey string

const userKey contextKey = "user"

// TokenAuth guards a route group with bearer-token authentication. On
// success the resolved user is placed in the request context.
func TokenAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			plain, ok := bearerToken(r)
			if !ok {
				response.Error(w, r, http.StatusUnauthorized, apierror.Unauthenticated, "Authentication token is missing or malformed.")
				return
			}

			user, err := auth.UserFromToken(r.Context(), plain)
			if err != nil {
				response.Error(w, r, http.StatusUnauthorized, apierror.Unauthenticated, "Invalid or expired token.")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Guest rejects callers that already hold a valid token. Registration
// and login sit behind it: the gate runs before any validation does.
func Guest(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if plain, ok := bearerToken(r); ok {
				if _, err := auth.UserFromToken(r.Context(), plain); err == nil {
					response.Error(w, r, http.StatusForbidden, apierror.Forbidden, "Already authenticated.")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext extracts the authenticated user from the request
// context.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
