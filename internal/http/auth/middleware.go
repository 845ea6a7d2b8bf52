package auth

import (
	"net/http"
	"strings"

	"github.com/ebenezer-app/ebenezer/internal/identity"
)

// Authenticate rejects requests without a valid bearer token and stores the
// token's user in the request context.
func Authenticate(tokens *identity.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, identity.ErrNoSession.Error(), http.StatusUnauthorized)
				return
			}

			u, err := tokens.Parse(token)
			if err != nil {
				http.Error(w, identity.ErrNoSession.Error(), http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithUser(r.Context(), u)))
		})
	}
}
