// Package authn guards routes behind bearer-token authentication.
package authn

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pfms/internal/auth"
	"github.com/MrJamesThe3rd/pfms/internal/http/respond"
)

type OwnerResolver interface {
	Resolve(token string) (uuid.UUID, error)
}

// RequireOwner resolves the Authorization bearer token and stores the owner
// in the request context. Requests without a valid token stop here with 401.
func RequireOwner(resolver OwnerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner, err := resolver.Resolve(bearer(r))
			if err != nil {
				respond.Error(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithOwner(r.Context(), owner)))
		})
	}
}

func bearer(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}
