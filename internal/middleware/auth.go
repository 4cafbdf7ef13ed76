package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gracepoint-dev/church-admin-be/internal/auth"
	"github.com/gracepoint-dev/church-admin-be/internal/http/respond"
	"github.com/gracepoint-dev/church-admin-be/internal/models"
	"github.com/gracepoint-dev/church-admin-be/internal/storage"
)

// Identity is the resolved caller attached to the request context after the
// authentication stage succeeds.
type Identity struct {
	ID       int64
	Username string
	Role     string
}

type contextKey struct{}

var identityKey contextKey

// IdentityFrom returns the authenticated caller stored in ctx, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// Authenticate verifies the bearer token on the request, resolves the user it
// was issued for, and passes the request on with the identity in context.
// Missing or malformed credentials never reach next.
func Authenticate(tokens *auth.TokenManager, users storage.UserStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "Token is missing!")
			return
		}

		username, err := tokens.Verify(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				respond.Error(w, http.StatusUnauthorized, "Token has expired")
				return
			}
			respond.Error(w, http.StatusUnauthorized, "Token is invalid")
			return
		}

		user, err := users.FindByUsername(r.Context(), username)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				respond.Error(w, http.StatusUnauthorized, "Token is invalid")
				return
			}
			respond.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		identity := Identity{ID: user.ID, Username: user.Username, Role: user.Role}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows the request through iff the authenticated caller holds
// the required role or the regional_admin override role.
func RequireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r.Context())
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "Token is missing!")
			return
		}
		if identity.Role != role && identity.Role != models.RoleRegionalAdmin {
			respond.Error(w, http.StatusForbidden, "Permission denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
