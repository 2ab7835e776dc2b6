package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
	"github.com/vasapolrittideah/hostel-management-api/internal/repository"
	"github.com/vasapolrittideah/hostel-management-api/shared/auth"
)

type contextKey struct{}

var identityKey = contextKey{}

// Authenticator resolves the bearer token on each request into a live
// account. The account is re-fetched from its role partition on every
// request, so deleting an account or changing its role takes effect
// immediately without a token blacklist.
type Authenticator struct {
	jwtAuth  auth.JWTAuthenticator
	secret   string
	accounts repository.AccountRepository
}

func NewAuthenticator(
	jwtAuth auth.JWTAuthenticator,
	secret string,
	accounts repository.AccountRepository,
) *Authenticator {
	return &Authenticator{
		jwtAuth:  jwtAuth,
		secret:   secret,
		accounts: accounts,
	}
}

// Authenticate rejects requests without a valid token. On success the
// resolved identity (account without its password digest) is placed on
// the request context.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			unauthorized(w, "Access denied. No token provided.")
			return
		}

		claims := &auth.AuthClaims{}
		if _, err := a.jwtAuth.ValidateTokenWithClaims(tokenString, a.secret, claims); err != nil {
			unauthorized(w, "Token is not valid")
			return
		}

		role, ok := model.ParseRole(claims.Role)
		if !ok {
			unauthorized(w, "Invalid token")
			return
		}

		account, err := a.accounts.FindByID(r.Context(), role, claims.UserID)
		if err != nil {
			unauthorized(w, "Token is not valid")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles allows the request through only when the authenticated
// identity's role is in the given set. It must be mounted after
// Authenticate.
func RequireRoles(roles ...model.Role) func(http.Handler) http.Handler {
	allowed := make(map[model.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				unauthorized(w, "Access denied. No token provided.")
				return
			}

			if !allowed[identity.Role] {
				writeMessage(w, http.StatusForbidden, "Access denied. Insufficient permissions.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromContext returns the authenticated account placed on the
// context by Authenticate.
func IdentityFromContext(ctx context.Context) (*model.Account, bool) {
	account, ok := ctx.Value(identityKey).(*model.Account)
	return account, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

func unauthorized(w http.ResponseWriter, message string) {
	writeMessage(w, http.StatusUnauthorized, message)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
