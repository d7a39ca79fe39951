package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// Identity is the authenticated caller.
type Identity struct {
	ID   string
	Role user.Role
}

type identityKey struct{}
type rawTokenKey struct{}

// IdentityFromContext returns the identity set by Authenticate.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// WithIdentity is used by tests to fake an authenticated request.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// RawTokenFromContext returns the bearer token the request was authenticated with.
func RawTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(rawTokenKey{}).(string)
	return token
}

// TokenFromRequest reads the Authorization header; the "Bearer " prefix is
// optional.
func TokenFromRequest(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// QueryToken accepts the access token as ?token= when no Authorization
// header is sent. EventSource clients cannot set headers, so mount this only
// on streaming routes, ahead of Authenticate.
func QueryToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			if token := r.URL.Query().Get("token"); token != "" {
				r = r.Clone(r.Context())
				r.Header.Set("Authorization", "Bearer "+token)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Authenticate verifies the access token and stores the caller identity.
// A missing token is 401, a token that fails verification is 400.
func Authenticate(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			raw := TokenFromRequest(r)
			if raw == "" {
				response.HandleError(w, auth.ErrMissingToken)
				return
			}

			token, err := jwtauth.VerifyToken(ja, raw)
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, _ := claims["type"].(string)
			userID, _ := claims["user_id"].(string)
			roleStr, _ := claims["role"].(string)
			role, ok := user.ParseRole(roleStr)
			if tokenType != jwt.TokenTypeAccess || userID == "" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := jwtauth.NewContext(r.Context(), token, nil)
			ctx = context.WithValue(ctx, rawTokenKey{}, raw)
			ctx = WithIdentity(ctx, Identity{ID: userID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// RejectRevoked refuses tokens that were logged out.
func RejectRevoked(tokens jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokens.IsTokenRevoked(RawTokenFromContext(r.Context())) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
