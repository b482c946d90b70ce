package middleware

import (
	"context"
	"errors"
	"net/http"

	"ladder_zone/internal/common"
	"ladder_zone/internal/common/security"
	"ladder_zone/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UsernameCtxKey contextKey = "username"
	UserRoleCtxKey contextKey = "userRole"
)

// UsernameHeader carries the identity the frontend claims to act as; it
// must match the username baked into the token.
const UsernameHeader = "X-Username"

// Authenticator is the auth gate for every protected route: token present
// (401 otherwise), claimed username header present (400), token valid
// (403), and token identity matching the claimed one (403). Downstream
// code trusts the identity placed in the context completely.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header

		if err != nil && errors.Is(err, jwtauth.ErrNoTokenFound) {
			common.RespondWithError(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		claimedUsername := r.Header.Get(UsernameHeader)
		if claimedUsername == "" {
			common.RespondWithError(w, http.StatusBadRequest, "Username header missing.")
			return
		}

		if err != nil || token == nil {
			common.RespondWithError(w, http.StatusForbidden, "Invalid token.")
			return
		}

		username, err := security.GetUsernameFromClaims(claims)
		if err != nil || username != claimedUsername {
			common.RespondWithError(w, http.StatusForbidden, "Username does not match token.")
			return
		}

		role, err := security.GetUserRoleFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusForbidden, "Invalid token claims: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), UsernameCtxKey, username)
		ctx = context.WithValue(ctx, UserRoleCtxKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(UserRoleCtxKey).(string)
		if !ok || role != model.RoleAdmin {
			common.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Helper to get the authenticated username from context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}
