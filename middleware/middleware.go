package middleware

import (
	"context"
	"net/http"
	"strings"

	"medibook/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// JWT claims
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type ContextKey string

const EmailKey ContextKey = "email"

// RoleSource resolves the stored role for an authenticated email. The users
// collection implements it; tests substitute a fake.
type RoleSource interface {
	Role(ctx context.Context, email string) (string, error)
}

// Auth carries the token secret and the role lookup used by the gates.
type Auth struct {
	secret []byte
	users  RoleSource
}

func NewAuth(secret []byte, users RoleSource) *Auth {
	return &Auth{secret: secret, users: users}
}

// Authenticate verifies the bearer token and stores the email claim in the
// request context. A missing header is unauthenticated (401); a present but
// invalid or expired token is forbidden (403), matching the portal's
// original behavior.
func (a *Auth) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if header == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorised")
			return
		}
		// A present but malformed header falls through to verification and
		// fails as forbidden, the way the portal always answered.
		tokenString, _ := strings.CutPrefix(header, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden Access")
			return
		}

		ctx := context.WithValue(r.Context(), EmailKey, claims.Email)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireAdmin is the single authorization predicate for admin routes. It
// must run after Authenticate; the stored role has to be exactly "admin".
func (a *Auth) RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		email := EmailFromRequest(r)
		if email == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorised")
			return
		}
		role, err := a.users.Role(r.Context(), email)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load user")
			return
		}
		if role != "admin" {
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden Access")
			return
		}
		next(w, r, ps)
	}
}

// Chain composes middleware left to right: the first listed runs first.
func Chain(mws ...func(httprouter.Handle) httprouter.Handle) func(httprouter.Handle) httprouter.Handle {
	return func(final httprouter.Handle) httprouter.Handle {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}

// EmailFromRequest returns the authenticated email, or "" outside an
// authenticated context.
func EmailFromRequest(r *http.Request) string {
	email, ok := r.Context().Value(EmailKey).(string)
	if !ok {
		return ""
	}
	return email
}
