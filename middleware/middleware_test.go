package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medibook/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

type fakeRoles map[string]string

func (f fakeRoles) Role(ctx context.Context, email string) (string, error) {
	role, ok := f[email]
	if !ok {
		return "", nil
	}
	if role == "error" {
		return "", errors.New("lookup failed")
	}
	return role, nil
}

func signToken(t *testing.T, email string, key []byte, ttl time.Duration) string {
	t.Helper()
	claims := middleware.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestAuthenticate(t *testing.T) {
	auth := middleware.NewAuth(secret, fakeRoles{})

	var gotEmail string
	handler := auth.Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotEmail = middleware.EmailFromRequest(r)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing header is 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest(http.MethodGet, "/users", nil), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad signature is 403", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/users", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, "a@x.com", []byte("wrong"), time.Hour))
		w := httptest.NewRecorder()
		handler(w, r, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("expired token is 403", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/users", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, "a@x.com", secret, -time.Minute))
		w := httptest.NewRecorder()
		handler(w, r, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("valid token passes the email claim through", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/users", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, "a@x.com", secret, time.Hour))
		w := httptest.NewRecorder()
		handler(w, r, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "a@x.com", gotEmail)
	})
}

func TestRequireAdmin(t *testing.T) {
	roles := fakeRoles{
		"admin@x.com":  "admin",
		"casing@x.com": "Admin",
		"plain@x.com":  "",
		"broken@x.com": "error",
	}
	auth := middleware.NewAuth(secret, roles)

	handler := auth.RequireAdmin(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	run := func(email string) int {
		r := httptest.NewRequest(http.MethodGet, "/doctors", nil)
		r = r.WithContext(context.WithValue(r.Context(), middleware.EmailKey, email))
		w := httptest.NewRecorder()
		handler(w, r, nil)
		return w.Code
	}

	t.Run("exact admin role passes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, run("admin@x.com"))
	})
	t.Run("anything but exact match is forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, run("casing@x.com"))
		assert.Equal(t, http.StatusForbidden, run("plain@x.com"))
		assert.Equal(t, http.StatusForbidden, run("unknown@x.com"))
	})
	t.Run("lookup failure is a server error, not forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, run("broken@x.com"))
	})
	t.Run("unauthenticated context is 401", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/doctors", nil)
		w := httptest.NewRecorder()
		handler(w, r, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestChain(t *testing.T) {
	var order []string
	mk := func(name string) func(httprouter.Handle) httprouter.Handle {
		return func(next httprouter.Handle) httprouter.Handle {
			return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
				order = append(order, name)
				next(w, r, ps)
			}
		}
	}

	handler := middleware.Chain(mk("first"), mk("second"))(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		order = append(order, "handler")
	})

	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, []string{"first", "second", "handler"}, order)
}
