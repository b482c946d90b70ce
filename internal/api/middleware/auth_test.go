package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"ladder_zone/internal/common/security"
	"ladder_zone/internal/platform/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.Load()
	security.InitJWT()
	os.Exit(m.Run())
}

func newProtectedRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(security.TokenAuth))
	r.Group(func(protected chi.Router) {
		protected.Use(Authenticator)
		protected.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
			username, _ := GetUsernameFromContext(r.Context())
			w.Write([]byte(username))
		})
		protected.Group(func(admin chi.Router) {
			admin.Use(AdminOnly)
			admin.Get("/adminonly", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("ok"))
			})
		})
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, token, claimedUsername string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if claimedUsername != "" {
		req.Header.Set(UsernameHeader, claimedUsername)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticator(t *testing.T) {
	router := newProtectedRouter()

	token, err := security.GenerateToken("id-1", "alice", "user")
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		rec := doRequest(t, router, "", "alice")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing username header", func(t *testing.T) {
		rec := doRequest(t, router, token, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		rec := doRequest(t, router, "not-a-token", "alice")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("username mismatch", func(t *testing.T) {
		rec := doRequest(t, router, token, "bob")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("valid token and matching header", func(t *testing.T) {
		rec := doRequest(t, router, token, "alice")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", rec.Body.String())
	})
}

func TestAdminOnly(t *testing.T) {
	router := newProtectedRouter()

	userToken, err := security.GenerateToken("id-1", "alice", "user")
	require.NoError(t, err)
	adminToken, err := security.GenerateToken("id-2", "root", "admin")
	require.NoError(t, err)

	t.Run("regular user rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/adminonly", nil)
		req.Header.Set("Authorization", "Bearer "+userToken)
		req.Header.Set(UsernameHeader, "alice")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/adminonly", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		req.Header.Set(UsernameHeader, "root")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
