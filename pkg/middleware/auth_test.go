package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	maker := utils.NewJWTMaker("test-secret", 15)
	protected := Authenticate(maker, zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsMalformedHeader(t *testing.T) {
	maker := utils.NewJWTMaker("test-secret", 15)
	protected := Authenticate(maker, zap.NewNop())(okHandler())

	for _, header := range []string{"Token abc", "Bearer", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthenticateLoadsIdentity(t *testing.T) {
	maker := utils.NewJWTMaker("test-secret", 15)
	token, _, err := maker.Issue("0e1d3a3e-5a3f-4d3a-9a3e-111111111111", "a@example.com", "customer")
	require.NoError(t, err)

	var gotEmail, gotRole string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmail, _ = utils.GetEmailFromContext(r.Context())
		gotRole, _ = utils.GetRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	Authenticate(maker, zap.NewNop())(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@example.com", gotEmail)
	assert.Equal(t, "customer", gotRole)
}

func TestRequireAdmin(t *testing.T) {
	maker := utils.NewJWTMaker("test-secret", 15)
	stack := Authenticate(maker, zap.NewNop())(RequireAdmin(zap.NewNop())(okHandler()))

	customerToken, _, err := maker.Issue("0e1d3a3e-5a3f-4d3a-9a3e-111111111111", "c@example.com", "customer")
	require.NoError(t, err)
	adminToken, _, err := maker.Issue("0e1d3a3e-5a3f-4d3a-9a3e-222222222222", "a@example.com", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken)
	rec := httptest.NewRecorder()
	stack.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	stack.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS("https://shop.example.com")(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://shop.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Stripe-Signature")
}
