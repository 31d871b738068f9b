package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/carrier-gateway/internal/interfaces/rest/middleware"
)

func authedHandler(t *testing.T) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return middleware.Auth("service-token")(next)
}

func TestAuth_BearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer service-token")

	rec := httptest.NewRecorder()
	authedHandler(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuth_QueryToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?token=service-token", nil)

	rec := httptest.NewRecorder()
	authedHandler(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuth_MissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)

	rec := httptest.NewRecorder()
	authedHandler(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"UNAUTHORIZED","message":"invalid or missing service token"}}`, rec.Body.String())
}

func TestAuth_WrongToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer nope")

	rec := httptest.NewRecorder()
	authedHandler(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_HealthBypassed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	rec := httptest.NewRecorder()
	authedHandler(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
