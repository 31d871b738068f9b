package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/carrier-gateway/internal/interfaces/rest/handlers"
)

// Invalid request bodies must be rejected in the handler before any
// service is touched, so a router with nil services is enough here.
func testRouter() *mux.Router {
	h := handlers.NewHandlers(nil, nil, nil, nil, nil, nil)
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func postJSON(t *testing.T, router *mux.Router, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	return resp.Error.Code
}

func TestCreateShipment_MalformedBody(t *testing.T) {
	rec := postJSON(t, testRouter(), "/orders", `{"reference":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, rec))
}

func TestCreateShipment_MissingRequiredFields(t *testing.T) {
	rec := postJSON(t, testRouter(), "/orders", `{"reference":"ORD-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, rec))
}

func TestRegisterAccount_MissingCredentials(t *testing.T) {
	rec := postJSON(t, testRouter(), "/accounts", `{"name":"main"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, rec))
}

func TestQuoteRate_RejectsZeroWeight(t *testing.T) {
	rec := postJSON(t, testRouter(), "/rates", `{"account_id":1,"weight_kg":0,"destination_country":"US"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBatch_RequiresServiceCodes(t *testing.T) {
	rec := postJSON(t, testRouter(), "/orders/batch", `{
		"reference":"ORD-1","account_id":1,"shipper_id":1,"service_code":"FIP",
		"recipient_name":"Jane","recipient_street":"1 Main St","recipient_city":"Boston",
		"recipient_country":"US","weight_kg":1.5
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
