package rest

import (
	"encoding/json"
	"net/http"

	"github.com/example/carrier-gateway/internal/application"
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	CarrierStatus int    `json:"carrier_status,omitempty"`
	CarrierBody   string `json:"carrier_body,omitempty"`
}

// WriteError maps application errors to HTTP responses. When the error
// carries a raw carrier status and body, both are attached so callers can
// see exactly what the carrier said.
func WriteError(w http.ResponseWriter, err error) {
	statusCode := application.ToHTTPStatus(err)
	errorCode := application.ToErrorCode(err)

	detail := ErrorDetail{
		Code:    errorCode,
		Message: err.Error(),
	}
	if carrierStatus, carrierBody, ok := application.CarrierDetail(err); ok {
		detail.CarrierStatus = carrierStatus
		detail.CarrierBody = carrierBody
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Success: false, Error: detail})
}

// WriteJSON writes a success envelope.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    data,
	})
}
