package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/example/carrier-gateway/internal/domain"
)

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case domain.ErrCodeMissingRequiredField,
			domain.ErrCodeValidation,
			domain.ErrCodeInvalidServiceCode:
			return http.StatusBadRequest
		case domain.ErrCodeNotFound:
			return http.StatusNotFound
		case domain.ErrCodeDuplicateReference,
			domain.ErrCodeInvalidState:
			return http.StatusConflict
		}
	}

	if _, ok := IsAuthenticationError(err); ok {
		return http.StatusBadGateway
	}
	if _, ok := IsCarrierError(err); ok {
		return http.StatusBadGateway
	}
	if _, ok := IsDecodingError(err); ok {
		return http.StatusBadGateway
	}
	if _, ok := IsTransportError(err); ok {
		return http.StatusBadGateway
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusRequestTimeout
	}

	return http.StatusInternalServerError
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}

	if _, ok := IsAuthenticationError(err); ok {
		return "AUTHENTICATION_ERROR"
	}
	if _, ok := IsCarrierError(err); ok {
		return "CARRIER_ERROR"
	}
	if _, ok := IsDecodingError(err); ok {
		return "DECODING_ERROR"
	}
	if _, ok := IsTransportError(err); ok {
		return "TRANSPORT_ERROR"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "TIMEOUT"
	}

	return "INTERNAL_ERROR"
}

// CarrierDetail extracts the carrier's raw status and body when the error
// carries one, so callers can tell "fix your input" from "carrier
// rejected this".
func CarrierDetail(err error) (statusCode int, body string, ok bool) {
	if authErr, isAuth := IsAuthenticationError(err); isAuth {
		return authErr.StatusCode, authErr.Body, true
	}
	if carrierErr, isCarrier := IsCarrierError(err); isCarrier {
		return carrierErr.StatusCode, carrierErr.Body, true
	}
	return 0, "", false
}
