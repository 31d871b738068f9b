package application

import (
	"errors"
	"fmt"
)

// The carrier port fails in one of four distinct ways. None of them are
// retried here: the caller decides what a given kind means for it.

// AuthenticationError means the OAuth token exchange was rejected.
type AuthenticationError struct {
	StatusCode int
	Body       string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("carrier authentication failed (status: %d): %s", e.StatusCode, e.Body)
}

// CarrierError means the carrier answered with a non-success status.
type CarrierError struct {
	StatusCode int
	Body       string
}

func (e *CarrierError) Error() string {
	return fmt.Sprintf("carrier rejected request (status: %d): %s", e.StatusCode, e.Body)
}

// DecodingError means a 2xx response was missing expected fields or could
// not be parsed.
type DecodingError struct {
	Message string
	Err     error
}

func (e *DecodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("carrier response decoding failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("carrier response decoding failed: %s", e.Message)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}

// TransportError means the call never produced a carrier response:
// timeout, connection refused, DNS failure.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("carrier transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func IsAuthenticationError(err error) (*AuthenticationError, bool) {
	var authErr *AuthenticationError
	ok := errors.As(err, &authErr)
	return authErr, ok
}

func IsCarrierError(err error) (*CarrierError, bool) {
	var carrierErr *CarrierError
	ok := errors.As(err, &carrierErr)
	return carrierErr, ok
}

func IsDecodingError(err error) (*DecodingError, bool) {
	var decodingErr *DecodingError
	ok := errors.As(err, &decodingErr)
	return decodingErr, ok
}

func IsTransportError(err error) (*TransportError, bool) {
	var transportErr *TransportError
	ok := errors.As(err, &transportErr)
	return transportErr, ok
}
