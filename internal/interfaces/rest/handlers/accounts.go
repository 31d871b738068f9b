package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator"

	"github.com/example/carrier-gateway/internal/application/services"
	"github.com/example/carrier-gateway/internal/domain"
	"github.com/example/carrier-gateway/internal/interfaces/rest"
)

var validate = validator.New()

type registerAccountRequest struct {
	Name          string  `json:"name" validate:"required"`
	AccountNumber string  `json:"account_number" validate:"required"`
	MeterNumber   *string `json:"meter_number"`
	APIKey        string  `json:"api_key" validate:"required"`
	APISecret     string  `json:"api_secret" validate:"required"`
	IsFreight     bool    `json:"is_freight"`
}

func (h *Handlers) RegisterAccount(w http.ResponseWriter, r *http.Request) {
	var req registerAccountRequest
	if err := decodeBody(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}

	account, err := h.accountService.Register(r.Context(), services.RegisterAccountCommand{
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		MeterNumber:   req.MeterNumber,
		APIKey:        req.APIKey,
		APISecret:     req.APISecret,
		IsFreight:     req.IsFreight,
	})
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.ToAPIAccount(account))
}

func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.List(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	out := make([]rest.AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = rest.ToAPIAccount(a)
	}
	rest.WriteJSON(w, http.StatusOK, out)
}

// decodeBody parses and validates a JSON request body. Malformed JSON and
// missing required fields both come back as validation errors.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("invalid request body: " + err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		return domain.NewValidationError(err.Error())
	}
	return nil
}
