package handlers

import (
	"net/http"

	"github.com/example/carrier-gateway/internal/application/services"
	"github.com/example/carrier-gateway/internal/interfaces/rest"
)

type rateRequest struct {
	AccountID             int64   `json:"account_id" validate:"required"`
	ServiceCode           string  `json:"service_code"`
	WeightKg              float64 `json:"weight_kg" validate:"required,gt=0"`
	DestinationCountry    string  `json:"destination_country" validate:"required"`
	DestinationPostalCode string  `json:"destination_postal_code"`
}

// QuoteRate handles POST /rates. An omitted service_code quotes every
// permitted parcel service.
func (h *Handlers) QuoteRate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if err := decodeBody(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}

	quotes, err := h.rateService.QuoteRate(r.Context(), services.RateCommand{
		AccountID:             req.AccountID,
		ServiceCode:           req.ServiceCode,
		WeightKg:              req.WeightKg,
		DestinationCountry:    req.DestinationCountry,
		DestinationPostalCode: req.DestinationPostalCode,
	})
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	out := make([]rest.QuoteResponse, len(quotes))
	for i, q := range quotes {
		out[i] = rest.QuoteResponse{
			ServiceCode: string(q.ServiceCode),
			Amount:      q.Amount,
			Currency:    q.Currency,
		}
	}
	rest.WriteJSON(w, http.StatusOK, out)
}
