package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/example/carrier-gateway/internal/domain"
	"github.com/example/carrier-gateway/internal/interfaces/rest"
)

// Track handles GET /tracking/{trackingNumber}?account_id=. The carrier's
// tracking data is passed through unmodified.
func (h *Handlers) Track(w http.ResponseWriter, r *http.Request) {
	accountID, err := queryAccountID(r)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	trackingNumber := mux.Vars(r)["trackingNumber"]

	data, err := h.trackingService.Track(r.Context(), accountID, trackingNumber)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, data)
}

func (h *Handlers) FetchDeliveryConfirmation(w http.ResponseWriter, r *http.Request) {
	accountID, err := queryAccountID(r)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	trackingNumber := mux.Vars(r)["trackingNumber"]

	path, err := h.trackingService.FetchDeliveryConfirmation(r.Context(), accountID, trackingNumber)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

func queryAccountID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("account_id")
	if raw == "" {
		return 0, domain.NewMissingRequiredFieldError("account_id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("account_id must be an integer")
	}
	return id, nil
}
