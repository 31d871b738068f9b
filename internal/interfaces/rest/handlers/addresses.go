package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/example/carrier-gateway/internal/application/services"
	"github.com/example/carrier-gateway/internal/domain"
	"github.com/example/carrier-gateway/internal/interfaces/rest"
)

type addressRequest struct {
	Name        string `json:"name" validate:"required"`
	PersonName  string `json:"person_name"`
	Street      string `json:"street" validate:"required"`
	City        string `json:"city" validate:"required"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code" validate:"required"`
}

func (r addressRequest) command() services.AddressCommand {
	return services.AddressCommand{
		Name:        r.Name,
		PersonName:  r.PersonName,
		Street:      r.Street,
		City:        r.City,
		PostalCode:  r.PostalCode,
		CountryCode: r.CountryCode,
	}
}

func (h *Handlers) CreateShipper(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if err := decodeBody(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}

	shipper, err := h.addressService.CreateShipper(r.Context(), req.command())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, rest.ToAPIShipper(shipper))
}

func (h *Handlers) ListShippers(w http.ResponseWriter, r *http.Request) {
	shippers, err := h.addressService.ListShippers(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	out := make([]rest.AddressResponse, len(shippers))
	for i, s := range shippers {
		out[i] = rest.ToAPIShipper(s)
	}
	rest.WriteJSON(w, http.StatusOK, out)
}

func (h *Handlers) UpdateShipper(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	var req addressRequest
	if err := decodeBody(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}

	shipper, err := h.addressService.UpdateShipper(r.Context(), id, req.command())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToAPIShipper(shipper))
}

func (h *Handlers) CreateBroker(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if err := decodeBody(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}

	broker, err := h.addressService.CreateBroker(r.Context(), req.command())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, rest.ToAPIBroker(broker))
}

func (h *Handlers) ListBrokers(w http.ResponseWriter, r *http.Request) {
	brokers, err := h.addressService.ListBrokers(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	out := make([]rest.AddressResponse, len(brokers))
	for i, b := range brokers {
		out[i] = rest.ToAPIBroker(b)
	}
	rest.WriteJSON(w, http.StatusOK, out)
}

func (h *Handlers) UpdateBroker(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	var req addressRequest
	if err := decodeBody(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}

	broker, err := h.addressService.UpdateBroker(r.Context(), id, req.command())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToAPIBroker(broker))
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("id must be an integer")
	}
	return id, nil
}
