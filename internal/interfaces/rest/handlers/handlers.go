// Package handlers wires the HTTP surface to the application services.
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/example/carrier-gateway/internal/application/services"
)

type Handlers struct {
	accountService  *services.AccountService
	addressService  *services.AddressService
	rateService     *services.RateService
	shipmentService *services.ShipmentService
	trackingService *services.TrackingService
	queryService    *services.QueryService
}

func NewHandlers(
	accountService *services.AccountService,
	addressService *services.AddressService,
	rateService *services.RateService,
	shipmentService *services.ShipmentService,
	trackingService *services.TrackingService,
	queryService *services.QueryService,
) *Handlers {
	return &Handlers{
		accountService:  accountService,
		addressService:  addressService,
		rateService:     rateService,
		shipmentService: shipmentService,
		trackingService: trackingService,
		queryService:    queryService,
	}
}

func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/accounts", h.RegisterAccount).Methods(http.MethodPost)
	r.HandleFunc("/accounts", h.ListAccounts).Methods(http.MethodGet)

	r.HandleFunc("/shippers", h.CreateShipper).Methods(http.MethodPost)
	r.HandleFunc("/shippers", h.ListShippers).Methods(http.MethodGet)
	r.HandleFunc("/shippers/{id:[0-9]+}", h.UpdateShipper).Methods(http.MethodPut)

	r.HandleFunc("/brokers", h.CreateBroker).Methods(http.MethodPost)
	r.HandleFunc("/brokers", h.ListBrokers).Methods(http.MethodGet)
	r.HandleFunc("/brokers/{id:[0-9]+}", h.UpdateBroker).Methods(http.MethodPut)

	r.HandleFunc("/rates", h.QuoteRate).Methods(http.MethodPost)

	r.HandleFunc("/orders", h.CreateShipment).Methods(http.MethodPost)
	r.HandleFunc("/orders/batch", h.CreateBatch).Methods(http.MethodPost)
	r.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id:[0-9]+}", h.GetOrder).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id:[0-9]+}/label", h.DownloadLabel).Methods(http.MethodGet)

	r.HandleFunc("/returns", h.CreateReturn).Methods(http.MethodPost)

	r.HandleFunc("/tracking/{trackingNumber}", h.Track).Methods(http.MethodGet)
	r.HandleFunc("/tracking/{trackingNumber}/proof-of-delivery", h.FetchDeliveryConfirmation).Methods(http.MethodGet)
}
