package handlers

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/example/carrier-gateway/internal/application"
	"github.com/example/carrier-gateway/internal/application/services"
	"github.com/example/carrier-gateway/internal/domain"
	"github.com/example/carrier-gateway/internal/interfaces/rest"
)

type customsItemRequest struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	WeightKg    *float64        `json:"weight_kg"`
}

type tradeDocumentRequest struct {
	Name    string `json:"name" validate:"required"`
	DocType string `json:"doc_type" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type shipmentRequest struct {
	Reference   string `json:"reference" validate:"required"`
	AccountID   int64  `json:"account_id" validate:"required"`
	ShipperID   int64  `json:"shipper_id" validate:"required"`
	// ServiceCode is validated downstream: the batch endpoint shares this
	// body and supplies codes per entry.
	ServiceCode string `json:"service_code"`

	RecipientName       string  `json:"recipient_name" validate:"required"`
	RecipientStreet     string  `json:"recipient_street" validate:"required"`
	RecipientCity       string  `json:"recipient_city" validate:"required"`
	RecipientPostalCode string  `json:"recipient_postal_code"`
	RecipientCountry    string  `json:"recipient_country" validate:"required"`
	WeightKg            float64 `json:"weight_kg" validate:"required,gt=0"`

	CustomsRequired     *bool                  `json:"customs_required"`
	CustomsItems        []customsItemRequest   `json:"customs_items"`
	BrokerSelectOption  bool                   `json:"broker_select_option"`
	BrokerID            *int64                 `json:"broker_id"`
	ThirdPartyConsignee bool                   `json:"third_party_consignee"`
	NotificationEmails  []string               `json:"notification_emails" validate:"dive,email"`
	TradeDocuments      []tradeDocumentRequest `json:"trade_documents" validate:"dive"`

	QuoteFirst bool `json:"quote_first"`
}

func (r shipmentRequest) command() services.ShipmentCommand {
	items := make([]domain.CustomsItem, len(r.CustomsItems))
	for i, item := range r.CustomsItems {
		items[i] = domain.CustomsItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			WeightKg:    item.WeightKg,
		}
	}

	docs := make([]application.TradeDocument, len(r.TradeDocuments))
	for i, doc := range r.TradeDocuments {
		docs[i] = application.TradeDocument{
			Name:    doc.Name,
			DocType: doc.DocType,
			Content: doc.Content,
		}
	}

	return services.ShipmentCommand{
		Reference:           r.Reference,
		AccountID:           r.AccountID,
		ShipperID:           r.ShipperID,
		ServiceCode:         r.ServiceCode,
		RecipientName:       r.RecipientName,
		RecipientStreet:     r.RecipientStreet,
		RecipientCity:       r.RecipientCity,
		RecipientPostalCode: r.RecipientPostalCode,
		RecipientCountry:    r.RecipientCountry,
		WeightKg:            r.WeightKg,
		CustomsRequired:     r.CustomsRequired,
		CustomsItems:        items,
		BrokerSelectOption:  r.BrokerSelectOption,
		BrokerID:            r.BrokerID,
		ThirdPartyConsignee: r.ThirdPartyConsignee,
		NotificationEmails:  r.NotificationEmails,
		TradeDocuments:      docs,
		QuoteFirst:          r.QuoteFirst,
	}
}

func (h *Handlers) CreateShipment(w http.ResponseWriter, r *http.Request) {
	var req shipmentRequest
	if err := decodeBody(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}

	order, err := h.shipmentService.Create(r.Context(), req.command())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, rest.ToAPIOrder(order))
}

func (h *Handlers) CreateReturn(w http.ResponseWriter, r *http.Request) {
	var req shipmentRequest
	if err := decodeBody(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}

	order, err := h.shipmentService.CreateReturn(r.Context(), req.command())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, rest.ToAPIOrder(order))
}

type batchRequest struct {
	shipmentRequest
	ServiceCodes []string `json:"service_codes" validate:"required,min=1"`
}

type batchEntryResponse struct {
	services.BatchEntry
	Order *rest.OrderResponse `json:"order,omitempty"`
}

// CreateBatch ships one consignment under several service codes. The
// response always comes back 200 with a per-code outcome list.
func (h *Handlers) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeBody(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}

	entries, err := h.shipmentService.CreateBatch(r.Context(), services.BatchCommand{
		Shipment:     req.shipmentRequest.command(),
		ServiceCodes: req.ServiceCodes,
	})
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	out := make([]batchEntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = batchEntryResponse{BatchEntry: entry}
		if entry.Order != nil {
			apiOrder := rest.ToAPIOrder(entry.Order)
			out[i].Order = &apiOrder
		}
	}
	rest.WriteJSON(w, http.StatusOK, out)
}

func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	orders, total, err := h.queryService.ListOrders(r.Context(), limit, offset)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	out := make([]rest.OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = rest.ToAPIOrder(o)
	}
	rest.WriteJSON(w, http.StatusOK, map[string]any{
		"orders": out,
		"total":  total,
	})
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	order, err := h.queryService.GetOrder(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToAPIOrder(order))
}

// DownloadLabel streams the stored label PDF for a shipped order.
func (h *Handlers) DownloadLabel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	path, err := h.queryService.OrderLabelPath(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}
