package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus tracks the short lifecycle of an order row: created before
// the carrier call, then shipped or failed once. A shipped order is never
// mutated again.
type OrderStatus string

const (
	OrderCreated OrderStatus = "CREATED"
	OrderShipped OrderStatus = "SHIPPED"
	OrderFailed  OrderStatus = "FAILED"
)

// CustomsItem is one declared line of a customs clearance block.
type CustomsItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	WeightKg    *float64        `json:"weight_kg,omitempty"`
}

// TradeDocumentRef names an electronic trade document attached to an
// order. Document content is uploaded to the carrier, not persisted here.
type TradeDocumentRef struct {
	Name    string `json:"name"`
	DocType string `json:"doc_type"`
}

// Order is one shipment or return attempt. Reference is caller-supplied
// and unique per attempt.
type Order struct {
	ID        int64
	Reference string
	AccountID int64
	ShipperID int64

	ServiceCode ServiceCode
	IsReturn    bool

	RecipientName       string
	RecipientStreet     string
	RecipientCity       string
	RecipientPostalCode string
	RecipientCountry    string
	WeightKg            float64

	CustomsRequired     bool
	CustomsItems        []CustomsItem
	BrokerID            *int64
	ThirdPartyConsignee bool
	NotificationEmails  []string
	TradeDocuments      []TradeDocumentRef

	// PriceQuote is nil unless a rate call preceded the shipment. It is
	// never re-validated at shipment time.
	PriceQuote *decimal.Decimal

	TrackingNumber string
	LabelPath      string
	Status         OrderStatus
	CreatedAt      time.Time
}

// MarkShipped records the carrier's response on a freshly created order.
func (o *Order) MarkShipped(trackingNumber, labelPath string) error {
	if o.Status != OrderCreated {
		return NewInvalidStateError(string(o.Status), string(OrderCreated))
	}
	o.TrackingNumber = trackingNumber
	o.LabelPath = labelPath
	o.Status = OrderShipped
	return nil
}

// MarkFailed records a failed attempt. Tracking and price stay unset.
func (o *Order) MarkFailed() error {
	if o.Status != OrderCreated {
		return NewInvalidStateError(string(o.Status), string(OrderCreated))
	}
	o.Status = OrderFailed
	return nil
}

// ExchangeLog is one row per outbound carrier call, written before the
// response is interpreted. Append-only.
type ExchangeLog struct {
	ID           int64
	OrderID      *int64
	AccountID    *int64
	Method       string
	URL          string
	RequestBody  string
	ResponseBody string
	StatusCode   int
	CreatedAt    time.Time
}
