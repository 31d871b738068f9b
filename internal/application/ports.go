package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/example/carrier-gateway/internal/domain"
	"github.com/shopspring/decimal"
)

// RateRequest is a normalized rate quote request. An empty ServiceCode
// means "quote every permitted parcel service".
type RateRequest struct {
	ServiceCode           domain.ServiceCode
	WeightKg              float64
	DestinationCountry    string
	DestinationPostalCode string
}

// Quote is one (service, price) pair decoded from a rate response.
type Quote struct {
	ServiceCode domain.ServiceCode
	Amount      decimal.Decimal
	Currency    string
}

type RecipientAddress struct {
	Name        string
	Street      string
	City        string
	PostalCode  string
	CountryCode string
}

// TradeDocument is an electronic trade document uploaded alongside a
// shipment. Content is base64.
type TradeDocument struct {
	Name    string
	DocType string
	Content string
}

// ShipmentRequest is a normalized shipment or return request with all
// records already resolved. OrderID links exchange log rows when the
// order row exists before the carrier call.
type ShipmentRequest struct {
	OrderID             *int64
	Reference           string
	ServiceCode         domain.ServiceCode
	Shipper             domain.Shipper
	Recipient           RecipientAddress
	WeightKg            float64
	CustomsRequired     bool
	CustomsItems        []domain.CustomsItem
	Broker              *domain.Broker
	ThirdPartyConsignee bool
	NotificationEmails  []string
	TradeDocuments      []TradeDocument
}

type ShipmentResult struct {
	TrackingNumber string
	LabelPath      string
	DocumentAcks   []string
}

// CarrierGateway is the port for the external carrier API.
type CarrierGateway interface {
	QuoteRate(ctx context.Context, account *domain.Account, req RateRequest) ([]Quote, error)
	CreateShipment(ctx context.Context, account *domain.Account, req ShipmentRequest) (*ShipmentResult, error)
	CreateReturn(ctx context.Context, account *domain.Account, req ShipmentRequest) (*ShipmentResult, error)
	Track(ctx context.Context, account *domain.Account, trackingNumber string) (json.RawMessage, error)
	DeliveryConfirmation(ctx context.Context, account *domain.Account, trackingNumber string) ([]byte, error)
}

// AccountRepository is the port for account persistence. UpdateToken is
// the only mutation after registration.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	UpdateToken(ctx context.Context, id int64, token string, expiresAt time.Time) error
}

type ShipperRepository interface {
	Create(ctx context.Context, shipper *domain.Shipper) error
	FindByID(ctx context.Context, id int64) (*domain.Shipper, error)
	Update(ctx context.Context, shipper *domain.Shipper) error
	List(ctx context.Context) ([]*domain.Shipper, error)
}

type BrokerRepository interface {
	Create(ctx context.Context, broker *domain.Broker) error
	FindByID(ctx context.Context, id int64) (*domain.Broker, error)
	Update(ctx context.Context, broker *domain.Broker) error
	List(ctx context.Context) ([]*domain.Broker, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Order, int, error)
}

// ExchangeLogger records every outbound carrier call before the response
// is interpreted. Entries are append-only.
type ExchangeLogger interface {
	Log(ctx context.Context, entry *domain.ExchangeLog) error
}

// LabelStore persists decoded label and delivery-confirmation documents,
// keyed by tracking number. Returns the stored path.
type LabelStore interface {
	SaveLabel(trackingNumber string, data []byte) (string, error)
	SaveDocument(trackingNumber string, data []byte) (string, error)
}
