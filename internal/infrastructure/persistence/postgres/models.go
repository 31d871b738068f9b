package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderModel mirrors the orders table. Customs items, notification
// emails and trade document refs are stored as jsonb.
type OrderModel struct {
	ID        int64
	Reference string
	AccountID int64
	ShipperID int64

	ServiceCode string
	IsReturn    bool

	RecipientName       string
	RecipientStreet     string
	RecipientCity       string
	RecipientPostalCode string
	RecipientCountry    string
	WeightKg            float64

	CustomsRequired     bool
	CustomsItems        []byte
	BrokerID            *int64
	ThirdPartyConsignee bool
	NotificationEmails  []byte
	TradeDocuments      []byte

	PriceQuote decimal.NullDecimal

	TrackingNumber string
	LabelPath      string
	Status         string
	CreatedAt      time.Time
}
