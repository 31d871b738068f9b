package rest

import (
	"time"

	"github.com/example/carrier-gateway/internal/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse deliberately omits the API secret and the cached token.
type AccountResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	AccountNumber string    `json:"account_number"`
	MeterNumber   *string   `json:"meter_number,omitempty"`
	APIKey        string    `json:"api_key"`
	IsFreight     bool      `json:"is_freight"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToAPIAccount(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		Name:          a.Name,
		AccountNumber: a.AccountNumber,
		MeterNumber:   a.MeterNumber,
		APIKey:        a.APIKey,
		IsFreight:     a.IsFreight,
		CreatedAt:     a.CreatedAt,
	}
}

type AddressResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	PersonName  string    `json:"person_name"`
	Street      string    `json:"street"`
	City        string    `json:"city"`
	PostalCode  string    `json:"postal_code"`
	CountryCode string    `json:"country_code"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToAPIShipper(s *domain.Shipper) AddressResponse {
	return AddressResponse{
		ID:          s.ID,
		Name:        s.Name,
		PersonName:  s.PersonName,
		Street:      s.Street,
		City:        s.City,
		PostalCode:  s.PostalCode,
		CountryCode: s.CountryCode,
		CreatedAt:   s.CreatedAt,
	}
}

func ToAPIBroker(b *domain.Broker) AddressResponse {
	return AddressResponse{
		ID:          b.ID,
		Name:        b.Name,
		PersonName:  b.PersonName,
		Street:      b.Street,
		City:        b.City,
		PostalCode:  b.PostalCode,
		CountryCode: b.CountryCode,
		CreatedAt:   b.CreatedAt,
	}
}

type OrderResponse struct {
	ID                  int64                     `json:"id"`
	Reference           string                    `json:"reference"`
	AccountID           int64                     `json:"account_id"`
	ShipperID           int64                     `json:"shipper_id"`
	ServiceCode         string                    `json:"service_code"`
	IsReturn            bool                      `json:"is_return"`
	RecipientName       string                    `json:"recipient_name"`
	RecipientStreet     string                    `json:"recipient_street"`
	RecipientCity       string                    `json:"recipient_city"`
	RecipientPostalCode string                    `json:"recipient_postal_code"`
	RecipientCountry    string                    `json:"recipient_country"`
	WeightKg            float64                   `json:"weight_kg"`
	CustomsRequired     bool                      `json:"customs_required"`
	CustomsItems        []domain.CustomsItem      `json:"customs_items,omitempty"`
	BrokerID            *int64                    `json:"broker_id,omitempty"`
	ThirdPartyConsignee bool                      `json:"third_party_consignee"`
	NotificationEmails  []string                  `json:"notification_emails,omitempty"`
	TradeDocuments      []domain.TradeDocumentRef `json:"trade_documents,omitempty"`
	PriceQuote          *decimal.Decimal          `json:"price_quote,omitempty"`
	TrackingNumber      string                    `json:"tracking_number,omitempty"`
	LabelPath           string                    `json:"label_path,omitempty"`
	Status              string                    `json:"status"`
	CreatedAt           time.Time                 `json:"created_at"`
}

func ToAPIOrder(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:                  o.ID,
		Reference:           o.Reference,
		AccountID:           o.AccountID,
		ShipperID:           o.ShipperID,
		ServiceCode:         string(o.ServiceCode),
		IsReturn:            o.IsReturn,
		RecipientName:       o.RecipientName,
		RecipientStreet:     o.RecipientStreet,
		RecipientCity:       o.RecipientCity,
		RecipientPostalCode: o.RecipientPostalCode,
		RecipientCountry:    o.RecipientCountry,
		WeightKg:            o.WeightKg,
		CustomsRequired:     o.CustomsRequired,
		CustomsItems:        o.CustomsItems,
		BrokerID:            o.BrokerID,
		ThirdPartyConsignee: o.ThirdPartyConsignee,
		NotificationEmails:  o.NotificationEmails,
		TradeDocuments:      o.TradeDocuments,
		PriceQuote:          o.PriceQuote,
		TrackingNumber:      o.TrackingNumber,
		LabelPath:           o.LabelPath,
		Status:              string(o.Status),
		CreatedAt:           o.CreatedAt,
	}
}

type QuoteResponse struct {
	ServiceCode string          `json:"service_code"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
}
