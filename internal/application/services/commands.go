package services

import (
	"github.com/example/carrier-gateway/internal/application"
	"github.com/example/carrier-gateway/internal/domain"
)

type RateCommand struct {
	AccountID             int64
	ServiceCode           string
	WeightKg              float64
	DestinationCountry    string
	DestinationPostalCode string
}

// ShipmentCommand carries everything needed to create one shipment or
// return. CustomsRequired defaults to true when unset: international
// shipments without an explicit opt-out always get a customs block.
type ShipmentCommand struct {
	Reference   string
	AccountID   int64
	ShipperID   int64
	ServiceCode string

	RecipientName       string
	RecipientStreet     string
	RecipientCity       string
	RecipientPostalCode string
	RecipientCountry    string
	WeightKg            float64

	CustomsRequired     *bool
	CustomsItems        []domain.CustomsItem
	BrokerSelectOption  bool
	BrokerID            *int64
	ThirdPartyConsignee bool
	NotificationEmails  []string
	TradeDocuments      []application.TradeDocument

	// QuoteFirst asks for a rate quote before the shipment is created; the
	// quoted price is stored on the order but never enforced.
	QuoteFirst bool
}

func (c ShipmentCommand) customsRequired() bool {
	if c.CustomsRequired == nil {
		return true
	}
	return *c.CustomsRequired
}

// BatchCommand ships the same consignment under several service codes in
// one pass. Each code gets its own order row and its own outcome.
type BatchCommand struct {
	Shipment     ShipmentCommand
	ServiceCodes []string
}
