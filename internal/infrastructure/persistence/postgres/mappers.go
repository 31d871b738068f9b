package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/example/carrier-gateway/internal/domain"
	"github.com/shopspring/decimal"
)

// toDBModel: maps domain entity to db model
func toDBModel(o *domain.Order) (*OrderModel, error) {
	customsItems, err := json.Marshal(o.CustomsItems)
	if err != nil {
		return nil, fmt.Errorf("marshal customs items: %w", err)
	}
	emails, err := json.Marshal(o.NotificationEmails)
	if err != nil {
		return nil, fmt.Errorf("marshal notification emails: %w", err)
	}
	docs, err := json.Marshal(o.TradeDocuments)
	if err != nil {
		return nil, fmt.Errorf("marshal trade documents: %w", err)
	}

	m := &OrderModel{
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
		CustomsItems:        customsItems,
		BrokerID:            o.BrokerID,
		ThirdPartyConsignee: o.ThirdPartyConsignee,
		NotificationEmails:  emails,
		TradeDocuments:      docs,
		TrackingNumber:      o.TrackingNumber,
		LabelPath:           o.LabelPath,
		Status:              string(o.Status),
		CreatedAt:           o.CreatedAt,
	}
	if o.PriceQuote != nil {
		m.PriceQuote = decimal.NewNullDecimal(*o.PriceQuote)
	}
	return m, nil
}

// toDomainModel: maps db model to domain entity
func toDomainModel(m *OrderModel) (*domain.Order, error) {
	var customsItems []domain.CustomsItem
	if len(m.CustomsItems) > 0 {
		if err := json.Unmarshal(m.CustomsItems, &customsItems); err != nil {
			return nil, fmt.Errorf("unmarshal customs items: %w", err)
		}
	}
	var emails []string
	if len(m.NotificationEmails) > 0 {
		if err := json.Unmarshal(m.NotificationEmails, &emails); err != nil {
			return nil, fmt.Errorf("unmarshal notification emails: %w", err)
		}
	}
	var docs []domain.TradeDocumentRef
	if len(m.TradeDocuments) > 0 {
		if err := json.Unmarshal(m.TradeDocuments, &docs); err != nil {
			return nil, fmt.Errorf("unmarshal trade documents: %w", err)
		}
	}

	o := &domain.Order{
		ID:                  m.ID,
		Reference:           m.Reference,
		AccountID:           m.AccountID,
		ShipperID:           m.ShipperID,
		ServiceCode:         domain.ServiceCode(m.ServiceCode),
		IsReturn:            m.IsReturn,
		RecipientName:       m.RecipientName,
		RecipientStreet:     m.RecipientStreet,
		RecipientCity:       m.RecipientCity,
		RecipientPostalCode: m.RecipientPostalCode,
		RecipientCountry:    m.RecipientCountry,
		WeightKg:            m.WeightKg,
		CustomsRequired:     m.CustomsRequired,
		CustomsItems:        customsItems,
		BrokerID:            m.BrokerID,
		ThirdPartyConsignee: m.ThirdPartyConsignee,
		NotificationEmails:  emails,
		TradeDocuments:      docs,
		TrackingNumber:      m.TrackingNumber,
		LabelPath:           m.LabelPath,
		Status:              domain.OrderStatus(m.Status),
		CreatedAt:           m.CreatedAt,
	}
	if m.PriceQuote.Valid {
		quote := m.PriceQuote.Decimal
		o.PriceQuote = &quote
	}
	return o, nil
}
