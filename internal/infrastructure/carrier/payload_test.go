package carrier

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/carrier-gateway/internal/application"
	"github.com/example/carrier-gateway/internal/config"
	"github.com/example/carrier-gateway/internal/domain"
)

func testBuilder() *PayloadBuilder {
	return NewPayloadBuilder(config.CarrierConfig{
		PreferredCurrency: "EUR",
		OriginPostalCode:  "1011AB",
		OriginCountryCode: "NL",
	})
}

func testAccount() *domain.Account {
	return &domain.Account{
		ID:            1,
		Name:          "main",
		AccountNumber: "510087100",
		APIKey:        "key",
		APISecret:     "secret",
	}
}

func baseShipmentRequest() application.ShipmentRequest {
	return application.ShipmentRequest{
		Reference:   "ORD-1001",
		ServiceCode: domain.ServiceFIP,
		Shipper: domain.Shipper{
			Name:        "Warehouse BV",
			PersonName:  "W. House",
			Street:      "Dockstraat 1",
			City:        "Amsterdam",
			PostalCode:  "1011AB",
			CountryCode: "NL",
		},
		Recipient: application.RecipientAddress{
			Name:        "Jane Doe",
			Street:      "1 Main St",
			City:        "Boston",
			PostalCode:  "02101",
			CountryCode: "US",
		},
		WeightKg:        2.5,
		CustomsRequired: true,
		CustomsItems: []domain.CustomsItem{
			{Description: "Ceramic mug", Quantity: 4, UnitPrice: decimal.RequireFromString("12.50")},
		},
	}
}

func TestRatePayload_SingleService(t *testing.T) {
	payload, codes, err := testBuilder().Rate(testAccount(), application.RateRequest{
		ServiceCode:        domain.ServiceFIP,
		WeightKg:           1.2,
		DestinationCountry: "US",
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.ServiceCode{domain.ServiceFIP}, codes)
	assert.Equal(t, "510087100", payload.AccountNumber.Value)
	assert.Equal(t, []string{"INTERNATIONAL_PRIORITY"}, payload.RequestedShipment.ServiceTypes)
	assert.Equal(t, "EUR", payload.RequestedShipment.PreferredCurrency)
	assert.Equal(t, "NL", payload.RequestedShipment.Shipper.Address.CountryCode)
	assert.Equal(t, "US", payload.RequestedShipment.Recipient.Address.CountryCode)
	assert.Nil(t, payload.RequestedShipment.TotalWeight)
}

func TestRatePayload_AllServicesDeduplicatesSharedNames(t *testing.T) {
	payload, codes, err := testBuilder().Rate(testAccount(), application.RateRequest{
		WeightKg:           1.2,
		DestinationCountry: "DE",
	})
	require.NoError(t, err)

	// FIE and RE share INTERNATIONAL_ECONOMY: six requested codes, five
	// wire entries.
	assert.Len(t, codes, 6)
	assert.Equal(t, []string{
		"INTERNATIONAL_PRIORITY",
		"INTERNATIONAL_PRIORITY_EXPRESS",
		"INTERNATIONAL_ECONOMY",
		"PRIORITY_OVERNIGHT",
		"INTERNATIONAL_CONNECT_PLUS",
	}, payload.RequestedShipment.ServiceTypes)
}

func TestRatePayload_FreightCarriesTotalWeight(t *testing.T) {
	payload, _, err := testBuilder().Rate(testAccount(), application.RateRequest{
		ServiceCode:        domain.ServiceIPF,
		WeightKg:           140,
		DestinationCountry: "US",
	})
	require.NoError(t, err)

	require.NotNil(t, payload.RequestedShipment.TotalWeight)
	assert.Equal(t, 140.0, payload.RequestedShipment.TotalWeight.Value)
	assert.Equal(t, "KG", payload.RequestedShipment.TotalWeight.Units)
}

func TestRatePayload_RejectsUnknownService(t *testing.T) {
	_, _, err := testBuilder().Rate(testAccount(), application.RateRequest{
		ServiceCode:        "XX",
		WeightKg:           1,
		DestinationCountry: "US",
	})
	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidServiceCode))
}

func TestShipmentPayload_Base(t *testing.T) {
	req := baseShipmentRequest()
	req.CustomsRequired = false
	req.CustomsItems = nil

	payload, err := testBuilder().Shipment(testAccount(), req)
	require.NoError(t, err)

	body := payload.RequestedShipment
	assert.Equal(t, "LABEL", payload.LabelResponseOptions)
	assert.Equal(t, "INTERNATIONAL_PRIORITY", body.ServiceType)
	assert.Equal(t, "YOUR_PACKAGING", body.PackagingType)
	assert.Equal(t, "USE_SCHEDULED_PICKUP", body.PickupType)
	assert.Equal(t, "PDF", body.LabelSpecification.ImageType)
	assert.Equal(t, "PAPER_4X6", body.LabelSpecification.LabelStockType)
	assert.Equal(t, "SENDER", body.ShippingChargesPayment.PaymentType)
	assert.Equal(t, "510087100", body.ShippingChargesPayment.Payor.ResponsibleParty.AccountNumber.Value)
	require.Len(t, body.Recipients, 1)
	assert.Equal(t, "Jane Doe", body.Recipients[0].Contact.PersonName)

	// No options requested: none of the optional blocks appear.
	assert.Nil(t, body.CustomsClearanceDetail)
	assert.Nil(t, body.ShipmentSpecialServices)
	assert.Nil(t, body.EmailNotificationDetail)
	assert.Nil(t, body.ReturnShipmentDetail)
	assert.Nil(t, body.TotalWeight)
}

func TestShipmentPayload_CustomsItems(t *testing.T) {
	payload, err := testBuilder().Shipment(testAccount(), baseShipmentRequest())
	require.NoError(t, err)

	detail := payload.RequestedShipment.CustomsClearanceDetail
	require.NotNil(t, detail)
	require.Len(t, detail.Commodities, 1)
	assert.Equal(t, "Ceramic mug", detail.Commodities[0].Description)
	assert.Equal(t, 4, detail.Commodities[0].Quantity)
	assert.Equal(t, "EUR", detail.Commodities[0].UnitPrice.Currency)
	assert.True(t, detail.Commodities[0].UnitPrice.Amount.Equal(decimal.RequireFromString("12.50")))
}

func TestShipmentPayload_CustomsFallbackCommodity(t *testing.T) {
	req := baseShipmentRequest()
	req.CustomsItems = nil

	payload, err := testBuilder().Shipment(testAccount(), req)
	require.NoError(t, err)

	detail := payload.RequestedShipment.CustomsClearanceDetail
	require.NotNil(t, detail)
	require.Len(t, detail.Commodities, 1)

	fallback := detail.Commodities[0]
	assert.Equal(t, "Shipment contents", fallback.Description)
	assert.Equal(t, 1, fallback.Quantity)
	assert.True(t, fallback.UnitPrice.Amount.IsZero())
	require.NotNil(t, fallback.Weight)
	assert.Equal(t, req.WeightKg, fallback.Weight.Value)
}

func TestShipmentPayload_BrokerSelectOption(t *testing.T) {
	req := baseShipmentRequest()
	req.Broker = &domain.Broker{
		Name:        "Brokerage Inc",
		Street:      "2 Customs Way",
		City:        "Boston",
		CountryCode: "US",
	}

	payload, err := testBuilder().Shipment(testAccount(), req)
	require.NoError(t, err)

	body := payload.RequestedShipment
	require.NotNil(t, body.ShipmentSpecialServices)
	assert.Contains(t, body.ShipmentSpecialServices.SpecialServiceTypes, "BROKER_SELECT_OPTION")

	require.NotNil(t, body.CustomsClearanceDetail)
	require.Len(t, body.CustomsClearanceDetail.Brokers, 1)
	assert.Equal(t, "IMPORT", body.CustomsClearanceDetail.Brokers[0].Type)
	assert.Equal(t, "Brokerage Inc", body.CustomsClearanceDetail.Brokers[0].Broker.Contact.CompanyName)
}

func TestShipmentPayload_NoCustomsMeansNoBroker(t *testing.T) {
	req := baseShipmentRequest()
	req.CustomsRequired = false
	req.CustomsItems = nil
	req.Broker = &domain.Broker{
		Name:        "Brokerage Inc",
		Street:      "2 Customs Way",
		City:        "Boston",
		CountryCode: "US",
	}

	payload, err := testBuilder().Shipment(testAccount(), req)
	require.NoError(t, err)

	// The broker rides inside the customs block; no customs clearance
	// means no customs block at all.
	body := payload.RequestedShipment
	assert.Nil(t, body.CustomsClearanceDetail)
	assert.Nil(t, body.ShipmentSpecialServices)
}

func TestShipmentPayload_ThirdPartyConsignee(t *testing.T) {
	req := baseShipmentRequest()
	req.ThirdPartyConsignee = true

	payload, err := testBuilder().Shipment(testAccount(), req)
	require.NoError(t, err)

	body := payload.RequestedShipment
	require.NotNil(t, body.ShipmentSpecialServices)
	assert.Contains(t, body.ShipmentSpecialServices.SpecialServiceTypes, "THIRD_PARTY_CONSIGNEE")
	assert.True(t, body.Recipients[0].ThirdPartyConsignee)
}

func TestShipmentPayload_Notifications(t *testing.T) {
	req := baseShipmentRequest()
	req.NotificationEmails = []string{"a@example.com", "b@example.com"}

	payload, err := testBuilder().Shipment(testAccount(), req)
	require.NoError(t, err)

	detail := payload.RequestedShipment.EmailNotificationDetail
	require.NotNil(t, detail)
	require.Len(t, detail.Recipients, 2)
	assert.Equal(t, "a@example.com", detail.Recipients[0].EmailAddress)
	assert.Equal(t, []string{"ON_DELIVERY", "ON_EXCEPTION"}, detail.Recipients[0].NotificationEventType)
}

func TestShipmentPayload_TradeDocuments(t *testing.T) {
	req := baseShipmentRequest()
	req.TradeDocuments = []application.TradeDocument{
		{Name: "invoice.pdf", DocType: "COMMERCIAL_INVOICE", Content: "aGVsbG8="},
	}

	payload, err := testBuilder().Shipment(testAccount(), req)
	require.NoError(t, err)

	body := payload.RequestedShipment
	require.NotNil(t, body.ShipmentSpecialServices)
	assert.Contains(t, body.ShipmentSpecialServices.SpecialServiceTypes, "ELECTRONIC_TRADE_DOCUMENTS")
	require.NotNil(t, body.ShipmentSpecialServices.EtdDetail)
	require.Len(t, body.ShipmentSpecialServices.EtdDetail.AttachedDocuments, 1)
	assert.Equal(t, "invoice.pdf", body.ShipmentSpecialServices.EtdDetail.AttachedDocuments[0].DocumentName)
	assert.Equal(t, "aGVsbG8=", body.ShipmentSpecialServices.EtdDetail.AttachedDocuments[0].DocumentContent)
}

func TestShipmentPayload_FreightTotalWeight(t *testing.T) {
	req := baseShipmentRequest()
	req.ServiceCode = domain.ServiceIEF
	req.WeightKg = 250

	payload, err := testBuilder().Shipment(testAccount(), req)
	require.NoError(t, err)

	require.NotNil(t, payload.RequestedShipment.TotalWeight)
	assert.Equal(t, 250.0, payload.RequestedShipment.TotalWeight.Value)
}

func TestReturnPayload_SwapsParties(t *testing.T) {
	req := baseShipmentRequest()
	req.ServiceCode = domain.ServiceRTN
	req.CustomsRequired = false
	req.CustomsItems = nil
	req.ThirdPartyConsignee = true // outbound-only, ignored on returns

	payload, err := testBuilder().Return(testAccount(), req)
	require.NoError(t, err)

	body := payload.RequestedShipment
	// Customer address picks up; warehouse receives.
	assert.Equal(t, "Jane Doe", body.Shipper.Contact.PersonName)
	assert.Equal(t, "US", body.Shipper.Address.CountryCode)
	require.Len(t, body.Recipients, 1)
	assert.Equal(t, "Warehouse BV", body.Recipients[0].Contact.CompanyName)
	assert.Equal(t, "NL", body.Recipients[0].Address.CountryCode)

	assert.Equal(t, "RETURNS_ECONOMY", body.ServiceType)
	require.NotNil(t, body.ReturnShipmentDetail)
	assert.Equal(t, "PRINT_RETURN_LABEL", body.ReturnShipmentDetail.ReturnType)

	assert.Nil(t, body.ShipmentSpecialServices)
	assert.False(t, body.Recipients[0].ThirdPartyConsignee)
	assert.Nil(t, body.TotalWeight)
}

func TestShipmentPayload_Deterministic(t *testing.T) {
	req := baseShipmentRequest()
	req.NotificationEmails = []string{"a@example.com"}
	req.ThirdPartyConsignee = true

	first, err := testBuilder().Shipment(testAccount(), req)
	require.NoError(t, err)
	second, err := testBuilder().Shipment(testAccount(), req)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}
