package carrier

import (
	"github.com/example/carrier-gateway/internal/application"
	"github.com/example/carrier-gateway/internal/config"
	"github.com/example/carrier-gateway/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	pickupTypeScheduled  = "USE_SCHEDULED_PICKUP"
	packagingTypeDefault = "YOUR_PACKAGING"
	labelImageType       = "PDF"
	labelStockType       = "PAPER_4X6"
	weightUnitsKg        = "KG"
	paymentTypeSender    = "SENDER"
	returnTypePrintLabel = "PRINT_RETURN_LABEL"

	specialServiceBroker = "BROKER_SELECT_OPTION"
	specialServiceTPC    = "THIRD_PARTY_CONSIGNEE"
	specialServiceETD    = "ELECTRONIC_TRADE_DOCUMENTS"

	notificationOnDelivery  = "ON_DELIVERY"
	notificationOnException = "ON_EXCEPTION"

	customsBrokerTypeImport = "IMPORT"
	fallbackCommodityDesc   = "Shipment contents"
)

// PayloadBuilder turns normalized requests into carrier wire payloads. It
// is pure: identical input produces byte-identical output, and nothing
// here performs I/O.
type PayloadBuilder struct {
	currency          string
	originPostalCode  string
	originCountryCode string
}

func NewPayloadBuilder(cfg config.CarrierConfig) *PayloadBuilder {
	return &PayloadBuilder{
		currency:          cfg.PreferredCurrency,
		originPostalCode:  cfg.OriginPostalCode,
		originCountryCode: cfg.OriginCountryCode,
	}
}

// Rate builds a rate quote payload. An empty service code expands to
// every permitted parcel code; the returned code slice tells the decoder
// which (service, price) pairs to extract.
func (b *PayloadBuilder) Rate(account *domain.Account, req application.RateRequest) (*ratePayload, []domain.ServiceCode, error) {
	var codes []domain.ServiceCode
	if req.ServiceCode == "" {
		codes = domain.RateableServiceCodes()
	} else {
		if !req.ServiceCode.IsValid() {
			return nil, nil, domain.NewInvalidServiceCodeError(string(req.ServiceCode))
		}
		codes = []domain.ServiceCode{req.ServiceCode}
	}

	// RE shares a carrier service name with FIE; the wire list must not
	// repeat it.
	names := make([]string, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		name := code.CarrierName()
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	shipment := rateShipment{
		Shipper: party{
			Address: address{
				PostalCode:  b.originPostalCode,
				CountryCode: b.originCountryCode,
			},
		},
		Recipient: party{
			Address: address{
				PostalCode:  req.DestinationPostalCode,
				CountryCode: req.DestinationCountry,
			},
		},
		ServiceTypes:      names,
		PickupType:        pickupTypeScheduled,
		PreferredCurrency: b.currency,
		RequestedPackageLineItems: []packageLineItem{
			{Weight: weightBlock{Units: weightUnitsKg, Value: req.WeightKg}},
		},
	}

	if len(codes) == 1 && codes[0].IsFreight() {
		shipment.TotalWeight = &weightBlock{Units: weightUnitsKg, Value: req.WeightKg}
	}

	return &ratePayload{
		AccountNumber:     accountNumber{Value: account.AccountNumber},
		RequestedShipment: shipment,
	}, codes, nil
}

// Shipment builds an outbound shipment payload. Every option is an
// independent transform over the shared shipment body.
func (b *PayloadBuilder) Shipment(account *domain.Account, req application.ShipmentRequest) (*shipPayload, error) {
	if !req.ServiceCode.IsValid() {
		return nil, domain.NewInvalidServiceCodeError(string(req.ServiceCode))
	}

	shipperParty := party{
		Contact: &contact{CompanyName: req.Shipper.Name, PersonName: req.Shipper.PersonName},
		Address: address{
			StreetLines: []string{req.Shipper.Street},
			City:        req.Shipper.City,
			PostalCode:  req.Shipper.PostalCode,
			CountryCode: req.Shipper.CountryCode,
		},
	}
	recipientParty := party{
		Contact: &contact{PersonName: req.Recipient.Name},
		Address: address{
			StreetLines: []string{req.Recipient.Street},
			City:        req.Recipient.City,
			PostalCode:  req.Recipient.PostalCode,
			CountryCode: req.Recipient.CountryCode,
		},
	}

	body := b.baseShipment(account, req, shipperParty, recipientParty, req.ServiceCode)

	applyCustoms(&body, b.currency, req)
	applyBroker(&body, req)
	applyThirdPartyConsignee(&body, req)
	applyNotifications(&body, req)
	applyTradeDocuments(&body, req)
	applyFreightTotal(&body, req)

	return &shipPayload{
		LabelResponseOptions: "LABEL",
		RequestedShipment:    body,
	}, nil
}

// Return builds a return shipment payload: the customer address becomes
// the pickup location and the warehouse shipper the destination. The
// service is fixed to the returns code. Returns honor customs, broker,
// notifications and trade documents; third-party consignee and freight
// total weight apply to outbound shipments only and are not carried here.
func (b *PayloadBuilder) Return(account *domain.Account, req application.ShipmentRequest) (*shipPayload, error) {
	pickupParty := party{
		Contact: &contact{PersonName: req.Recipient.Name},
		Address: address{
			StreetLines: []string{req.Recipient.Street},
			City:        req.Recipient.City,
			PostalCode:  req.Recipient.PostalCode,
			CountryCode: req.Recipient.CountryCode,
		},
	}
	warehouseParty := party{
		Contact: &contact{CompanyName: req.Shipper.Name, PersonName: req.Shipper.PersonName},
		Address: address{
			StreetLines: []string{req.Shipper.Street},
			City:        req.Shipper.City,
			PostalCode:  req.Shipper.PostalCode,
			CountryCode: req.Shipper.CountryCode,
		},
	}

	body := b.baseShipment(account, req, pickupParty, warehouseParty, domain.ServiceRTN)
	body.ReturnShipmentDetail = &returnShipmentDetail{ReturnType: returnTypePrintLabel}

	applyCustoms(&body, b.currency, req)
	applyBroker(&body, req)
	applyNotifications(&body, req)
	applyTradeDocuments(&body, req)

	return &shipPayload{
		LabelResponseOptions: "LABEL",
		RequestedShipment:    body,
	}, nil
}

func (b *PayloadBuilder) baseShipment(account *domain.Account, req application.ShipmentRequest, shipper, recipient party, code domain.ServiceCode) shipShipment {
	return shipShipment{
		Shipper:           shipper,
		Recipients:        []party{recipient},
		ServiceType:       code.CarrierName(),
		PackagingType:     packagingTypeDefault,
		PickupType:        pickupTypeScheduled,
		PreferredCurrency: b.currency,
		ShippingChargesPayment: chargesPayment{
			PaymentType: paymentTypeSender,
			Payor: payor{
				ResponsibleParty: responsibleParty{
					AccountNumber: accountNumber{Value: account.AccountNumber},
				},
			},
		},
		LabelSpecification: labelSpecification{
			ImageType:      labelImageType,
			LabelStockType: labelStockType,
		},
		RequestedPackageLineItems: []packageLineItem{
			{Weight: weightBlock{Units: weightUnitsKg, Value: req.WeightKg}},
		},
	}
}

// applyCustoms embeds the customs clearance block: one commodity per
// declared item, or a single fallback commodity describing the whole
// shipment by its total weight.
func applyCustoms(body *shipShipment, currency string, req application.ShipmentRequest) {
	if !req.CustomsRequired {
		return
	}

	var commodities []commodity
	if len(req.CustomsItems) > 0 {
		commodities = make([]commodity, 0, len(req.CustomsItems))
		for _, item := range req.CustomsItems {
			c := commodity{
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   moneyBlock{Currency: currency, Amount: item.UnitPrice},
			}
			if item.WeightKg != nil {
				c.Weight = &weightBlock{Units: weightUnitsKg, Value: *item.WeightKg}
			}
			commodities = append(commodities, c)
		}
	} else {
		commodities = []commodity{{
			Description: fallbackCommodityDesc,
			Quantity:    1,
			UnitPrice:   moneyBlock{Currency: currency, Amount: decimal.Zero},
			Weight:      &weightBlock{Units: weightUnitsKg, Value: req.WeightKg},
		}}
	}

	body.CustomsClearanceDetail = &customsDetail{Commodities: commodities}
}

// applyBroker embeds the resolved broker as the import customs broker.
// The broker reference itself is validated before the builder runs. A
// broker lives inside the customs block, so a request without customs
// clearance carries no broker either.
func applyBroker(body *shipShipment, req application.ShipmentRequest) {
	if req.Broker == nil || !req.CustomsRequired {
		return
	}

	entry := customsBroker{
		Type: customsBrokerTypeImport,
		Broker: party{
			Contact: &contact{CompanyName: req.Broker.Name, PersonName: req.Broker.PersonName},
			Address: address{
				StreetLines: []string{req.Broker.Street},
				City:        req.Broker.City,
				PostalCode:  req.Broker.PostalCode,
				CountryCode: req.Broker.CountryCode,
			},
		},
	}

	if body.CustomsClearanceDetail == nil {
		body.CustomsClearanceDetail = &customsDetail{}
	}
	body.CustomsClearanceDetail.Brokers = append(body.CustomsClearanceDetail.Brokers, entry)
	addSpecialService(body, specialServiceBroker)
}

func applyThirdPartyConsignee(body *shipShipment, req application.ShipmentRequest) {
	if !req.ThirdPartyConsignee {
		return
	}
	for i := range body.Recipients {
		body.Recipients[i].ThirdPartyConsignee = true
	}
	addSpecialService(body, specialServiceTPC)
}

func applyNotifications(body *shipShipment, req application.ShipmentRequest) {
	if len(req.NotificationEmails) == 0 {
		return
	}
	recipients := make([]notificationRecipient, 0, len(req.NotificationEmails))
	for _, email := range req.NotificationEmails {
		recipients = append(recipients, notificationRecipient{
			EmailAddress:          email,
			NotificationEventType: []string{notificationOnDelivery, notificationOnException},
		})
	}
	body.EmailNotificationDetail = &emailNotificationDetail{Recipients: recipients}
}

func applyTradeDocuments(body *shipShipment, req application.ShipmentRequest) {
	if len(req.TradeDocuments) == 0 {
		return
	}
	docs := make([]attachedDocument, 0, len(req.TradeDocuments))
	for _, doc := range req.TradeDocuments {
		docs = append(docs, attachedDocument{
			DocumentType:    doc.DocType,
			DocumentName:    doc.Name,
			DocumentContent: doc.Content,
		})
	}
	addSpecialService(body, specialServiceETD)
	body.ShipmentSpecialServices.EtdDetail = &etdDetail{AttachedDocuments: docs}
}

// applyFreightTotal adds the total-weight field freight services require;
// parcel payloads never carry it.
func applyFreightTotal(body *shipShipment, req application.ShipmentRequest) {
	if !req.ServiceCode.IsFreight() {
		return
	}
	body.TotalWeight = &weightBlock{Units: weightUnitsKg, Value: req.WeightKg}
}

func addSpecialService(body *shipShipment, service string) {
	if body.ShipmentSpecialServices == nil {
		body.ShipmentSpecialServices = &specialServices{}
	}
	body.ShipmentSpecialServices.SpecialServiceTypes = append(body.ShipmentSpecialServices.SpecialServiceTypes, service)
}
