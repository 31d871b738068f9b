package carrier

import "github.com/shopspring/decimal"

// Wire shapes for the carrier REST API. Request structs are built only by
// the payload builder; response structs only by the decoders.

type accountNumber struct {
	Value string `json:"value"`
}

type weightBlock struct {
	Units string  `json:"units"`
	Value float64 `json:"value"`
}

type moneyBlock struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

type packageLineItem struct {
	Weight weightBlock `json:"weight"`
}

type address struct {
	StreetLines []string `json:"streetLines,omitempty"`
	City        string   `json:"city,omitempty"`
	PostalCode  string   `json:"postalCode,omitempty"`
	CountryCode string   `json:"countryCode"`
}

type contact struct {
	PersonName  string `json:"personName,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
}

type party struct {
	Contact *contact `json:"contact,omitempty"`
	Address address  `json:"address"`
	// ThirdPartyConsignee marks the recipient as not the paying customer.
	ThirdPartyConsignee bool `json:"thirdPartyConsignee,omitempty"`
}

type responsibleParty struct {
	AccountNumber accountNumber `json:"accountNumber"`
}

type payor struct {
	ResponsibleParty responsibleParty `json:"responsibleParty"`
}

type chargesPayment struct {
	PaymentType string `json:"paymentType"`
	Payor       payor  `json:"payor"`
}

type labelSpecification struct {
	ImageType      string `json:"imageType"`
	LabelStockType string `json:"labelStockType"`
}

// ---- rate request ----

type ratePayload struct {
	AccountNumber     accountNumber `json:"accountNumber"`
	RequestedShipment rateShipment  `json:"requestedShipment"`
}

type rateShipment struct {
	Shipper                   party             `json:"shipper"`
	Recipient                 party             `json:"recipient"`
	ServiceTypes              []string          `json:"serviceTypes"`
	PickupType                string            `json:"pickupType"`
	PreferredCurrency         string            `json:"preferredCurrency"`
	RequestedPackageLineItems []packageLineItem `json:"requestedPackageLineItems"`
	TotalWeight               *weightBlock      `json:"totalWeight,omitempty"`
}

// ---- shipment request ----

type shipPayload struct {
	LabelResponseOptions string       `json:"labelResponseOptions"`
	RequestedShipment    shipShipment `json:"requestedShipment"`
}

type shipShipment struct {
	Shipper                   party                    `json:"shipper"`
	Recipients                []party                  `json:"recipients"`
	ServiceType               string                   `json:"serviceType"`
	PackagingType             string                   `json:"packagingType"`
	PickupType                string                   `json:"pickupType"`
	PreferredCurrency         string                   `json:"preferredCurrency"`
	ShippingChargesPayment    chargesPayment           `json:"shippingChargesPayment"`
	LabelSpecification        labelSpecification       `json:"labelSpecification"`
	RequestedPackageLineItems []packageLineItem        `json:"requestedPackageLineItems"`
	TotalWeight               *weightBlock             `json:"totalWeight,omitempty"`
	CustomsClearanceDetail    *customsDetail           `json:"customsClearanceDetail,omitempty"`
	ShipmentSpecialServices   *specialServices         `json:"shipmentSpecialServices,omitempty"`
	EmailNotificationDetail   *emailNotificationDetail `json:"emailNotificationDetail,omitempty"`
	ReturnShipmentDetail      *returnShipmentDetail    `json:"returnShipmentDetail,omitempty"`
}

type commodity struct {
	Description string       `json:"description"`
	Quantity    int          `json:"quantity"`
	UnitPrice   moneyBlock   `json:"unitPrice"`
	Weight      *weightBlock `json:"weight,omitempty"`
}

type customsBroker struct {
	Type   string `json:"type"`
	Broker party  `json:"broker"`
}

type customsDetail struct {
	Commodities []commodity     `json:"commodities"`
	Brokers     []customsBroker `json:"brokers,omitempty"`
}

type attachedDocument struct {
	DocumentType    string `json:"documentType"`
	DocumentName    string `json:"documentName"`
	DocumentContent string `json:"documentContent"`
}

type etdDetail struct {
	AttachedDocuments []attachedDocument `json:"attachedDocuments"`
}

type specialServices struct {
	SpecialServiceTypes []string   `json:"specialServiceTypes"`
	EtdDetail           *etdDetail `json:"etdDetail,omitempty"`
}

type notificationRecipient struct {
	EmailAddress          string   `json:"emailAddress"`
	NotificationEventType []string `json:"notificationEventType"`
}

type emailNotificationDetail struct {
	Recipients []notificationRecipient `json:"recipients"`
}

type returnShipmentDetail struct {
	ReturnType string `json:"returnType"`
}

// ---- tracking / document requests ----

type trackingNumberInfo struct {
	TrackingNumber string `json:"trackingNumber"`
}

type trackingInfo struct {
	TrackingNumberInfo trackingNumberInfo `json:"trackingNumberInfo"`
}

type trackPayload struct {
	TrackingInfo         []trackingInfo `json:"trackingInfo"`
	IncludeDetailedScans bool           `json:"includeDetailedScans"`
}

type documentPayload struct {
	TrackingNumbers []string `json:"trackingNumbers"`
	DocumentType    string   `json:"documentType"`
}

// ---- responses ----

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type netCharge struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type ratedShipmentDetail struct {
	TotalNetCharge *netCharge `json:"totalNetCharge"`
}

type rateReplyDetail struct {
	ServiceType          string                `json:"serviceType"`
	RatedShipmentDetails []ratedShipmentDetail `json:"ratedShipmentDetails"`
}

type rateResponse struct {
	Output struct {
		RateReplyDetails []rateReplyDetail `json:"rateReplyDetails"`
	} `json:"output"`
}

type packageDocument struct {
	EncodedLabel string `json:"encodedLabel"`
}

type pieceResponse struct {
	TrackingNumber   string            `json:"trackingNumber"`
	PackageDocuments []packageDocument `json:"packageDocuments"`
}

type documentAck struct {
	DocumentID string `json:"documentId"`
}

type transactionShipment struct {
	MasterTrackingNumber string          `json:"masterTrackingNumber"`
	PieceResponses       []pieceResponse `json:"pieceResponses"`
	AttachedDocuments    []documentAck   `json:"attachedDocuments"`
}

type shipResponse struct {
	Output struct {
		TransactionShipments []transactionShipment `json:"transactionShipments"`
	} `json:"output"`
}

type documentResponse struct {
	Output struct {
		Documents []string `json:"documents"`
	} `json:"output"`
}
