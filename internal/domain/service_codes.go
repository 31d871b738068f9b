package domain

// ServiceCode is one of the short codes merchants use to pick a carrier
// product. The set is closed: anything else is rejected before a payload
// is built.
type ServiceCode string

const (
	ServiceFIP  ServiceCode = "FIP"  // International Priority
	ServiceIPE  ServiceCode = "IPE"  // International Priority Express
	ServiceFIE  ServiceCode = "FIE"  // International Economy
	ServiceRE   ServiceCode = "RE"   // Regional Economy
	ServicePO   ServiceCode = "PO"   // Priority Overnight
	ServiceFICP ServiceCode = "FICP" // International Connect Plus
	ServiceIPF  ServiceCode = "IPF"  // International Priority Freight
	ServiceIEF  ServiceCode = "IEF"  // International Economy Freight
	ServiceREF  ServiceCode = "REF"  // Regional Economy Freight
	ServiceRTN  ServiceCode = "RTN"  // Returns
)

// carrierServiceNames maps short codes to the service identifiers the
// carrier API expects. RE deliberately shares INTERNATIONAL_ECONOMY with
// FIE, and REF shares INTERNATIONAL_ECONOMY_FREIGHT with IEF.
var carrierServiceNames = map[ServiceCode]string{
	ServiceFIP:  "INTERNATIONAL_PRIORITY",
	ServiceIPE:  "INTERNATIONAL_PRIORITY_EXPRESS",
	ServiceFIE:  "INTERNATIONAL_ECONOMY",
	ServiceRE:   "INTERNATIONAL_ECONOMY",
	ServicePO:   "PRIORITY_OVERNIGHT",
	ServiceFICP: "INTERNATIONAL_CONNECT_PLUS",
	ServiceIPF:  "INTERNATIONAL_PRIORITY_FREIGHT",
	ServiceIEF:  "INTERNATIONAL_ECONOMY_FREIGHT",
	ServiceREF:  "INTERNATIONAL_ECONOMY_FREIGHT",
	ServiceRTN:  "RETURNS_ECONOMY",
}

func (s ServiceCode) IsValid() bool {
	_, ok := carrierServiceNames[s]
	return ok
}

func (s ServiceCode) IsFreight() bool {
	switch s {
	case ServiceIPF, ServiceIEF, ServiceREF:
		return true
	}
	return false
}

func (s ServiceCode) IsReturns() bool {
	return s == ServiceRTN
}

// CarrierName returns the carrier-side service identifier, or "" for an
// unknown code.
func (s ServiceCode) CarrierName() string {
	return carrierServiceNames[s]
}

// RateableServiceCodes returns the codes a rate request without an
// explicit service expands to: every permitted parcel code, freight and
// returns excluded.
func RateableServiceCodes() []ServiceCode {
	return []ServiceCode{ServiceFIP, ServiceIPE, ServiceFIE, ServiceRE, ServicePO, ServiceFICP}
}
