// Package domain holds the gateway's entities: carrier accounts,
// registered addresses, orders and the exchange log.
package domain

import "time"

// Account is one merchant's carrier contract. The cached bearer token and
// its expiry live on the account row; they are mutated only by a token
// refresh.
type Account struct {
	ID            int64
	Name          string
	AccountNumber string
	MeterNumber   *string
	APIKey        string
	APISecret     string
	IsFreight     bool

	AccessToken    *string
	TokenExpiresAt *time.Time

	CreatedAt time.Time
}

func NewAccount(name, accountNumber string, meterNumber *string, apiKey, apiSecret string, isFreight bool) (*Account, error) {
	if name == "" {
		return nil, NewMissingRequiredFieldError("name")
	}
	if accountNumber == "" {
		return nil, NewMissingRequiredFieldError("account_number")
	}
	if apiKey == "" {
		return nil, NewMissingRequiredFieldError("api_key")
	}
	if apiSecret == "" {
		return nil, NewMissingRequiredFieldError("api_secret")
	}

	return &Account{
		Name:          name,
		AccountNumber: accountNumber,
		MeterNumber:   meterNumber,
		APIKey:        apiKey,
		APISecret:     apiSecret,
		IsFreight:     isFreight,
		CreatedAt:     time.Now(),
	}, nil
}

// Shipper is a registered warehouse origin address, reusable across orders.
type Shipper struct {
	ID          int64
	Name        string
	PersonName  string
	Street      string
	City        string
	PostalCode  string
	CountryCode string
	CreatedAt   time.Time
}

func NewShipper(name, personName, street, city, postalCode, countryCode string) (*Shipper, error) {
	if name == "" {
		return nil, NewMissingRequiredFieldError("name")
	}
	if street == "" {
		return nil, NewMissingRequiredFieldError("street")
	}
	if city == "" {
		return nil, NewMissingRequiredFieldError("city")
	}
	if countryCode == "" {
		return nil, NewMissingRequiredFieldError("country_code")
	}

	return &Shipper{
		Name:        name,
		PersonName:  personName,
		Street:      street,
		City:        city,
		PostalCode:  postalCode,
		CountryCode: countryCode,
		CreatedAt:   time.Now(),
	}, nil
}

// Broker is a registered customs broker address for the broker select
// option. Same lifecycle as Shipper.
type Broker struct {
	ID          int64
	Name        string
	PersonName  string
	Street      string
	City        string
	PostalCode  string
	CountryCode string
	CreatedAt   time.Time
}

func NewBroker(name, personName, street, city, postalCode, countryCode string) (*Broker, error) {
	if name == "" {
		return nil, NewMissingRequiredFieldError("name")
	}
	if street == "" {
		return nil, NewMissingRequiredFieldError("street")
	}
	if city == "" {
		return nil, NewMissingRequiredFieldError("city")
	}
	if countryCode == "" {
		return nil, NewMissingRequiredFieldError("country_code")
	}

	return &Broker{
		Name:        name,
		PersonName:  personName,
		Street:      street,
		City:        city,
		PostalCode:  postalCode,
		CountryCode: countryCode,
		CreatedAt:   time.Now(),
	}, nil
}
