package carrier

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/example/carrier-gateway/internal/application"
	"github.com/example/carrier-gateway/internal/domain"
)

const defaultTokenLifetime = 3600 // seconds, when the carrier omits expires_in

func decodeTokenResponse(status int, body []byte) (string, time.Time, error) {
	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", time.Time{}, &application.AuthenticationError{StatusCode: status, Body: string(body)}
	}
	if resp.AccessToken == "" {
		return "", time.Time{}, &application.AuthenticationError{StatusCode: status, Body: string(body)}
	}

	expiresIn := resp.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = defaultTokenLifetime
	}
	return resp.AccessToken, time.Now().Add(time.Duration(expiresIn) * time.Second), nil
}

// decodeRateQuotes extracts one quote per requested service code present
// in the response. Codes sharing a carrier service name receive the same
// charge; codes absent from the response are skipped.
func decodeRateQuotes(requested []domain.ServiceCode, body []byte) ([]application.Quote, error) {
	var resp rateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &application.DecodingError{Message: "malformed rate response", Err: err}
	}

	chargeByService := make(map[string]netCharge)
	for _, detail := range resp.Output.RateReplyDetails {
		for _, rated := range detail.RatedShipmentDetails {
			if rated.TotalNetCharge != nil {
				chargeByService[detail.ServiceType] = *rated.TotalNetCharge
				break
			}
		}
	}

	quotes := make([]application.Quote, 0, len(requested))
	for _, code := range requested {
		charge, ok := chargeByService[code.CarrierName()]
		if !ok {
			continue
		}
		quotes = append(quotes, application.Quote{
			ServiceCode: code,
			Amount:      charge.Amount,
			Currency:    charge.Currency,
		})
	}

	if len(quotes) == 0 {
		return nil, &application.DecodingError{Message: "rate missing in response"}
	}
	return quotes, nil
}

// decodeShipment extracts the tracking number, the decoded label bytes
// and any trade-document acknowledgments from a shipment response.
func decodeShipment(body []byte) (trackingNumber string, label []byte, acks []string, err error) {
	var resp shipResponse
	if jsonErr := json.Unmarshal(body, &resp); jsonErr != nil {
		return "", nil, nil, &application.DecodingError{Message: "malformed shipment response", Err: jsonErr}
	}

	shipments := resp.Output.TransactionShipments
	if len(shipments) == 0 {
		return "", nil, nil, &application.DecodingError{Message: "shipment missing in response"}
	}
	first := shipments[0]

	trackingNumber = first.MasterTrackingNumber
	if trackingNumber == "" && len(first.PieceResponses) > 0 {
		trackingNumber = first.PieceResponses[0].TrackingNumber
	}
	if trackingNumber == "" {
		return "", nil, nil, &application.DecodingError{Message: "tracking number missing in response"}
	}

	var encoded string
	if len(first.PieceResponses) > 0 && len(first.PieceResponses[0].PackageDocuments) > 0 {
		encoded = first.PieceResponses[0].PackageDocuments[0].EncodedLabel
	}
	if encoded == "" {
		return "", nil, nil, &application.DecodingError{Message: "label missing in response"}
	}
	label, decodeErr := base64.StdEncoding.DecodeString(encoded)
	if decodeErr != nil {
		return "", nil, nil, &application.DecodingError{Message: "label not decodable", Err: decodeErr}
	}

	for _, doc := range first.AttachedDocuments {
		acks = append(acks, doc.DocumentID)
	}

	return trackingNumber, label, acks, nil
}

// decodeDocument extracts the binary delivery-confirmation document.
func decodeDocument(body []byte) ([]byte, error) {
	var resp documentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &application.DecodingError{Message: "malformed document response", Err: err}
	}
	if len(resp.Output.Documents) == 0 {
		return nil, &application.DecodingError{Message: "document missing in response"}
	}
	data, err := base64.StdEncoding.DecodeString(resp.Output.Documents[0])
	if err != nil {
		return nil, &application.DecodingError{Message: "document not decodable", Err: err}
	}
	return data, nil
}
