package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/carrier-gateway/internal/application"
	"github.com/example/carrier-gateway/internal/config"
	"github.com/example/carrier-gateway/internal/domain"
)

const (
	ratePath     = "/rate/v1/rates/quotes"
	shipPath     = "/ship/v1/shipments"
	trackPath    = "/track/v1/trackingnumbers"
	documentPath = "/track/v1/trackingdocuments"

	documentTypeSPOD = "SIGNATURE_PROOF_OF_DELIVERY"
)

// Client performs the authenticate → build → dispatch → decode sequence
// against the carrier endpoint. Every outbound call is recorded via the
// exchange logger before the response is interpreted, and no failure is
// retried here.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenCache
	builder    *PayloadBuilder
	exchanges  application.ExchangeLogger
	labels     application.LabelStore
	logger     *slog.Logger
}

func NewClient(
	cfg config.CarrierConfig,
	tokens *TokenCache,
	exchanges application.ExchangeLogger,
	labels application.LabelStore,
	logger *slog.Logger,
) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.ConnTimeout},
		tokens:     tokens,
		builder:    NewPayloadBuilder(cfg),
		exchanges:  exchanges,
		labels:     labels,
		logger:     logger,
	}
}

var _ application.CarrierGateway = (*Client)(nil)

func (c *Client) QuoteRate(ctx context.Context, account *domain.Account, req application.RateRequest) ([]application.Quote, error) {
	payload, requested, err := c.builder.Rate(account, req)
	if err != nil {
		return nil, err
	}

	token, err := c.tokens.GetToken(ctx, account)
	if err != nil {
		return nil, err
	}

	status, body, err := c.dispatch(ctx, token, ratePath, payload, nil, account.ID)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &application.CarrierError{StatusCode: status, Body: string(body)}
	}

	return decodeRateQuotes(requested, body)
}

func (c *Client) CreateShipment(ctx context.Context, account *domain.Account, req application.ShipmentRequest) (*application.ShipmentResult, error) {
	payload, err := c.builder.Shipment(account, req)
	if err != nil {
		return nil, err
	}
	return c.ship(ctx, account, req, payload)
}

func (c *Client) CreateReturn(ctx context.Context, account *domain.Account, req application.ShipmentRequest) (*application.ShipmentResult, error) {
	payload, err := c.builder.Return(account, req)
	if err != nil {
		return nil, err
	}
	return c.ship(ctx, account, req, payload)
}

func (c *Client) ship(ctx context.Context, account *domain.Account, req application.ShipmentRequest, payload *shipPayload) (*application.ShipmentResult, error) {
	token, err := c.tokens.GetToken(ctx, account)
	if err != nil {
		return nil, err
	}

	status, body, err := c.dispatch(ctx, token, shipPath, payload, req.OrderID, account.ID)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, &application.CarrierError{StatusCode: status, Body: string(body)}
	}

	trackingNumber, label, acks, err := decodeShipment(body)
	if err != nil {
		return nil, err
	}

	labelPath, err := c.labels.SaveLabel(trackingNumber, label)
	if err != nil {
		return nil, fmt.Errorf("save label for %s: %w", trackingNumber, err)
	}

	return &application.ShipmentResult{
		TrackingNumber: trackingNumber,
		LabelPath:      labelPath,
		DocumentAcks:   acks,
	}, nil
}

// Track passes the carrier's tracking data through unmodified.
func (c *Client) Track(ctx context.Context, account *domain.Account, trackingNumber string) (json.RawMessage, error) {
	payload := trackPayload{
		TrackingInfo: []trackingInfo{
			{TrackingNumberInfo: trackingNumberInfo{TrackingNumber: trackingNumber}},
		},
		IncludeDetailedScans: true,
	}

	token, err := c.tokens.GetToken(ctx, account)
	if err != nil {
		return nil, err
	}

	status, body, err := c.dispatch(ctx, token, trackPath, payload, nil, account.ID)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &application.CarrierError{StatusCode: status, Body: string(body)}
	}

	if !json.Valid(body) {
		return nil, &application.DecodingError{Message: "malformed tracking response"}
	}
	return json.RawMessage(body), nil
}

func (c *Client) DeliveryConfirmation(ctx context.Context, account *domain.Account, trackingNumber string) ([]byte, error) {
	payload := documentPayload{
		TrackingNumbers: []string{trackingNumber},
		DocumentType:    documentTypeSPOD,
	}

	token, err := c.tokens.GetToken(ctx, account)
	if err != nil {
		return nil, err
	}

	status, body, err := c.dispatch(ctx, token, documentPath, payload, nil, account.ID)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &application.CarrierError{StatusCode: status, Body: string(body)}
	}

	return decodeDocument(body)
}

// dispatch issues one carrier call and records it. The returned error is
// only ever a marshalling or transport failure; status interpretation is
// the caller's.
func (c *Client) dispatch(ctx context.Context, token, path string, payload any, orderID *int64, accountID int64) (int, []byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("error marshalling json: %w", err)
	}

	endpoint := c.baseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return 0, nil, fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logExchange(ctx, orderID, accountID, endpoint, string(jsonData), 0, err.Error())
		return 0, nil, &application.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logExchange(ctx, orderID, accountID, endpoint, string(jsonData), resp.StatusCode, err.Error())
		return 0, nil, &application.TransportError{Err: err}
	}

	c.logExchange(ctx, orderID, accountID, endpoint, string(jsonData), resp.StatusCode, string(body))

	return resp.StatusCode, body, nil
}

func (c *Client) logExchange(ctx context.Context, orderID *int64, accountID int64, endpoint, requestBody string, status int, responseBody string) {
	entry := &domain.ExchangeLog{
		OrderID:      orderID,
		AccountID:    &accountID,
		Method:       http.MethodPost,
		URL:          endpoint,
		RequestBody:  requestBody,
		ResponseBody: responseBody,
		StatusCode:   status,
	}
	if err := c.exchanges.Log(ctx, entry); err != nil {
		c.logger.Warn("failed to record carrier exchange",
			"url", endpoint,
			"account_id", accountID,
			"error", err,
		)
	}
}
