package services

import (
	"context"
	"log/slog"

	"github.com/example/carrier-gateway/internal/application"
	"github.com/example/carrier-gateway/internal/domain"
)

// ShipmentService drives the create-shipment flow: resolve records,
// validate, optionally quote, persist an order row, call the carrier and
// record the outcome. A carrier failure marks the order FAILED and is
// still returned to the caller.
type ShipmentService struct {
	accountRepo application.AccountRepository
	shipperRepo application.ShipperRepository
	brokerRepo  application.BrokerRepository
	orderRepo   application.OrderRepository
	carrier     application.CarrierGateway
	logger      *slog.Logger
}

func NewShipmentService(
	accountRepo application.AccountRepository,
	shipperRepo application.ShipperRepository,
	brokerRepo application.BrokerRepository,
	orderRepo application.OrderRepository,
	carrier application.CarrierGateway,
	logger *slog.Logger,
) *ShipmentService {
	return &ShipmentService{
		accountRepo: accountRepo,
		shipperRepo: shipperRepo,
		brokerRepo:  brokerRepo,
		orderRepo:   orderRepo,
		carrier:     carrier,
		logger:      logger,
	}
}

// Create books an outbound shipment.
func (s *ShipmentService) Create(ctx context.Context, cmd ShipmentCommand) (*domain.Order, error) {
	return s.create(ctx, cmd, false)
}

// CreateReturn books a return label. The service code is fixed to the
// returns product and the parties travel swapped on the wire.
func (s *ShipmentService) CreateReturn(ctx context.Context, cmd ShipmentCommand) (*domain.Order, error) {
	cmd.ServiceCode = string(domain.ServiceRTN)
	return s.create(ctx, cmd, true)
}

func (s *ShipmentService) create(ctx context.Context, cmd ShipmentCommand, isReturn bool) (*domain.Order, error) {
	code := domain.ServiceCode(cmd.ServiceCode)
	if err := validateShipmentCommand(cmd, code, isReturn); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindByID(ctx, cmd.AccountID)
	if err != nil {
		return nil, err
	}
	if code.IsFreight() && !account.IsFreight {
		return nil, domain.NewValidationError("account is not enabled for freight services")
	}

	shipper, err := s.shipperRepo.FindByID(ctx, cmd.ShipperID)
	if err != nil {
		return nil, err
	}

	var broker *domain.Broker
	if cmd.BrokerSelectOption {
		broker, err = s.brokerRepo.FindByID(ctx, *cmd.BrokerID)
		if err != nil {
			return nil, err
		}
	}

	order := newOrder(cmd, code, isReturn)

	if cmd.QuoteFirst && !isReturn {
		quote, err := s.quoteOne(ctx, account, code, cmd)
		if err != nil {
			return nil, err
		}
		order.PriceQuote = &quote.Amount
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	req := application.ShipmentRequest{
		OrderID:     &order.ID,
		Reference:   cmd.Reference,
		ServiceCode: code,
		Shipper:     *shipper,
		Recipient: application.RecipientAddress{
			Name:        cmd.RecipientName,
			Street:      cmd.RecipientStreet,
			City:        cmd.RecipientCity,
			PostalCode:  cmd.RecipientPostalCode,
			CountryCode: cmd.RecipientCountry,
		},
		WeightKg:            cmd.WeightKg,
		CustomsRequired:     cmd.customsRequired(),
		CustomsItems:        cmd.CustomsItems,
		Broker:              broker,
		ThirdPartyConsignee: cmd.ThirdPartyConsignee,
		NotificationEmails:  cmd.NotificationEmails,
		TradeDocuments:      cmd.TradeDocuments,
	}

	var result *application.ShipmentResult
	if isReturn {
		result, err = s.carrier.CreateReturn(ctx, account, req)
	} else {
		result, err = s.carrier.CreateShipment(ctx, account, req)
	}
	if err != nil {
		s.failOrder(ctx, order)
		return nil, err
	}

	if err := order.MarkShipped(result.TrackingNumber, result.LabelPath); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("shipment created",
		"order_id", order.ID,
		"reference", order.Reference,
		"service_code", order.ServiceCode,
		"tracking_number", order.TrackingNumber,
		"is_return", isReturn,
	)
	return order, nil
}

// quoteOne fetches the single quote for the order's service code before
// shipping. The price is informational only.
func (s *ShipmentService) quoteOne(ctx context.Context, account *domain.Account, code domain.ServiceCode, cmd ShipmentCommand) (*application.Quote, error) {
	quotes, err := s.carrier.QuoteRate(ctx, account, application.RateRequest{
		ServiceCode:           code,
		WeightKg:              cmd.WeightKg,
		DestinationCountry:    cmd.RecipientCountry,
		DestinationPostalCode: cmd.RecipientPostalCode,
	})
	if err != nil {
		return nil, err
	}
	for i := range quotes {
		if quotes[i].ServiceCode == code {
			return &quotes[i], nil
		}
	}
	return nil, &application.DecodingError{Message: "rate missing in response"}
}

func (s *ShipmentService) failOrder(ctx context.Context, order *domain.Order) {
	if err := order.MarkFailed(); err != nil {
		s.logger.Warn("could not mark order failed", "order_id", order.ID, "error", err)
		return
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.logger.Warn("could not persist failed order", "order_id", order.ID, "error", err)
	}
}

func validateShipmentCommand(cmd ShipmentCommand, code domain.ServiceCode, isReturn bool) error {
	if cmd.Reference == "" {
		return domain.NewMissingRequiredFieldError("reference")
	}
	if !code.IsValid() {
		return domain.NewInvalidServiceCodeError(cmd.ServiceCode)
	}
	if code.IsReturns() && !isReturn {
		return domain.NewValidationError("returns service code is only valid for return shipments")
	}
	if cmd.WeightKg <= 0 {
		return domain.NewValidationError("weight_kg must be positive")
	}
	if cmd.RecipientName == "" {
		return domain.NewMissingRequiredFieldError("recipient_name")
	}
	if cmd.RecipientCountry == "" {
		return domain.NewMissingRequiredFieldError("recipient_country")
	}
	if cmd.BrokerSelectOption && cmd.BrokerID == nil {
		return domain.NewValidationError("broker_select_option requires broker_id")
	}
	if cmd.BrokerSelectOption && !cmd.customsRequired() {
		return domain.NewValidationError("broker_select_option requires customs clearance")
	}
	return nil
}

func newOrder(cmd ShipmentCommand, code domain.ServiceCode, isReturn bool) *domain.Order {
	return &domain.Order{
		Reference:           cmd.Reference,
		AccountID:           cmd.AccountID,
		ShipperID:           cmd.ShipperID,
		ServiceCode:         code,
		IsReturn:            isReturn,
		RecipientName:       cmd.RecipientName,
		RecipientStreet:     cmd.RecipientStreet,
		RecipientCity:       cmd.RecipientCity,
		RecipientPostalCode: cmd.RecipientPostalCode,
		RecipientCountry:    cmd.RecipientCountry,
		WeightKg:            cmd.WeightKg,
		CustomsRequired:     cmd.customsRequired(),
		CustomsItems:        cmd.CustomsItems,
		BrokerID:            cmd.BrokerID,
		ThirdPartyConsignee: cmd.ThirdPartyConsignee,
		NotificationEmails:  cmd.NotificationEmails,
		TradeDocuments:      tradeDocumentRefs(cmd.TradeDocuments),
		Status:              domain.OrderCreated,
	}
}

func tradeDocumentRefs(docs []application.TradeDocument) []domain.TradeDocumentRef {
	if len(docs) == 0 {
		return nil
	}
	refs := make([]domain.TradeDocumentRef, len(docs))
	for i, d := range docs {
		refs[i] = domain.TradeDocumentRef{Name: d.Name, DocType: d.DocType}
	}
	return refs
}
