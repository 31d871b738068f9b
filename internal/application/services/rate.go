package services

import (
	"context"
	"log/slog"

	"github.com/example/carrier-gateway/internal/application"
	"github.com/example/carrier-gateway/internal/domain"
)

// RateService quotes prices against the carrier without touching any
// order state.
type RateService struct {
	accountRepo application.AccountRepository
	carrier     application.CarrierGateway
	logger      *slog.Logger
}

func NewRateService(
	accountRepo application.AccountRepository,
	carrier application.CarrierGateway,
	logger *slog.Logger,
) *RateService {
	return &RateService{
		accountRepo: accountRepo,
		carrier:     carrier,
		logger:      logger,
	}
}

// QuoteRate resolves the account and asks the carrier for prices. An
// empty service code quotes every permitted parcel service at once.
func (s *RateService) QuoteRate(ctx context.Context, cmd RateCommand) ([]application.Quote, error) {
	account, err := s.accountRepo.FindByID(ctx, cmd.AccountID)
	if err != nil {
		return nil, err
	}

	req, err := buildRateRequest(account, cmd)
	if err != nil {
		return nil, err
	}

	quotes, err := s.carrier.QuoteRate(ctx, account, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("rate quote completed",
		"account_id", account.ID,
		"service_code", cmd.ServiceCode,
		"quotes", len(quotes),
	)
	return quotes, nil
}

func buildRateRequest(account *domain.Account, cmd RateCommand) (application.RateRequest, error) {
	if cmd.WeightKg <= 0 {
		return application.RateRequest{}, domain.NewValidationError("weight_kg must be positive")
	}
	if cmd.DestinationCountry == "" {
		return application.RateRequest{}, domain.NewMissingRequiredFieldError("destination_country")
	}

	code := domain.ServiceCode(cmd.ServiceCode)
	if cmd.ServiceCode != "" {
		if !code.IsValid() {
			return application.RateRequest{}, domain.NewInvalidServiceCodeError(cmd.ServiceCode)
		}
		if code.IsReturns() {
			return application.RateRequest{}, domain.NewValidationError("returns service cannot be rated")
		}
		if code.IsFreight() && !account.IsFreight {
			return application.RateRequest{}, domain.NewValidationError("account is not enabled for freight services")
		}
	}

	return application.RateRequest{
		ServiceCode:           code,
		WeightKg:              cmd.WeightKg,
		DestinationCountry:    cmd.DestinationCountry,
		DestinationPostalCode: cmd.DestinationPostalCode,
	}, nil
}
