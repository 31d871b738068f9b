package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/example/carrier-gateway/internal/application"
)

// TrackingService exposes tracking data and delivery confirmation
// documents. Tracking responses pass through unmodified.
type TrackingService struct {
	accountRepo application.AccountRepository
	carrier     application.CarrierGateway
	labels      application.LabelStore
	logger      *slog.Logger
}

func NewTrackingService(
	accountRepo application.AccountRepository,
	carrier application.CarrierGateway,
	labels application.LabelStore,
	logger *slog.Logger,
) *TrackingService {
	return &TrackingService{
		accountRepo: accountRepo,
		carrier:     carrier,
		labels:      labels,
		logger:      logger,
	}
}

func (s *TrackingService) Track(ctx context.Context, accountID int64, trackingNumber string) (json.RawMessage, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.carrier.Track(ctx, account, trackingNumber)
}

// FetchDeliveryConfirmation downloads the signature proof of delivery and
// stores it next to the labels. Returns the stored path.
func (s *TrackingService) FetchDeliveryConfirmation(ctx context.Context, accountID int64, trackingNumber string) (string, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return "", err
	}

	document, err := s.carrier.DeliveryConfirmation(ctx, account, trackingNumber)
	if err != nil {
		return "", err
	}

	path, err := s.labels.SaveDocument(trackingNumber, document)
	if err != nil {
		return "", err
	}

	s.logger.Info("delivery confirmation stored",
		"tracking_number", trackingNumber,
		"path", path,
	)
	return path, nil
}
