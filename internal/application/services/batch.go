package services

import (
	"context"
	"fmt"

	"github.com/example/carrier-gateway/internal/application"
	"github.com/example/carrier-gateway/internal/domain"
)

// BatchEntry is the outcome of one service code in a batch. Failures keep
// the error detail so a caller can tell validation rejects from carrier
// rejects without digging through logs.
type BatchEntry struct {
	ServiceCode   string        `json:"service_code"`
	Status        string        `json:"status"`
	Order         *domain.Order `json:"-"`
	ErrorCode     string        `json:"error_code,omitempty"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	CarrierStatus int           `json:"carrier_status,omitempty"`
	CarrierBody   string        `json:"carrier_body,omitempty"`
}

const (
	batchStatusShipped = "SHIPPED"
	batchStatusFailed  = "FAILED"
)

// CreateBatch ships the same consignment once per requested service code.
// Each code gets a derived reference and its own order row; one failure
// never stops the rest.
func (s *ShipmentService) CreateBatch(ctx context.Context, cmd BatchCommand) ([]BatchEntry, error) {
	if len(cmd.ServiceCodes) == 0 {
		return nil, domain.NewMissingRequiredFieldError("service_codes")
	}
	if cmd.Shipment.Reference == "" {
		return nil, domain.NewMissingRequiredFieldError("reference")
	}

	entries := make([]BatchEntry, 0, len(cmd.ServiceCodes))
	for _, code := range cmd.ServiceCodes {
		entry := BatchEntry{ServiceCode: code}

		shipCmd := cmd.Shipment
		shipCmd.ServiceCode = code
		shipCmd.Reference = fmt.Sprintf("%s-%s", cmd.Shipment.Reference, code)

		order, err := s.Create(ctx, shipCmd)
		if err != nil {
			entry.Status = batchStatusFailed
			entry.ErrorCode = application.ToErrorCode(err)
			entry.ErrorMessage = err.Error()
			if status, body, ok := application.CarrierDetail(err); ok {
				entry.CarrierStatus = status
				entry.CarrierBody = body
			}
			s.logger.Warn("batch entry failed",
				"reference", shipCmd.Reference,
				"service_code", code,
				"error", err,
			)
		} else {
			entry.Status = batchStatusShipped
			entry.Order = order
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
