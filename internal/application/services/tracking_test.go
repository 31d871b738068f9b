package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/carrier-gateway/internal/application"
	"github.com/example/carrier-gateway/internal/application/services"
	"github.com/example/carrier-gateway/internal/domain"
)

func trackingAccounts() *mockAccountRepo {
	return &mockAccountRepo{
		FindByIDFunc: func(_ context.Context, id int64) (*domain.Account, error) {
			return &domain.Account{ID: id, AccountNumber: "510087100", APIKey: "k", APISecret: "s"}, nil
		},
	}
}

func TestTrack_Passthrough(t *testing.T) {
	raw := json.RawMessage(`{"output":{"completeTrackResults":[]}}`)
	carrier := &mockCarrier{
		TrackFunc: func(_ context.Context, _ *domain.Account, trackingNumber string) (json.RawMessage, error) {
			assert.Equal(t, "794000000001", trackingNumber)
			return raw, nil
		},
	}

	service := services.NewTrackingService(trackingAccounts(), carrier, &mockLabelStore{}, testLogger())

	data, err := service.Track(context.Background(), 1, "794000000001")
	require.NoError(t, err)
	assert.Equal(t, raw, data)
}

func TestFetchDeliveryConfirmation_StoresDocument(t *testing.T) {
	document := []byte("%PDF-1.4 pod")
	carrier := &mockCarrier{
		DeliveryConfirmationFunc: func(_ context.Context, _ *domain.Account, _ string) ([]byte, error) {
			return document, nil
		},
	}

	var savedData []byte
	labels := &mockLabelStore{
		SaveDocumentFunc: func(trackingNumber string, data []byte) (string, error) {
			savedData = data
			return "/labels/pod_" + trackingNumber + ".pdf", nil
		},
	}

	service := services.NewTrackingService(trackingAccounts(), carrier, labels, testLogger())

	path, err := service.FetchDeliveryConfirmation(context.Background(), 1, "794000000001")
	require.NoError(t, err)
	assert.Equal(t, "/labels/pod_794000000001.pdf", path)
	assert.Equal(t, document, savedData)
}

func TestFetchDeliveryConfirmation_CarrierFailure(t *testing.T) {
	carrier := &mockCarrier{
		DeliveryConfirmationFunc: func(_ context.Context, _ *domain.Account, _ string) ([]byte, error) {
			return nil, &application.CarrierError{StatusCode: 404, Body: "not found"}
		},
	}

	service := services.NewTrackingService(trackingAccounts(), carrier, &mockLabelStore{}, testLogger())

	_, err := service.FetchDeliveryConfirmation(context.Background(), 1, "794000000001")
	require.Error(t, err)
	_, ok := application.IsCarrierError(err)
	assert.True(t, ok)
}
