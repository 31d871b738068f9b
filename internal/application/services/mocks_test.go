package services_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/example/carrier-gateway/internal/application"
	"github.com/example/carrier-gateway/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockAccountRepo struct {
	CreateFunc      func(ctx context.Context, account *domain.Account) error
	FindByIDFunc    func(ctx context.Context, id int64) (*domain.Account, error)
	ListFunc        func(ctx context.Context) ([]*domain.Account, error)
	UpdateTokenFunc func(ctx context.Context, id int64, token string, expiresAt time.Time) error
}

func (m *mockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	return m.CreateFunc(ctx, account)
}

func (m *mockAccountRepo) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockAccountRepo) List(ctx context.Context) ([]*domain.Account, error) {
	return m.ListFunc(ctx)
}

func (m *mockAccountRepo) UpdateToken(ctx context.Context, id int64, token string, expiresAt time.Time) error {
	return m.UpdateTokenFunc(ctx, id, token, expiresAt)
}

type mockShipperRepo struct {
	CreateFunc   func(ctx context.Context, shipper *domain.Shipper) error
	FindByIDFunc func(ctx context.Context, id int64) (*domain.Shipper, error)
	UpdateFunc   func(ctx context.Context, shipper *domain.Shipper) error
	ListFunc     func(ctx context.Context) ([]*domain.Shipper, error)
}

func (m *mockShipperRepo) Create(ctx context.Context, shipper *domain.Shipper) error {
	return m.CreateFunc(ctx, shipper)
}

func (m *mockShipperRepo) FindByID(ctx context.Context, id int64) (*domain.Shipper, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockShipperRepo) Update(ctx context.Context, shipper *domain.Shipper) error {
	return m.UpdateFunc(ctx, shipper)
}

func (m *mockShipperRepo) List(ctx context.Context) ([]*domain.Shipper, error) {
	return m.ListFunc(ctx)
}

type mockBrokerRepo struct {
	CreateFunc   func(ctx context.Context, broker *domain.Broker) error
	FindByIDFunc func(ctx context.Context, id int64) (*domain.Broker, error)
	UpdateFunc   func(ctx context.Context, broker *domain.Broker) error
	ListFunc     func(ctx context.Context) ([]*domain.Broker, error)
}

func (m *mockBrokerRepo) Create(ctx context.Context, broker *domain.Broker) error {
	return m.CreateFunc(ctx, broker)
}

func (m *mockBrokerRepo) FindByID(ctx context.Context, id int64) (*domain.Broker, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockBrokerRepo) Update(ctx context.Context, broker *domain.Broker) error {
	return m.UpdateFunc(ctx, broker)
}

func (m *mockBrokerRepo) List(ctx context.Context) ([]*domain.Broker, error) {
	return m.ListFunc(ctx)
}

// mockOrderRepo assigns ids and keeps every row so tests can inspect the
// final order state.
type mockOrderRepo struct {
	nextID    int64
	orders    map[int64]*domain.Order
	createErr error
	updateErr error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[int64]*domain.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *domain.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	order.ID = m.nextID
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *mockOrderRepo) Update(_ context.Context, order *domain.Order) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, domain.NewNotFoundError("order", id)
	}
	return order, nil
}

func (m *mockOrderRepo) List(_ context.Context, _, _ int) ([]*domain.Order, int, error) {
	out := make([]*domain.Order, 0, len(m.orders))
	for _, order := range m.orders {
		out = append(out, order)
	}
	return out, len(out), nil
}

type mockCarrier struct {
	QuoteRateFunc            func(ctx context.Context, account *domain.Account, req application.RateRequest) ([]application.Quote, error)
	CreateShipmentFunc       func(ctx context.Context, account *domain.Account, req application.ShipmentRequest) (*application.ShipmentResult, error)
	CreateReturnFunc         func(ctx context.Context, account *domain.Account, req application.ShipmentRequest) (*application.ShipmentResult, error)
	TrackFunc                func(ctx context.Context, account *domain.Account, trackingNumber string) (json.RawMessage, error)
	DeliveryConfirmationFunc func(ctx context.Context, account *domain.Account, trackingNumber string) ([]byte, error)

	quoteCalls  int
	shipCalls   int
	returnCalls int
}

func (m *mockCarrier) QuoteRate(ctx context.Context, account *domain.Account, req application.RateRequest) ([]application.Quote, error) {
	m.quoteCalls++
	return m.QuoteRateFunc(ctx, account, req)
}

func (m *mockCarrier) CreateShipment(ctx context.Context, account *domain.Account, req application.ShipmentRequest) (*application.ShipmentResult, error) {
	m.shipCalls++
	return m.CreateShipmentFunc(ctx, account, req)
}

func (m *mockCarrier) CreateReturn(ctx context.Context, account *domain.Account, req application.ShipmentRequest) (*application.ShipmentResult, error) {
	m.returnCalls++
	return m.CreateReturnFunc(ctx, account, req)
}

func (m *mockCarrier) Track(ctx context.Context, account *domain.Account, trackingNumber string) (json.RawMessage, error) {
	return m.TrackFunc(ctx, account, trackingNumber)
}

func (m *mockCarrier) DeliveryConfirmation(ctx context.Context, account *domain.Account, trackingNumber string) ([]byte, error) {
	return m.DeliveryConfirmationFunc(ctx, account, trackingNumber)
}

type mockLabelStore struct {
	SaveLabelFunc    func(trackingNumber string, data []byte) (string, error)
	SaveDocumentFunc func(trackingNumber string, data []byte) (string, error)
}

func (m *mockLabelStore) SaveLabel(trackingNumber string, data []byte) (string, error) {
	return m.SaveLabelFunc(trackingNumber, data)
}

func (m *mockLabelStore) SaveDocument(trackingNumber string, data []byte) (string, error) {
	return m.SaveDocumentFunc(trackingNumber, data)
}
