package services

import (
	"context"
	"log/slog"

	"github.com/example/carrier-gateway/internal/application"
	"github.com/example/carrier-gateway/internal/domain"
)

// AccountService registers and lists carrier accounts. Credentials are
// write-only: they go into the repository and never come back out through
// the API layer.
type AccountService struct {
	accountRepo application.AccountRepository
	logger      *slog.Logger
}

func NewAccountService(accountRepo application.AccountRepository, logger *slog.Logger) *AccountService {
	return &AccountService{accountRepo: accountRepo, logger: logger}
}

type RegisterAccountCommand struct {
	Name          string
	AccountNumber string
	MeterNumber   *string
	APIKey        string
	APISecret     string
	IsFreight     bool
}

func (s *AccountService) Register(ctx context.Context, cmd RegisterAccountCommand) (*domain.Account, error) {
	account, err := domain.NewAccount(cmd.Name, cmd.AccountNumber, cmd.MeterNumber, cmd.APIKey, cmd.APISecret, cmd.IsFreight)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account registered", "account_id", account.ID, "name", account.Name, "is_freight", account.IsFreight)
	return account, nil
}

func (s *AccountService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	return s.accountRepo.FindByID(ctx, id)
}

func (s *AccountService) List(ctx context.Context) ([]*domain.Account, error) {
	return s.accountRepo.List(ctx)
}

// AddressService manages the registered shipper and broker address books.
type AddressService struct {
	shipperRepo application.ShipperRepository
	brokerRepo  application.BrokerRepository
	logger      *slog.Logger
}

func NewAddressService(
	shipperRepo application.ShipperRepository,
	brokerRepo application.BrokerRepository,
	logger *slog.Logger,
) *AddressService {
	return &AddressService{
		shipperRepo: shipperRepo,
		brokerRepo:  brokerRepo,
		logger:      logger,
	}
}

type AddressCommand struct {
	Name        string
	PersonName  string
	Street      string
	City        string
	PostalCode  string
	CountryCode string
}

func (s *AddressService) CreateShipper(ctx context.Context, cmd AddressCommand) (*domain.Shipper, error) {
	shipper, err := domain.NewShipper(cmd.Name, cmd.PersonName, cmd.Street, cmd.City, cmd.PostalCode, cmd.CountryCode)
	if err != nil {
		return nil, err
	}
	if err := s.shipperRepo.Create(ctx, shipper); err != nil {
		return nil, err
	}
	s.logger.Info("shipper registered", "shipper_id", shipper.ID, "name", shipper.Name)
	return shipper, nil
}

func (s *AddressService) GetShipper(ctx context.Context, id int64) (*domain.Shipper, error) {
	return s.shipperRepo.FindByID(ctx, id)
}

func (s *AddressService) ListShippers(ctx context.Context) ([]*domain.Shipper, error) {
	return s.shipperRepo.List(ctx)
}

func (s *AddressService) UpdateShipper(ctx context.Context, id int64, cmd AddressCommand) (*domain.Shipper, error) {
	shipper, err := s.shipperRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := domain.NewShipper(cmd.Name, cmd.PersonName, cmd.Street, cmd.City, cmd.PostalCode, cmd.CountryCode)
	if err != nil {
		return nil, err
	}
	updated.ID = shipper.ID
	updated.CreatedAt = shipper.CreatedAt

	if err := s.shipperRepo.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *AddressService) CreateBroker(ctx context.Context, cmd AddressCommand) (*domain.Broker, error) {
	broker, err := domain.NewBroker(cmd.Name, cmd.PersonName, cmd.Street, cmd.City, cmd.PostalCode, cmd.CountryCode)
	if err != nil {
		return nil, err
	}
	if err := s.brokerRepo.Create(ctx, broker); err != nil {
		return nil, err
	}
	s.logger.Info("broker registered", "broker_id", broker.ID, "name", broker.Name)
	return broker, nil
}

func (s *AddressService) GetBroker(ctx context.Context, id int64) (*domain.Broker, error) {
	return s.brokerRepo.FindByID(ctx, id)
}

func (s *AddressService) ListBrokers(ctx context.Context) ([]*domain.Broker, error) {
	return s.brokerRepo.List(ctx)
}

func (s *AddressService) UpdateBroker(ctx context.Context, id int64, cmd AddressCommand) (*domain.Broker, error) {
	broker, err := s.brokerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := domain.NewBroker(cmd.Name, cmd.PersonName, cmd.Street, cmd.City, cmd.PostalCode, cmd.CountryCode)
	if err != nil {
		return nil, err
	}
	updated.ID = broker.ID
	updated.CreatedAt = broker.CreatedAt

	if err := s.brokerRepo.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
