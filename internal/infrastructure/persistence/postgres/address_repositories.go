package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/carrier-gateway/internal/domain"
	"github.com/example/carrier-gateway/internal/infrastructure/persistence"
	"github.com/jackc/pgx/v5"
)

// Shippers and brokers share an address shape but live in separate
// tables with separate lifecycles.

type ShipperRepository struct {
	db *persistence.DB
}

func NewShipperRepository(db *persistence.DB) *ShipperRepository {
	return &ShipperRepository{db: db}
}

func (r *ShipperRepository) Create(ctx context.Context, shipper *domain.Shipper) error {
	query := `
		INSERT INTO shippers (name, person_name, street, city, postal_code, country_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		shipper.Name, shipper.PersonName, shipper.Street,
		shipper.City, shipper.PostalCode, shipper.CountryCode, shipper.CreatedAt,
	).Scan(&shipper.ID)

	if err != nil {
		return fmt.Errorf("failed to create shipper: %w", err)
	}
	return nil
}

func (r *ShipperRepository) FindByID(ctx context.Context, id int64) (*domain.Shipper, error) {
	query := `
		SELECT id, name, person_name, street, city, postal_code, country_code, created_at
		FROM shippers WHERE id = $1
	`

	var s domain.Shipper
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.PersonName, &s.Street, &s.City, &s.PostalCode, &s.CountryCode, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("shipper", id)
		}
		return nil, fmt.Errorf("failed to scan shipper: %w", err)
	}
	return &s, nil
}

func (r *ShipperRepository) Update(ctx context.Context, shipper *domain.Shipper) error {
	query := `
		UPDATE shippers
		SET name = $1, person_name = $2, street = $3, city = $4, postal_code = $5, country_code = $6
		WHERE id = $7
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		shipper.Name, shipper.PersonName, shipper.Street,
		shipper.City, shipper.PostalCode, shipper.CountryCode, shipper.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shipper: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("shipper", shipper.ID)
	}
	return nil
}

func (r *ShipperRepository) List(ctx context.Context) ([]*domain.Shipper, error) {
	query := `
		SELECT id, name, person_name, street, city, postal_code, country_code, created_at
		FROM shippers ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query shippers: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Shipper, error) {
		var s domain.Shipper
		err := row.Scan(&s.ID, &s.Name, &s.PersonName, &s.Street, &s.City, &s.PostalCode, &s.CountryCode, &s.CreatedAt)
		return &s, err
	})
}

type BrokerRepository struct {
	db *persistence.DB
}

func NewBrokerRepository(db *persistence.DB) *BrokerRepository {
	return &BrokerRepository{db: db}
}

func (r *BrokerRepository) Create(ctx context.Context, broker *domain.Broker) error {
	query := `
		INSERT INTO brokers (name, person_name, street, city, postal_code, country_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		broker.Name, broker.PersonName, broker.Street,
		broker.City, broker.PostalCode, broker.CountryCode, broker.CreatedAt,
	).Scan(&broker.ID)

	if err != nil {
		return fmt.Errorf("failed to create broker: %w", err)
	}
	return nil
}

func (r *BrokerRepository) FindByID(ctx context.Context, id int64) (*domain.Broker, error) {
	query := `
		SELECT id, name, person_name, street, city, postal_code, country_code, created_at
		FROM brokers WHERE id = $1
	`

	var b domain.Broker
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.PersonName, &b.Street, &b.City, &b.PostalCode, &b.CountryCode, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("broker", id)
		}
		return nil, fmt.Errorf("failed to scan broker: %w", err)
	}
	return &b, nil
}

func (r *BrokerRepository) Update(ctx context.Context, broker *domain.Broker) error {
	query := `
		UPDATE brokers
		SET name = $1, person_name = $2, street = $3, city = $4, postal_code = $5, country_code = $6
		WHERE id = $7
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		broker.Name, broker.PersonName, broker.Street,
		broker.City, broker.PostalCode, broker.CountryCode, broker.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update broker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("broker", broker.ID)
	}
	return nil
}

func (r *BrokerRepository) List(ctx context.Context) ([]*domain.Broker, error) {
	query := `
		SELECT id, name, person_name, street, city, postal_code, country_code, created_at
		FROM brokers ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query brokers: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Broker, error) {
		var b domain.Broker
		err := row.Scan(&b.ID, &b.Name, &b.PersonName, &b.Street, &b.City, &b.PostalCode, &b.CountryCode, &b.CreatedAt)
		return &b, err
	})
}
