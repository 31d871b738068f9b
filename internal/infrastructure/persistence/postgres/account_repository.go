package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/carrier-gateway/internal/domain"
	"github.com/example/carrier-gateway/internal/infrastructure/persistence"
	"github.com/jackc/pgx/v5"
)

type AccountRepository struct {
	db *persistence.DB
}

func NewAccountRepository(db *persistence.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (name, account_number, meter_number, api_key, api_secret, is_freight, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		account.Name,
		account.AccountNumber,
		account.MeterNumber,
		account.APIKey,
		account.APISecret,
		account.IsFreight,
		account.CreatedAt,
	).Scan(&account.ID)

	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `
		SELECT id, name, account_number, meter_number, api_key, api_secret, is_freight,
		       access_token, token_expires_at, created_at
		FROM accounts WHERE id = $1
	`

	return scanAccount(r.db.Pool.QueryRow(ctx, query, id), id)
}

func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	query := `
		SELECT id, name, account_number, meter_number, api_key, api_secret, is_freight,
		       access_token, token_expires_at, created_at
		FROM accounts ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Account, error) {
		var a domain.Account
		err := row.Scan(
			&a.ID, &a.Name, &a.AccountNumber, &a.MeterNumber, &a.APIKey, &a.APISecret, &a.IsFreight,
			&a.AccessToken, &a.TokenExpiresAt, &a.CreatedAt,
		)
		return &a, err
	})
}

// UpdateToken records a refreshed bearer token on the account row. This
// is the only mutation an account sees after registration.
func (r *AccountRepository) UpdateToken(ctx context.Context, id int64, token string, expiresAt time.Time) error {
	query := `UPDATE accounts SET access_token = $1, token_expires_at = $2 WHERE id = $3`

	tag, err := r.db.Pool.Exec(ctx, query, token, expiresAt, id)
	if err != nil {
		return fmt.Errorf("failed to update account token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("account", id)
	}

	return nil
}

func scanAccount(row pgx.Row, id int64) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID, &a.Name, &a.AccountNumber, &a.MeterNumber, &a.APIKey, &a.APISecret, &a.IsFreight,
		&a.AccessToken, &a.TokenExpiresAt, &a.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("account", id)
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &a, nil
}
