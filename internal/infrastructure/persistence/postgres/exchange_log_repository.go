package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/example/carrier-gateway/internal/domain"
	"github.com/example/carrier-gateway/internal/infrastructure/persistence"
)

// ExchangeLogRepository appends one row per outbound carrier call. Rows
// are never updated or deleted.
type ExchangeLogRepository struct {
	db *persistence.DB
}

func NewExchangeLogRepository(db *persistence.DB) *ExchangeLogRepository {
	return &ExchangeLogRepository{db: db}
}

func (r *ExchangeLogRepository) Log(ctx context.Context, entry *domain.ExchangeLog) error {
	query := `
		INSERT INTO exchange_logs (order_id, account_id, method, url, request_body, response_body, status_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	err := r.db.Pool.QueryRow(ctx, query,
		entry.OrderID,
		entry.AccountID,
		entry.Method,
		entry.URL,
		entry.RequestBody,
		entry.ResponseBody,
		entry.StatusCode,
		entry.CreatedAt,
	).Scan(&entry.ID)

	if err != nil {
		return fmt.Errorf("failed to append exchange log: %w", err)
	}

	return nil
}
