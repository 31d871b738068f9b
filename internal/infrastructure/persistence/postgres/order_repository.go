package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/carrier-gateway/internal/domain"
	"github.com/example/carrier-gateway/internal/infrastructure/persistence"
	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	db *persistence.DB
}

func NewOrderRepository(db *persistence.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `
	id, reference, account_id, shipper_id, service_code, is_return,
	recipient_name, recipient_street, recipient_city, recipient_postal_code, recipient_country,
	weight_kg, customs_required, customs_items, broker_id, third_party_consignee,
	notification_emails, trade_documents, price_quote, tracking_number, label_path, status, created_at
`

// Create inserts a new order row. The reference column carries a unique
// constraint; a violation maps to DUPLICATE_ORDER_REFERENCE.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (
			reference, account_id, shipper_id, service_code, is_return,
			recipient_name, recipient_street, recipient_city, recipient_postal_code, recipient_country,
			weight_kg, customs_required, customs_items, broker_id, third_party_consignee,
			notification_emails, trade_documents, price_quote, tracking_number, label_path, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id
	`

	m, err := toDBModel(order)
	if err != nil {
		return err
	}

	err = r.db.Pool.QueryRow(ctx, query,
		m.Reference, m.AccountID, m.ShipperID, m.ServiceCode, m.IsReturn,
		m.RecipientName, m.RecipientStreet, m.RecipientCity, m.RecipientPostalCode, m.RecipientCountry,
		m.WeightKg, m.CustomsRequired, m.CustomsItems, m.BrokerID, m.ThirdPartyConsignee,
		m.NotificationEmails, m.TradeDocuments, m.PriceQuote, m.TrackingNumber, m.LabelPath, m.Status, m.CreatedAt,
	).Scan(&order.ID)

	if err != nil {
		if persistence.IsUniqueViolation(err) {
			return domain.NewDuplicateReferenceError(order.Reference)
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET price_quote = $1, tracking_number = $2, label_path = $3, status = $4
		WHERE id = $5
	`

	m, err := toDBModel(order)
	if err != nil {
		return err
	}

	tag, err := r.db.Pool.Exec(ctx, query,
		m.PriceQuote, m.TrackingNumber, m.LabelPath, m.Status, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("order", order.ID)
	}

	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	row := r.db.Pool.QueryRow(ctx, query, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("order", id)
		}
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) List(ctx context.Context, limit, offset int) ([]*domain.Order, int, error) {
	var total int
	if err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Order, error) {
		return scanOrder(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan orders: %w", err)
	}

	return orders, total, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var m OrderModel
	err := row.Scan(
		&m.ID, &m.Reference, &m.AccountID, &m.ShipperID, &m.ServiceCode, &m.IsReturn,
		&m.RecipientName, &m.RecipientStreet, &m.RecipientCity, &m.RecipientPostalCode, &m.RecipientCountry,
		&m.WeightKg, &m.CustomsRequired, &m.CustomsItems, &m.BrokerID, &m.ThirdPartyConsignee,
		&m.NotificationEmails, &m.TradeDocuments, &m.PriceQuote, &m.TrackingNumber, &m.LabelPath, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return toDomainModel(&m)
}
