package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/records-service/internal/domain"
)

// OrderRepository encapsulates order-aggregate persistence.
type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListPage(ctx context.Context, req PageRequest) (Page[domain.Order], error)
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id int64) error
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

var orderSortable = map[string]string{
	"id":       "id",
	"month":    "month",
	"day":      "day",
	"year":     "year",
	"poValue":  "po_value",
	"clientId": "client_id",
}

const orderColumns = `id, month, day, year, item_count, po_value, client_id`

func (r *orderRepository) Save(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (month, day, year, item_count, po_value, client_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		order.Month,
		order.Day,
		order.Year,
		order.ItemCount,
		order.POValue,
		order.ClientID,
	).Scan(&order.ID)
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	if err := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id).Scan(
		&order.ID,
		&order.Month,
		&order.Day,
		&order.Year,
		&order.ItemCount,
		&order.POValue,
		&order.ClientID,
	); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListPage(ctx context.Context, req PageRequest) (Page[domain.Order], error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return Page[domain.Order]{}, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders ` + orderClause(orderSortable, req, "id") + ` LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, req.limit(), req.offset())
	if err != nil {
		return Page[domain.Order]{}, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.Month,
			&order.Day,
			&order.Year,
			&order.ItemCount,
			&order.POValue,
			&order.ClientID,
		); err != nil {
			return Page[domain.Order]{}, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return Page[domain.Order]{}, err
	}
	return NewPage(orders, req.normalize(), total), nil
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	const query = `
        UPDATE orders SET month=$1, day=$2, year=$3, item_count=$4, po_value=$5, client_id=$6
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		order.Month,
		order.Day,
		order.Year,
		order.ItemCount,
		order.POValue,
		order.ClientID,
		order.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
