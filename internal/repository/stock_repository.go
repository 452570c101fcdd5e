package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/records-service/internal/domain"
)

// StockRepository encapsulates stock valuations, keyed by client id.
type StockRepository interface {
	Save(ctx context.Context, stock *domain.Stock) error
	GetByClientID(ctx context.Context, clientID string) (*domain.Stock, error)
	ListPage(ctx context.Context, req PageRequest) (Page[domain.Stock], error)
	Update(ctx context.Context, stock *domain.Stock) error
	Delete(ctx context.Context, clientID string) error
}

type stockRepository struct {
	pool *pgxpool.Pool
}

// NewStockRepository instantiates repository.
func NewStockRepository(pool *pgxpool.Pool) StockRepository {
	return &stockRepository{pool: pool}
}

var stockSortable = map[string]string{
	"clientId":   "client_id",
	"totalValue": "total_value",
	"today":      "today",
}

func (r *stockRepository) Save(ctx context.Context, stock *domain.Stock) error {
	const query = `
        INSERT INTO stocks (client_id, total_value, today)
        VALUES ($1,$2,COALESCE($3, NOW()))
        RETURNING today`
	var today interface{}
	if !stock.Today.IsZero() {
		today = stock.Today
	}
	return r.pool.QueryRow(ctx, query, stock.ClientID, stock.TotalValue, today).Scan(&stock.Today)
}

func (r *stockRepository) GetByClientID(ctx context.Context, clientID string) (*domain.Stock, error) {
	var stock domain.Stock
	if err := r.pool.QueryRow(ctx,
		`SELECT client_id, total_value, today FROM stocks WHERE client_id=$1`, clientID).Scan(
		&stock.ClientID,
		&stock.TotalValue,
		&stock.Today,
	); err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepository) ListPage(ctx context.Context, req PageRequest) (Page[domain.Stock], error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stocks`).Scan(&total); err != nil {
		return Page[domain.Stock]{}, err
	}

	query := `SELECT client_id, total_value, today FROM stocks ` + orderClause(stockSortable, req, "client_id") + ` LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, req.limit(), req.offset())
	if err != nil {
		return Page[domain.Stock]{}, err
	}
	defer rows.Close()

	var stocks []domain.Stock
	for rows.Next() {
		var stock domain.Stock
		if err := rows.Scan(&stock.ClientID, &stock.TotalValue, &stock.Today); err != nil {
			return Page[domain.Stock]{}, err
		}
		stocks = append(stocks, stock)
	}
	if err := rows.Err(); err != nil {
		return Page[domain.Stock]{}, err
	}
	return NewPage(stocks, req.normalize(), total), nil
}

func (r *stockRepository) Update(ctx context.Context, stock *domain.Stock) error {
	const query = `UPDATE stocks SET total_value=$1, today=NOW() WHERE client_id=$2 RETURNING today`
	if err := r.pool.QueryRow(ctx, query, stock.TotalValue, stock.ClientID).Scan(&stock.Today); err != nil {
		return err
	}
	return nil
}

func (r *stockRepository) Delete(ctx context.Context, clientID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM stocks WHERE client_id=$1`, clientID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
