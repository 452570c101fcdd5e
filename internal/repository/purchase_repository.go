package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/records-service/internal/domain"
)

// PurchaseRepository encapsulates purchase-aggregate persistence.
type PurchaseRepository interface {
	Save(ctx context.Context, purchase *domain.Purchase) error
	GetByID(ctx context.Context, id int64) (*domain.Purchase, error)
	ListPage(ctx context.Context, req PageRequest) (Page[domain.Purchase], error)
	Update(ctx context.Context, purchase *domain.Purchase) error
	Delete(ctx context.Context, id int64) error
}

type purchaseRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository instantiates repository.
func NewPurchaseRepository(pool *pgxpool.Pool) PurchaseRepository {
	return &purchaseRepository{pool: pool}
}

var purchaseSortable = map[string]string{
	"id":       "id",
	"month":    "month",
	"year":     "year",
	"poValue":  "po_value",
	"clientId": "client_id",
}

const purchaseColumns = `id, month, year, invoice_count, po_value, client_id`

func (r *purchaseRepository) Save(ctx context.Context, purchase *domain.Purchase) error {
	const query = `
        INSERT INTO purchases (month, year, invoice_count, po_value, client_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		purchase.Month,
		purchase.Year,
		purchase.InvoiceCount,
		purchase.POValue,
		purchase.ClientID,
	).Scan(&purchase.ID)
}

func (r *purchaseRepository) GetByID(ctx context.Context, id int64) (*domain.Purchase, error) {
	var purchase domain.Purchase
	if err := r.pool.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id=$1`, id).Scan(
		&purchase.ID,
		&purchase.Month,
		&purchase.Year,
		&purchase.InvoiceCount,
		&purchase.POValue,
		&purchase.ClientID,
	); err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) ListPage(ctx context.Context, req PageRequest) (Page[domain.Purchase], error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM purchases`).Scan(&total); err != nil {
		return Page[domain.Purchase]{}, err
	}

	query := `SELECT ` + purchaseColumns + ` FROM purchases ` + orderClause(purchaseSortable, req, "id") + ` LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, req.limit(), req.offset())
	if err != nil {
		return Page[domain.Purchase]{}, err
	}
	defer rows.Close()

	var purchases []domain.Purchase
	for rows.Next() {
		var purchase domain.Purchase
		if err := rows.Scan(
			&purchase.ID,
			&purchase.Month,
			&purchase.Year,
			&purchase.InvoiceCount,
			&purchase.POValue,
			&purchase.ClientID,
		); err != nil {
			return Page[domain.Purchase]{}, err
		}
		purchases = append(purchases, purchase)
	}
	if err := rows.Err(); err != nil {
		return Page[domain.Purchase]{}, err
	}
	return NewPage(purchases, req.normalize(), total), nil
}

func (r *purchaseRepository) Update(ctx context.Context, purchase *domain.Purchase) error {
	const query = `
        UPDATE purchases SET month=$1, year=$2, invoice_count=$3, po_value=$4, client_id=$5
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		purchase.Month,
		purchase.Year,
		purchase.InvoiceCount,
		purchase.POValue,
		purchase.ClientID,
		purchase.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *purchaseRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM purchases WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
