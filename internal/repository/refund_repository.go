package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/records-service/internal/domain"
)

// RefundRepository encapsulates cancelled-refund persistence.
type RefundRepository interface {
	Save(ctx context.Context, refund *domain.RefundCancelled) error
	GetByID(ctx context.Context, id int64) (*domain.RefundCancelled, error)
	ListPage(ctx context.Context, req PageRequest) (Page[domain.RefundCancelled], error)
	Update(ctx context.Context, refund *domain.RefundCancelled) error
	Delete(ctx context.Context, id int64) error
}

type refundRepository struct {
	pool *pgxpool.Pool
}

// NewRefundRepository instantiates repository.
func NewRefundRepository(pool *pgxpool.Pool) RefundRepository {
	return &refundRepository{pool: pool}
}

var refundSortable = map[string]string{
	"id":         "id",
	"month":      "month",
	"year":       "year",
	"salesValue": "sales_value",
	"clientId":   "client_id",
}

const refundColumns = `id, month, year, invoice_count, sales_value, total_vat, cash, credit, client_id`

func (r *refundRepository) Save(ctx context.Context, refund *domain.RefundCancelled) error {
	const query = `
        INSERT INTO refunds_cancelled (month, year, invoice_count, sales_value, total_vat, cash, credit, client_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		refund.Month,
		refund.Year,
		refund.InvoiceCount,
		refund.SalesValue,
		refund.TotalVAT,
		refund.Cash,
		refund.Credit,
		refund.ClientID,
	).Scan(&refund.ID)
}

func (r *refundRepository) GetByID(ctx context.Context, id int64) (*domain.RefundCancelled, error) {
	var refund domain.RefundCancelled
	if err := r.pool.QueryRow(ctx, `SELECT `+refundColumns+` FROM refunds_cancelled WHERE id=$1`, id).Scan(
		&refund.ID,
		&refund.Month,
		&refund.Year,
		&refund.InvoiceCount,
		&refund.SalesValue,
		&refund.TotalVAT,
		&refund.Cash,
		&refund.Credit,
		&refund.ClientID,
	); err != nil {
		return nil, err
	}
	return &refund, nil
}

func (r *refundRepository) ListPage(ctx context.Context, req PageRequest) (Page[domain.RefundCancelled], error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM refunds_cancelled`).Scan(&total); err != nil {
		return Page[domain.RefundCancelled]{}, err
	}

	query := `SELECT ` + refundColumns + ` FROM refunds_cancelled ` + orderClause(refundSortable, req, "id") + ` LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, req.limit(), req.offset())
	if err != nil {
		return Page[domain.RefundCancelled]{}, err
	}
	defer rows.Close()

	var refunds []domain.RefundCancelled
	for rows.Next() {
		var refund domain.RefundCancelled
		if err := rows.Scan(
			&refund.ID,
			&refund.Month,
			&refund.Year,
			&refund.InvoiceCount,
			&refund.SalesValue,
			&refund.TotalVAT,
			&refund.Cash,
			&refund.Credit,
			&refund.ClientID,
		); err != nil {
			return Page[domain.RefundCancelled]{}, err
		}
		refunds = append(refunds, refund)
	}
	if err := rows.Err(); err != nil {
		return Page[domain.RefundCancelled]{}, err
	}
	return NewPage(refunds, req.normalize(), total), nil
}

func (r *refundRepository) Update(ctx context.Context, refund *domain.RefundCancelled) error {
	const query = `
        UPDATE refunds_cancelled SET month=$1, year=$2, invoice_count=$3, sales_value=$4, total_vat=$5, cash=$6, credit=$7, client_id=$8
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		refund.Month,
		refund.Year,
		refund.InvoiceCount,
		refund.SalesValue,
		refund.TotalVAT,
		refund.Cash,
		refund.Credit,
		refund.ClientID,
		refund.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *refundRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM refunds_cancelled WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
