package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/records-service/internal/domain"
)

// SaleRepository encapsulates sales-aggregate persistence.
type SaleRepository interface {
	Save(ctx context.Context, sale *domain.Sale) error
	SaveAll(ctx context.Context, sales []domain.Sale) error
	GetByID(ctx context.Context, id int64) (*domain.Sale, error)
	ListPage(ctx context.Context, req PageRequest) (Page[domain.Sale], error)
	Update(ctx context.Context, sale *domain.Sale) error
	Delete(ctx context.Context, id int64) error
}

type saleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository instantiates repository.
func NewSaleRepository(pool *pgxpool.Pool) SaleRepository {
	return &saleRepository{pool: pool}
}

var saleSortable = map[string]string{
	"id":         "id",
	"month":      "month",
	"year":       "year",
	"salesValue": "sales_value",
	"clientId":   "client_id",
}

const saleColumns = `id, month, year, invoice_count, sales_value, total_vat, cash, credit, client_id`

func (r *saleRepository) Save(ctx context.Context, sale *domain.Sale) error {
	const query = `
        INSERT INTO sales (month, year, invoice_count, sales_value, total_vat, cash, credit, client_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		sale.Month,
		sale.Year,
		sale.InvoiceCount,
		sale.SalesValue,
		sale.TotalVAT,
		sale.Cash,
		sale.Credit,
		sale.ClientID,
	).Scan(&sale.ID)
}

// SaveAll inserts a batch of sales rows in one transaction.
func (r *saleRepository) SaveAll(ctx context.Context, sales []domain.Sale) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO sales (month, year, invoice_count, sales_value, total_vat, cash, credit, client_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id`
	for i := range sales {
		sale := &sales[i]
		if err := tx.QueryRow(ctx, query,
			sale.Month,
			sale.Year,
			sale.InvoiceCount,
			sale.SalesValue,
			sale.TotalVAT,
			sale.Cash,
			sale.Credit,
			sale.ClientID,
		).Scan(&sale.ID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *saleRepository) GetByID(ctx context.Context, id int64) (*domain.Sale, error) {
	var sale domain.Sale
	if err := r.pool.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id=$1`, id).Scan(
		&sale.ID,
		&sale.Month,
		&sale.Year,
		&sale.InvoiceCount,
		&sale.SalesValue,
		&sale.TotalVAT,
		&sale.Cash,
		&sale.Credit,
		&sale.ClientID,
	); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) ListPage(ctx context.Context, req PageRequest) (Page[domain.Sale], error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sales`).Scan(&total); err != nil {
		return Page[domain.Sale]{}, err
	}

	query := `SELECT ` + saleColumns + ` FROM sales ` + orderClause(saleSortable, req, "id") + ` LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, req.limit(), req.offset())
	if err != nil {
		return Page[domain.Sale]{}, err
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		var sale domain.Sale
		if err := rows.Scan(
			&sale.ID,
			&sale.Month,
			&sale.Year,
			&sale.InvoiceCount,
			&sale.SalesValue,
			&sale.TotalVAT,
			&sale.Cash,
			&sale.Credit,
			&sale.ClientID,
		); err != nil {
			return Page[domain.Sale]{}, err
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return Page[domain.Sale]{}, err
	}
	return NewPage(sales, req.normalize(), total), nil
}

func (r *saleRepository) Update(ctx context.Context, sale *domain.Sale) error {
	const query = `
        UPDATE sales SET month=$1, year=$2, invoice_count=$3, sales_value=$4, total_vat=$5, cash=$6, credit=$7, client_id=$8
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		sale.Month,
		sale.Year,
		sale.InvoiceCount,
		sale.SalesValue,
		sale.TotalVAT,
		sale.Cash,
		sale.Credit,
		sale.ClientID,
		sale.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *saleRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sales WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
