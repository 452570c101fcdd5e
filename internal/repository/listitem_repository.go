package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/records-service/internal/domain"
)

// ErrInvoiceMissing is returned when a line item references an invoice
// that does not exist. The invoice_id foreign key enforces it.
var ErrInvoiceMissing = errors.New("invoice does not exist")

// ListItemRepository defines standalone persistence for invoice line
// items, independent of the transactional invoice write.
type ListItemRepository interface {
	Save(ctx context.Context, item *domain.LineItem) error
	GetByID(ctx context.Context, id int64) (*domain.LineItem, error)
	ListPage(ctx context.Context, req PageRequest) (Page[domain.LineItem], error)
	Update(ctx context.Context, item *domain.LineItem) error
	Delete(ctx context.Context, id int64) error
}

type listItemRepository struct {
	pool *pgxpool.Pool
}

// NewListItemRepository instantiates repository.
func NewListItemRepository(pool *pgxpool.Pool) ListItemRepository {
	return &listItemRepository{pool: pool}
}

const foreignKeyViolation = "23503"

var listItemSortable = map[string]string{
	"id":        "id",
	"invoiceId": "invoice_id",
	"productId": "product_id",
	"quantity":  "quantity",
	"price":     "price",
}

const listItemColumns = `id, invoice_id, product_id, code_uni, num_lot, quantity, price, tva, warehouse, date_exp`

func (r *listItemRepository) Save(ctx context.Context, item *domain.LineItem) error {
	const query = `
        INSERT INTO invoice_items (invoice_id, product_id, code_uni, num_lot, quantity, price, tva, warehouse, date_exp)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		item.InvoiceID,
		item.ProductID,
		item.CodeUni,
		item.NumLot,
		item.Quantity,
		item.Price,
		item.TVA,
		item.Warehouse,
		item.DateExp,
	).Scan(&item.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return ErrInvoiceMissing
		}
		return err
	}
	return nil
}

func (r *listItemRepository) GetByID(ctx context.Context, id int64) (*domain.LineItem, error) {
	query := `SELECT ` + listItemColumns + ` FROM invoice_items WHERE id=$1`

	var item domain.LineItem
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.InvoiceID,
		&item.ProductID,
		&item.CodeUni,
		&item.NumLot,
		&item.Quantity,
		&item.Price,
		&item.TVA,
		&item.Warehouse,
		&item.DateExp,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *listItemRepository) ListPage(ctx context.Context, req PageRequest) (Page[domain.LineItem], error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoice_items`).Scan(&total); err != nil {
		return Page[domain.LineItem]{}, err
	}

	query := `SELECT ` + listItemColumns + ` FROM invoice_items ` +
		orderClause(listItemSortable, req, "id") + ` LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, req.limit(), req.offset())
	if err != nil {
		return Page[domain.LineItem]{}, err
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(
			&item.ID,
			&item.InvoiceID,
			&item.ProductID,
			&item.CodeUni,
			&item.NumLot,
			&item.Quantity,
			&item.Price,
			&item.TVA,
			&item.Warehouse,
			&item.DateExp,
		); err != nil {
			return Page[domain.LineItem]{}, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return Page[domain.LineItem]{}, err
	}
	return NewPage(items, req.normalize(), total), nil
}

func (r *listItemRepository) Update(ctx context.Context, item *domain.LineItem) error {
	const query = `
        UPDATE invoice_items SET invoice_id=$1, product_id=$2, code_uni=$3, num_lot=$4,
            quantity=$5, price=$6, tva=$7, warehouse=$8, date_exp=$9
        WHERE id=$10`

	cmd, err := r.pool.Exec(ctx, query,
		item.InvoiceID,
		item.ProductID,
		item.CodeUni,
		item.NumLot,
		item.Quantity,
		item.Price,
		item.TVA,
		item.Warehouse,
		item.DateExp,
		item.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return ErrInvoiceMissing
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *listItemRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM invoice_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
