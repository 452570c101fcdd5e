package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/records-service/internal/domain"
)

// InvoiceRepository encapsulates invoice persistence, including the
// transactional write of an invoice together with its line items.
type InvoiceRepository interface {
	SaveWithItems(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	ListPage(ctx context.Context, req PageRequest) (Page[domain.Invoice], error)
	Update(ctx context.Context, invoice *domain.Invoice) error
	Delete(ctx context.Context, id int64) error
}

type invoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository instantiates repository.
func NewInvoiceRepository(pool *pgxpool.Pool) InvoiceRepository {
	return &invoiceRepository{pool: pool}
}

var invoiceSortable = map[string]string{
	"id":        "id",
	"date":      "date",
	"total":     "total",
	"numClient": "num_client",
	"status":    "status",
}

// SaveWithItems inserts the invoice and all of its line items in a single
// transaction. Either everything is stored or nothing is.
func (r *invoiceRepository) SaveWithItems(ctx context.Context, invoice *domain.Invoice) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const invoiceQuery = `
        INSERT INTO invoices (invoice_no, num_client, date, total, employee, heure, tva, mode, status, num_fact, reference)
        VALUES ($1,$2,$3,$4,$5,COALESCE($6, NOW()),$7,$8,$9,$10,$11)
        RETURNING id, heure`

	var heure interface{}
	if !invoice.Heure.IsZero() {
		heure = invoice.Heure
	}
	if err := tx.QueryRow(ctx, invoiceQuery,
		invoice.InvoiceNo,
		invoice.NumClient,
		invoice.Date,
		invoice.Total,
		invoice.Employee,
		heure,
		invoice.TVA,
		invoice.Mode,
		invoice.Status,
		invoice.NumFact,
		invoice.Reference,
	).Scan(&invoice.ID, &invoice.Heure); err != nil {
		return err
	}

	const itemQuery = `
        INSERT INTO invoice_items (invoice_id, product_id, code_uni, num_lot, quantity, price, tva, warehouse, date_exp)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id`

	for i := range invoice.LineItems {
		item := &invoice.LineItems[i]
		item.InvoiceID = invoice.ID
		if err := tx.QueryRow(ctx, itemQuery,
			item.InvoiceID,
			item.ProductID,
			item.CodeUni,
			item.NumLot,
			item.Quantity,
			item.Price,
			item.TVA,
			item.Warehouse,
			item.DateExp,
		).Scan(&item.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	const query = `
        SELECT id, invoice_no, num_client, date, total, employee, heure, tva, mode, status, num_fact, reference
        FROM invoices WHERE id=$1`

	var inv domain.Invoice
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&inv.ID,
		&inv.InvoiceNo,
		&inv.NumClient,
		&inv.Date,
		&inv.Total,
		&inv.Employee,
		&inv.Heure,
		&inv.TVA,
		&inv.Mode,
		&inv.Status,
		&inv.NumFact,
		&inv.Reference,
	); err != nil {
		return nil, err
	}

	items, err := r.itemsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.LineItems = items
	return &inv, nil
}

func (r *invoiceRepository) itemsFor(ctx context.Context, invoiceID int64) ([]domain.LineItem, error) {
	const query = `
        SELECT id, invoice_id, product_id, code_uni, num_lot, quantity, price, tva, warehouse, date_exp
        FROM invoice_items WHERE invoice_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, err
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
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *invoiceRepository) ListPage(ctx context.Context, req PageRequest) (Page[domain.Invoice], error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&total); err != nil {
		return Page[domain.Invoice]{}, err
	}

	query := `
        SELECT id, invoice_no, num_client, date, total, employee, heure, tva, mode, status, num_fact, reference
        FROM invoices ` + orderClause(invoiceSortable, req, "id") + ` LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, req.limit(), req.offset())
	if err != nil {
		return Page[domain.Invoice]{}, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		if err := rows.Scan(
			&inv.ID,
			&inv.InvoiceNo,
			&inv.NumClient,
			&inv.Date,
			&inv.Total,
			&inv.Employee,
			&inv.Heure,
			&inv.TVA,
			&inv.Mode,
			&inv.Status,
			&inv.NumFact,
			&inv.Reference,
		); err != nil {
			return Page[domain.Invoice]{}, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return Page[domain.Invoice]{}, err
	}
	return NewPage(invoices, req.normalize(), total), nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	const query = `
        UPDATE invoices SET invoice_no=$1, num_client=$2, date=$3, total=$4, employee=$5,
            tva=$6, mode=$7, status=$8, num_fact=$9, reference=$10
        WHERE id=$11`

	cmd, err := r.pool.Exec(ctx, query,
		invoice.InvoiceNo,
		invoice.NumClient,
		invoice.Date,
		invoice.Total,
		invoice.Employee,
		invoice.TVA,
		invoice.Mode,
		invoice.Status,
		invoice.NumFact,
		invoice.Reference,
		invoice.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id int64) error {
	// invoice_items rows go with the invoice via ON DELETE CASCADE.
	cmd, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
