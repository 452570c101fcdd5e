package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/records-service/internal/domain"
)

// ItemRepository encapsulates catalogue-item persistence.
type ItemRepository interface {
	Save(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	ListPage(ctx context.Context, req PageRequest) (Page[domain.Item], error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id int64) error
}

type itemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository instantiates repository.
func NewItemRepository(pool *pgxpool.Pool) ItemRepository {
	return &itemRepository{pool: pool}
}

var itemSortable = map[string]string{
	"id":          "id",
	"nameProduct": "name_product",
	"code":        "code",
	"prix":        "prix",
}

const itemColumns = `id, id_product, name_product, code, prix, prix_societe, tva, observation, code_bar`

func (r *itemRepository) Save(ctx context.Context, item *domain.Item) error {
	const query = `
        INSERT INTO items (id_product, name_product, code, prix, prix_societe, tva, observation, code_bar)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		item.ProductID,
		item.Name,
		item.Code,
		item.Price,
		item.CompanyPrice,
		item.TVA,
		item.Observation,
		item.CodeBar,
	).Scan(&item.ID)
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	var item domain.Item
	if err := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id=$1`, id).Scan(
		&item.ID,
		&item.ProductID,
		&item.Name,
		&item.Code,
		&item.Price,
		&item.CompanyPrice,
		&item.TVA,
		&item.Observation,
		&item.CodeBar,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) ListPage(ctx context.Context, req PageRequest) (Page[domain.Item], error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM items`).Scan(&total); err != nil {
		return Page[domain.Item]{}, err
	}

	query := `SELECT ` + itemColumns + ` FROM items ` + orderClause(itemSortable, req, "id") + ` LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, req.limit(), req.offset())
	if err != nil {
		return Page[domain.Item]{}, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.ID,
			&item.ProductID,
			&item.Name,
			&item.Code,
			&item.Price,
			&item.CompanyPrice,
			&item.TVA,
			&item.Observation,
			&item.CodeBar,
		); err != nil {
			return Page[domain.Item]{}, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return Page[domain.Item]{}, err
	}
	return NewPage(items, req.normalize(), total), nil
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	const query = `
        UPDATE items SET id_product=$1, name_product=$2, code=$3, prix=$4, prix_societe=$5, tva=$6, observation=$7, code_bar=$8
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		item.ProductID,
		item.Name,
		item.Code,
		item.Price,
		item.CompanyPrice,
		item.TVA,
		item.Observation,
		item.CodeBar,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
