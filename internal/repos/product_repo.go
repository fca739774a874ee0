package repos

import (
	"github.com/jmoiron/sqlx"

	"lilutecno/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// All returns the raw catalog in display order.
func (r *ProductRepo) All() ([]domain.RawProduct, error) {
	out := []domain.RawProduct{}
	err := r.db.Select(&out, `
	  SELECT id, name, summary, category, price, old_price, stock, images
	  FROM products
	  ORDER BY position, created_at, id
	`)
	return out, err
}

// Upsert inserts or replaces products, keeping the file order as display order.
func (r *ProductRepo) Upsert(items []domain.RawProduct) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var base int
	if err := tx.Get(&base, `SELECT COALESCE(MAX(position), 0) FROM products`); err != nil {
		return err
	}
	for i, p := range items {
		if _, err := tx.Exec(`
			INSERT INTO products(id, name, summary, category, price, old_price, stock, images, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
			  name = excluded.name,
			  summary = excluded.summary,
			  category = excluded.category,
			  price = excluded.price,
			  old_price = excluded.old_price,
			  stock = excluded.stock,
			  images = excluded.images,
			  updated_at = CURRENT_TIMESTAMP
		`, p.ID, p.Name, p.Summary, p.Category, p.Price, p.OldPrice, p.Stock, p.Images, base+i+1); err != nil {
			return err
		}
	}
	return tx.Commit()
}
