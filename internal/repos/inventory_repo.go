package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// Qty returns the current stock for a product.
// If no row exists, it returns sql.ErrNoRows from sqlx.Get.
func (r *InventoryRepo) Qty(productID string) (int, error) {
	var qty int
	if err := r.db.Get(&qty, `SELECT stock FROM products WHERE id = ?`, productID); err != nil {
		return 0, err
	}
	return qty, nil
}

// SetQty overwrites the stock of an existing product.
func (r *InventoryRepo) SetQty(productID string, qty int) error {
	if qty < 0 {
		return fmt.Errorf("negative stock for %s", productID)
	}
	res, err := r.db.Exec(`UPDATE products SET stock = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, qty, productID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("unknown product %s", productID)
	}
	return nil
}
