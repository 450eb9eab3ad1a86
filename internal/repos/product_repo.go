package repos

import (
	"fmt"

	"festpos/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, tenant_id, COALESCE(category_id,'') AS category_id, name, price, stock, active,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY tenant_id, name`)
	return out, err
}

func (r *ProductRepo) ListByTenant(tenantID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE tenant_id = ? AND active = 1
	  ORDER BY name
	`, tenantID)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, tenant_id, category_id, name, price, stock, active)
	  VALUES(?, ?, NULLIF(?,''), ?, ?, ?, ?)
	`, p.ID, p.TenantID, p.CategoryID, p.Name, p.Price, p.Stock, p.Active)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products
	  SET category_id = NULLIF(?,''), name = ?, price = ?, active = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, p.CategoryID, p.Name, p.Price, p.Active, p.ID)
	return err
}

// AdjustStock applies a signed delta atomically. A decrement that would
// take stock below zero affects no rows and returns an error.
func (r *ProductRepo) AdjustStock(id string, delta int) error {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET stock = stock + ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND stock + ? >= 0
	`, delta, id, delta)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("stock adjust rejected for %s (delta %d)", id, delta)
	}
	return nil
}
