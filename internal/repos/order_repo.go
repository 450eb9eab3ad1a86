package repos

import (
	"festpos/internal/domain"

	"github.com/jmoiron/sqlx"
)

// OrderRepo is the durable side of sync: registers push their completed
// orders here and mark them synced once the insert has stuck.
type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create inserts the order header and its lines in one transaction. A
// re-push of an already stored id is treated as success so a crash between
// insert and sync-mark cannot wedge an order.
func (r *OrderRepo) Create(o domain.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  INSERT INTO orders(id, tenant_id, cashier_id, subtotal, vat, total, created_at_ms)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	  ON CONFLICT(id) DO NOTHING
	`, o.ID, o.TenantID, o.CashierID, o.Subtotal, o.VAT, o.Total, o.CreatedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return tx.Commit() // already pushed
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, name, price, quantity)
		  VALUES(?, ?, ?, ?, ?)
		`, o.ID, it.ProductID, it.Name, it.Price, it.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type OrderSummary struct {
	ID         string  `db:"id"`
	TenantID   string  `db:"tenant_id"`
	CashierID  string  `db:"cashier_id"`
	Total      float64 `db:"total"`
	CreatedAt  int64   `db:"created_at_ms"`
	ReceivedAt string  `db:"received_at"`
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.db.Select(&out, `
	  SELECT id, tenant_id, COALESCE(cashier_id,'') AS cashier_id, total, created_at_ms, received_at
	  FROM orders
	  ORDER BY created_at_ms DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var row struct {
		ID        string  `db:"id"`
		TenantID  string  `db:"tenant_id"`
		CashierID string  `db:"cashier_id"`
		Subtotal  float64 `db:"subtotal"`
		VAT       float64 `db:"vat"`
		Total     float64 `db:"total"`
		CreatedAt int64   `db:"created_at_ms"`
	}
	if err := r.db.Get(&row, `
	  SELECT id, tenant_id, COALESCE(cashier_id,'') AS cashier_id, subtotal, vat, total, created_at_ms
	  FROM orders WHERE id = ?
	`, id); err != nil {
		return domain.Order{}, err
	}

	var items []domain.OrderItem
	if err := r.db.Select(&items, `
	  SELECT product_id, name, price, quantity
	  FROM order_items
	  WHERE order_id = ?
	  ORDER BY name
	`, id); err != nil {
		return domain.Order{}, err
	}

	return domain.Order{
		ID:        row.ID,
		TenantID:  row.TenantID,
		CashierID: row.CashierID,
		Items:     items,
		Subtotal:  row.Subtotal,
		VAT:       row.VAT,
		Total:     row.Total,
		CreatedAt: row.CreatedAt,
		Synced:    true,
	}, nil
}
