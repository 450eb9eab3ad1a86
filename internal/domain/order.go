package domain

// OrderItem is a product snapshot plus a quantity. It exists only inside a
// cart or a finalized order; it is never persisted on its own.
type OrderItem struct {
	ProductID string  `db:"product_id" json:"productId"`
	Name      string  `db:"name" json:"name"`
	Price     float64 `db:"price" json:"price"`
	Quantity  int     `db:"quantity" json:"quantity"`
}

// Order is an immutable record created at checkout. Item contents and
// totals are frozen at completion time; only Synced may change afterwards,
// and only from false to true.
type Order struct {
	ID        string      `json:"id"`
	TenantID  string      `json:"tenantId"`
	Items     []OrderItem `json:"items"`
	Subtotal  float64     `json:"subtotal"`
	VAT       float64     `json:"vat"`
	Total     float64     `json:"total"`
	CreatedAt int64       `json:"createdAt"` // epoch millis
	Synced    bool        `json:"synced"`
	CashierID string      `json:"cashierId,omitempty"`
}
