package pos

import (
	"errors"
	"log"
	"sync"

	"festpos/internal/domain"
)

var (
	ErrNotHydrated    = errors.New("register is still restoring persisted state")
	ErrUnknownProduct = errors.New("unknown product")
	ErrUnknownTenant  = errors.New("unknown tenant")
)

// Register is the one in-memory POS state machine per process: catalog
// cache, current cart, order ledger and session, mutated under a single
// mutex so every operation applies in the order issued.
type Register struct {
	mu       sync.Mutex
	hydrated bool

	catalog Catalog
	cart    Cart
	ledger  Ledger
	session Session

	store Store
}

func NewRegister(store Store) *Register {
	return &Register{store: store}
}

// Hydrate restores the persisted order history and marks the register
// ready. Run it once at startup; callers must hold every other operation
// until Hydrated reports true.
func (r *Register) Hydrate() {
	orders, err := r.store.Load()
	if err != nil {
		log.Printf("[warn] restore failed, starting with empty history: %v", err)
		orders = nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ledger.restore(orders)
	r.hydrated = true
}

func (r *Register) Hydrated() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hydrated
}

// persist mirrors the ledger to the store. Caller holds r.mu. A failed
// write is logged and retried implicitly on the next mutation.
func (r *Register) persist() {
	if err := r.store.Save(r.ledger.Orders()); err != nil {
		log.Printf("[warn] persist orders: %v", err)
	}
}

// ---------- catalog ----------

func (r *Register) ReplaceCatalog(tenants []domain.Tenant, products []domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalog.Replace(tenants, products)
}

func (r *Register) Tenants() []domain.Tenant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.catalog.Tenants()
}

func (r *Register) Tenant(id string) (domain.Tenant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.catalog.Tenant(id)
}

func (r *Register) ProductsByTenant(tenantID string) []domain.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.catalog.ProductsByTenant(tenantID)
}

// ---------- session ----------

func (r *Register) StartShift(c domain.Cashier, openingFloat float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.StartShift(c, openingFloat)
}

func (r *Register) StartAdmin(a domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.StartAdmin(a)
}

// EndSession logs out whoever is active. The cart and tenant selection go
// with it; the order history stays.
func (r *Register) EndSession() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session.End()
	r.cart.Clear()
}

func (r *Register) SessionState() SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.State()
}

func (r *Register) ActiveCashier() (domain.Cashier, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Cashier()
}

func (r *Register) ActiveAdmin() (domain.Admin, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Admin()
}

func (r *Register) OpeningFloat() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.OpeningFloat()
}

// SelectTenant starts a fresh, empty cart for the tenant.
func (r *Register) SelectTenant(tenantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.catalog.Tenant(tenantID); !ok {
		return ErrUnknownTenant
	}
	if err := r.session.SelectTenant(tenantID); err != nil {
		return err
	}
	r.cart.Clear()
	return nil
}

// ResetTenant returns to tenant selection, abandoning the current cart but
// keeping the shift open.
func (r *Register) ResetTenant() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session.ResetTenant()
	r.cart.Clear()
}

func (r *Register) ActiveTenantID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.ActiveTenantID()
}

// ---------- cart ----------

type CartView struct {
	TenantID string             `json:"tenantId"`
	Items    []domain.OrderItem `json:"items"`
	Subtotal float64            `json:"subtotal"`
	VAT      float64            `json:"vat"`
	Total    float64            `json:"total"`
}

func (r *Register) AddProduct(productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.catalog.Product(productID)
	if !ok {
		return ErrUnknownProduct
	}
	return r.cart.AddProduct(p)
}

func (r *Register) RemoveProduct(productID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cart.RemoveProduct(productID)
}

func (r *Register) UpdateQuantity(productID string, quantity int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cart.UpdateQuantity(productID, quantity)
}

func (r *Register) ClearCart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cart.Clear()
}

func (r *Register) CartView() CartView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return CartView{
		TenantID: r.cart.TenantID(),
		Items:    r.cart.Items(),
		Subtotal: r.cart.Subtotal(),
		VAT:      r.cart.VAT(),
		Total:    r.cart.Total(),
	}
}

// ---------- ledger ----------

func (r *Register) CompleteOrder() (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hydrated {
		return domain.Order{}, ErrNotHydrated
	}
	cashierID := ""
	if c, ok := r.session.Cashier(); ok {
		cashierID = c.ID
	}
	o, err := r.ledger.Complete(&r.cart, cashierID)
	if err != nil {
		return domain.Order{}, err
	}
	r.persist()
	return o, nil
}

func (r *Register) MarkSynced(ids []string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.ledger.MarkSynced(ids)
	if n > 0 {
		r.persist()
	}
	return n
}

// ResetShiftData clears the completed-order history for a fresh shift. It
// is refused while unreconciled orders remain (see Ledger.Clear).
func (r *Register) ResetShiftData() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hydrated {
		return ErrNotHydrated
	}
	if err := r.ledger.Clear(); err != nil {
		return err
	}
	r.persist()
	return nil
}

func (r *Register) SetReportingDone(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ledger.SetReportingDone(v)
}

func (r *Register) ReportingDone() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ledger.ReportingDone()
}

func (r *Register) CanResetShift() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ledger.CanClear()
}

func (r *Register) Orders() []domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ledger.Orders()
}

func (r *Register) UnsyncedOrders() []domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ledger.Unsynced()
}

func (r *Register) LastCompleted() (domain.Order, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ledger.LastCompleted()
}

// ---------- reporting ----------

func (r *Register) RevenueReport() RevenueReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return AllocateRevenue(r.ledger.Orders(), r.catalog.Tenants())
}
