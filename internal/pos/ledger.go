package pos

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"festpos/internal/domain"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrReportingPending = errors.New("end-of-shift reporting has not been acknowledged")
)

// Ledger owns the completed-order history. Orders are append-only; the only
// mutation allowed after completion is the false->true synced transition.
type Ledger struct {
	orders        []domain.Order
	lastCompleted string
	reportingDone bool
}

// Complete freezes the cart into an order and clears the cart. The cart's
// totals are computed here, once, and never revisited.
func (l *Ledger) Complete(cart *Cart, cashierID string) (domain.Order, error) {
	if cart.Empty() {
		return domain.Order{}, ErrEmptyCart
	}
	o := domain.Order{
		ID:        newOrderID(),
		TenantID:  cart.TenantID(),
		Items:     cart.Items(),
		Subtotal:  cart.Subtotal(),
		VAT:       cart.VAT(),
		Total:     cart.Total(),
		CreatedAt: time.Now().UnixMilli(),
		Synced:    false,
		CashierID: cashierID,
	}
	l.orders = append(l.orders, o)
	l.lastCompleted = o.ID
	cart.Clear()
	return o, nil
}

// newOrderID combines epoch millis with a random suffix so two completions
// in the same millisecond cannot collide.
func newOrderID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// MarkSynced flips synced to true for every listed id. Unknown ids are
// ignored; already-synced orders stay synced. Returns how many orders
// changed state.
func (l *Ledger) MarkSynced(ids []string) int {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	n := 0
	for i := range l.orders {
		if _, ok := set[l.orders[i].ID]; ok && !l.orders[i].Synced {
			l.orders[i].Synced = true
			n++
		}
	}
	return n
}

// Clear empties the history for a fresh shift. While unreconciled orders
// exist the clear is refused; the reporting gate must be set first.
func (l *Ledger) Clear() error {
	if len(l.orders) > 0 && !l.reportingDone {
		return ErrReportingPending
	}
	l.orders = nil
	l.lastCompleted = ""
	l.reportingDone = false
	return nil
}

// CanClear reports whether Clear would succeed right now. The UI uses this
// to disable the reset control.
func (l *Ledger) CanClear() bool {
	return len(l.orders) == 0 || l.reportingDone
}

func (l *Ledger) SetReportingDone(v bool) { l.reportingDone = v }

func (l *Ledger) ReportingDone() bool { return l.reportingDone }

func (l *Ledger) Orders() []domain.Order {
	out := make([]domain.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

func (l *Ledger) Unsynced() []domain.Order {
	var out []domain.Order
	for _, o := range l.orders {
		if !o.Synced {
			out = append(out, o)
		}
	}
	return out
}

func (l *Ledger) LastCompleted() (domain.Order, bool) {
	if l.lastCompleted == "" {
		return domain.Order{}, false
	}
	for _, o := range l.orders {
		if o.ID == l.lastCompleted {
			return o, true
		}
	}
	return domain.Order{}, false
}

// restore replaces the history from a persisted snapshot. The last-completed
// marker and the reporting gate deliberately do not survive a reload.
func (l *Ledger) restore(orders []domain.Order) {
	l.orders = orders
	l.lastCompleted = ""
	l.reportingDone = false
}
