package services

import (
	"context"
	"log"

	"festpos/internal/events"
	"festpos/internal/pos"
	"festpos/internal/repos"
)

// SyncService pushes the register's unsynced orders to the backend order
// store. Orders whose insert sticks are acknowledged back to the ledger;
// a failed insert leaves the order unsynced for the next run. Core state
// is therefore never partially written.
type SyncService struct {
	Orders   *repos.OrderRepo
	Register *pos.Register
	Pub      *events.Publisher
}

func NewSyncService(orders *repos.OrderRepo, reg *pos.Register, pub *events.Publisher) *SyncService {
	return &SyncService{Orders: orders, Register: reg, Pub: pub}
}

// Push returns how many orders were newly marked synced.
func (s *SyncService) Push(ctx context.Context) (int, error) {
	pending := s.Register.UnsyncedOrders()
	if len(pending) == 0 {
		return 0, nil
	}

	var pushed []string
	var lastErr error
	for _, o := range pending {
		if err := s.Orders.Create(o); err != nil {
			lastErr = err
			continue
		}
		pushed = append(pushed, o.ID)
	}

	n := s.Register.MarkSynced(pushed)

	for _, o := range pending {
		if !contains(pushed, o.ID) {
			continue
		}
		if err := s.Pub.PublishOrderSynced(ctx, o); err != nil {
			log.Printf("[warn] publish order %s: %v", o.ID, err)
		}
	}

	return n, lastErr
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
