package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"festpos/internal/domain"
)

const orderChannel = "festpos:orders"

// OrderSyncedEvent is published once a register's order has been durably
// stored, so an organizer dashboard can follow sales live.
type OrderSyncedEvent struct {
	EventID   string  `json:"event_id"`
	OrderID   string  `json:"order_id"`
	TenantID  string  `json:"tenant_id"`
	CashierID string  `json:"cashier_id,omitempty"`
	Total     float64 `json:"total"`
	VAT       float64 `json:"vat"`
	CreatedAt int64   `json:"created_at"`
	SyncedAt  string  `json:"synced_at"`
}

// Publisher is optional; a nil *Publisher is a valid no-op sink and every
// publish is best effort.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(addr string) *Publisher {
	if addr == "" {
		return nil
	}
	return &Publisher{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (p *Publisher) PublishOrderSynced(ctx context.Context, o domain.Order) error {
	if p == nil {
		return nil
	}
	ev := OrderSyncedEvent{
		EventID:   uuid.NewString(),
		OrderID:   o.ID,
		TenantID:  o.TenantID,
		CashierID: o.CashierID,
		Total:     o.Total,
		VAT:       o.VAT,
		CreatedAt: o.CreatedAt,
		SyncedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, orderChannel, data).Err()
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.client.Close()
}
