package pos

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"festpos/internal/domain"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	orders := []domain.Order{
		{
			ID:       "1700000000000-abc123",
			TenantID: "t1",
			Items:    []domain.OrderItem{{ProductID: "p1", Name: "Boerewors Roll", Price: 55, Quantity: 2}},
			Subtotal: 110, VAT: 16.5, Total: 126.5,
			CreatedAt: 1700000000000,
			Synced:    true,
			CashierID: "1001",
		},
		{ID: "1700000000001-def456", TenantID: "t2", Subtotal: 38, VAT: 5.7, Total: 43.7, CreatedAt: 1700000000001},
	}
	if err := store.Save(orders); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, orders) {
		t.Fatalf("restored history differs:\n got %+v\nwant %+v", got, orders)
	}
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store := NewFileStore(t.TempDir())
	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty history, got %d orders", len(got))
	}
}

func TestFileStoreCorruptOrWrongVersionIsEmpty(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	path := filepath.Join(dir, "orders.json")

	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Load(); len(got) != 0 {
		t.Fatal("corrupt snapshot should yield empty history")
	}

	if err := os.WriteFile(path, []byte(`{"version":99,"orders":[{"id":"x"}]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Load(); len(got) != 0 {
		t.Fatal("version mismatch should yield empty history")
	}
}
