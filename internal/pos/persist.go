package pos

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"festpos/internal/domain"
)

// Store mirrors the completed-order history to durable storage. Only the
// history is persisted: an in-progress cart or login never survives a
// restart, sales data always does.
type Store interface {
	Save(orders []domain.Order) error
	Load() ([]domain.Order, error)
}

// snapshotVersion tags the persisted payload. A snapshot with any other
// version is treated as an empty history rather than misread.
const snapshotVersion = 1

type snapshot struct {
	Version int            `json:"version"`
	Orders  []domain.Order `json:"orders"`
}

// FileStore keeps the snapshot as one JSON file under the data directory,
// last-writer-wins. There is a single writer per process, so no locking.
type FileStore struct {
	path string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, "orders.json")}
}

func (s *FileStore) Save(orders []domain.Order) error {
	b, err := json.Marshal(snapshot{Version: snapshotVersion, Orders: orders})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0644)
}

// Load restores the persisted history. A missing, unreadable, or
// version-mismatched snapshot yields an empty history, never an error: the
// register must always be able to start.
func (s *FileStore) Load() ([]domain.Order, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[warn] order snapshot unreadable, starting empty: %v", err)
		}
		return nil, nil
	}
	var snap snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		log.Printf("[warn] order snapshot corrupt, starting empty: %v", err)
		return nil, nil
	}
	if snap.Version != snapshotVersion {
		log.Printf("[warn] order snapshot version %d unsupported, starting empty", snap.Version)
		return nil, nil
	}
	return snap.Orders, nil
}
