package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/guttosm/stockfn/internal/domain/models"
)

// MemoryRepository is an in-process StockRepository for local runs and tests.
// Like the real stores, it does not enforce code uniqueness.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs []models.StockDocument
}

// NewMemoryRepository returns a repository preloaded with stocks.
func NewMemoryRepository(stocks ...models.Stock) *MemoryRepository {
	m := &MemoryRepository{}
	for _, s := range stocks {
		m.docs = append(m.docs, models.StockDocument{ID: newID(), Stock: s})
	}
	return m
}

// FindByCode returns every stored document whose code equals code, in insertion order.
func (m *MemoryRepository) FindByCode(_ context.Context, code string) ([]models.StockDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.StockDocument
	for _, d := range m.docs {
		if d.Stock.Code == code {
			out = append(out, d)
		}
	}
	return out, nil
}

// Get returns the document with the given id or ErrDocumentNotFound.
func (m *MemoryRepository) Get(_ context.Context, id string) (*models.StockDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, d := range m.docs {
		if d.ID == id {
			doc := d
			return &doc, nil
		}
	}
	return nil, fmt.Errorf("stock %s: %w", id, ErrDocumentNotFound)
}

// Insert stores stock under a new id and returns the id.
func (m *MemoryRepository) Insert(_ context.Context, stock models.Stock) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := newID()
	m.docs = append(m.docs, models.StockDocument{ID: id, Stock: stock})
	return id, nil
}

// InsertBatch stores every stock under its own id and reports how many were added.
func (m *MemoryRepository) InsertBatch(_ context.Context, stocks []models.Stock) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range stocks {
		m.docs = append(m.docs, models.StockDocument{ID: newID(), Stock: s})
	}
	return len(stocks), nil
}

// Update applies patch to the document with the given id.
func (m *MemoryRepository) Update(_ context.Context, id string, patch models.StockPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.docs {
		if m.docs[i].ID == id {
			m.docs[i].Stock = patch.Apply(m.docs[i].Stock)
			return nil
		}
	}
	return fmt.Errorf("stock %s: %w", id, ErrDocumentNotFound)
}

// Ping always succeeds.
func (m *MemoryRepository) Ping(context.Context) error { return nil }

// Len reports how many documents are stored.
func (m *MemoryRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
