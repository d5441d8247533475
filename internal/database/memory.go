package database

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"ppf-order-backend/internal/models"
)

type memoryEntry struct {
	row OrderRow
	seq uint64
}

// MemoryRepository keeps flat rows in process memory. It is used when no
// DATABASE_URL is configured and in tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	seq   uint64
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]memoryEntry),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) List() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]memoryEntry, 0, len(r.items))
	for _, e := range r.items {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].row.CreatedAt.Equal(entries[j].row.CreatedAt) {
			return entries[i].row.CreatedAt.After(entries[j].row.CreatedAt)
		}
		return entries[i].seq > entries[j].seq
	})

	orders := make([]models.Order, len(entries))
	for i, e := range entries {
		orders[i] = e.row.ToOrder()
	}
	return orders, nil
}

func (r *MemoryRepository) Get(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	order := e.row.ToOrder()
	return &order, nil
}

func (r *MemoryRepository) Create(input models.NewOrder) (*models.Order, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	row := ToRow(models.Order{
		ID:         uuid.NewString(),
		CreatedAt:  r.now(),
		Package:    input.Package,
		Vehicle:    input.Vehicle,
		Customer:   input.Customer,
		JobRequest: input.JobRequest,
		PhotoURL:   input.PhotoURL,
		Status:     models.StatusPending,
	})
	r.seq++
	r.items[row.ID] = memoryEntry{row: row, seq: r.seq}

	order := row.ToOrder()
	return &order, nil
}

// Update reports a missing order as not found before looking at the patch.
func (r *MemoryRepository) Update(id string, patch models.OrderPatch) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	row := e.row
	for _, a := range PatchColumns(patch) {
		if err := row.assign(a); err != nil {
			return nil, storageError("update order", err)
		}
	}
	e.row = row
	r.items[id] = e

	order := row.ToOrder()
	return &order, nil
}

func (r *MemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
