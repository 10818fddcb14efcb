package notification

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository. It backs tests and the
// "memory" storage driver; history does not survive a restart.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]Notification
	order []uuid.UUID
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[uuid.UUID]Notification)}
}

// Save upserts the notification keyed by ID.
func (r *MemoryRepository) Save(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n.Metadata = maps.Clone(n.Metadata)
	if _, ok := r.byID[n.ID]; !ok {
		r.order = append(r.order, n.ID)
	}
	r.byID[n.ID] = n
	return nil
}

// FindByID returns the notification or ErrNotificationNotFound.
func (r *MemoryRepository) FindByID(ctx context.Context, id uuid.UUID) (Notification, error) {
	if err := ctx.Err(); err != nil {
		return Notification{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.byID[id]
	if !ok {
		return Notification{}, ErrNotificationNotFound
	}
	return n, nil
}

// FindByRecipient returns notifications for the recipient, most recent
// attempt first. A non-positive limit falls back to DefaultHistoryLimit.
func (r *MemoryRepository) FindByRecipient(ctx context.Context, recipient string, limit int) ([]Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Notification
	for _, id := range r.order {
		if n := r.byID[id]; n.Recipient == recipient {
			out = append(out, n)
		}
	}
	sortBySentAtDesc(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FindAll returns a page of the full history, most recent attempt first.
// Non-positive limit/offset fall back to the defaults.
func (r *MemoryRepository) FindAll(ctx context.Context, limit, offset int) ([]Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if offset < 0 {
		offset = DefaultHistoryOffset
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Notification, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	sortBySentAtDesc(out)

	if offset >= len(out) {
		return []Notification{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// sortBySentAtDesc orders by sentAt descending with unset timestamps last.
func sortBySentAtDesc(ns []Notification) {
	sort.SliceStable(ns, func(i, j int) bool {
		a, b := ns[i].SentAt, ns[j].SentAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
