package notification

import (
	"context"

	"github.com/google/uuid"
)

// Default pagination applied by repository implementations when the caller
// passes non-positive values.
const (
	DefaultHistoryLimit  = 50
	DefaultHistoryOffset = 0
)

// Repository is the persistence contract for the delivery history. Save is an
// idempotent upsert keyed by notification ID: the first call inserts a full
// record, later calls update status, sentAt, errorMessage, and metadata.
type Repository interface {
	Save(ctx context.Context, n Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (Notification, error)
	FindByRecipient(ctx context.Context, recipient string, limit int) ([]Notification, error)
	FindAll(ctx context.Context, limit, offset int) ([]Notification, error)
}
