package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xumalabs/notifier/notification"
	"github.com/xumalabs/notifier/pkg/pg"
)

// Repository persists notifications in PostgreSQL. Metadata is stored as
// JSONB; Save upserts on the primary key so lifecycle transitions overwrite
// the mutable columns in place.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("postgres: connection pool is required")
	}
	return &Repository{pool: pool}
}

const saveQuery = `
INSERT INTO notifications (id, type, recipient, subject, content, status, sent_at, error_message, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
	status        = EXCLUDED.status,
	sent_at       = EXCLUDED.sent_at,
	error_message = EXCLUDED.error_message,
	metadata      = EXCLUDED.metadata`

// Save upserts the notification keyed by ID.
func (r *Repository) Save(ctx context.Context, n notification.Notification) error {
	meta, err := marshalMetadata(n.Metadata)
	if err != nil {
		return errors.Join(notification.ErrFailedToSaveNotification, err)
	}

	_, err = r.pool.Exec(ctx, saveQuery,
		n.ID,
		string(n.Type),
		n.Recipient,
		n.Subject,
		n.Content,
		string(n.Status),
		n.SentAt,
		n.ErrorMessage,
		meta,
		n.CreatedAt,
	)
	if err != nil {
		return errors.Join(notification.ErrFailedToSaveNotification, err)
	}
	return nil
}

const selectColumns = `id, type, recipient, subject, content, status, sent_at, error_message, metadata, created_at`

// FindByID returns the notification or notification.ErrNotificationNotFound.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (notification.Notification, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM notifications WHERE id = $1`, id)
	n, err := scanNotification(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return notification.Notification{}, notification.ErrNotificationNotFound
		}
		return notification.Notification{}, errors.Join(notification.ErrFailedToGetNotification, err)
	}
	return n, nil
}

// FindByRecipient returns notifications for the recipient ordered by attempt
// completion time, most recent first. Records that never completed sort last.
func (r *Repository) FindByRecipient(ctx context.Context, recipient string, limit int) ([]notification.Notification, error) {
	if limit <= 0 {
		limit = notification.DefaultHistoryLimit
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM notifications
		 WHERE recipient = $1
		 ORDER BY sent_at DESC NULLS LAST, created_at DESC
		 LIMIT $2`,
		recipient, limit,
	)
	if err != nil {
		return nil, errors.Join(notification.ErrFailedToListNotifications, err)
	}
	return collectNotifications(rows)
}

// FindAll returns a page of the full history, most recent attempt first.
func (r *Repository) FindAll(ctx context.Context, limit, offset int) ([]notification.Notification, error) {
	if limit <= 0 {
		limit = notification.DefaultHistoryLimit
	}
	if offset < 0 {
		offset = notification.DefaultHistoryOffset
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM notifications
		 ORDER BY sent_at DESC NULLS LAST, created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, errors.Join(notification.ErrFailedToListNotifications, err)
	}
	return collectNotifications(rows)
}

func collectNotifications(rows pgx.Rows) ([]notification.Notification, error) {
	defer rows.Close()

	out := make([]notification.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, errors.Join(notification.ErrFailedToListNotifications, err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(notification.ErrFailedToListNotifications, err)
	}
	return out, nil
}

func scanNotification(row pgx.Row) (notification.Notification, error) {
	var (
		n    notification.Notification
		typ  string
		st   string
		meta []byte
	)
	if err := row.Scan(&n.ID, &typ, &n.Recipient, &n.Subject, &n.Content, &st, &n.SentAt, &n.ErrorMessage, &meta, &n.CreatedAt); err != nil {
		return notification.Notification{}, err
	}
	n.Type = notification.Type(typ)
	n.Status = notification.Status(st)

	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &n.Metadata); err != nil {
			return notification.Notification{}, err
		}
	}
	return n, nil
}

func marshalMetadata(meta notification.Metadata) ([]byte, error) {
	if len(meta) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(meta)
}
