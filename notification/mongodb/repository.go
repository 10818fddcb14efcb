package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xumalabs/notifier/notification"
)

const collectionName = "notifications"

// Repository persists notifications in MongoDB. Save replaces the whole
// document keyed by the notification ID, which gives the same upsert
// semantics as the relational store.
type Repository struct {
	coll *mongo.Collection
}

// NewRepository returns a Repository backed by the given database handle.
func NewRepository(db *mongo.Database) *Repository {
	if db == nil {
		panic("mongodb: database handle is required")
	}
	return &Repository{coll: db.Collection(collectionName)}
}

// EnsureIndexes creates the indexes history queries rely on. Safe to call on
// every startup; existing indexes are left alone.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "recipient", Value: 1}}},
		{Keys: bson.D{{Key: "sent_at", Value: -1}}},
	})
	if err != nil {
		return errors.Join(notification.ErrFailedToSaveNotification, err)
	}
	return nil
}

// document is the stored shape of a notification. The ID doubles as the
// document key so lifecycle transitions replace the prior version.
type document struct {
	ID           string         `bson:"_id"`
	Type         string         `bson:"type"`
	Recipient    string         `bson:"recipient"`
	Subject      string         `bson:"subject,omitempty"`
	Content      string         `bson:"content"`
	Status       string         `bson:"status"`
	SentAt       *time.Time     `bson:"sent_at,omitempty"`
	ErrorMessage string         `bson:"error_message,omitempty"`
	Metadata     map[string]any `bson:"metadata,omitempty"`
	CreatedAt    time.Time      `bson:"created_at"`
}

func toDocument(n notification.Notification) document {
	return document{
		ID:           n.ID.String(),
		Type:         string(n.Type),
		Recipient:    n.Recipient,
		Subject:      n.Subject,
		Content:      n.Content,
		Status:       string(n.Status),
		SentAt:       n.SentAt,
		ErrorMessage: n.ErrorMessage,
		Metadata:     n.Metadata,
		CreatedAt:    n.CreatedAt,
	}
}

func (d document) toNotification() (notification.Notification, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return notification.Notification{}, err
	}
	return notification.Notification{
		ID:           id,
		Type:         notification.Type(d.Type),
		Recipient:    d.Recipient,
		Subject:      d.Subject,
		Content:      d.Content,
		Status:       notification.Status(d.Status),
		SentAt:       d.SentAt,
		ErrorMessage: d.ErrorMessage,
		Metadata:     d.Metadata,
		CreatedAt:    d.CreatedAt,
	}, nil
}

// Save upserts the notification keyed by ID.
func (r *Repository) Save(ctx context.Context, n notification.Notification) error {
	_, err := r.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: n.ID.String()}},
		toDocument(n),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Join(notification.ErrFailedToSaveNotification, err)
	}
	return nil
}

// FindByID returns the notification or notification.ErrNotificationNotFound.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (notification.Notification, error) {
	var doc document
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return notification.Notification{}, notification.ErrNotificationNotFound
		}
		return notification.Notification{}, errors.Join(notification.ErrFailedToGetNotification, err)
	}
	return doc.toNotification()
}

// FindByRecipient returns notifications for the recipient, most recent
// attempt first.
func (r *Repository) FindByRecipient(ctx context.Context, recipient string, limit int) ([]notification.Notification, error) {
	if limit <= 0 {
		limit = notification.DefaultHistoryLimit
	}
	return r.find(ctx, bson.D{{Key: "recipient", Value: recipient}}, int64(limit), 0)
}

// FindAll returns a page of the full history, most recent attempt first.
func (r *Repository) FindAll(ctx context.Context, limit, offset int) ([]notification.Notification, error) {
	if limit <= 0 {
		limit = notification.DefaultHistoryLimit
	}
	if offset < 0 {
		offset = notification.DefaultHistoryOffset
	}
	return r.find(ctx, bson.D{}, int64(limit), int64(offset))
}

func (r *Repository) find(ctx context.Context, filter bson.D, limit, offset int64) ([]notification.Notification, error) {
	// Missing sent_at sorts last under a descending sort, matching the
	// relational NULLS LAST ordering.
	cur, err := r.coll.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "sent_at", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset),
	)
	if err != nil {
		return nil, errors.Join(notification.ErrFailedToListNotifications, err)
	}
	defer cur.Close(ctx)

	out := make([]notification.Notification, 0)
	for cur.Next(ctx) {
		var doc document
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Join(notification.ErrFailedToListNotifications, err)
		}
		n, err := doc.toNotification()
		if err != nil {
			return nil, errors.Join(notification.ErrFailedToListNotifications, err)
		}
		out = append(out, n)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Join(notification.ErrFailedToListNotifications, err)
	}
	return out, nil
}
