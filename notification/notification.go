package notification

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Type discriminates the delivery channel of a notification.
type Type string

const (
	TypeEmail Type = "email"
	TypePush  Type = "push"
)

// Status tracks the lifecycle of a delivery attempt. A notification is
// created as pending and transitions exactly once to sent or failed.
// StatusDelivered is reserved for delivery receipts and is never set here.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSent      Status = "sent"
	StatusFailed    Status = "failed"
	StatusDelivered Status = "delivered"
)

// MetadataKeyDeviceToken is the metadata key under which push notifications
// duplicate the target device token.
const MetadataKeyDeviceToken = "deviceToken"

// Metadata carries caller-supplied context attached to a notification,
// e.g. the triggering service or a category tag.
type Metadata map[string]any

// Notification is an immutable record of one delivery attempt. Lifecycle
// transitions produce a copy with the same ID; identity, channel, recipient,
// and content never change after creation.
type Notification struct {
	ID           uuid.UUID
	Type         Type
	Recipient    string
	Subject      string
	Content      string
	Status       Status
	SentAt       *time.Time
	ErrorMessage string
	Metadata     Metadata
	CreatedAt    time.Time
}

// NewEmail creates a pending email notification.
func NewEmail(id uuid.UUID, recipient, subject, content string, meta Metadata, createdAt time.Time) Notification {
	return Notification{
		ID:        id,
		Type:      TypeEmail,
		Recipient: recipient,
		Subject:   subject,
		Content:   content,
		Status:    StatusPending,
		Metadata:  maps.Clone(meta),
		CreatedAt: createdAt,
	}
}

// NewPush creates a pending push notification. The device token serves as the
// recipient and is additionally recorded in the metadata.
func NewPush(id uuid.UUID, deviceToken, content string, meta Metadata, createdAt time.Time) Notification {
	m := maps.Clone(meta)
	if m == nil {
		m = make(Metadata, 1)
	}
	m[MetadataKeyDeviceToken] = deviceToken
	return Notification{
		ID:        id,
		Type:      TypePush,
		Recipient: deviceToken,
		Content:   content,
		Status:    StatusPending,
		Metadata:  m,
		CreatedAt: createdAt,
	}
}

// MarkSent returns a copy of the notification in the sent state.
func (n Notification) MarkSent(at time.Time) Notification {
	n.Status = StatusSent
	n.SentAt = &at
	n.ErrorMessage = ""
	return n
}

// MarkFailed returns a copy of the notification in the failed state with the
// provider's failure reason attached.
func (n Notification) MarkFailed(at time.Time, reason string) Notification {
	n.Status = StatusFailed
	n.SentAt = &at
	n.ErrorMessage = reason
	return n
}

// IsTerminal reports whether the notification reached a final state.
func (n Notification) IsTerminal() bool {
	return n.Status == StatusSent || n.Status == StatusFailed || n.Status == StatusDelivered
}
