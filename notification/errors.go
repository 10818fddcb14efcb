package notification

import "errors"

var (
	// ErrNotificationNotFound is returned when a lookup by ID matches nothing.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrMissingContent is returned when an email request carries neither a
	// template nor literal HTML content.
	ErrMissingContent = errors.New("either template name with data or html content is required")
	// ErrFailedToSaveNotification wraps storage failures during save.
	ErrFailedToSaveNotification = errors.New("failed to save notification")
	// ErrFailedToGetNotification wraps storage failures during lookup.
	ErrFailedToGetNotification = errors.New("failed to get notification")
	// ErrFailedToListNotifications wraps storage failures during history queries.
	ErrFailedToListNotifications = errors.New("failed to list notifications")
)
