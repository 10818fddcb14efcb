package email

import "errors"

var (
	// ErrSendFailed indicates the provider rejected or failed the delivery attempt.
	ErrSendFailed = errors.New("email: failed to send")
	// ErrInvalidParams indicates the send parameters failed validation.
	ErrInvalidParams = errors.New("email: invalid send params")
	// ErrInvalidConfig indicates the sender configuration is incomplete.
	ErrInvalidConfig = errors.New("email: invalid config")
)
