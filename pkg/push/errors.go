package push

import "errors"

var (
	// ErrSendFailed indicates the provider rejected or failed the delivery attempt.
	ErrSendFailed = errors.New("push: failed to send")
	// ErrInvalidParams indicates the send parameters failed validation.
	ErrInvalidParams = errors.New("push: invalid send params")
	// ErrInvalidConfig indicates the sender configuration is incomplete.
	ErrInvalidConfig = errors.New("push: invalid config")
)
