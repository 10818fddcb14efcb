package push

import (
	"context"
	"fmt"
	"strings"
)

// Sender dispatches a single push notification to one device.
// Implementations perform exactly one attempt; retry policy belongs to the caller.
type Sender interface {
	Send(ctx context.Context, params SendParams) error
}

// SendParams describes one outbound push notification.
// Data values must already be strings; providers reject non-string payload
// values, so any stringification is the caller's job.
type SendParams struct {
	DeviceToken string            `json:"device_token"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
	ImageURL    string            `json:"image_url,omitempty"`
}

// Validate checks that the parameters are complete enough to attempt a send.
func (p SendParams) Validate() error {
	if strings.TrimSpace(p.DeviceToken) == "" {
		return fmt.Errorf("%w: DeviceToken is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: Title is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.Body) == "" {
		return fmt.Errorf("%w: Body is required", ErrInvalidParams)
	}
	return nil
}
