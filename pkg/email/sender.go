package email

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Sender dispatches a single transactional email through a provider.
// Implementations perform exactly one attempt; retry policy belongs to the caller.
type Sender interface {
	Send(ctx context.Context, params SendParams) error
}

// SendParams describes one outbound email.
type SendParams struct {
	To      string `json:"to"`             // Recipient address
	Subject string `json:"subject"`        // Subject line
	HTML    string `json:"html"`           // Rendered HTML body
	Text    string `json:"text,omitempty"` // Optional plain-text alternative
	Tag     string `json:"tag,omitempty"`  // Optional category tag for provider analytics
}

// emailRegex is intentionally permissive; it catches structural mistakes,
// not every RFC 5322 corner case.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks that the parameters are complete enough to attempt a send.
func (p SendParams) Validate() error {
	if strings.TrimSpace(p.To) == "" {
		return fmt.Errorf("%w: To is required", ErrInvalidParams)
	}
	if !emailRegex.MatchString(p.To) {
		return fmt.Errorf("%w: To must be a valid email address", ErrInvalidParams)
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.HTML) == "" {
		return fmt.Errorf("%w: HTML is required", ErrInvalidParams)
	}
	return nil
}
