// Package email provides a provider-agnostic interface for sending
// transactional emails.
//
// The package is built around the Sender interface so email providers can be
// swapped without touching delivery orchestration. Implementations:
//   - PostmarkSender for production delivery with open/click tracking
//   - DevSender for local development (saves emails to disk)
//
// Which implementation runs is decided once, at startup, from Config.Provider;
// there is no runtime provider switching.
//
// All implementations validate parameters before dispatch and report failures
// through the ErrSendFailed sentinel:
//
//	if errors.Is(err, email.ErrSendFailed) {
//	    // provider rejected or failed the attempt
//	}
package email
