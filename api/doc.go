// Package api exposes the notification service over HTTP: JSON endpoints for
// sending email and push notifications, convenience wrappers for common
// email templates, a history query, and a health probe. Request validation
// happens here so the delivery pipeline can trust its inputs.
package api
