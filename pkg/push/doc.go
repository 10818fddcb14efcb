// Package push provides a provider-agnostic interface for sending mobile
// push notifications to a single device token.
//
// Implementations of the Sender interface:
//   - FCMSender speaks the Firebase Cloud Messaging HTTP v1 API, authenticated
//     with a Google service-account credential
//   - DevSender for local development (writes payloads to disk)
//
// Which implementation runs is decided once, at startup, from Config.Provider.
// Payload data values must be strings; the provider rejects anything else.
package push
