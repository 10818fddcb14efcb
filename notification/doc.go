// Package notification implements the delivery pipeline at the heart of the
// service: the notification entity and its lifecycle, the persistence
// contract for the delivery history, and the orchestration that turns a send
// request into a status-tracked delivery attempt.
//
// Each send follows a two-phase persist: the notification is stored as
// pending before the provider is called, and stored again with its terminal
// status (sent or failed) afterwards. Provider failures are recorded in the
// history and then returned to the caller unchanged.
//
// The pipeline depends only on narrow ports (email.Sender, push.Sender,
// templates.Renderer, Repository); concrete providers and storage engines are
// chosen at process start and injected through NewService.
package notification
