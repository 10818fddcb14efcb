// Package postgres implements the notification repository on PostgreSQL
// using pgx. Schema migrations live in migrations/ and are applied with
// goose at startup.
package postgres
