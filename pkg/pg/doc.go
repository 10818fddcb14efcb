// Package pg bootstraps the PostgreSQL layer: pooled connectivity via pgx/v5,
// schema migrations via goose/v3, plus healthcheck and error helpers.
//
// Config is populated from environment variables; Connect retries with
// backoff until the database is reachable; Migrate brings the schema
// up-to-date before the service starts serving traffic:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil { ... }
package pg
