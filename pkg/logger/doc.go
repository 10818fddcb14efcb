// Package logger provides a factory for configured slog.Logger instances
// along with typed attribute helpers used across the service.
//
// The factory defaults to production-safe settings (JSON output, info level)
// and can be switched to development mode with a single option:
//
//	log := logger.New(logger.WithEnvironment(cfg.Env, "notifier"))
//	logger.SetAsDefault(log)
//
// Attribute helpers keep log keys consistent between packages:
//
//	log.ErrorContext(ctx, "Failed to send email",
//	    logger.NotificationID(id),
//	    logger.Error(err),
//	)
package logger
