package api

// Config holds the HTTP API settings loaded from the environment.
type Config struct {
	// ServiceKey authenticates calling services. Requests must present it as
	// a Bearer token or in the X-Service-Key header. When empty,
	// authentication is disabled; only do this in development.
	ServiceKey string `env:"API_SERVICE_KEY"`
}
