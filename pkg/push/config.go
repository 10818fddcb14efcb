package push

// Config holds push transport configuration.
// Credentials come from a single service-account JSON file; the project id is
// read from the credentials unless set explicitly.
type Config struct {
	Provider           string `env:"PUSH_PROVIDER" envDefault:"fcm"` // fcm or dev
	FCMProjectID       string `env:"FCM_PROJECT_ID"`
	FCMCredentialsFile string `env:"FCM_CREDENTIALS_FILE"`
	DevOutputDir       string `env:"PUSH_DEV_OUTPUT_DIR" envDefault:"./push-output"`
}
