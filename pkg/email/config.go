package email

// Config holds email transport configuration.
// Provider selects the Sender implementation at startup; there is no runtime
// switching between providers.
type Config struct {
	Provider             string `env:"EMAIL_PROVIDER" envDefault:"postmark"` // postmark or dev
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"EMAIL_SENDER_ADDRESS"`
	ReplyToEmail         string `env:"EMAIL_REPLY_TO_ADDRESS"`
	DevOutputDir         string `env:"EMAIL_DEV_OUTPUT_DIR" envDefault:"./email-output"`
}
