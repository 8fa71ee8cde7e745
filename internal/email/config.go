package email

// SMTPConfig holds SMTP server settings
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
}

// DefaultConfig returns settings for a local relay
func DefaultConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:   "localhost",
		Port:   587,
		UseTLS: true,
	}
}
