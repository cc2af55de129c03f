package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment. It is
// built once in main and passed into constructors; business logic never
// reads the environment directly.
type Config struct {
	Server ServerConfig
	Zoom   ZoomConfig
	Google GoogleConfig
	Email  EmailConfig
	Twilio TwilioConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// ZoomConfig holds Zoom server-to-server OAuth credentials.
type ZoomConfig struct {
	AccountID    string
	ClientID     string
	ClientSecret string
	OAuthBaseURL string // token endpoint host, default https://zoom.us
	APIBaseURL   string // API host, default https://api.zoom.us
}

// Configured reports whether all required Zoom credentials are present.
func (c ZoomConfig) Configured() bool {
	return c.AccountID != "" && c.ClientID != "" && c.ClientSecret != ""
}

// GoogleConfig holds Google OAuth client credentials and the long-lived
// refresh token minted via /api/auth/google.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	RefreshToken string
}

// Configured reports whether the OAuth client credentials are present.
// The refresh token is deliberately not part of this check: its absence
// surfaces at provisioning time with a re-authorization hint.
func (c GoogleConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// EmailConfig holds SMTP settings for outbound invitation/reminder email.
type EmailConfig struct {
	FromAddress string
	FromName    string
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
}

// Configured reports whether SMTP credentials are present.
func (c EmailConfig) Configured() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}

// TwilioConfig holds Twilio WhatsApp sender credentials.
type TwilioConfig struct {
	AccountSID         string
	AuthToken          string
	WhatsAppFrom       string // e.g. whatsapp:+14155238886
	APIBaseURL         string // default https://api.twilio.com
	DefaultCountryCode string // prefix for phone numbers without one, default +1
}

// PlaceholderAccountSID selects simulated WhatsApp sends instead of real
// Twilio calls.
const PlaceholderAccountSID = "your_account_sid"

// Configured reports whether Twilio credentials are present (placeholder
// included; the placeholder switches the channel into simulation).
func (c TwilioConfig) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != ""
}

// Simulated reports whether WhatsApp sends should be simulated rather than
// transmitted.
func (c TwilioConfig) Simulated() bool {
	return c.AccountSID == PlaceholderAccountSID
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Zoom: ZoomConfig{
			AccountID:    getEnv("ZOOM_ACCOUNT_ID", ""),
			ClientID:     getEnv("ZOOM_CLIENT_ID", ""),
			ClientSecret: getEnv("ZOOM_CLIENT_SECRET", ""),
			OAuthBaseURL: getEnv("ZOOM_OAUTH_BASE_URL", "https://zoom.us"),
			APIBaseURL:   getEnv("ZOOM_API_BASE_URL", "https://api.zoom.us"),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback"),
			RefreshToken: getEnv("GOOGLE_REFRESH_TOKEN", ""),
		},
		Email: EmailConfig{
			FromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),
			FromName:    getEnv("EMAIL_FROM_NAME", "Webinar Wrapper"),
			SMTPHost:    getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:    getEnvInt("SMTP_PORT", 587),
			SMTPUser:    getEnv("EMAIL_USER", ""),
			SMTPPass:    getEnv("EMAIL_PASS", ""),
		},
		Twilio: TwilioConfig{
			AccountSID:         getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:          getEnv("TWILIO_AUTH_TOKEN", ""),
			WhatsAppFrom:       getEnv("TWILIO_PHONE_NUMBER", "whatsapp:+14155238886"),
			APIBaseURL:         getEnv("TWILIO_API_BASE_URL", "https://api.twilio.com"),
			DefaultCountryCode: getEnv("WHATSAPP_DEFAULT_COUNTRY_CODE", "+1"),
		},
	}
	if cfg.Email.FromAddress == "" {
		cfg.Email.FromAddress = cfg.Email.SMTPUser
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
