package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server ServerConfig
	CORS   CORSConfig
	Email  EmailConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         int
}

type EmailConfig struct {
	Provider      string // resend, mailersend, smtp or dev
	From          string
	To            string
	SendTimeout   time.Duration
	ResendKey     string
	MailerSendKey string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	SMTPUseTLS    bool
}

// DefaultAllowedOrigins are the front-end domains allowed to call the API.
var DefaultAllowedOrigins = []string{
	"https://makeoverbyreet.com",
	"https://www.makeoverbyreet.com",
	"https://makeover-website.onrender.com",
	"https://makeover-website2.onrender.com",
	"http://localhost:5000",
}

const (
	DefaultFrom = "MakeOver <onboarding@resend.dev>"
	DefaultTo   = "your@email.com"
)

// Load reads the process environment once. Callers pass the result down
// instead of reading the environment themselves.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5000"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", DefaultAllowedOrigins),
			MaxAge:         getInt("CORS_MAX_AGE", 300),
		},
		Email: EmailConfig{
			Provider:      strings.ToLower(getEnv("EMAIL_PROVIDER", "resend")),
			From:          getNonEmpty("EMAIL_FROM", DefaultFrom),
			To:            getNonEmpty("EMAIL_TO", DefaultTo),
			SendTimeout:   getDuration("EMAIL_SEND_TIMEOUT", 10*time.Second),
			ResendKey:     getEnv("RESEND_API_KEY", ""),
			MailerSendKey: getEnv("MAILERSEND_API_KEY", ""),
			SMTPHost:      getEnv("SMTP_HOST", "localhost"),
			SMTPPort:      getInt("SMTP_PORT", 1025),
			SMTPUser:      getEnv("SMTP_USER", ""),
			SMTPPass:      getEnv("SMTP_PASS", ""),
			SMTPUseTLS:    getBool("SMTP_USE_TLS", false),
		},
	}
}

// IsAllowedOrigin reports whether origin is on the allow-list. An empty
// origin (server-to-server, curl) is always allowed.
func (c CORSConfig) IsAllowedOrigin(origin string) bool {
	if origin == "" {
		return true
	}
	for _, o := range c.AllowedOrigins {
		if o == origin {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getNonEmpty treats an empty variable the same as an unset one.
func getNonEmpty(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
