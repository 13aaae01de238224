package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultVerifyCodePepper = "change-me-verification-pepper"
)

type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel string

	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	VerificationCodePepper string
	VerifyCodeTTL          time.Duration
	VerifyResendCooldown   time.Duration

	MailerSendAPIKey string
	MailFromEmail    string
	MailFromName     string

	TwilioAccountSID       string
	TwilioAuthToken        string
	TwilioVerifyServiceSID string

	RedisURL           string
	RateLimitPerMinute int

	CORSAllowedOrigins []string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		AppEnv:                 strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		HTTPAddr:               v.GetString("HTTP_ADDR"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		DatabaseURL:            strings.TrimSpace(v.GetString("DATABASE_URL")),
		JWTSecret:              strings.TrimSpace(v.GetString("JWT_SECRET")),
		VerificationCodePepper: strings.TrimSpace(v.GetString("VERIFICATION_CODE_PEPPER")),
		MailerSendAPIKey:       strings.TrimSpace(v.GetString("MAILERSEND_API_KEY")),
		MailFromEmail:          strings.TrimSpace(v.GetString("MAIL_FROM_EMAIL")),
		MailFromName:           strings.TrimSpace(v.GetString("MAIL_FROM_NAME")),
		TwilioAccountSID:       strings.TrimSpace(v.GetString("TWILIO_ACCOUNT_SID")),
		TwilioAuthToken:        strings.TrimSpace(v.GetString("TWILIO_AUTH_TOKEN")),
		TwilioVerifyServiceSID: strings.TrimSpace(v.GetString("TWILIO_VERIFY_SERVICE_SID")),
		RedisURL:               strings.TrimSpace(v.GetString("REDIS_URL")),
		RateLimitPerMinute:     v.GetInt("RATE_LIMIT_PER_MINUTE"),
		CORSAllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	var err error
	if cfg.JWTTTL, err = parseDuration(v, "JWT_TTL"); err != nil {
		return nil, err
	}
	if cfg.VerifyCodeTTL, err = parseDuration(v, "VERIFY_CODE_TTL"); err != nil {
		return nil, err
	}
	if cfg.VerifyResendCooldown, err = parseDuration(v, "VERIFY_RESEND_COOLDOWN"); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "scheduling.db")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("VERIFICATION_CODE_PEPPER", defaultVerifyCodePepper)
	v.SetDefault("VERIFY_CODE_TTL", "10m")
	v.SetDefault("VERIFY_RESEND_COOLDOWN", "60s")
	v.SetDefault("MAIL_FROM_NAME", "Scheduling")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 30)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if c.VerifyCodeTTL <= 0 {
		return fmt.Errorf("VERIFY_CODE_TTL must be > 0")
	}
	if c.VerifyResendCooldown < 0 {
		return fmt.Errorf("VERIFY_RESEND_COOLDOWN must be >= 0")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be >= 0")
	}

	if c.IsProdLike() {
		if isEmptyOrDefault(c.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(c.VerificationCodePepper, defaultVerifyCodePepper) {
			return fmt.Errorf("in prod/release VERIFICATION_CODE_PEPPER must be set and not default")
		}
	}
	return nil
}

func (c *Config) IsProdLike() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDuration(v *viper.Viper, name string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(name))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
