package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort            = "8080"
	defaultDatabaseURL     = "floorcare.db"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTTTL          = "24h"
	defaultOtpTTL          = "10m"
	defaultOtpResend       = "60s"
	defaultUploadDir       = "./uploads"
	defaultAdminEmail      = "santosholi@gmail.com"
	defaultAdminPassword   = "admin@123"
	defaultMaxAvatarSizeMB = int64(2)
)

// Config is the process-wide runtime configuration, loaded once at
// startup from the environment.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	OtpTTL            time.Duration
	OtpResendCooldown time.Duration

	UploadDir         string
	MaxAvatarSize     int64 // bytes
	AllowedOriginsCSV string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Operator credentials for the standalone admin-panel login. Not
	// backed by a user record.
	AdminEmail    string
	AdminPassword string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", defaultPort)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.UploadDir = getEnv("UPLOAD_DIR", defaultUploadDir)
	cfg.MaxAvatarSize = defaultMaxAvatarSizeMB << 20
	cfg.AllowedOriginsCSV = os.Getenv("CORS_ALLOWED_ORIGINS")

	cfg.SMTPHost = getEnv("SMTP_HOST", "smtp.gmail.com")
	cfg.SMTPPort = getEnv("SMTP_PORT", "587")
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPass = os.Getenv("SMTP_PASS")
	cfg.SMTPFrom = getEnv("SMTP_FROM", cfg.SMTPUser)

	cfg.AdminEmail = getEnv("ADMIN_PANEL_EMAIL", defaultAdminEmail)
	cfg.AdminPassword = getEnv("ADMIN_PANEL_PASSWORD", defaultAdminPassword)

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.OtpTTL, err = parseDurationEnv("OTP_TTL", defaultOtpTTL)
	if err != nil {
		return nil, err
	}
	cfg.OtpResendCooldown, err = parseDurationEnv("OTP_RESEND_COOLDOWN", defaultOtpResend)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.OtpTTL <= 0 {
		return fmt.Errorf("OTP_TTL must be > 0")
	}
	if cfg.OtpResendCooldown <= 0 {
		return fmt.Errorf("OTP_RESEND_COOLDOWN must be > 0")
	}
	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.AdminPassword == defaultAdminPassword {
			return fmt.Errorf("in prod/release ADMIN_PANEL_PASSWORD must not be default")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
