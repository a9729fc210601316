package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	Server    ServerConfig
	CORS      CORSConfig
	Export    ExportConfig
	RateLimit RateLimitConfig
	Platform  PlatformConfig
	Log       LogConfig
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

type JWTConfig struct {
	AccessSecret       string
	RefreshSecret      string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// ExportConfig controls where generated reports land and how long they stay there.
type ExportConfig struct {
	Dir             string
	LogoPath        string
	Retention       time.Duration
	JanitorInterval time.Duration
}

type RateLimitConfig struct {
	SigninRPS   float64
	SigninBurst int
}

type PlatformConfig struct {
	AdminKey    string
	TrialPeriod time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

var defaults = map[string]any{
	"DB_DRIVER":               "mysql",
	"DB_HOST":                 "localhost",
	"DB_PORT":                 "3306",
	"DB_USER":                 "root",
	"DB_PASSWORD":             "",
	"DB_NAME":                 "hospital_management",
	"DB_SSLMODE":              "disable",
	"JWT_ACCESS_SECRET":       "",
	"JWT_REFRESH_SECRET":      "",
	"ACCESS_TOKEN_EXPIRY":     "15m",
	"REFRESH_TOKEN_EXPIRY":    "168h",
	"PORT":                    "8080",
	"GIN_MODE":                "debug",
	"ALLOWED_ORIGINS":         "http://localhost:3000,http://localhost:5173",
	"EXPORT_DIR":              "exports",
	"EXPORT_LOGO_PATH":        "",
	"EXPORT_RETENTION":        "24h",
	"EXPORT_JANITOR_INTERVAL": "1h",
	"SIGNIN_RATE_RPS":         1.0,
	"SIGNIN_RATE_BURST":       5,
	"PLATFORM_ADMIN_KEY":      "",
	"TRIAL_PERIOD":            "720h",
	"LOG_LEVEL":               "info",
	"LOG_FORMAT":              "json",
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Database: v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			AccessSecret:       v.GetString("JWT_ACCESS_SECRET"),
			RefreshSecret:      v.GetString("JWT_REFRESH_SECRET"),
			AccessTokenExpiry:  parseDuration(v.GetString("ACCESS_TOKEN_EXPIRY"), 15*time.Minute),
			RefreshTokenExpiry: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRY"), 168*time.Hour),
		},
		Server: ServerConfig{
			Port:    v.GetString("PORT"),
			GinMode: v.GetString("GIN_MODE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseOrigins(v.GetString("ALLOWED_ORIGINS")),
		},
		Export: ExportConfig{
			Dir:             v.GetString("EXPORT_DIR"),
			LogoPath:        v.GetString("EXPORT_LOGO_PATH"),
			Retention:       parseDuration(v.GetString("EXPORT_RETENTION"), 24*time.Hour),
			JanitorInterval: parseDuration(v.GetString("EXPORT_JANITOR_INTERVAL"), time.Hour),
		},
		RateLimit: RateLimitConfig{
			SigninRPS:   v.GetFloat64("SIGNIN_RATE_RPS"),
			SigninBurst: v.GetInt("SIGNIN_RATE_BURST"),
		},
		Platform: PlatformConfig{
			AdminKey:    v.GetString("PLATFORM_ADMIN_KEY"),
			TrialPeriod: parseDuration(v.GetString("TRIAL_PERIOD"), 720*time.Hour),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		return errors.New("DB_DRIVER must be mysql or postgres")
	}

	if c.Server.GinMode == "release" {
		if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
			return errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required in release mode")
		}
	}
	if c.JWT.AccessSecret == "" {
		c.JWT.AccessSecret = "dev-access-secret"
	}
	if c.JWT.RefreshSecret == "" {
		c.JWT.RefreshSecret = "dev-refresh-secret"
	}

	if c.RateLimit.SigninRPS <= 0 {
		c.RateLimit.SigninRPS = 1
	}
	if c.RateLimit.SigninBurst <= 0 {
		c.RateLimit.SigninBurst = 5
	}
	return nil
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func parseOrigins(s string) []string {
	origins := []string{}
	for _, origin := range strings.Split(s, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
