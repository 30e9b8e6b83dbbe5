package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/SscSPs/landed_pricing_app/internal/core/pricing"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	RunMigrations  bool
	MigrationsPath string

	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration

	// Pricing policy
	HomeCurrency       string
	DefaultTransport   domain.TransportMode
	FreightAirPct      decimal.Decimal
	FreightMaritimePct decimal.Decimal
	DefaultMarkupPct   decimal.Decimal
	RecalcWorkers      int

	// Events
	RedisURL     string
	RedisChannel string

	// HTTP edge
	AllowedOrigins []string
	RateLimit      string

	// Logging
	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
}

// LoadConfig loads configuration from environment variables and .env file if present.
// Environment variables override .env values, which override defaults.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", false)
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "landed-pricing-app")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("HOME_CURRENCY", "MXN")
	v.SetDefault("DEFAULT_TRANSPORT", string(domain.TransportMaritime))
	v.SetDefault("FREIGHT_AIR_PCT", "0.10")
	v.SetDefault("FREIGHT_MARITIME_PCT", "0.05")
	v.SetDefault("DEFAULT_MARKUP_PCT", "0.10")
	v.SetDefault("RECALC_WORKERS", 8)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_CHANNEL", "authorization_events")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "200-M")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 50)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:  v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		HomeCurrency:   strings.ToUpper(strings.TrimSpace(v.GetString("HOME_CURRENCY"))),
		RecalcWorkers:  v.GetInt("RECALC_WORKERS"),
		RedisURL:       v.GetString("REDIS_URL"),
		RedisChannel:   v.GetString("REDIS_CHANNEL"),
		RateLimit:      v.GetString("RATE_LIMIT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFile:        v.GetString("LOG_FILE"),
		LogMaxSizeMB:   v.GetInt("LOG_MAX_SIZE_MB"),
		LogMaxBackups:  v.GetInt("LOG_MAX_BACKUPS"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	expiry, err := time.ParseDuration(v.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		expiry = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", v.GetString("JWT_EXPIRY_DURATION"), expiry)
	}
	cfg.JWTExpiryDuration = expiry

	cfg.DefaultTransport = domain.ParseTransportMode(v.GetString("DEFAULT_TRANSPORT"))
	if !cfg.DefaultTransport.IsKnown() {
		return nil, fmt.Errorf("DEFAULT_TRANSPORT %q is not Air or Maritime", cfg.DefaultTransport)
	}

	for key, dst := range map[string]*decimal.Decimal{
		"FREIGHT_AIR_PCT":      &cfg.FreightAirPct,
		"FREIGHT_MARITIME_PCT": &cfg.FreightMaritimePct,
		"DEFAULT_MARKUP_PCT":   &cfg.DefaultMarkupPct,
	} {
		d, err := decimal.NewFromString(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		if d.IsNegative() {
			return nil, fmt.Errorf("%s must not be negative", key)
		}
		*dst = d
	}

	if cfg.RecalcWorkers < 1 {
		log.Printf("Warning: RECALC_WORKERS (%d) below 1. Defaulting to 1.\n", cfg.RecalcWorkers)
		cfg.RecalcWorkers = 1
	}

	for _, origin := range strings.Split(v.GetString("ALLOWED_ORIGINS"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg, nil
}

// PricingPolicy builds the calculator policy from the configured rates.
func (c *Config) PricingPolicy() pricing.Policy {
	return pricing.Policy{
		HomeCurrency: c.HomeCurrency,
		FreightPct: map[domain.TransportMode]decimal.Decimal{
			domain.TransportAir:      c.FreightAirPct,
			domain.TransportMaritime: c.FreightMaritimePct,
		},
		DefaultMarkup: c.DefaultMarkupPct,
	}
}
