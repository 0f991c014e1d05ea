package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// Store backends selectable with LEDGER_STORE.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// RedisURL enables the report cache, the redis limiter store and the worker. Empty disables them.
	RedisURL           string
	ReportCacheTTL     time.Duration
	RateLimit          string
	CORSAllowedOrigins []string
	IntegrityCron      string
	LedgerStore        string

	Roles domain.AccountRoles
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	defaults := domain.DefaultAccountRoles()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "ledger_engine")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REPORT_CACHE_TTL", "10m")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("INTEGRITY_CRON", "@hourly")
	v.SetDefault("LEDGER_STORE", StorePostgres)
	v.SetDefault("LEDGER_CASH_ACCOUNT", defaults.Cash)
	v.SetDefault("LEDGER_AR_ACCOUNT", defaults.AccountsReceivable)
	v.SetDefault("LEDGER_REVENUE_ACCOUNT", defaults.Revenue)
	v.SetDefault("LEDGER_EXPENSE_ACCOUNT", defaults.Expense)
	v.SetDefault("LEDGER_EXPENSE_CATEGORY_ACCOUNTS", "")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:   v.GetString("PGSQL_URL"),
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		EnableDBCheck: v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		RedisURL:      v.GetString("REDIS_URL"),
		RateLimit:     v.GetString("RATE_LIMIT"),
		IntegrityCron: v.GetString("INTEGRITY_CRON"),
		LedgerStore:   strings.ToLower(strings.TrimSpace(v.GetString("LEDGER_STORE"))),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	var err error
	cfg.JWTExpiryDuration, err = durationOr(v.GetString("JWT_EXPIRY_DURATION"), time.Hour)
	if err != nil {
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION. Defaulting to %s.\n", cfg.JWTExpiryDuration)
	}
	cfg.ReportCacheTTL, err = durationOr(v.GetString("REPORT_CACHE_TTL"), 10*time.Minute)
	if err != nil {
		log.Printf("Warning: Invalid value for REPORT_CACHE_TTL. Defaulting to %s.\n", cfg.ReportCacheTTL)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.LedgerStore {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StoreMemory:
	default:
		return nil, fmt.Errorf("invalid LEDGER_STORE %q: want %s or %s", cfg.LedgerStore, StorePostgres, StoreMemory)
	}

	byCategory, err := ParseCategoryAccounts(v.GetString("LEDGER_EXPENSE_CATEGORY_ACCOUNTS"))
	if err != nil {
		return nil, err
	}
	cfg.Roles = domain.AccountRoles{
		Cash:               v.GetString("LEDGER_CASH_ACCOUNT"),
		AccountsReceivable: v.GetString("LEDGER_AR_ACCOUNT"),
		Revenue:            v.GetString("LEDGER_REVENUE_ACCOUNT"),
		Expense:            v.GetString("LEDGER_EXPENSE_ACCOUNT"),
		ExpenseByCategory:  byCategory,
	}

	return cfg, nil
}

// ParseCategoryAccounts parses "Rent=5100,Utilities=5200" into a category map.
func ParseCategoryAccounts(raw string) (map[domain.ExpenseCategory]string, error) {
	out := map[domain.ExpenseCategory]string{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, number, ok := strings.Cut(pair, "=")
		category := domain.ExpenseCategory(strings.TrimSpace(name))
		number = strings.TrimSpace(number)
		if !ok || number == "" {
			return nil, fmt.Errorf("invalid LEDGER_EXPENSE_CATEGORY_ACCOUNTS entry %q", pair)
		}
		if !category.Valid() {
			return nil, fmt.Errorf("unknown expense category %q in LEDGER_EXPENSE_CATEGORY_ACCOUNTS", category)
		}
		out[category] = number
	}
	return out, nil
}

func durationOr(raw string, fallback time.Duration) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback, fmt.Errorf("invalid duration %q", raw)
	}
	return d, nil
}
