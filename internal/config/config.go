package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gracepoint-dev/church-admin-be/internal/models"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string
	TokenTTL    time.Duration
	CORSOrigins []string

	// Accounts is the fixed list of receiving bank accounts served by the
	// account-details endpoint. Overridable via ACCOUNTS_FILE.
	Accounts []models.BankAccount

	// SeedAdminUsername/Password bootstrap a regional_admin when the users
	// table is empty. Both empty disables seeding.
	SeedAdminUsername string
	SeedAdminPassword string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:              fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:         fallback(os.Getenv("JWT_ISSUER"), "church-admin-backend"),
		CORSOrigins:       parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		SeedAdminUsername: strings.TrimSpace(os.Getenv("SEED_ADMIN_USERNAME")),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}

	hours := fallback(os.Getenv("TOKEN_TTL_HOURS"), "24")
	if ttlHours, err := strconv.Atoi(hours); err == nil && ttlHours > 0 {
		cfg.TokenTTL = time.Duration(ttlHours) * time.Hour
	} else {
		cfg.TokenTTL = 24 * time.Hour
	}

	accounts, err := loadAccounts(strings.TrimSpace(os.Getenv("ACCOUNTS_FILE")))
	if err != nil {
		return Config{}, err
	}
	cfg.Accounts = accounts

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func loadAccounts(path string) ([]models.BankAccount, error) {
	if path == "" {
		return defaultAccounts(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}
	var accounts []models.BankAccount
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("parse accounts file: %w", err)
	}
	if len(accounts) == 0 {
		return nil, errors.New("accounts file contains no accounts")
	}
	return accounts, nil
}

func defaultAccounts() []models.BankAccount {
	return []models.BankAccount{
		{ID: 1, AccountType: "tithe", AccountName: "DLBC Tithe", AccountNumber: "0123456789", BankName: "First Bank", SortCode: "12-34-56"},
		{ID: 2, AccountType: "offering", AccountName: "DLBC Offering", AccountNumber: "9876543210", BankName: "Zenith Bank", SortCode: "65-43-21"},
		{ID: 3, AccountType: "building_fund", AccountName: "DLBC Building Fund", AccountNumber: "1122334455", BankName: "Access Bank", SortCode: "99-88-77"},
	}
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
