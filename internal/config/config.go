package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	defaultBankName     = "Banco del Estado"
	defaultSigningKey   = "dev-signing-key"
	defaultSeedAccounts = "Oscar=1500.8989;John Doe=2500"
)

type SeedAccount struct {
	Owner   string
	Balance decimal.Decimal
}

type Config struct {
	BankName     string
	LogLevel     slog.Level
	SigningKey   string
	SeedAccounts []SeedAccount
}

// Load reads envFile when it exists, then the process environment. Variables
// already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(errors.Cause(err)) {
			return Config{}, errors.Wrapf(err, "load %s", envFile)
		}
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	seeds, err := ParseSeedAccounts(getEnv("SEED_ACCOUNTS", defaultSeedAccounts))
	if err != nil {
		return Config{}, err
	}

	return Config{
		BankName:     getEnv("BANK_NAME", defaultBankName),
		LogLevel:     level,
		SigningKey:   getEnv("SIGNING_KEY", defaultSigningKey),
		SeedAccounts: seeds,
	}, nil
}

// ParseSeedAccounts reads "owner=balance;owner=balance". Blank entries are
// skipped and the same owner may appear more than once.
func ParseSeedAccounts(raw string) ([]SeedAccount, error) {
	var seeds []SeedAccount
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		owner, amount, ok := strings.Cut(entry, "=")
		owner = strings.TrimSpace(owner)
		if !ok || owner == "" {
			return nil, errors.Errorf("invalid seed account %q: want owner=balance", entry)
		}

		balance, err := decimal.NewFromString(strings.TrimSpace(amount))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid balance for %q", owner)
		}
		seeds = append(seeds, SeedAccount{Owner: owner, Balance: balance})
	}
	return seeds, nil
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return level, errors.Wrapf(err, "invalid LOG_LEVEL %q", raw)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
