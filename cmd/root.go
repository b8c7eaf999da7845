package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"spilcafe/internal/booking"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds CLI configuration. Flags override the environment.
type Config struct {
	DBPath      string        `env:"SPILCAFE_DB"`
	CatalogURL  string        `env:"SPILCAFE_CATALOG_URL"`
	HTTPTimeout time.Duration `env:"SPILCAFE_HTTP_TIMEOUT" envDefault:"10s"`
	DebugLog    string        `env:"SPILCAFE_DEBUG_LOG"`
	HomeCafe    string        `env:"SPILCAFE_HOME_CAFE"`
	ShowVersion bool
}

// ParseFlags parses the environment and command-line flags, runs first-time
// setup when needed and returns the configuration.
func ParseFlags() (*Config, error) {
	// .env files never override variables that are already set.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	config, err := parseConfig(os.Args[1:])
	if err != nil {
		return nil, err
	}
	if config.ShowVersion {
		return config, nil
	}

	configDir, err := resolveDBPath(config)
	if err != nil {
		return nil, err
	}

	settings, err := loadOnboardingSettings(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load onboarding settings: %w", err)
	}

	if config.HomeCafe == "" && shouldRunOnboarding(settings) {
		settings, err = runOnboarding(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to run onboarding: %w", err)
		}
	}

	if config.HomeCafe == "" {
		config.HomeCafe = settings.HomeCafe
	}
	return config, nil
}

func parseConfig(args []string) (*Config, error) {
	config := &Config{}
	if err := parseEnv(config); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("spilcafe", flag.ContinueOnError)
	fs.StringVar(&config.DBPath, "db", config.DBPath, "Path to SQLite database file (default: ~/.spilcafe/spilcafe.db)")
	fs.StringVar(&config.CatalogURL, "catalog-url", config.CatalogURL, "Game catalog URL (or set SPILCAFE_CATALOG_URL)")
	fs.StringVar(&config.HomeCafe, "cafe", config.HomeCafe, "Café preselected when reserving a table")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if config.HTTPTimeout <= 0 {
		return nil, errors.New("http timeout must be positive")
	}
	if config.HomeCafe != "" {
		if _, ok := booking.CafeByID(config.HomeCafe); !ok {
			return nil, fmt.Errorf("unknown café %q", config.HomeCafe)
		}
	}
	return config, nil
}

// parseEnv fills target from environment variables.
func parseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// resolveDBPath fills in the default database path and returns the directory
// that holds the app's files.
func resolveDBPath(config *Config) (string, error) {
	if config.DBPath != "" {
		return filepath.Dir(config.DBPath), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".spilcafe")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	config.DBPath = filepath.Join(configDir, "spilcafe.db")
	return configDir, nil
}
