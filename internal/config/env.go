package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Resolve builds the effective config: .env first, then the YAML file, then
// SL_* environment overrides. flagPath wins over SL_CONFIG.
func Resolve(flagPath string) (*Config, error) {
	// A missing .env is fine; existing environment variables are never overwritten.
	_ = godotenv.Load()

	path := strings.TrimSpace(flagPath)
	if path == "" {
		path = os.Getenv("SL_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from SL_* variables. Unset or empty variables are ignored.
func (c *Config) ApplyEnv() error {
	if v := getEnv("SL_DB_PATH"); v != "" {
		c.Database.Path = expandHome(v)
	}
	if v := getEnv("SL_PLAYER"); v != "" {
		c.Player = v
	}
	if v := getEnv("SL_TIMEZONE"); v != "" {
		c.Day.Timezone = v
	}
	if v := getEnv("SL_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := getEnv("SL_ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = v
	}

	if n, ok, err := getEnvInt("SL_DAY_BOUNDARY_HOUR"); err != nil {
		return err
	} else if ok {
		c.Day.BoundaryHour = n
	}
	if n, ok, err := getEnvInt("SL_SAVE_RETRIES"); err != nil {
		return err
	} else if ok {
		c.Store.SaveRetries = n
	}

	if v := getEnv("SL_SWEEP"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SL_SWEEP: %w", err)
		}
		c.Sweep.Enabled = &on
	}
	return nil
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getEnvInt(key string) (int, bool, error) {
	val := getEnv(key)
	if val == "" {
		return 0, false, nil
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return num, true, nil
}
