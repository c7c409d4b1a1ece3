package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/anhofer/smartime/internal/store"
)

// Config holds the runtime settings. Values come from a .env file in the
// working directory (if present) and the environment, in that precedence
// order for godotenv: real environment variables win.
type Config struct {
	// DBPath is the SQLite database location. SMARTIME_DB.
	DBPath string
	// ExportDir is where report files land. SMARTIME_EXPORT_DIR.
	ExportDir string
}

func Load() (Config, error) {
	// A missing .env is normal; only surface real read errors via env state.
	_ = godotenv.Load()

	cfg := Config{
		DBPath:    os.Getenv("SMARTIME_DB"),
		ExportDir: os.Getenv("SMARTIME_EXPORT_DIR"),
	}

	if cfg.DBPath == "" {
		path, err := store.DefaultDBPath()
		if err != nil {
			return Config{}, fmt.Errorf("resolve default db path: %w", err)
		}
		cfg.DBPath = path
	}
	if cfg.ExportDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.ExportDir = home
	}
	return cfg, nil
}
