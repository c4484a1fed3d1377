package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docfoundry/internal/logfields"
	"github.com/joho/godotenv"
)

// Environment variables understood by docfoundry.
const (
	EnvHiddenNavPaths = "MKDOCS_HIDDEN_NAV_PATHS"
	EnvConfigDir      = "MKDOCS_CONFIG_DIR"
	EnvAPIDir         = "MKDOCS_API_DIR"
)

// LoadEnvFiles loads .env.local and .env from dir. Variables already in the
// process environment are kept, and .env.local wins over .env.
func LoadEnvFiles(dir string) []string {
	var loaded []string
	for _, name := range []string{".env.local", ".env"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load environment file", logfields.Path(path), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(path))
		loaded = append(loaded, path)
	}
	return loaded
}
