// Package testutils holds helpers shared by handler, module and server tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/nfrund/learnhub/internal/config"
	"github.com/nfrund/learnhub/internal/logging"
)

// ConfigForTests returns a config backed by an in-memory SQLite store and a
// temporary assets directory. Values in a .env.test file at the project
// root, if there is one, are applied on top.
func ConfigForTests(t *testing.T) config.Provider {
	t.Helper()

	t.Setenv("STORE_DRIVER", config.DriverSQLite)
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("ASSETS_DIR", t.TempDir())
	t.Setenv("SESSION_SECRET", SessionSecret)
	t.Setenv("TRACING_ENABLED", "false")

	if root, ok := projectRoot(); ok {
		if env, err := godotenv.Read(filepath.Join(root, ".env.test")); err == nil {
			for key, value := range env {
				t.Setenv(key, value)
			}
		}
	}

	logging.New(os.Getenv("LOG_FORMAT"))
	return config.New()
}

// projectRoot walks up from the working directory to the go.mod.
func projectRoot() (string, bool) {
	path, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			return path, true
		}
		if path == filepath.Dir(path) {
			return "", false
		}
		path = filepath.Dir(path)
	}
}
