package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/wbuild/internal/logfields"
)

// envFiles are read from the manifest's directory. .env.local is loaded
// first so its values win over .env; the process environment wins over both.
var envFiles = []string{".env.local", ".env"}

// loadEnvFiles loads every env file that exists next to the manifest and
// returns the paths it loaded.
func loadEnvFiles(dir string) ([]string, error) {
	var loaded []string
	for _, name := range envFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return loaded, fmt.Errorf("load %s: %w", p, err)
		}
		slog.Debug("Loaded environment file", logfields.Path(p))
		loaded = append(loaded, p)
	}
	return loaded, nil
}

// expandPath substitutes $VAR and ${VAR} references in a path field.
// References to unset variables are kept, in ${VAR} form. The build command
// is never expanded; the shell does that itself.
func expandPath(field string, p *string) {
	if p == nil {
		return
	}
	expanded := os.Expand(*p, lookupKeep)
	if expanded != *p {
		slog.Debug("Expanded environment in path", logfields.Field(field), logfields.Path(expanded))
	}
	*p = expanded
}

func lookupKeep(name string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	if !isEnvName(name) {
		return "$" + name
	}
	return "${" + name + "}"
}

func isEnvName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
