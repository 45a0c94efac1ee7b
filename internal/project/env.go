package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override logmap.toml.
const (
	EnvUpdate         = "LOGMAP_UPDATE"
	EnvMap            = "LOGMAP_MAP"
	EnvRequireMessage = "LOGMAP_REQUIRE_MESSAGE"
	EnvMarker         = "LOGMAP_MARKER"
	EnvJobs           = "LOGMAP_JOBS"
)

var envKeys = []string{EnvUpdate, EnvMap, EnvRequireMessage, EnvMarker, EnvJobs}

// LoadEnv collects LOGMAP_* settings. Values from a .env file in dir are
// read first; the process environment wins over them. A missing .env is
// not an error.
func LoadEnv(dir string) (map[string]string, error) {
	env := make(map[string]string)
	if dir != "" {
		dotenv := filepath.Join(dir, ".env")
		values, err := godotenv.Read(dotenv)
		switch {
		case err == nil:
			for _, k := range envKeys {
				if v, ok := values[k]; ok {
					env[k] = v
				}
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("%s: %w", dotenv, err)
		}
	}
	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides c with the values in env.
func (c *Config) ApplyEnv(env map[string]string) error {
	if v := strings.TrimSpace(env[EnvUpdate]); v != "" {
		c.Scan.Update = v
	}
	if v := strings.TrimSpace(env[EnvMap]); v != "" {
		c.Manifest.Path = v
	}
	if v := strings.TrimSpace(env[EnvMarker]); v != "" {
		c.Scan.Marker = v
	}
	if v := strings.TrimSpace(env[EnvRequireMessage]); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequireMessage, err)
		}
		c.Scan.RequireMessage = b
	}
	if v := strings.TrimSpace(env[EnvJobs]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJobs, err)
		}
		c.Scan.Jobs = n
	}
	return c.Validate()
}
