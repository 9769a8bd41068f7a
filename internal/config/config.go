// Package config loads the process-wide configuration. It is built once in
// main and passed explicitly to whatever needs it.
//
// Sources, later ones overriding earlier ones:
//  1. Defaults from the env-default tags below
//  2. An optional YAML file: CONFIG_PATH=/path/to/config.yaml or --config
//  3. Environment variables (a .env file is loaded into the environment by
//     main before MustLoad runs)
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	flag "github.com/spf13/pflag"
)

// Config is the root configuration structure.
// Every field maps to a YAML key and can be overridden by its env variable.
type Config struct {
	// Env selects log format and verbosity: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// StoragePath is the filesystem path to the SQLite .db file.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"students.db"`

	// SecretKey signs the flash-message cookie.
	SecretKey string `yaml:"secret_key" env:"SECRET_KEY" env-default:"dev-secret-key-change-me"`

	HTTPServer `yaml:"http_server"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on.
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"0.0.0.0:5000"`
}

// Load builds a Config. An empty path means environment and defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	// ReadConfig parses the file, then applies env overrides and defaults.
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return &cfg, nil
}

// MustLoad resolves the config path from CONFIG_PATH or --config and loads
// it, exiting the process on any error.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err.Error())
	}

	return cfg
}
