package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Config is read from <data_dir>/config.yaml; every field is optional.
type Config struct {
	DataDir       string `yaml:"data_dir"`
	Storage       string `yaml:"storage"`
	LogLevel      string `yaml:"log_level"`
	MathExercises int    `yaml:"math_exercises"`
	PacksDir      string `yaml:"packs_dir"`
}

// DefaultDir returns ~/.mente.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".mente"), nil
}

func Default(dataDir string) Config {
	return Config{
		DataDir:       dataDir,
		Storage:       StorageFile,
		LogLevel:      "info",
		MathExercises: 25,
		PacksDir:      filepath.Join(dataDir, "packs"),
	}
}

// Load overlays the YAML file at path on top of Default(dataDir). An empty
// path means <dataDir>/config.yaml. A missing file yields the defaults.
func Load(path, dataDir string) (Config, error) {
	if dataDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return Config{}, err
		}
		dataDir = dir
	}
	if path == "" {
		path = filepath.Join(dataDir, "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(dataDir), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default(dataDir)
	// packs_dir follows data_dir unless the file names it.
	cfg.PacksDir = ""
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cfg.PacksDir == "" {
		cfg.PacksDir = filepath.Join(cfg.DataDir, "packs")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data dir is required")
	}
	switch c.Storage {
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("unsupported storage %q", c.Storage)
	}
	if c.MathExercises < 0 {
		return fmt.Errorf("math_exercises must be non-negative")
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log_level %q", c.LogLevel)
	}
	return nil
}

func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "mente.db")
}

func (c Config) StateDir() string {
	return filepath.Join(c.DataDir, "state")
}

func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "logs", "mente.log")
}
