// Package config loads and saves the YAML configuration file.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/gensuite/internal/domain"
	"github.com/doeshing/gensuite/internal/pkg/filesystem"
	"github.com/doeshing/gensuite/internal/ports"
)

// FileLoader loads YAML configuration from ~/.gensuite/config.yaml
// (overridable via GENSUITE_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is replaced with
// the written default configuration.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := write(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

// Save implements ports.ConfigSaver.
func (l *FileLoader) Save(_ context.Context, cfg domain.Config) error {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return write(path, hydrateDefaults(cfg))
}

// Reset rewrites the file with defaults and returns them.
func (l *FileLoader) Reset() (domain.Config, error) {
	cfg := DefaultConfig()
	if err := l.Save(context.Background(), cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Path returns the resolved configuration file path.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("GENSUITE_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".gensuite", "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func write(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		UI: domain.UISettings{
			Scheme:     domain.SchemeClassic,
			Animations: true,
		},
		Engine: domain.EngineSettings{
			Binary: "gensuite-helper",
		},
		Governor: domain.GovernorSettings{
			PrimesBudgetSeconds: 30,
		},
		History: domain.HistorySettings{
			Enabled: true,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if !domain.ValidScheme(cfg.UI.Scheme) {
		cfg.UI.Scheme = domain.SchemeClassic
	}
	if cfg.Engine.Binary == "" {
		cfg.Engine.Binary = "gensuite-helper"
	}
	if cfg.Governor.PrimesBudgetSeconds <= 0 {
		cfg.Governor.PrimesBudgetSeconds = 30
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
var _ ports.ConfigSaver = (*FileLoader)(nil)
