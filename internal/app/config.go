package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/kitresolve/internal/emit"
	"github.com/vk/kitresolve/internal/fsutil"
)

// DefaultInterval is how often the configuration file is polled in watch mode.
const DefaultInterval = 500 * time.Millisecond

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath  string // kit.config.* file; searched for in ProjectRoot when empty
	ProjectRoot string // defaults to the directory of ConfigPath

	Format  emit.Format
	OutPath string // stdout when empty
	TSBase  string // base directory for tsconfig paths
	Sandbox bool

	NotifyURL       string
	NotifyNamespace string

	Watch           bool
	Interval        time.Duration
	HealthcheckPort int

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in the derived fields: the project
// root and config path are made absolute and a missing config path is
// discovered in the project root.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Format == "" {
		cfg.Format = emit.FormatJSON
	}
	format, err := emit.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, err
	}
	cfg.Format = format
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck port %d is out of range", cfg.HealthcheckPort)
	}
	if cfg.HealthcheckPort > 0 && !cfg.Watch {
		return nil, errors.New("the health check server is only available in watch mode")
	}

	if cfg.ConfigPath != "" {
		abs, err := filepath.Abs(cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		cfg.ConfigPath = abs
		if cfg.ProjectRoot == "" {
			cfg.ProjectRoot = filepath.Dir(abs)
		}
	}

	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}
	root, err := filepath.Abs(cfg.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("invalid project root: %w", err)
	}
	cfg.ProjectRoot = root

	if cfg.ConfigPath == "" {
		found, err := fsutil.FindConfigFile(cfg.ProjectRoot)
		if err != nil {
			return nil, err
		}
		cfg.ConfigPath = found
	}

	return &cfg, nil
}
