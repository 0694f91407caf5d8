package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/quadra/internal/domain"
)

// LoadConfig loads quadra.yaml from the workspace root and applies defaults.
// Values <= 0 are ignored.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	q := y.Quadra
	if q.Reference.Steps > 0 {
		cfg.Reference.Steps = q.Reference.Steps
	}
	if q.Reference.SimpsonSteps > 0 {
		cfg.Reference.SimpsonSteps = q.Reference.SimpsonSteps
	}
	if q.Search.MaxSubintervals > 0 {
		cfg.Search.MaxSubintervals = q.Search.MaxSubintervals
	}
	if s := strings.TrimSpace(q.Search.Timeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return cfg, &domain.OpError{
				Op:    "workspacefinder.loadconfig",
				Kind:  domain.KindInvalidConfig,
				Path:  path,
				Field: "quadra.search.timeout",
				Err:   fmt.Errorf("%w: %w", err, domain.ErrInvalidConfig),
			}
		}
		if d > 0 {
			cfg.Search.Timeout = d
		}
	}
	if q.Interval.Strict != nil {
		cfg.Interval.Strict = *q.Interval.Strict
	}
	if q.Batch.Workers > 0 {
		cfg.Batch.Workers = q.Batch.Workers
	}
	if q.Server.Addr != "" {
		cfg.Server.Addr = q.Server.Addr
	}

	return cfg, nil
}

type yamlConfig struct {
	Quadra struct {
		Reference struct {
			Steps        int `yaml:"steps"`
			SimpsonSteps int `yaml:"simpson_steps"`
		} `yaml:"reference"`

		Search struct {
			MaxSubintervals int    `yaml:"max_subintervals"`
			Timeout         string `yaml:"timeout"`
		} `yaml:"search"`

		Interval struct {
			Strict *bool `yaml:"strict"`
		} `yaml:"interval"`

		Batch struct {
			Workers int `yaml:"workers"`
		} `yaml:"batch"`

		Server struct {
			Addr string `yaml:"addr"`
		} `yaml:"server"`
	} `yaml:"quadra"`
}
