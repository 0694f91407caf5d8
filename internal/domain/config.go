package domain

import "time"

// Config represents the quadra configuration loaded from quadra.yaml.
type Config struct {
	Reference ReferenceConfig
	Search    SearchConfig
	Interval  IntervalConfig
	Batch     BatchConfig
	Server    ServerConfig
}

type ReferenceConfig struct {
	// Steps is the step count of the per-rule high-resolution reference (fixed mode).
	Steps int
	// SimpsonSteps is the step count of the shared Simpson reference (tolerance mode).
	SimpsonSteps int
}

type SearchConfig struct {
	MaxSubintervals int
	Timeout         time.Duration
}

type IntervalConfig struct {
	// Strict makes fixed mode reject lower >= upper as tolerance mode always does.
	Strict bool
}

type BatchConfig struct {
	Workers int
}

type ServerConfig struct {
	Addr string
}

// DefaultConfig provides sane defaults if quadra.yaml is missing or partial.
func DefaultConfig() Config {
	return Config{
		Reference: ReferenceConfig{
			Steps:        1000,
			SimpsonSteps: 1000,
		},
		Search: SearchConfig{
			MaxSubintervals: 100000,
			Timeout:         30 * time.Second,
		},
		Batch:  BatchConfig{Workers: 4},
		Server: ServerConfig{Addr: ":8080"},
	}
}
