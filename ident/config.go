package ident

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config selects and configures an identifier store backend.
//
// Example store.yaml:
//
//	backend: redis
//	redis:
//	  url: redis://localhost:6379
//	  namespace: obsgraph
type Config struct {
	// Backend is "memory", "redis", or "etcd". Defaults to "memory".
	Backend string `yaml:"backend,omitempty"`

	// ConflictCheck makes the memory backend reject rebinding an
	// identifier to a different value.
	ConflictCheck bool `yaml:"conflict_check,omitempty"`

	Redis RedisConfig `yaml:"redis,omitempty"`
	Etcd  EtcdConfig  `yaml:"etcd,omitempty"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	URL       string `yaml:"url,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
}

// EtcdConfig configures the etcd backend.
type EtcdConfig struct {
	Endpoints []string `yaml:"endpoints"`
	Namespace string   `yaml:"namespace,omitempty"`
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	switch c.Backend {
	case "", "memory", "redis":
	case "etcd":
		if len(c.Etcd.Endpoints) == 0 {
			return fmt.Errorf("etcd backend requires at least one endpoint")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Backend)
	}
	return nil
}

// LoadConfig reads and validates a YAML store configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewStore builds the store the configuration selects. The codec
// applies to remote backends and may be nil for JSON.
func NewStore(cfg *Config, codec Codec) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case "", "memory":
		var opts []MemOption
		if cfg.ConflictCheck {
			opts = append(opts, WithConflictCheck())
		}
		return NewMemStore(opts...), nil

	case "redis":
		return NewRedisStore(RedisOptions{
			URL:       cfg.Redis.URL,
			Namespace: cfg.Redis.Namespace,
			Codec:     codec,
		})

	case "etcd":
		return NewEtcdStore(EtcdOptions{
			Endpoints: cfg.Etcd.Endpoints,
			Namespace: cfg.Etcd.Namespace,
			Codec:     codec,
		})

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
