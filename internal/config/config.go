// Package config loads catalog service settings.
//
// Sources are layered, later ones winning: built-in defaults, an optional
// YAML file, an optional .env file, then the process environment. Env keys
// use the CATALOG_ prefix with the first underscore separating section and
// key, so CATALOG_HTTP_READ_HEADER_TIMEOUT sets http.read_header_timeout.
// A bare PORT variable overrides http.port.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "CATALOG_"

type Config struct {
	HTTP      HTTPConfig      `koanf:"http"`
	Log       LogConfig       `koanf:"log"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Store     StoreConfig     `koanf:"store"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
}

type HTTPConfig struct {
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// Addr is the listen address for Port on all interfaces.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Token   string `koanf:"token" validate:"required_if=Enabled true"`
}

type StoreConfig struct {
	IDs string `koanf:"ids" validate:"oneof=size sequence"`
}

type RateLimitConfig struct {
	Create int           `koanf:"create" validate:"min=0"`
	Window time.Duration `koanf:"window" validate:"gt=0"`
}

func defaults() map[string]any {
	return map[string]any{
		"http.port":                8082,
		"http.read_header_timeout": 5 * time.Second,
		"http.shutdown_timeout":    10 * time.Second,
		"log.level":                "info",
		"metrics.enabled":          false,
		"metrics.token":            "",
		"store.ids":                "size",
		"ratelimit.create":         0,
		"ratelimit.window":         time.Minute,
	}
}

// Load reads configFile and envFile when they exist; empty paths are skipped.
func Load(configFile, envFile string) (Config, error) {
	var cfg Config
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return cfg, fmt.Errorf("load defaults: %w", err)
	}

	if exists(configFile) {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("load config file %q: %w", configFile, err)
		}
	}

	if exists(envFile) {
		vars, err := godotenv.Read(envFile)
		if err != nil {
			return cfg, fmt.Errorf("read env file %q: %w", envFile, err)
		}
		fromFile := make(map[string]any)
		for key, val := range vars {
			if strings.HasPrefix(key, EnvPrefix) {
				fromFile[envKey(key)] = val
			}
		}
		if err := k.Load(confmap.Provider(fromFile, "."), nil); err != nil {
			return cfg, fmt.Errorf("load env file %q: %w", envFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return cfg, fmt.Errorf("load environment: %w", err)
	}

	if port, ok := os.LookupEnv("PORT"); ok && port != "" {
		if err := k.Set("http.port", port); err != nil {
			return cfg, fmt.Errorf("apply PORT: %w", err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}

// String renders the effective configuration with secrets masked.
func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "http.port=%d http.read_header_timeout=%s http.shutdown_timeout=%s ",
		c.HTTP.Port, c.HTTP.ReadHeaderTimeout, c.HTTP.ShutdownTimeout)
	fmt.Fprintf(&b, "log.level=%s metrics.enabled=%t metrics.token=%s ",
		c.Log.Level, c.Metrics.Enabled, mask(c.Metrics.Token))
	fmt.Fprintf(&b, "store.ids=%s ratelimit.create=%d ratelimit.window=%s",
		c.Store.IDs, c.RateLimit.Create, c.RateLimit.Window)
	return b.String()
}

func mask(s string) string {
	if s == "" {
		return "<unset>"
	}
	return "****"
}

// envKey maps CATALOG_SECTION_SOME_KEY to section.some_key.
func envKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
