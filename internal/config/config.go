package config

import (
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults written to a freshly created config file
const (
	DefaultPath      = "config/restadmin.json"
	DefaultPort      = 7070
	DefaultHost      = "0.0.0.0"
	PlaceholderToken = "changeme"

	// MinTokenLength is the shortest token the server will accept
	MinTokenLength = 12

	// EnvPrefix prefixes environment overrides, e.g. RESTADMIN_TOKEN
	EnvPrefix = "RESTADMIN"
)

const defaultFile = `{
  "port": 7070,
  "host": "0.0.0.0",
  "token": "changeme"
}
`

// Errors
var (
	ErrTokenPlaceholder = errors.New("token is still the placeholder default")
	ErrTokenTooShort    = fmt.Errorf("token is shorter than %d characters", MinTokenLength)
	ErrInvalidPort      = errors.New("port must be between 1 and 65535")
)

// Config is the admin API configuration. It is loaded once at startup.
type Config struct {
	Port  uint16
	Host  string
	Token string
}

// fileConfig mirrors the JSON file; the port is decoded wide so that
// out-of-range values are rejected instead of truncated
type fileConfig struct {
	Port  int    `mapstructure:"port"`
	Host  string `mapstructure:"host"`
	Token string `mapstructure:"token"`
}

// Load reads the config file at path, creating it with placeholder defaults
// if it does not exist. An optional .env file in the working directory and
// RESTADMIN_* environment variables override file values. The returned
// config has been validated.
func Load(path string) (*Config, error) {
	// Ignore error if file doesn't exist
	_ = godotenv.Load()

	if err := ensureFile(path); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", DefaultHost)
	v.SetDefault("token", "")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var raw fileConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	if raw.Port < 1 || raw.Port > math.MaxUint16 {
		return nil, ErrInvalidPort
	}

	cfg := &Config{
		Port:  uint16(raw.Port),
		Host:  raw.Host,
		Token: raw.Token,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the token strength rules
func (c *Config) Validate() error {
	if c.Token == PlaceholderToken {
		return ErrTokenPlaceholder
	}
	if utf8.RuneCountInString(c.Token) < MinTokenLength {
		return ErrTokenTooShort
	}
	if c.Port == 0 {
		return ErrInvalidPort
	}
	return nil
}

// Addr returns the host:port listen address
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

// ensureFile writes the default config if nothing exists at path
func ensureFile(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultFile), 0o600); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}
