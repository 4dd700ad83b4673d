// Package config loads the service settings from YAML, with .env and
// environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/LaliPerez/registro-asistencia/internal/signature"
)

const (
	DefaultPath = "config/config.yaml"

	ModeDev     = "dev"
	ModeRelease = "release"
)

// Environment variables taking precedence over the file.
const (
	EnvMode     = "REGISTRO_MODE"
	EnvAddr     = "REGISTRO_ADDR"
	EnvLogLevel = "REGISTRO_LOG_LEVEL"
)

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type Certs struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

// Enabled reports whether both files are configured.
func (c Certs) Enabled() bool { return c.Cert != "" && c.Key != "" }

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json | text
}

type SignatureConfig struct {
	Width           int `yaml:"width"`
	Height          int `yaml:"height"`
	signature.Style `yaml:",inline"`
}

type Config struct {
	Version     string          `yaml:"version"`
	Mode        string          `yaml:"mode"`
	Server      ServerConfig    `yaml:"server"`
	Certificate Certs           `yaml:"certificate"`
	CORS        CORSConfig      `yaml:"cors"`
	Log         LogConfig       `yaml:"log"`
	Signature   SignatureConfig `yaml:"signature"`
}

func Default() *Config {
	return &Config{
		Version: "dev",
		Mode:    ModeRelease,
		Server:  ServerConfig{Addr: ":8080"},
		CORS:    CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
		Log:     LogConfig{Level: "info", Format: "json"},
		Signature: SignatureConfig{
			Width:  signature.DefaultWidth,
			Height: signature.DefaultHeight,
			Style:  signature.DefaultStyle(),
		},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an
// error. Variables from a .env file in the working directory are loaded
// first; they never override the real environment.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	buf, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvMode); v != "" {
		c.Mode = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) Validate() error {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	if c.Mode != ModeDev && c.Mode != ModeRelease {
		return fmt.Errorf("invalid mode %q: want %s or %s", c.Mode, ModeDev, ModeRelease)
	}
	if c.IsDev() && len(c.CORS.AllowOrigins) == 0 {
		return errors.New("cors.allow_origins is required in dev mode")
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Signature.Width < 0 || c.Signature.Height < 0 {
		return fmt.Errorf("invalid signature size %dx%d", c.Signature.Width, c.Signature.Height)
	}
	return nil
}

func (c *Config) IsDev() bool { return c.Mode == ModeDev }
