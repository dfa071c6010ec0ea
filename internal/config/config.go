// Package config loads nandadx settings from a TOML file, with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "NANDADX_CONFIG"

// Config holds all nandadx configuration.
type Config struct {
	Data   DataConfig   `toml:"data"`
	Engine EngineConfig `toml:"engine"`
	Log    LogConfig    `toml:"log"`
	ONNX   ONNXConfig   `toml:"onnx"`
	Server ServerConfig `toml:"server"`
}

// DataConfig locates the input tables and the model artifact.
type DataConfig struct {
	Attributes  string `toml:"attributes"`
	LabelColumn string `toml:"label_column"`
	Model       string `toml:"model"`
	Care        string `toml:"care"`
}

// EngineConfig tunes the suggestion engine.
type EngineConfig struct {
	Threshold float64 `toml:"threshold"`
}

// LogConfig locates the evaluation log. An empty SQLite path disables the
// mirror.
type LogConfig struct {
	CSV    string `toml:"csv"`
	SQLite string `toml:"sqlite"`
}

// ONNXConfig configures the ONNX Runtime backend for .onnx models.
type ONNXConfig struct {
	Library string `toml:"library"`
	Input   string `toml:"input"`
	Output  string `toml:"output"`
}

// ServerConfig configures the HTTP form.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns a Config with the file names the form ships with.
func DefaultConfig() Config {
	return Config{
		Data: DataConfig{
			Attributes:  "Dados.csv",
			LabelColumn: "diagnostico_de_Enfermagem",
			Model:       "modelo.json",
			Care:        "cuidados_diags.csv",
		},
		Engine: EngineConfig{Threshold: 0.1},
		Log:    LogConfig{CSV: "resultado_avaliacoes.csv"},
		ONNX: ONNXConfig{
			Input:  "float_input",
			Output: "probabilities",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	var errs []error
	if c.Engine.Threshold < 0 || c.Engine.Threshold >= 1 {
		errs = append(errs, fmt.Errorf("engine.threshold %v must be in [0, 1)", c.Engine.Threshold))
	}
	if c.Data.Attributes == "" {
		errs = append(errs, errors.New("data.attributes is required"))
	}
	if c.Data.Model == "" {
		errs = append(errs, errors.New("data.model is required"))
	}
	if c.Data.LabelColumn == "" {
		errs = append(errs, errors.New("data.label_column is required"))
	}
	if c.Log.CSV == "" {
		errs = append(errs, errors.New("log.csv is required"))
	}
	return errors.Join(errs...)
}

// ResolvePath returns the config file path: flag value first, then
// $NANDADX_CONFIG, then $XDG_CONFIG_HOME/nandadx/config.toml (falling back
// to ~/.config).
func ResolvePath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "nandadx", "config.toml"), nil
}

// Load reads the config at path over the defaults. A missing file yields
// the defaults. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides values from NANDADX_* environment variables.
func (c *Config) applyEnv() error {
	strs := []struct {
		env string
		dst *string
	}{
		{"NANDADX_ATTRIBUTES", &c.Data.Attributes},
		{"NANDADX_MODEL", &c.Data.Model},
		{"NANDADX_CARE", &c.Data.Care},
		{"NANDADX_LOG_CSV", &c.Log.CSV},
		{"NANDADX_LOG_SQLITE", &c.Log.SQLite},
		{"NANDADX_ONNX_LIBRARY", &c.ONNX.Library},
		{"NANDADX_ADDR", &c.Server.Addr},
	}
	for _, s := range strs {
		if v := os.Getenv(s.env); v != "" {
			*s.dst = v
		}
	}
	if v := os.Getenv("NANDADX_THRESHOLD"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("NANDADX_THRESHOLD: %w", err)
		}
		c.Engine.Threshold = t
	}
	return nil
}

// Marshal encodes the config as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Save writes the config to path, creating parent directories. An existing
// file is only replaced when overwrite is set.
func (c Config) Save(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
