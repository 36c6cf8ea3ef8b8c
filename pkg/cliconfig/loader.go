package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/stringd/pkg/logging"
)

const (
	// GlobalConfigDir is the directory for global config
	GlobalConfigDir = "stringd"
)

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".stringd.yaml", ".stringd.yml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// FindLocalConfig searches for .stringd.yaml or .stringd.yml in dir.
// Returns empty string if not found.
func FindLocalConfig(dir string) string {
	for _, name := range LocalConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindGlobalConfig returns the path to the global config file.
// Returns empty string if not found.
func FindGlobalConfig() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range GlobalConfigFileNames {
		path := filepath.Join(configDir, GlobalConfigDir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigFile loads a CLIConfig from a YAML file.
func LoadConfigFile(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		cerr := &ConfigError{Path: path, Message: err.Error()}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
			cerr.Message = typeErr.Errors[0]
		}
		return nil, cerr
	}
	return &cfg, nil
}

// ConfigError represents a configuration file error with location info.
type ConfigError struct {
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Path + ": " + e.Message
}

// LoadOptions controls which sources LoadAll consults.
type LoadOptions struct {
	// ConfigFile, when set, replaces the local config search.
	ConfigFile string

	// WorkDir is searched for a local config. Defaults to the current directory.
	WorkDir string

	// SkipGlobal disables the global config lookup.
	SkipGlobal bool

	// Getenv reads environment variables. Defaults to os.Getenv.
	Getenv func(string) string
}

// LoadAll loads configuration from all sources and merges them.
// Precedence: env > local config > global config > defaults.
// Flags are applied by the caller with MergeConfig and SourceFlag.
func LoadAll(opts LoadOptions) (*CLIConfig, error) {
	cfg := NewDefault()

	if !opts.SkipGlobal {
		if globalPath := FindGlobalConfig(); globalPath != "" {
			globalCfg, err := LoadConfigFile(globalPath)
			if err != nil {
				return nil, err
			}
			MergeConfig(cfg, globalCfg, SourceGlobal)
		}
	}

	localPath := opts.ConfigFile
	if localPath == "" {
		dir := opts.WorkDir
		if dir == "" {
			dir, _ = os.Getwd()
		}
		localPath = FindLocalConfig(dir)
	}
	if localPath != "" {
		localCfg, err := LoadConfigFile(localPath)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, localCfg, SourceLocal)
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if err := LoadEnvConfig(cfg, getenv); err != nil {
		return nil, err
	}

	// Without an explicit url, clients follow the configured port.
	if cfg.Sources["url"] == SourceDefault {
		cfg.URL = DefaultURL(cfg.Port)
	}
	return cfg, nil
}

// Validate reports the first out-of-range value.
func (c *CLIConfig) Validate() error {
	switch {
	case c.Port < 0 || c.Port > 65535:
		return fmt.Errorf("port %d out of range (0-65535)", c.Port)
	case c.ReadTimeout < 0:
		return fmt.Errorf("readTimeout must not be negative, got %d", c.ReadTimeout)
	case c.WriteTimeout < 0:
		return fmt.Errorf("writeTimeout must not be negative, got %d", c.WriteTimeout)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("maxBodyBytes must be positive, got %d", c.MaxBodyBytes)
	case !logging.IsValidLevel(c.LogLevel):
		return fmt.Errorf("unknown logLevel %q (debug, info, warn, error)", c.LogLevel)
	case c.LogFormat != "" && c.LogFormat != string(logging.FormatText) && c.LogFormat != string(logging.FormatJSON):
		return fmt.Errorf("unknown logFormat %q (text, json)", c.LogFormat)
	}
	return nil
}
