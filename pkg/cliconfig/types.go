// Package cliconfig provides configuration types and loading for the stringd CLI.
package cliconfig

// CLIConfig represents the complete configuration for the stringd CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.stringd.yaml in current directory)
// 4. Global config file (~/.config/stringd/config.yaml)
// 5. Default values (lowest priority)
type CLIConfig struct {
	// Server settings
	Host         string `yaml:"host" json:"host"`
	Port         int    `yaml:"port" json:"port"`
	ReadTimeout  int    `yaml:"readTimeout" json:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout" json:"writeTimeout"`
	MaxBodyBytes int64  `yaml:"maxBodyBytes" json:"maxBodyBytes"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`

	// Client settings
	URL string `yaml:"url" json:"url"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)
