package cliconfig

import (
	"fmt"
	"strconv"
)

// Environment variable names.
const (
	EnvHost         = "STRINGD_HOST"
	EnvPort         = "STRINGD_PORT"
	EnvReadTimeout  = "STRINGD_READ_TIMEOUT"
	EnvWriteTimeout = "STRINGD_WRITE_TIMEOUT"
	EnvMaxBodyBytes = "STRINGD_MAX_BODY_BYTES"
	EnvLogLevel     = "STRINGD_LOG_LEVEL"
	EnvLogFormat    = "STRINGD_LOG_FORMAT"
	EnvURL          = "STRINGD_URL"
)

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.Host != "" {
		target.Host = source.Host
		target.Sources["host"] = sourceType
	}
	if source.Port != 0 {
		target.Port = source.Port
		target.Sources["port"] = sourceType
	}
	if source.ReadTimeout != 0 {
		target.ReadTimeout = source.ReadTimeout
		target.Sources["readTimeout"] = sourceType
	}
	if source.WriteTimeout != 0 {
		target.WriteTimeout = source.WriteTimeout
		target.Sources["writeTimeout"] = sourceType
	}
	if source.MaxBodyBytes != 0 {
		target.MaxBodyBytes = source.MaxBodyBytes
		target.Sources["maxBodyBytes"] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources["logFormat"] = sourceType
	}
	if source.URL != "" {
		target.URL = source.URL
		target.Sources["url"] = sourceType
	}
}

// LoadEnvConfig applies STRINGD_* environment variables to cfg.
// A malformed numeric value is an error rather than silently ignored.
func LoadEnvConfig(cfg *CLIConfig, getenv func(string) string) error {
	var env CLIConfig
	env.Host = getenv(EnvHost)
	env.LogLevel = getenv(EnvLogLevel)
	env.LogFormat = getenv(EnvLogFormat)
	env.URL = getenv(EnvURL)

	ints := []struct {
		name string
		dst  *int
	}{
		{EnvPort, &env.Port},
		{EnvReadTimeout, &env.ReadTimeout},
		{EnvWriteTimeout, &env.WriteTimeout},
	}
	for _, e := range ints {
		raw := getenv(e.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", e.name, raw, err)
		}
		*e.dst = n
	}
	if raw := getenv(EnvMaxBodyBytes); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxBodyBytes, raw, err)
		}
		env.MaxBodyBytes = n
	}

	MergeConfig(cfg, &env, SourceEnv)
	return nil
}
