package cliconfig

import "strconv"

// DefaultHost is the default listen address (all interfaces).
const DefaultHost = ""

// DefaultPort is the default HTTP port.
const DefaultPort = 8080

// DefaultReadTimeout is the default read timeout in seconds.
const DefaultReadTimeout = 30

// DefaultWriteTimeout is the default write timeout in seconds.
const DefaultWriteTimeout = 30

// DefaultMaxBodyBytes caps the size of a POST /strings body.
const DefaultMaxBodyBytes int64 = 1 << 20

// DefaultLogLevel is the default minimum log level.
const DefaultLogLevel = "info"

// DefaultLogFormat is the default log format.
const DefaultLogFormat = "text"

// DefaultURL returns the base URL a client uses to reach a server on port.
func DefaultURL(port int) string {
	if port == 0 {
		port = DefaultPort
	}
	return "http://localhost:" + strconv.Itoa(port)
}

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		Host:         DefaultHost,
		Port:         DefaultPort,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		MaxBodyBytes: DefaultMaxBodyBytes,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		URL:          DefaultURL(DefaultPort),
		Sources:      make(map[string]string),
	}
	for _, key := range []string{"host", "port", "readTimeout", "writeTimeout", "maxBodyBytes", "logLevel", "logFormat", "url"} {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}

// Addr returns the listen address for the configured host and port.
func (c *CLIConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
