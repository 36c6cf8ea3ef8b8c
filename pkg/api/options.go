// Option functions for configuring API.

package api

import (
	"log/slog"
	"time"

	"github.com/getmockd/stringd/internal/storage"
	"github.com/getmockd/stringd/pkg/analysis"
	"github.com/getmockd/stringd/pkg/metrics"
)

// Option configures an API.
type Option func(*API)

// WithStore sets the record store. Defaults to a new in-memory store.
func WithStore(s storage.StringStore) Option {
	return func(a *API) {
		if s != nil {
			a.store = s
		}
	}
}

// WithAnalyzer sets the analyzer used for new records.
func WithAnalyzer(an *analysis.Analyzer) Option {
	return func(a *API) {
		if an != nil {
			a.analyzer = an
		}
	}
}

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.log = log
		}
	}
}

// WithRegistry sets the metrics registry served on /metrics.
// The service metrics are registered on it.
func WithRegistry(reg *metrics.Registry) Option {
	return func(a *API) {
		if reg != nil {
			a.registry = reg
		}
	}
}

// WithAddr sets the listen address, e.g. ":8080" or "127.0.0.1:0".
func WithAddr(addr string) Option {
	return func(a *API) {
		a.addr = addr
	}
}

// WithTimeouts sets the server read and write timeouts. Zero keeps the default.
func WithTimeouts(read, write time.Duration) Option {
	return func(a *API) {
		if read > 0 {
			a.readTimeout = read
		}
		if write > 0 {
			a.writeTimeout = write
		}
	}
}

// WithMaxBodyBytes limits the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(a *API) {
		if n > 0 {
			a.maxBodyBytes = n
		}
	}
}

// WithVersion sets the version reported by GET /.
func WithVersion(v string) Option {
	return func(a *API) {
		a.version = v
	}
}

// withClock overrides time.Now for uptime reporting in tests.
func withClock(now func() time.Time) Option {
	return func(a *API) {
		a.now = now
	}
}
