package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/getmockd/stringd/internal/storage"
	"github.com/getmockd/stringd/pkg/analysis"
	"github.com/getmockd/stringd/pkg/logging"
	"github.com/getmockd/stringd/pkg/metrics"
)

// Defaults applied when no option overrides them.
const (
	DefaultAddr         = ":8080"
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultMaxBodyBytes = 1 << 20
)

// ServiceName is reported by GET /.
const ServiceName = "stringd"

// ErrAlreadyStarted is returned by Start on a running API.
var ErrAlreadyStarted = errors.New("api: already started")

// API serves the string analysis endpoints.
type API struct {
	store     storage.StringStore
	analyzer  *analysis.Analyzer
	validator *bodyValidator
	registry  *metrics.Registry
	metrics   *metrics.ServiceMetrics
	log       *slog.Logger

	addr         string
	readTimeout  time.Duration
	writeTimeout time.Duration
	maxBodyBytes int64
	version      string
	now          func() time.Time
	startTime    time.Time

	handler http.Handler

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
}

// NewAPI creates an API. It fails only if the request body schema cannot
// be compiled.
func NewAPI(opts ...Option) (*API, error) {
	a := &API{
		analyzer:     analysis.New(),
		log:          logging.Nop(),
		addr:         DefaultAddr,
		readTimeout:  DefaultReadTimeout,
		writeTimeout: DefaultWriteTimeout,
		maxBodyBytes: DefaultMaxBodyBytes,
		version:      "dev",
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.store == nil {
		a.store = storage.NewInMemoryStringStore()
	}
	if a.registry == nil {
		a.registry = metrics.NewRegistry()
	}
	a.metrics = metrics.NewServiceMetrics(a.registry, a.store.Count)

	validator, err := newBodyValidator()
	if err != nil {
		return nil, fmt.Errorf("create api: %w", err)
	}
	a.validator = validator
	a.startTime = a.now()

	mux := http.NewServeMux()
	a.registerRoutes(mux)
	a.handler = a.withMiddleware(mux)

	return a, nil
}

// Handler returns the fully wrapped HTTP handler.
func (a *API) Handler() http.Handler {
	return a.handler
}

// Start listens on the configured address and serves in the background.
func (a *API) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.httpServer != nil {
		return ErrAlreadyStarted
	}

	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.addr, err)
	}

	srv := &http.Server{
		Handler:      a.handler,
		ReadTimeout:  a.readTimeout,
		WriteTimeout: a.writeTimeout,
	}
	a.httpServer = srv
	a.listener = ln
	a.startTime = a.now()

	a.log.Info("starting string API", "addr", ln.Addr().String())
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("string API error", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address once started, or the configured one.
func (a *API) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener != nil {
		return a.listener.Addr().String()
	}
	return a.addr
}

// Stop gracefully shuts down the server, waiting for in-flight requests
// until ctx is done.
func (a *API) Stop(ctx context.Context) error {
	a.mu.Lock()
	srv := a.httpServer
	a.httpServer = nil
	a.listener = nil
	a.mu.Unlock()

	if srv == nil {
		return nil
	}
	a.log.Info("stopping string API")
	return srv.Shutdown(ctx)
}

// Uptime returns the time since the API started.
func (a *API) Uptime() time.Duration {
	return a.now().Sub(a.startTime)
}
