package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/getmockd/stringd/pkg/httputil"
	"github.com/getmockd/stringd/pkg/logging"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// routeUnmatched labels requests no route pattern matched.
const routeUnmatched = "unmatched"

// withMiddleware wraps the handler.
// Order (outermost to innermost): Security Headers -> Request Log/Metrics -> Recover -> Handler
func (a *API) withMiddleware(handler http.Handler) http.Handler {
	recovered := a.recoverMiddleware(handler)
	observed := a.requestMiddleware(recovered)
	return SecurityHeadersMiddleware(observed)
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

// WriteHeader captures the status code.
func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.wroteHeader {
		sr.statusCode = code
		sr.wroteHeader = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

// Write marks the header as written with an implicit 200.
func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.wroteHeader {
		sr.statusCode = http.StatusOK
		sr.wroteHeader = true
	}
	return sr.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

// requestMiddleware assigns a request ID, attaches a request-scoped logger,
// logs one line per request and records request metrics.
func (a *API) requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		log := a.log.With("request_id", requestID)
		r = r.WithContext(logging.WithContext(r.Context(), log))

		sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(sr, r)

		// ServeMux records the matched pattern on the request it dispatched.
		route := r.Pattern
		if route == "" {
			route = routeUnmatched
		}
		elapsed := time.Since(start)
		status := strconv.Itoa(sr.statusCode)

		a.metrics.RequestsTotal.WithLabels(r.Method, route, status).Inc()
		a.metrics.RequestDuration.WithLabels(r.Method, route).Observe(elapsed.Seconds())

		log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sr.statusCode,
			"duration", elapsed,
		)
	})
}

// recoverMiddleware turns handler panics into 500 responses.
// The panic value is logged, never returned to the client.
func (a *API) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sr, ok := w.(*statusRecorder)
		if !ok {
			sr = &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		}
		defer func() {
			rv := recover()
			if rv == nil {
				return
			}
			if rv == http.ErrAbortHandler {
				panic(rv)
			}
			msg := sanitizeError(fmt.Errorf("panic: %v", rv), logging.FromContext(r.Context()),
				"serve request", "method", r.Method, "path", r.URL.Path)
			if !sr.wroteHeader {
				httputil.WriteInternalError(sr, ErrCodeInternal, msg)
			}
		}()
		next.ServeHTTP(sr, r)
	})
}

// SecurityHeadersMiddleware adds security headers to all responses.
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking by denying framing
		w.Header().Set("X-Frame-Options", "DENY")

		// Control referrer information sent with requests
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Records change between requests
		w.Header().Set("Cache-Control", "no-store")

		next.ServeHTTP(w, r)
	})
}
