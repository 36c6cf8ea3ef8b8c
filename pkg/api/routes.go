// Route registration for the string API.

package api

import (
	"net/http"
)

// registerRoutes sets up all API routes.
func (a *API) registerRoutes(mux *http.ServeMux) {
	// Service info, health and metrics
	mux.HandleFunc("GET /{$}", a.handleRoot)
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.Handle("GET /metrics", a.registry.Handler())

	// Strings
	mux.HandleFunc("POST /strings", a.handleCreateString)
	mux.HandleFunc("GET /strings", a.handleQueryStrings)
	mux.HandleFunc("GET /strings/{value}", a.handleGetString)
	mux.HandleFunc("DELETE /strings/{value}", a.handleDeleteString)
}
