package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/getmockd/stringd/pkg/analysis"
	"github.com/getmockd/stringd/pkg/httputil"
	"github.com/getmockd/stringd/pkg/logging"
	"github.com/getmockd/stringd/pkg/query"
)

// RootResponse is the body of GET /.
type RootResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Strings int    `json:"strings"`
	Uptime  int64  `json:"uptime"`
}

func (a *API) handleRoot(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, RootResponse{Name: ServiceName, Version: a.version})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, HealthResponse{
		Status:  "ok",
		Strings: a.store.Count(),
		Uptime:  int64(a.Uptime().Seconds()),
	})
}

// handleCreateString handles POST /strings.
func (a *API) handleCreateString(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, a.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteError(w, http.StatusRequestEntityTooLarge, ErrCodeBodyTooLarge, ErrMsgBodyTooLarge)
			return
		}
		log.Debug("failed to read request body", "error", err)
		httputil.WriteError(w, http.StatusUnprocessableEntity, ErrCodeInvalidBody, ErrMsgInvalidBody)
		return
	}

	req, bodyErrs, err := a.validator.decode(body)
	switch {
	case err != nil:
		log.Debug("rejected request body", "error", err)
		httputil.WriteError(w, http.StatusUnprocessableEntity, ErrCodeInvalidBody, ErrMsgInvalidJSON)
		return
	case len(bodyErrs) > 0:
		httputil.WriteErrorWithDetails(w, http.StatusUnprocessableEntity, ErrCodeInvalidBody, ErrMsgInvalidBody, bodyErrs)
		return
	}

	if strings.TrimSpace(req.Value) == "" {
		httputil.WriteBadRequest(w, ErrCodeEmptyValue, ErrMsgEmptyValue)
		return
	}

	rec := a.analyzer.Analyze(req.Value)
	if conflict := a.store.InsertIfAbsent(rec); conflict {
		a.metrics.ConflictsTotal.Inc()
		httputil.WriteConflict(w, ErrCodeAlreadyExists, ErrMsgConflict)
		return
	}
	log.Debug("stored string", "id", rec.ID, "length", rec.Properties.Length)
	httputil.WriteCreated(w, rec)
}

// handleGetString handles GET /strings/{value}.
func (a *API) handleGetString(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.store.Get(analysis.HashOf(r.PathValue("value")))
	if !ok {
		httputil.WriteNotFound(w, ErrCodeNotFound, ErrMsgNotFound)
		return
	}
	httputil.WriteOK(w, rec)
}

// handleDeleteString handles DELETE /strings/{value}.
func (a *API) handleDeleteString(w http.ResponseWriter, r *http.Request) {
	id := analysis.HashOf(r.PathValue("value"))
	if !a.store.Delete(id) {
		httputil.WriteNotFound(w, ErrCodeNotFound, ErrMsgNotFound)
		return
	}
	logging.FromContext(r.Context()).Debug("deleted string", "id", id)
	httputil.WriteNoContent(w)
}

// handleQueryStrings handles GET /strings with filter parameters.
func (a *API) handleQueryStrings(w http.ResponseWriter, r *http.Request) {
	criteria, err := query.Parse(r.URL.Query())
	if err != nil {
		var verr *query.ValidationError
		if errors.As(err, &verr) {
			httputil.WriteErrorWithDetails(w, http.StatusBadRequest, ErrCodeValidationFailed,
				ErrMsgValidationFailed, verr.Errors)
			return
		}
		httputil.WriteInternalError(w, ErrCodeInternal,
			sanitizeError(err, logging.FromContext(r.Context()), "parse query"))
		return
	}

	httputil.WriteOK(w, query.Filter(criteria, a.store.All()))
}
