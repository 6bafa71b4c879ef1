package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/maqam/internal/apperr"
	"github.com/starford/maqam/internal/models"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error" validate:"required"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// writeError maps a service error onto a status code. Unexpected errors are logged
// with op and reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		slog.ErrorContext(r.Context(), op+" failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// decodeBody reads a JSON request body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// idParam parses the named path parameter as a positive integer id.
func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("%s must be a positive integer", name)))
		return 0, false
	}
	return id, true
}

// queryParams collects typed query parameters and remembers the first parse error.
type queryParams struct {
	r   *http.Request
	err error
}

func (q *queryParams) Int(key string) int {
	raw := q.r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil && q.err == nil {
		q.err = fmt.Errorf("%s must be an integer", key)
	}
	return n
}

func (q *queryParams) Bool(key string) *bool {
	raw := q.r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		if q.err == nil {
			q.err = fmt.Errorf("%s must be a boolean", key)
		}
		return nil
	}
	return &b
}

func (q *queryParams) Date(key string) models.Date {
	raw := q.r.URL.Query().Get(key)
	if raw == "" {
		return models.Date{}
	}
	d, err := models.ParseDate(raw)
	if err != nil && q.err == nil {
		q.err = fmt.Errorf("%s must be a date in YYYY-MM-DD form", key)
	}
	return d
}

// OK writes a 400 for the first parse error, if any.
func (q *queryParams) OK(w http.ResponseWriter) bool {
	if q.err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(q.err.Error()))
		return false
	}
	return true
}
