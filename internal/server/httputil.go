package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-formlayout/pkg/configuration"
	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/settings"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", zap.Int("status", status), zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorResponse{Error: message, Code: code})
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.bodyLimit)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return false
	}
	return true
}

// writeDomainError maps domain errors onto HTTP responses.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, configuration.ErrNotFound),
		errors.Is(err, configuration.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, layout.ErrFieldNotFound):
		s.writeError(w, http.StatusNotFound, "FIELD_NOT_FOUND", err.Error())
	case errors.Is(err, configuration.ErrFieldUnavailable),
		errors.Is(err, layout.ErrDuplicateField):
		s.writeError(w, http.StatusConflict, "FIELD_CONFLICT", err.Error())
	case errors.Is(err, layout.ErrRowOverflow),
		errors.Is(err, layout.ErrInvalidSize),
		errors.Is(err, layout.ErrInvalidCoord),
		errors.Is(err, layout.ErrFillerNotEditable),
		errors.Is(err, layout.ErrMisplacedFiller),
		errors.Is(err, layout.ErrIncompleteRow),
		errors.Is(err, layout.ErrFieldSetChanged),
		errors.Is(err, configuration.ErrInvalidLayout):
		s.writeError(w, http.StatusUnprocessableEntity, "INVALID_LAYOUT", err.Error())
	case errors.Is(err, settings.ErrIneligibleMainField),
		errors.Is(err, settings.ErrInvalidSortOrder),
		errors.Is(err, settings.ErrInvalidPageSize),
		errors.Is(err, configuration.ErrInvalidSettings):
		s.writeError(w, http.StatusUnprocessableEntity, "INVALID_SETTINGS", err.Error())
	default:
		s.logger.Sugar().Errorw("internal error", "error", err)
		s.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
