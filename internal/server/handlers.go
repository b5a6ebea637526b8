package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formlayout/pkg/configuration"
	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/schema"
	"github.com/goliatone/go-formlayout/pkg/settings"
)

// sessionView is the JSON form of a session's working state.
type sessionView struct {
	ID               string            `json:"id"`
	UID              string            `json:"uid"`
	Title            string            `json:"title"`
	Modified         bool              `json:"modified"`
	Layout           layout.Rows       `json:"layout"`
	Settings         settings.Settings `json:"settings"`
	Metadatas        schema.Metadatas  `json:"metadatas,omitempty"`
	Available        []string          `json:"available"`
	MainFieldOptions []settings.Option `json:"mainFieldOptions"`
}

func newSessionView(s *configuration.Session) sessionView {
	available := s.Available()
	if available == nil {
		available = []string{}
	}
	return sessionView{
		ID:               s.ID,
		UID:              s.UID,
		Title:            s.Title(),
		Modified:         s.Modified(),
		Layout:           s.Rows(),
		Settings:         s.Settings(),
		Metadatas:        s.Metadatas(),
		Available:        available,
		MainFieldOptions: s.MainFieldOptions(),
	}
}

type configurationRequest struct {
	Layout   layout.Rows        `json:"layout"`
	Settings *settings.Settings `json:"settings,omitempty"`
}

func (s *Server) getConfiguration(w http.ResponseWriter, r *http.Request) {
	session, err := s.service.Open(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionView(session))
}

// putConfiguration stores a complete layout in one request.
func (s *Server) putConfiguration(w http.ResponseWriter, r *http.Request) {
	var req configurationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	session, err := s.service.Open(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if err := session.Replace(req.Layout); err != nil {
		s.writeDomainError(w, err)
		return
	}
	if req.Settings != nil {
		if err := session.UpdateSettings(*req.Settings); err != nil {
			s.writeDomainError(w, err)
			return
		}
	}
	stored, err := session.Submit(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stored)
}

func (s *Server) getPreview(w http.ResponseWriter, r *http.Request) {
	if s.preview == nil {
		s.writeError(w, http.StatusNotFound, "NOT_FOUND", "preview is disabled")
		return
	}
	session, err := s.service.Open(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := s.preview.RenderSession(session, w); err != nil {
		s.writeDomainError(w, err)
	}
}
