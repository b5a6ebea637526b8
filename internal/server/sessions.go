package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formlayout/pkg/configuration"
	"github.com/goliatone/go-formlayout/pkg/layout"
)

type insertRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

type removeRequest struct {
	Name string        `json:"name"`
	At   *layout.Coord `json:"at,omitempty"`
}

type moveRequest struct {
	From layout.Coord `json:"from"`
	To   layout.Coord `json:"to"`
}

type resizeRequest struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type relabelRequest struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

type mainFieldRequest struct {
	Name string `json:"name"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.service.Open(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.sessions.Add(session)
	s.logger.Sugar().Debugw("session opened", "uid", session.UID, "session", session.ID)
	s.writeJSON(w, http.StatusCreated, newSessionView(session))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, http.StatusOK, func(*configuration.Session) error { return nil })
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.sessions.With(id, func(session *configuration.Session) error {
		return s.checkOwner(r, session)
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.sessions.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) insertField(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	pos, err := layout.ParsePosition(req.Position)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_POSITION", err.Error())
		return
	}
	s.withSession(w, r, http.StatusOK, func(session *configuration.Session) error {
		return session.Insert(req.Name, pos)
	})
}

func (s *Server) removeField(w http.ResponseWriter, r *http.Request) {
	var req removeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.withSession(w, r, http.StatusOK, func(session *configuration.Session) error {
		if req.At != nil {
			return session.RemoveAt(*req.At)
		}
		return session.Remove(req.Name)
	})
}

func (s *Server) moveField(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.withSession(w, r, http.StatusOK, func(session *configuration.Session) error {
		return session.Move(req.From, req.To)
	})
}

func (s *Server) resizeField(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.withSession(w, r, http.StatusOK, func(session *configuration.Session) error {
		return session.Resize(req.Name, req.Size)
	})
}

func (s *Server) relabelField(w http.ResponseWriter, r *http.Request) {
	var req relabelRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.withSession(w, r, http.StatusOK, func(session *configuration.Session) error {
		return session.Relabel(req.Name, req.Label)
	})
}

func (s *Server) setMainField(w http.ResponseWriter, r *http.Request) {
	var req mainFieldRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.withSession(w, r, http.StatusOK, func(session *configuration.Session) error {
		return session.SetMainField(req.Name)
	})
}

func (s *Server) resetSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, http.StatusOK, func(session *configuration.Session) error {
		return session.Reset()
	})
}

func (s *Server) submitSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, http.StatusOK, func(session *configuration.Session) error {
		_, err := session.Submit(r.Context())
		return err
	})
}

// withSession runs fn on the session named in the path and answers with the
// resulting working state.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, status int, fn func(*configuration.Session) error) {
	var view sessionView
	err := s.sessions.With(chi.URLParam(r, "id"), func(session *configuration.Session) error {
		if err := s.checkOwner(r, session); err != nil {
			return err
		}
		if err := fn(session); err != nil {
			return err
		}
		view = newSessionView(session)
		return nil
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, status, view)
}

func (s *Server) checkOwner(r *http.Request, session *configuration.Session) error {
	if session.UID != chi.URLParam(r, "uid") {
		return configuration.ErrSessionNotFound
	}
	return nil
}
