package api

import (
	"net/http"
	"time"

	"github.com/dgallion1/studynotes/internal/session"
)

const (
	// SessionHeader carries the session id for API clients.
	SessionHeader = "X-Session-ID"
	// SessionCookie carries the session id for browsers.
	SessionCookie = "studynotes_session"
)

// sessionID returns the id from the header, falling back to the cookie.
func sessionID(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

func setSessionCookie(w http.ResponseWriter, id string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// currentSession resolves the caller's session, writing a 404 when there
// is none.
func (s *Server) currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := sessionID(r)
	if id == "" {
		jsonError(w, "no document uploaded", http.StatusNotFound)
		return nil, false
	}
	sess, err := s.sessions.Get(id)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session": sess.Snapshot(),
		"stats":   s.svc.Stats(documentOf(sess)),
	})
}

func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request) {
	if id := sessionID(r); id != "" {
		s.sessions.Delete(id)
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
