package api

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/dgallion1/studynotes/internal/textproc"
	"github.com/dgallion1/studynotes/internal/web"
)

func writeHTML(w http.ResponseWriter, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (s *Server) handleSearchView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.writeError(w, r, textproc.Invalid("q", "must not be empty"))
		return
	}

	res, err := s.runSearch(sess, query, nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := web.SearchPage(&buf, sess.Filename, res, sess.RecentSearches()); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeHTML(w, &buf)
}

func (s *Server) handleSummaryView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	req, err := s.parseSummaryRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := web.SummaryPage(&buf, s.svc.Overview(documentOf(sess), req.Sentences, req.Keywords)); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeHTML(w, &buf)
}
