package api

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/dgallion1/studynotes/internal/analysis"
	"github.com/dgallion1/studynotes/internal/search"
	"github.com/dgallion1/studynotes/internal/session"
	"github.com/dgallion1/studynotes/internal/summarize"
	"github.com/dgallion1/studynotes/internal/textproc"
)

type searchRequest struct {
	Query        string `json:"query" validate:"required,max=500"`
	ContextChars *int   `json:"context_chars" validate:"omitempty,min=0,max=2000"`
}

type searchResponse struct {
	search.BooleanResult
	Total          int      `json:"total"`
	RecentSearches []string `json:"recent_searches"`
}

type summaryRequest struct {
	Sentences int `json:"sentences" validate:"min=0,max=500"`
	Keywords  int `json:"keywords" validate:"min=0,max=200"`
}

func documentOf(sess *session.Session) analysis.Document {
	return analysis.Document{Filename: sess.Filename, Text: sess.Text, Hash: sess.ContentHash}
}

// runSearch evaluates query against the session document and records it
// in the session's recent searches.
func (s *Server) runSearch(sess *session.Session, query string, contextChars *int) (search.BooleanResult, error) {
	n := -1
	if contextChars != nil {
		n = *contextChars
	}
	res, err := s.svc.SearchBoolean(documentOf(sess), query, n)
	if err != nil {
		return search.BooleanResult{}, err
	}
	sess.RecordSearch(query)
	return res, nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runSearch(sess, req.Query, req.ContextChars)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{
		BooleanResult:  res,
		Total:          res.Total(),
		RecentSearches: sess.RecentSearches(),
	})
}

// parseSummaryRequest reads ?sentences= and ?keywords=. Missing values
// select the configured defaults.
func (s *Server) parseSummaryRequest(r *http.Request) (summaryRequest, error) {
	var req summaryRequest
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"sentences", &req.Sentences},
		{"keywords", &req.Keywords},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, textproc.Invalid(p.name, "must be an integer")
		}
		*p.dst = n
	}
	if err := s.validate.Struct(req); err != nil {
		return req, err
	}
	return req, nil
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	req, err := s.parseSummaryRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Overview(documentOf(sess), req.Sentences, req.Keywords))
}

func (s *Server) handleDownloadSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	report := s.svc.Report(documentOf(sess))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": summarize.ReportFilename(sess.Filename),
	}))
	w.Write([]byte(report))
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"filename": sess.Filename,
		"notes":    s.svc.Notes(documentOf(sess)),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"latency":     s.svc.Latency(),
		"cache":       s.svc.CacheStats(),
		"queue_depth": s.orchestrator.QueueDepth(),
		"sessions":    s.sessions.Len(),
	})
}
