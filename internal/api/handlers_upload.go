package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/studynotes/internal/parser"
	"github.com/dgallion1/studynotes/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %q (allowed: pdf, ppt, pptx, txt)", filepath.Ext(filename)), http.StatusUnsupportedMediaType)
		return
	}

	// Read file data.
	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	job := pipeline.NewJob(filename, data)
	if err := s.orchestrator.Submit(job); err != nil {
		s.writeError(w, r, err)
		return
	}

	pollURL := fmt.Sprintf("/api/ingest/%s/status", job.ID)
	if async, _ := strconv.ParseBool(r.FormValue("async")); async {
		writeJSON(w, http.StatusAccepted, map[string]any{
			"job_id":   job.ID,
			"status":   pipeline.StatusQueued,
			"poll_url": pollURL,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.UploadWait)
	defer cancel()
	snap, err := s.orchestrator.Wait(ctx, job)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		writeJSON(w, http.StatusAccepted, map[string]any{
			"job_id":   job.ID,
			"status":   snap.Status,
			"poll_url": pollURL,
		})
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// A new upload replaces the caller's previous document.
	if prev := sessionID(r); prev != "" && prev != snap.SessionID {
		s.sessions.Delete(prev)
	}
	setSessionCookie(w, snap.SessionID, s.cfg.SessionTTL)

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": snap.SessionID,
		"job_id":     snap.ID,
		"filename":   snap.Filename,
		"stats":      snap.Stats,
	})
}

func (s *Server) handleIngestStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
