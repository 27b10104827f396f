package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dgallion1/studynotes/internal/parser"
	"github.com/dgallion1/studynotes/internal/pipeline"
	"github.com/dgallion1/studynotes/internal/session"
	"github.com/dgallion1/studynotes/internal/textproc"
	"github.com/go-playground/validator/v10"
)

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// errorStatus maps domain errors onto HTTP status codes.
func errorStatus(err error) int {
	var (
		ve *textproc.ValidationError
		ee *parser.ExtractionError
		fe validator.ValidationErrors
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &fe):
		return http.StatusBadRequest
	case errors.Is(err, parser.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &ee):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pipeline.ErrQueueFull), errors.Is(err, pipeline.ErrStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports err with the status errorStatus picks. Internal
// errors are logged and their detail hidden.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "error", err)
		jsonError(w, "internal error", code)
		return
	}
	var fe validator.ValidationErrors
	if errors.As(err, &fe) {
		jsonError(w, validationMessage(fe), code)
		return
	}
	jsonError(w, err.Error(), code)
}

func validationMessage(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+": is required")
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s: must be %s %s", fe.Field(), bound(fe.Tag()), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func bound(tag string) string {
	if tag == "min" {
		return "at least"
	}
	return "at most"
}
