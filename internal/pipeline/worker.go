package pipeline

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/dgallion1/studynotes/internal/analysis"
	"github.com/dgallion1/studynotes/internal/parser"
	"github.com/dgallion1/studynotes/internal/session"
)

// Worker processes a single upload job.
type Worker struct {
	sessions *session.Store
	svc      *analysis.Service
	log      *slog.Logger
	opts     parser.Options
}

func NewWorker(sessions *session.Store, svc *analysis.Service, log *slog.Logger, opts parser.Options) *Worker {
	return &Worker{
		sessions: sessions,
		svc:      svc,
		log:      log,
		opts:     opts,
	}
}

// Process extracts the job's document and opens a session for it.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	if err := ctx.Err(); err != nil {
		job.Fail("queued", err)
		return
	}

	start := time.Now()
	job.SetStatus(StatusExtracting, "extracting")
	text, err := parser.ExtractText(bytes.NewReader(job.FileData()), job.Filename, w.opts)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.Fail("extracting", err)
		return
	}

	doc := analysis.NewDocument(job.Filename, text)
	sess := w.sessions.Create(doc.Filename, doc.Text, doc.Hash)
	stats := w.svc.Stats(doc)

	log.Info("document extracted",
		"session_id", sess.ID,
		"words", stats.WordCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	job.Complete(sess.ID, doc.Hash, stats)
}
