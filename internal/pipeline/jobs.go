package pipeline

import (
	"sync"
	"time"

	"github.com/dgallion1/studynotes/internal/textproc"
	"github.com/google/uuid"
)

// JobStatus represents the state of an upload job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusExtracting JobStatus = "extracting"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the extraction of a single uploaded document.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	SessionID   string              `json:"session_id,omitempty"`
	ContentHash string              `json:"content_hash,omitempty"`
	Stats       *textproc.TextStats `json:"stats,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	err      error
	done     chan struct{}
	doneOnce sync.Once
}

// NewJob creates a queued job for an uploaded file.
func NewJob(filename string, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
		fileData:  data,
		done:      make(chan struct{}),
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.updatedAt()) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// Fail marks the job failed and releases waiters.
func (j *Job) Fail(phase string, err error) {
	j.mu.Lock()
	j.Status = StatusFailed
	j.Phase = phase
	j.err = err
	j.fileData = nil
	j.UpdatedAt = time.Now()
	j.mu.Unlock()
	j.finish()
}

// Complete records the session created for the document and releases
// waiters.
func (j *Job) Complete(sessionID, contentHash string, stats textproc.TextStats) {
	j.mu.Lock()
	j.Status = StatusCompleted
	j.Phase = "done"
	j.SessionID = sessionID
	j.ContentHash = contentHash
	j.Stats = &stats
	j.fileData = nil
	j.UpdatedAt = time.Now()
	j.mu.Unlock()
	j.finish()
}

func (j *Job) finish() {
	j.doneOnce.Do(func() {
		if j.done != nil {
			close(j.done)
		}
	})
}

// Done is closed once the job has completed or failed.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Err returns the failure cause, or nil.
func (j *Job) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// FileData returns the raw file bytes. They are released once the job ends.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

func (j *Job) updatedAt() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.UpdatedAt
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string              `json:"job_id"`
	Status      JobStatus           `json:"status"`
	Phase       string              `json:"phase"`
	Filename    string              `json:"filename"`
	SessionID   string              `json:"session_id,omitempty"`
	ContentHash string              `json:"content_hash,omitempty"`
	Stats       *textproc.TextStats `json:"stats,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	snap := JobSnapshot{
		ID:          j.ID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		SessionID:   j.SessionID,
		ContentHash: j.ContentHash,
		Stats:       j.Stats,
	}
	if j.err != nil {
		snap.Error = j.err.Error()
	}
	return snap
}
