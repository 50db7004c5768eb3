package batch

import (
	"encoding/json"
	"sync"
	"time"
)

// ManifestError is one recorded per-prospect failure.
type ManifestError struct {
	ProspectName string `json:"prospect_name"`
	Stage        string `json:"stage"`
	Message      string `json:"message"`
}

// RunManifest is the audit record for one batch run. Total is fixed at
// construction; RecordSuccess and RecordError are the only mutation
// points and are safe to call from concurrent workers. Finish seals the
// manifest: later record calls are dropped so the audit trail cannot
// change after the run completes.
type RunManifest struct {
	mu         sync.Mutex
	startedAt  time.Time
	finishedAt time.Time
	total      int
	successful int
	errors     []ManifestError
	sealed     bool
}

// NewManifest starts a manifest for a batch of the given size.
func NewManifest(total int) *RunManifest {
	return &RunManifest{startedAt: time.Now().UTC(), total: total}
}

// RecordSuccess counts one accepted prospect.
func (m *RunManifest) RecordSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sealed {
		return
	}
	m.successful++
}

// RecordError appends one failure entry.
func (m *RunManifest) RecordError(prospectName, stage, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sealed {
		return
	}
	m.errors = append(m.errors, ManifestError{
		ProspectName: prospectName,
		Stage:        stage,
		Message:      message,
	})
}

// Finish seals the manifest with a completion timestamp.
func (m *RunManifest) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sealed {
		return
	}
	m.finishedAt = time.Now().UTC()
	m.sealed = true
}

// ManifestSnapshot is the serializable view of a manifest.
type ManifestSnapshot struct {
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
	Total      int             `json:"total"`
	Successful int             `json:"successful"`
	Errors     []ManifestError `json:"errors"`
}

// Snapshot returns a copy safe to read and serialize.
func (m *RunManifest) Snapshot() ManifestSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := ManifestSnapshot{
		StartedAt:  m.startedAt,
		Total:      m.total,
		Successful: m.successful,
		Errors:     append([]ManifestError(nil), m.errors...),
	}
	if snap.Errors == nil {
		snap.Errors = []ManifestError{}
	}
	if !m.finishedAt.IsZero() {
		t := m.finishedAt
		snap.FinishedAt = &t
	}
	return snap
}

// MarshalJSON serializes the snapshot view.
func (m *RunManifest) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Snapshot())
}
