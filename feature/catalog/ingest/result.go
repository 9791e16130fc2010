package ingest

import "time"

// Failure describes one record that could not be processed.
type Failure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// Result aggregates one completed sync pass.
type Result struct {
	// Success is false when the pass found nothing to process.
	Success   bool      `json:"success"`
	Source    string    `json:"source"`
	TotalSeen int       `json:"total_seen"`
	Created   int       `json:"created"`
	Updated   int       `json:"updated"`
	Errors    int       `json:"errors"`
	Failures  []Failure `json:"failures,omitempty"`
	// DurationMS is the wall time of the pass in milliseconds.
	DurationMS int64     `json:"duration_ms"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Duration returns the pass wall time.
func (r *Result) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

// Status is a snapshot of the orchestrator state.
type Status struct {
	Running    bool       `json:"running"`
	LastSyncAt *time.Time `json:"last_sync_at"`
}

// Event is published when a pass completes.
type Event struct {
	Type   string  `json:"type"`
	Result *Result `json:"result"`
}
