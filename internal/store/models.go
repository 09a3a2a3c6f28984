package store

import "time"

// Status represents the lifecycle of a review run.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	// StatusNeedsAttention marks runs that stopped on a configuration or
	// validation problem the user has to fix before retrying.
	StatusNeedsAttention Status = "needs_attention"
)

var statusSet = map[Status]struct{}{
	StatusPending:        {},
	StatusReviewing:      {},
	StatusCompleted:      {},
	StatusFailed:         {},
	StatusNeedsAttention: {},
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	_, ok := statusSet[s]
	return ok
}

// Run is one review session over a pair of subtitle files.
type Run struct {
	ID           string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	SourceFile   string
	TargetFile   string
	MasterTrack  string
	TotalRows    int
	Status       Status
	ErrorMessage string
}

// Row is one aligned line pair within a run, with its review verdict once
// scored. Row indexes are zero-based and dense within a run.
type Row struct {
	Row        int
	SourceText string
	TargetText string
	Scored     bool
	Score      float64
	Issues     []string
	Comment    string
	Suggestion string
}
