package review

import "context"

// Reviewer performs one remote review round-trip for a batch of aligned
// line pairs. Implementations own their transport, retries, and timeouts.
// The returned results are positional: item i refers to source[i]/target[i].
type Reviewer interface {
	ReviewBatch(ctx context.Context, source, target []string) ([]RawResult, error)
}

// ReviewerFunc adapts a function to the Reviewer interface.
type ReviewerFunc func(ctx context.Context, source, target []string) ([]RawResult, error)

func (f ReviewerFunc) ReviewBatch(ctx context.Context, source, target []string) ([]RawResult, error) {
	return f(ctx, source, target)
}

// RawResult is the wire shape a reviewer returns for one row. ID is the
// service's row-local identifier and is untrusted; the pipeline replaces it
// with the absolute row index before emitting.
type RawResult struct {
	ID         int      `json:"id"`
	Score      float64  `json:"score"`
	Issues     []string `json:"issues"`
	Comment    string   `json:"comment"`
	Suggestion string   `json:"suggestion"`
}

// Result is one reviewed row with trusted identity. Row is the absolute
// zero-based index into the full aligned table.
type Result struct {
	Row        int      `json:"row"`
	Score      float64  `json:"score"`
	Issues     []string `json:"issues"`
	Comment    string   `json:"comment"`
	Suggestion string   `json:"suggestion"`
}

// Progress reports how far the run has advanced. Done counts rows whose
// batches have been resolved (successfully or not) before the batch
// currently in flight.
type Progress struct {
	Done    int
	Total   int
	Message string
}
