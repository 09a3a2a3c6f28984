package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sublint/internal/logging"
)

// ErrInputMismatch is returned when the source and target tracks disagree on
// line count at the point the pipeline is invoked.
var ErrInputMismatch = errors.New("source and target line counts differ")

// DefaultBatchSize is the number of rows submitted per review request.
const DefaultBatchSize = 10

// Pipeline drives batched review rounds against a Reviewer. One Pipeline is
// reusable; each call to Run produces an independent single-use Run.
type Pipeline struct {
	reviewer  Reviewer
	batchSize int
	logger    *slog.Logger
}

// New constructs a pipeline. batchSize < 1 falls back to DefaultBatchSize.
func New(reviewer Reviewer, batchSize int, logger *slog.Logger) (*Pipeline, error) {
	if reviewer == nil {
		return nil, errors.New("review: reviewer required")
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{reviewer: reviewer, batchSize: batchSize, logger: logger}, nil
}

// Run is one in-flight review. Its channels carry progress notifications,
// corrected per-batch results, and a single terminal error (nil for a
// completed or cancelled run). Progress and Results close once the worker
// stops producing; Done receives exactly one value and then closes.
//
// The consumer must drain Progress and Results until they close. Sends are
// not abandoned on cancellation: a batch that was dispatched before
// cancellation still gets its results delivered, which keeps already-paid
// review round-trips from being discarded.
type Run struct {
	progress chan Progress
	results  chan []Result
	done     chan error
}

func (r *Run) Progress() <-chan Progress { return r.progress }

func (r *Run) Results() <-chan []Result { return r.results }

func (r *Run) Done() <-chan error { return r.done }

// Start validates the inputs and launches the background worker. It returns
// ErrInputMismatch without invoking the reviewer when the tracks disagree on
// length. Cancellation is cooperative via ctx and is honored only at batch
// boundaries: a batch already dispatched always runs to completion.
func (p *Pipeline) Start(ctx context.Context, source, target []string) (*Run, error) {
	if len(source) != len(target) {
		return nil, fmt.Errorf("%w: %d source vs %d target", ErrInputMismatch, len(source), len(target))
	}

	run := &Run{
		progress: make(chan Progress, 1),
		results:  make(chan []Result, 1),
		done:     make(chan error, 1),
	}
	go p.work(ctx, source, target, run)
	return run, nil
}

func (p *Pipeline) work(ctx context.Context, source, target []string, run *Run) {
	var fatal error
	defer func() {
		if r := recover(); r != nil {
			fatal = fmt.Errorf("review worker panic: %v", r)
		}
		close(run.progress)
		close(run.results)
		run.done <- fatal
		close(run.done)
	}()

	total := len(source)
	for start := 0; start < total; start += p.batchSize {
		if ctx.Err() != nil {
			p.logger.Info("review cancelled", logging.Int("rows_done", start), logging.Int("total", total))
			return
		}

		end := start + p.batchSize
		if end > total {
			end = total
		}

		run.progress <- Progress{
			Done:    start,
			Total:   total,
			Message: fmt.Sprintf("Checking %d/%d...", start, total),
		}

		raw, err := p.reviewer.ReviewBatch(ctx, source[start:end], target[start:end])
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("review cancelled mid-batch", logging.Int("batch_start", start))
				return
			}
			// One failed batch leaves its rows unscored; the run goes on.
			p.logger.Warn("batch review failed",
				logging.Int("batch_start", start),
				logging.Int("batch_size", end-start),
				logging.Error(err))
			continue
		}

		results := correctRows(raw, start, end-start)
		p.logger.Debug("batch reviewed",
			logging.Int("batch_start", start),
			logging.Int("results", len(results)))
		run.results <- results
	}
}

// correctRows replaces every untrusted service identifier with the absolute
// row index and discards items positioned past the batch's length.
func correctRows(raw []RawResult, start, size int) []Result {
	if len(raw) > size {
		raw = raw[:size]
	}
	results := make([]Result, len(raw))
	for i, item := range raw {
		results[i] = Result{
			Row:        start + i,
			Score:      item.Score,
			Issues:     item.Issues,
			Comment:    item.Comment,
			Suggestion: item.Suggestion,
		}
	}
	return results
}
