package review

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type recordedCall struct {
	source []string
	target []string
}

// collect drains a run and returns everything it produced.
func collect(t *testing.T, run *Run) (progress []Progress, batches [][]Result, terminal error) {
	t.Helper()
	progressCh := run.Progress()
	resultsCh := run.Results()
	doneCh := run.Done()
	timeout := time.After(5 * time.Second)
	for progressCh != nil || resultsCh != nil || doneCh != nil {
		select {
		case p, ok := <-progressCh:
			if !ok {
				progressCh = nil
				continue
			}
			progress = append(progress, p)
		case batch, ok := <-resultsCh:
			if !ok {
				resultsCh = nil
				continue
			}
			batches = append(batches, batch)
		case err, ok := <-doneCh:
			if !ok {
				doneCh = nil
				continue
			}
			terminal = err
		case <-timeout:
			t.Fatal("run did not finish")
		}
	}
	return progress, batches, terminal
}

func lines(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s-%d", prefix, i)
	}
	return out
}

func echoReviewer(calls *[]recordedCall) ReviewerFunc {
	return func(ctx context.Context, source, target []string) ([]RawResult, error) {
		if calls != nil {
			*calls = append(*calls, recordedCall{source: source, target: target})
		}
		raw := make([]RawResult, len(source))
		for i := range source {
			raw[i] = RawResult{ID: 999, Score: 8, Comment: "ok"}
		}
		return raw, nil
	}
}

func TestStartRejectsMismatchedInputs(t *testing.T) {
	calls := 0
	reviewer := ReviewerFunc(func(ctx context.Context, s, tg []string) ([]RawResult, error) {
		calls++
		return nil, nil
	})
	p, err := New(reviewer, 10, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = p.Start(context.Background(), []string{"a", "b"}, []string{"a"})
	if !errors.Is(err, ErrInputMismatch) {
		t.Fatalf("err = %v, want ErrInputMismatch", err)
	}
	if calls != 0 {
		t.Errorf("reviewer invoked %d times before validation, want 0", calls)
	}
}

func TestBatchPartitioning(t *testing.T) {
	var calls []recordedCall
	p, err := New(echoReviewer(&calls), 10, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	run, err := p.Start(context.Background(), lines("s", 25), lines("t", 25))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	progress, batches, terminal := collect(t, run)
	if terminal != nil {
		t.Fatalf("terminal error: %v", terminal)
	}

	if len(calls) != 3 {
		t.Fatalf("got %d batches, want 3", len(calls))
	}
	wantSizes := []int{10, 10, 5}
	wantStarts := []int{0, 10, 20}
	for i, call := range calls {
		if len(call.source) != wantSizes[i] {
			t.Errorf("batch %d size = %d, want %d", i, len(call.source), wantSizes[i])
		}
		if call.source[0] != fmt.Sprintf("s-%d", wantStarts[i]) {
			t.Errorf("batch %d first line = %q, want start index %d", i, call.source[0], wantStarts[i])
		}
	}

	if len(progress) != 3 {
		t.Fatalf("got %d progress events, want 3", len(progress))
	}
	for i, p := range progress {
		if p.Done != wantStarts[i] || p.Total != 25 {
			t.Errorf("progress %d = %d/%d, want %d/25", i, p.Done, p.Total, wantStarts[i])
		}
	}

	seen := make(map[int]bool)
	for _, batch := range batches {
		for _, r := range batch {
			seen[r.Row] = true
		}
	}
	for row := 0; row < 25; row++ {
		if !seen[row] {
			t.Errorf("row %d missing from results", row)
		}
	}
}

func TestRowIdentityOverwritten(t *testing.T) {
	reviewer := ReviewerFunc(func(ctx context.Context, s, tg []string) ([]RawResult, error) {
		raw := make([]RawResult, len(s))
		for i := range raw {
			// Hallucinated, colliding identifiers.
			raw[i] = RawResult{ID: -7, Score: 5}
		}
		return raw, nil
	})
	p, _ := New(reviewer, 3, nil)
	run, err := p.Start(context.Background(), lines("s", 7), lines("t", 7))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	_, batches, terminal := collect(t, run)
	if terminal != nil {
		t.Fatalf("terminal error: %v", terminal)
	}

	var rows []int
	for _, batch := range batches {
		for _, r := range batch {
			rows = append(rows, r.Row)
		}
	}
	for i, row := range rows {
		if row != i {
			t.Fatalf("rows = %v, want 0..6 in order", rows)
		}
	}
}

func TestExtraResultItemsDiscarded(t *testing.T) {
	reviewer := ReviewerFunc(func(ctx context.Context, s, tg []string) ([]RawResult, error) {
		raw := make([]RawResult, len(s)+2)
		return raw, nil
	})
	p, _ := New(reviewer, 4, nil)
	run, err := p.Start(context.Background(), lines("s", 4), lines("t", 4))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	_, batches, _ := collect(t, run)
	if len(batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(batches))
	}
	if len(batches[0]) != 4 {
		t.Errorf("batch holds %d results, want 4", len(batches[0]))
	}
}

func TestFailedBatchIsSkipped(t *testing.T) {
	reviewer := ReviewerFunc(func(ctx context.Context, s, tg []string) ([]RawResult, error) {
		if s[0] == "s-10" {
			return nil, errors.New("service exploded")
		}
		raw := make([]RawResult, len(s))
		return raw, nil
	})
	p, _ := New(reviewer, 10, nil)
	run, err := p.Start(context.Background(), lines("s", 25), lines("t", 25))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	_, batches, terminal := collect(t, run)
	if terminal != nil {
		t.Fatalf("terminal error: %v, want completed run", terminal)
	}

	seen := make(map[int]bool)
	for _, batch := range batches {
		for _, r := range batch {
			seen[r.Row] = true
		}
	}
	for row := 0; row < 25; row++ {
		want := row < 10 || row >= 20
		if seen[row] != want {
			t.Errorf("row %d scored = %v, want %v", row, seen[row], want)
		}
	}
}

func TestCancellationBetweenBatches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	reviewer := ReviewerFunc(func(ctx context.Context, s, tg []string) ([]RawResult, error) {
		calls++
		// Cancel after the first batch is dispatched; the batch itself
		// still completes.
		cancel()
		return make([]RawResult, len(s)), nil
	})
	p, _ := New(reviewer, 10, nil)
	run, err := p.Start(ctx, lines("s", 25), lines("t", 25))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	_, batches, terminal := collect(t, run)
	if terminal != nil {
		t.Fatalf("cancellation should end cleanly, got %v", terminal)
	}
	if calls != 1 {
		t.Errorf("reviewer called %d times, want 1", calls)
	}
	// Batch 1 was dispatched before cancellation, so its results are
	// delivered; batch 2 must never appear.
	if len(batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(batches))
	}
	for _, r := range batches[0] {
		if r.Row >= 10 {
			t.Errorf("row %d emitted after cancellation", r.Row)
		}
	}
}

func TestWorkerPanicIsFatal(t *testing.T) {
	reviewer := ReviewerFunc(func(ctx context.Context, s, tg []string) ([]RawResult, error) {
		panic("boom")
	})
	p, _ := New(reviewer, 10, nil)
	run, err := p.Start(context.Background(), lines("s", 5), lines("t", 5))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	_, batches, terminal := collect(t, run)
	if terminal == nil {
		t.Fatal("expected fatal error from panicking reviewer")
	}
	if len(batches) != 0 {
		t.Errorf("got %d batches from fatal run, want 0", len(batches))
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, 10, nil); err == nil {
		t.Fatal("expected error for nil reviewer")
	}
	p, err := New(echoReviewer(nil), 0, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.batchSize != DefaultBatchSize {
		t.Errorf("batchSize = %d, want default %d", p.batchSize, DefaultBatchSize)
	}
}
