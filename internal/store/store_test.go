package store

import (
	"context"
	"errors"
	"testing"

	"sublint/internal/review"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func TestCreateRunAndRows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "a.srt", "b.srt", "source",
		[]string{"s1", "s2", "s3"}, []string{"t1", "t2", "t3"})
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if run.ID == "" {
		t.Fatal("run id empty")
	}
	if run.Status != StatusPending {
		t.Errorf("status = %q, want pending", run.Status)
	}

	rows, err := s.RowsForRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("RowsForRun: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i, row := range rows {
		if row.Row != i {
			t.Errorf("row %d has index %d", i, row.Row)
		}
		if row.Scored {
			t.Errorf("row %d scored before any results", i)
		}
	}
}

func TestCreateRunMismatch(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.CreateRun(context.Background(), "a", "b", "source", []string{"x"}, nil); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestApplyResults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	run, err := s.CreateRun(ctx, "a.srt", "b.srt", "target",
		[]string{"s1", "s2"}, []string{"t1", "t2"})
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	err = s.ApplyResults(ctx, run.ID, []review.Result{
		{Row: 1, Score: 7.5, Issues: []string{"mistranslation"}, Comment: "off", Suggestion: "better"},
	})
	if err != nil {
		t.Fatalf("ApplyResults: %v", err)
	}

	rows, err := s.RowsForRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("RowsForRun: %v", err)
	}
	if rows[0].Scored {
		t.Error("row 0 should remain unscored")
	}
	if !rows[1].Scored || rows[1].Score != 7.5 {
		t.Errorf("row 1 = %+v, want scored 7.5", rows[1])
	}
	if len(rows[1].Issues) != 1 || rows[1].Issues[0] != "mistranslation" {
		t.Errorf("row 1 issues = %v", rows[1].Issues)
	}
}

func TestApplyResultsUnknownRow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	run, _ := s.CreateRun(ctx, "a", "b", "source", []string{"s"}, []string{"t"})
	if err := s.ApplyResults(ctx, run.ID, []review.Result{{Row: 9}}); err == nil {
		t.Fatal("expected error for out-of-range row")
	}
}

func TestSetStatusAndGetRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	run, _ := s.CreateRun(ctx, "a", "b", "source", []string{"s"}, []string{"t"})

	if err := s.SetStatus(ctx, run.ID, StatusCompleted, ""); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	got, err := s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Status != StatusCompleted {
		t.Errorf("status = %q, want completed", got.Status)
	}

	// Prefix lookup.
	got, err = s.GetRun(ctx, run.ID[:8])
	if err != nil {
		t.Fatalf("GetRun by prefix: %v", err)
	}
	if got.ID != run.ID {
		t.Errorf("prefix lookup returned %q", got.ID)
	}

	if err := s.SetStatus(ctx, "missing", StatusFailed, "boom"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetStatus unknown run err = %v, want ErrNotFound", err)
	}
	if err := s.SetStatus(ctx, run.ID, Status("bogus"), ""); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	first, _ := s.CreateRun(ctx, "a", "b", "source", []string{"s"}, []string{"t"})
	second, _ := s.CreateRun(ctx, "c", "d", "target", []string{"s"}, []string{"t"})

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != second.ID || runs[1].ID != first.ID {
		t.Errorf("runs not newest first: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetRun(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
