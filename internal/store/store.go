package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"sublint/internal/review"
)

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("run not found")

// ErrLocked is returned when another sublint process holds the data
// directory lock.
var ErrLocked = errors.New("data directory locked by another process")

// Store manages run persistence backed by SQLite. A file lock on the data
// directory serializes writers across processes.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the run database under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure data directory: %w", err)
	}

	lock := flock.New(filepath.Join(dataDir, "sublint.lock"))
	held, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !held {
		return nil, ErrLocked
	}

	dbPath := filepath.Join(dataDir, "runs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close closes the database and releases the directory lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var dbErr error
	if s.db != nil {
		dbErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && dbErr == nil {
			dbErr = err
		}
	}
	return dbErr
}

// CreateRun inserts a run with one unscored row per aligned pair. Source and
// target must already be equal length.
func (s *Store) CreateRun(ctx context.Context, sourceFile, targetFile, masterTrack string, source, target []string) (*Run, error) {
	if len(source) != len(target) {
		return nil, fmt.Errorf("row count mismatch: %d source vs %d target", len(source), len(target))
	}

	run := &Run{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		SourceFile:  sourceFile,
		TargetFile:  targetFile,
		MasterTrack: masterTrack,
		TotalRows:   len(source),
		Status:      StatusPending,
	}
	run.UpdatedAt = run.CreatedAt

	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO runs (id, created_at, updated_at, source_file, target_file, master_track, total_rows, status)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			run.CreatedAt.Format(time.RFC3339Nano),
			run.UpdatedAt.Format(time.RFC3339Nano),
			run.SourceFile,
			run.TargetFile,
			run.MasterTrack,
			run.TotalRows,
			run.Status,
		)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO run_rows (run_id, row, source_text, target_text) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare row insert: %w", err)
		}
		defer stmt.Close()
		for i := range source {
			if _, err := stmt.ExecContext(ctx, run.ID, i, source[i], target[i]); err != nil {
				return fmt.Errorf("insert row %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ApplyResults records one emitted result batch against its run's rows.
// Results referencing rows outside the run are rejected.
func (s *Store) ApplyResults(ctx context.Context, runID string, results []review.Result) error {
	if len(results) == 0 {
		return nil
	}
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`UPDATE run_rows SET scored = 1, score = ?, issues = ?, comment = ?, suggestion = ?
             WHERE run_id = ? AND row = ?`)
		if err != nil {
			return fmt.Errorf("prepare result update: %w", err)
		}
		defer stmt.Close()

		for _, r := range results {
			issues, err := encodeIssues(r.Issues)
			if err != nil {
				return err
			}
			res, err := stmt.ExecContext(ctx, r.Score, issues, r.Comment, r.Suggestion, runID, r.Row)
			if err != nil {
				return fmt.Errorf("update row %d: %w", r.Row, err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected: %w", err)
			}
			if affected == 0 {
				return fmt.Errorf("result for unknown row %d in run %s", r.Row, runID)
			}
		}
		return touchRun(ctx, tx, runID)
	})
}

// SetStatus transitions a run and optionally records an error message.
func (s *Store) SetStatus(ctx context.Context, runID string, status Status, errorMessage string) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		status, errorMessage, time.Now().UTC().Format(time.RFC3339Nano), runID)
	if err != nil {
		return fmt.Errorf("update run status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	return nil
}

// GetRun fetches one run by id. Short unambiguous prefixes are accepted.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, updated_at, source_file, target_file, master_track, total_rows, status, error_message
         FROM runs WHERE id = ? OR id LIKE ? || '%'`, runID, runID)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	var matches []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("run id %q is ambiguous (%d matches)", runID, len(matches))
	}
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, updated_at, source_file, target_file, master_track, total_rows, status, error_message
         FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// RowsForRun returns every row of a run in row order, scored or not.
func (s *Store) RowsForRun(ctx context.Context, runID string) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT row, source_text, target_text, scored, score, issues, comment, suggestion
         FROM run_rows WHERE run_id = ? ORDER BY row ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			row       Row
			scored    int
			issuesRaw string
		)
		if err := rows.Scan(&row.Row, &row.SourceText, &row.TargetText, &scored, &row.Score, &issuesRaw, &row.Comment, &row.Suggestion); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row.Scored = scored != 0
		if err := json.Unmarshal([]byte(issuesRaw), &row.Issues); err != nil {
			return nil, fmt.Errorf("decode issues for row %d: %w", row.Row, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

func touchRun(ctx context.Context, tx *sql.Tx, runID string) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE runs SET updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), runID)
	if err != nil {
		return fmt.Errorf("touch run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(sc rowScanner) (*Run, error) {
	var (
		run       Run
		createdAt string
		updatedAt string
		status    string
	)
	if err := sc.Scan(&run.ID, &createdAt, &updatedAt, &run.SourceFile, &run.TargetFile, &run.MasterTrack, &run.TotalRows, &status, &run.ErrorMessage); err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	run.Status = Status(status)
	var err error
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if run.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &run, nil
}

func encodeIssues(issues []string) (string, error) {
	if issues == nil {
		issues = []string{}
	}
	data, err := json.Marshal(issues)
	if err != nil {
		return "", fmt.Errorf("encode issues: %w", err)
	}
	return string(data), nil
}
