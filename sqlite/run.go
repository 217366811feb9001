package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pagesift"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagesift.RunService = (*RunService)(nil)

// RunService implements pagesift.RunService using SQLite. Each record is
// stored as its exported JSON form, one row per record.
type RunService struct {
	db  *DB
	now func() time.Time
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db, now: time.Now}
}

// CreateRun stores a run and its records, assigning ID and CreatedAt.
func (s *RunService) CreateRun(ctx context.Context, run *pagesift.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}
	if run.Hint == "" {
		run.Hint = pagesift.CategoryAuto
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.New().String()
	createdAt := s.now().UTC().Truncate(time.Second)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, source_url, hint, category, record_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, run.SourceURL, string(run.Hint), string(run.Category), len(run.Records),
		createdAt.Format(time.RFC3339)); err != nil {
		return err
	}

	for i, r := range run.Records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO records (run_id, position, category, fingerprint, data)
			VALUES (?, ?, ?, ?, ?)
		`, id, i, string(r.Category), r.Fingerprint(), string(data)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	run.ID = id
	run.RecordCount = len(run.Records)
	run.CreatedAt = createdAt
	return nil
}

// FindRunByID retrieves a run and its records.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*pagesift.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, hint, category, record_count, created_at
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pagesift.Errorf(pagesift.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT data FROM records WHERE run_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	run.Records = []*pagesift.Record{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var r pagesift.Record
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("decoding record: %w", err)
		}
		run.Records = append(run.Records, &r)
	}
	return run, rows.Err()
}

// FindRuns retrieves runs matching the filter, newest first. Records are
// not loaded.
func (s *RunService) FindRuns(ctx context.Context, filter pagesift.RunFilter) ([]*pagesift.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, hint, category, record_count, created_at FROM runs WHERE 1=1")
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, string(*filter.Category))
	}
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	args = paginate(&query, args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*pagesift.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DeleteRun permanently removes a run and its records.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pagesift.Errorf(pagesift.ENOTFOUND, "run not found")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*pagesift.Run, error) {
	var run pagesift.Run
	var hint, category, createdAt string
	if err := row.Scan(&run.ID, &run.SourceURL, &hint, &category, &run.RecordCount, &createdAt); err != nil {
		return nil, err
	}
	run.Hint = pagesift.Category(hint)
	run.Category = pagesift.Category(category)

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at of run %s: %w", run.ID, err)
	}
	run.CreatedAt = t
	return &run, nil
}

// paginate appends LIMIT and OFFSET clauses. SQLite requires a LIMIT before
// OFFSET; -1 means no limit.
func paginate(query *strings.Builder, args []any, limit, offset int) []any {
	if limit <= 0 && offset <= 0 {
		return args
	}
	if limit <= 0 {
		limit = -1
	}
	query.WriteString(" LIMIT ?")
	args = append(args, limit)
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, offset)
	}
	return args
}
