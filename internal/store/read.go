package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned by ReadRun for an unknown id.
var ErrRunNotFound = errors.New("run not found")

const runColumns = `id, seq, schema_hash, engine_version, inputs_hash, inputs, outputs, status, error`

// ReadRun returns the run with the given id.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns all runs ordered by seq ASC, id ASC COLLATE BINARY.
// Returns an empty slice (not nil) if the table is empty.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
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

// NextSeq returns the seq the next run should use, starting at 1.
func (s *Store) NextSeq(ctx context.Context) (int64, error) {
	var last sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM runs`).Scan(&last); err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	if !last.Valid {
		return 1, nil
	}
	return last.Int64 + 1, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run             Run
		inputs, outputs string
	)
	if err := sc.Scan(
		&run.ID,
		&run.Seq,
		&run.SchemaHash,
		&run.EngineVersion,
		&run.InputsHash,
		&inputs,
		&outputs,
		&run.Status,
		&run.Error,
	); err != nil {
		return Run{}, err
	}

	var err error
	if run.Inputs, err = unmarshalExchange(inputs); err != nil {
		return Run{}, fmt.Errorf("scan run %s inputs: %w", run.ID, err)
	}
	if run.Outputs, err = unmarshalExchange(outputs); err != nil {
		return Run{}, fmt.Errorf("scan run %s outputs: %w", run.ID, err)
	}
	return run, nil
}
