package store

import (
	"context"
	"fmt"

	"github.com/roach88/wobos/internal/ir"
)

// WriteRun inserts a run record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
// A different run reusing an existing seq is a constraint error.
//
// InputsHash is computed from Inputs when empty.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	inputs, err := marshalExchange(run.Inputs)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	outputs, err := marshalExchange(run.Outputs)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	if run.InputsHash == "" {
		run.InputsHash, err = ir.InputsHash(run.Inputs)
		if err != nil {
			return fmt.Errorf("write run: %w", err)
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, schema_hash, engine_version, inputs_hash, inputs, outputs, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Seq,
		run.SchemaHash,
		run.EngineVersion,
		run.InputsHash,
		inputs,
		outputs,
		run.Status,
		run.Error,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	return nil
}
