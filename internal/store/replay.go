package store

import (
	"context"
	"fmt"
	"math"
	"slices"
)

// Executor re-runs a recorded input exchange on a fresh engine and returns
// the published outputs.
type Executor func(ctx context.Context, inputs map[string]float64) (map[string]float64, error)

// Mismatch is one output that differs between the record and the replay.
type Mismatch struct {
	Name     string
	Recorded float64
	Replayed float64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: recorded %v, replayed %v", m.Name, m.Recorded, m.Replayed)
}

// ReplayResult is the outcome of replaying one run.
type ReplayResult struct {
	RunID      string
	Seq        int64
	Match      bool
	Mismatches []Mismatch

	// Err is the replay's own failure, if any. A recorded failure that fails
	// again still matches.
	Err error
}

// Replay re-executes recorded runs and compares outputs bit for bit.
// With no ids every run is replayed in seq order.
func (s *Store) Replay(ctx context.Context, exec Executor, ids ...string) ([]ReplayResult, error) {
	var runs []Run
	if len(ids) == 0 {
		all, err := s.ListRuns(ctx)
		if err != nil {
			return nil, fmt.Errorf("replay: %w", err)
		}
		runs = all
	} else {
		for _, id := range ids {
			run, err := s.ReadRun(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("replay: %w", err)
			}
			runs = append(runs, run)
		}
	}

	results := make([]ReplayResult, 0, len(runs))
	for _, run := range runs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, replayOne(ctx, exec, run))
	}
	return results, nil
}

func replayOne(ctx context.Context, exec Executor, run Run) ReplayResult {
	res := ReplayResult{RunID: run.ID, Seq: run.Seq}

	outputs, err := exec(ctx, run.Inputs)
	res.Err = err
	if run.Status != StatusOK {
		res.Match = err != nil
		return res
	}
	if err != nil {
		return res
	}

	res.Mismatches = Compare(run.Outputs, outputs)
	res.Match = len(res.Mismatches) == 0
	return res
}

// Compare returns every name whose value differs at the bit level, in name
// order. A name missing on one side reads as NaN there.
func Compare(recorded, replayed map[string]float64) []Mismatch {
	names := make([]string, 0, len(recorded)+len(replayed))
	for k := range recorded {
		names = append(names, k)
	}
	for k := range replayed {
		if _, ok := recorded[k]; !ok {
			names = append(names, k)
		}
	}
	slices.Sort(names)

	var out []Mismatch
	for _, name := range names {
		a, okA := recorded[name]
		b, okB := replayed[name]
		if !okA {
			a = math.NaN()
		}
		if !okB {
			b = math.NaN()
		}
		if okA && okB && sameBits(a, b) {
			continue
		}
		out = append(out, Mismatch{Name: name, Recorded: a, Replayed: b})
	}
	return out
}

func sameBits(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Float64bits(a) == math.Float64bits(b)
}
