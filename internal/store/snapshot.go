package store

import (
	"context"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo.
type snapshotRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}
	seq := snap.Sequence
	if seq == 0 {
		if seq, err = r.seq.Next(ctx); err != nil {
			return err
		}
	}
	query, args := builder().Insert("snapshots").
		Columns("sequence", "ts", "data").
		Values(seq, stamp(snap.Timestamp), data).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	snaps, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, nil
	}
	return &snaps[0], nil
}

func (r *snapshotRepo) List(ctx context.Context, limit int) ([]Snapshot, error) {
	sel := builder().Select("id", "sequence", "ts", "data").
		From(entsql.Table("snapshots")).
		OrderBy(entsql.Desc("ts"), entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}

	var out []Snapshot
	err := queryRows(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var (
			s    Snapshot
			ts   int64
			data []byte
		)
		if err := rows.Scan(&s.ID, &s.Sequence, &ts, &data); err != nil {
			return err
		}
		if err := json.Unmarshal(data, &s.Data); err != nil {
			return fmt.Errorf("unmarshal snapshot %d: %w", s.ID, err)
		}
		s.Timestamp = unstamp(ts)
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	return out, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Find the newest snapshot that falls outside the window.
	sel := builder().Select("id").
		From(entsql.Table("snapshots")).
		OrderBy(entsql.Desc("ts"), entsql.Desc("id")).
		Offset(keep).
		Limit(1)

	var cutoff int64
	err := queryRows(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		return rows.Scan(&cutoff)
	})
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	if cutoff == 0 {
		return nil // fewer than keep snapshots exist
	}

	query, args := builder().Delete("snapshots").
		Where(entsql.LTE("id", cutoff)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
