package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendPurchase(ctx context.Context, data PurchaseEventData) error {
	var expires sql.NullInt64
	if !data.ExpiresAt.IsZero() {
		expires = sql.NullInt64{Int64: data.ExpiresAt.UnixMilli(), Valid: true}
	}
	err := r.insert(ctx, "purchase_events",
		[]string{"ts", "purchase_id", "item_id", "price", "expires_at"},
		[]any{stamp(data.Timestamp), data.PurchaseID, data.ItemID, data.Price, expires},
	)
	if err != nil {
		return fmt.Errorf("save purchase event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryPurchases(ctx context.Context, opts QueryOpts) ([]PurchaseEvent, error) {
	sel := selectEvents("purchase_events", opts,
		"sequence", "ts", "purchase_id", "item_id", "price", "expires_at")

	var out []PurchaseEvent
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			e       PurchaseEvent
			ts      int64
			expires sql.NullInt64
		)
		if err := rows.Scan(&e.Sequence, &ts, &e.PurchaseID, &e.ItemID, &e.Price, &expires); err != nil {
			return err
		}
		e.Timestamp = unstamp(ts)
		if expires.Valid {
			e.ExpiresAt = unstamp(expires.Int64)
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query purchase events: %w", err)
	}
	return out, nil
}
