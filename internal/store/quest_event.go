package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendQuestClaim(ctx context.Context, data QuestClaimData) error {
	err := r.insert(ctx, "quest_claims",
		[]string{"ts", "quest_id", "window_key", "reward"},
		[]any{stamp(data.Timestamp), data.QuestID, data.WindowKey, data.Reward},
	)
	if err != nil {
		return fmt.Errorf("save quest claim: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuestClaims(ctx context.Context, opts QueryOpts) ([]QuestClaim, error) {
	sel := selectEvents("quest_claims", opts, "sequence", "ts", "quest_id", "window_key", "reward")

	var out []QuestClaim
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			c  QuestClaim
			ts int64
		)
		if err := rows.Scan(&c.Sequence, &ts, &c.QuestID, &c.WindowKey, &c.Reward); err != nil {
			return err
		}
		c.Timestamp = unstamp(ts)
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query quest claims: %w", err)
	}
	return out, nil
}

func (r *eventRepo) HasQuestClaim(ctx context.Context, questID, window string) (bool, error) {
	sel := builder().Select(entsql.Count("*")).From(entsql.Table("quest_claims")).
		Where(entsql.And(entsql.EQ("quest_id", questID), entsql.EQ("window_key", window)))

	var n int
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		return rows.Scan(&n)
	})
	if err != nil {
		return false, fmt.Errorf("count quest claims: %w", err)
	}
	return n > 0, nil
}
