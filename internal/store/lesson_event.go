package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendLesson(ctx context.Context, data LessonEventData) error {
	err := r.insert(ctx, "lesson_events",
		[]string{"ts", "session_id", "lesson_id", "outcome", "mistakes", "xp_earned", "perfect", "stage_done"},
		[]any{stamp(data.Timestamp), data.SessionID, data.LessonID, data.Outcome,
			data.Mistakes, data.XPEarned, data.Perfect, data.StageDone},
	)
	if err != nil {
		return fmt.Errorf("save lesson event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLessons(ctx context.Context, opts QueryOpts) ([]LessonEvent, error) {
	sel := selectEvents("lesson_events", opts,
		"sequence", "ts", "session_id", "lesson_id", "outcome", "mistakes", "xp_earned", "perfect", "stage_done")

	var out []LessonEvent
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			e  LessonEvent
			ts int64
		)
		if err := rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.LessonID, &e.Outcome,
			&e.Mistakes, &e.XPEarned, &e.Perfect, &e.StageDone); err != nil {
			return err
		}
		e.Timestamp = unstamp(ts)
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query lesson events: %w", err)
	}
	return out, nil
}
