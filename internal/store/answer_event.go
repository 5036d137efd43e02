package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, "answer_events",
		[]string{"ts", "session_id", "lesson_id", "question_index", "kind", "submitted", "correct", "heart_lost"},
		[]any{stamp(data.Timestamp), data.SessionID, data.LessonID, data.QuestionIndex,
			data.Kind, data.Submitted, data.Correct, data.HeartLost},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error) {
	sel := selectEvents("answer_events", opts,
		"sequence", "ts", "session_id", "lesson_id", "question_index", "kind", "submitted", "correct", "heart_lost")

	var out []AnswerEvent
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			e  AnswerEvent
			ts int64
		)
		if err := rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.LessonID, &e.QuestionIndex,
			&e.Kind, &e.Submitted, &e.Correct, &e.HeartLost); err != nil {
			return err
		}
		e.Timestamp = unstamp(ts)
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	return out, nil
}
