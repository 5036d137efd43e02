package store

import (
	"context"
	"time"

	"github.com/abhisek/owllearn/internal/progress"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are always newest first.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// AnswerEventData records one submitted answer.
type AnswerEventData struct {
	Timestamp     time.Time
	SessionID     string
	LessonID      string
	QuestionIndex int
	Kind          string
	Submitted     string
	Correct       bool
	HeartLost     bool
}

// AnswerEvent is a stored AnswerEventData.
type AnswerEvent struct {
	Sequence int64
	AnswerEventData
}

// Lesson outcomes.
const (
	OutcomeCompleted   = "completed"
	OutcomeOutOfHearts = "out_of_hearts"
	OutcomeAbandoned   = "abandoned"
)

// LessonEventData records the end of a lesson session.
type LessonEventData struct {
	Timestamp time.Time
	SessionID string
	LessonID  string
	Outcome   string
	Mistakes  int
	XPEarned  int
	Perfect   bool

	// StageDone is set when this lesson finished the last open lesson of
	// its stage.
	StageDone bool
}

// LessonEvent is a stored LessonEventData.
type LessonEvent struct {
	Sequence int64
	LessonEventData
}

// PurchaseEventData records a shop purchase.
type PurchaseEventData struct {
	Timestamp  time.Time
	PurchaseID string
	ItemID     string
	Price      int

	// ExpiresAt is zero for items without a duration.
	ExpiresAt time.Time
}

// PurchaseEvent is a stored PurchaseEventData.
type PurchaseEvent struct {
	Sequence int64
	PurchaseEventData
}

// QuestClaimData records a claimed quest reward.
type QuestClaimData struct {
	Timestamp time.Time
	QuestID   string
	WindowKey string
	Reward    int
}

// QuestClaim is a stored QuestClaimData.
type QuestClaim struct {
	Sequence int64
	QuestClaimData
}

// EventRepo is the append-only activity log.
type EventRepo interface {
	AppendAnswer(ctx context.Context, data AnswerEventData) error
	AppendLesson(ctx context.Context, data LessonEventData) error
	AppendPurchase(ctx context.Context, data PurchaseEventData) error
	AppendQuestClaim(ctx context.Context, data QuestClaimData) error

	QueryAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error)
	QueryLessons(ctx context.Context, opts QueryOpts) ([]LessonEvent, error)
	QueryPurchases(ctx context.Context, opts QueryOpts) ([]PurchaseEvent, error)
	QueryQuestClaims(ctx context.Context, opts QueryOpts) ([]QuestClaim, error)

	// HasQuestClaim reports whether questID was claimed in window.
	HasQuestClaim(ctx context.Context, questID, window string) (bool, error)
}

// SnapshotData is the learner's progress at one point in time.
type SnapshotData struct {
	Version int             `json:"version"`
	Record  progress.Record `json:"record"`
}

// Snapshot is a stored SnapshotData.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo keeps point-in-time copies of the progress record.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// List returns up to limit snapshots, newest first.
	List(ctx context.Context, limit int) ([]Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// Peer is one leaderboard entry other than the learner.
type Peer struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Avatar  string `db:"avatar"`
	TotalXP int    `db:"total_xp"`
	Streak  int    `db:"streak"`
	Lessons int    `db:"lessons"`
}

// PeerRepo manages the leaderboard roster.
type PeerRepo interface {
	List(ctx context.Context) ([]Peer, error)
	Upsert(ctx context.Context, p Peer) error
}

func stamp(t time.Time) int64 {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UnixMilli()
}

func unstamp(ms int64) time.Time {
	return time.UnixMilli(ms)
}
