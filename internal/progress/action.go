package progress

import "cloud.google.com/go/civil"

// Action is a single transition request. The set of actions is closed: only
// the types in this file implement it.
type Action interface {
	// Kind returns a stable name for logs and the activity log.
	Kind() string

	isAction()
}

// LoseHeart removes one heart, never going below zero.
type LoseHeart struct{}

// GainXP adds Amount to both session and total experience.
type GainXP struct {
	Amount int
}

// CompleteLesson marks ID completed, advances the frontier when ID is the
// frontier lesson, and pays LessonCompletionGems.
type CompleteLesson struct {
	ID LessonID
}

// UpdateStreak records a play on Today.
type UpdateStreak struct {
	Today civil.Date
}

// RefillHearts restores hearts to MaxHearts.
type RefillHearts struct{}

// SpendGems removes Amount gems, never going below zero. Affordability is
// checked by the shop before dispatch.
type SpendGems struct {
	Amount int
}

// EarnGems adds Amount gems.
type EarnGems struct {
	Amount int
}

// AdvanceStage moves the frontier forward one lesson without completing one.
type AdvanceStage struct{}

// LoadState restores persisted fields over the current state.
type LoadState struct {
	Partial Partial
}

// Partial carries the fields of a restored record. Nil pointers keep the
// current value.
type Partial struct {
	Hearts          *int
	XP              *int
	TotalXP         *int
	Streak          *int
	CurrentStage    *int
	CurrentSubStage *int
	Gems            *int

	// SetLastPlayDate says whether LastPlayDate was present in the record;
	// when it is, a nil LastPlayDate clears the date.
	SetLastPlayDate bool
	LastPlayDate    *civil.Date

	// SetCompletedLessons says whether the record carried a lesson list.
	// When it did, CompletedLessons replaces the set: duplicates collapse
	// and a nil list yields an empty set.
	SetCompletedLessons bool
	CompletedLessons    []LessonID
}

func (LoseHeart) Kind() string      { return "lose_heart" }
func (GainXP) Kind() string         { return "gain_xp" }
func (CompleteLesson) Kind() string { return "complete_lesson" }
func (UpdateStreak) Kind() string   { return "update_streak" }
func (RefillHearts) Kind() string   { return "refill_hearts" }
func (SpendGems) Kind() string      { return "spend_gems" }
func (EarnGems) Kind() string       { return "earn_gems" }
func (AdvanceStage) Kind() string   { return "advance_stage" }
func (LoadState) Kind() string      { return "load_state" }

func (LoseHeart) isAction()      {}
func (GainXP) isAction()         {}
func (CompleteLesson) isAction() {}
func (UpdateStreak) isAction()   {}
func (RefillHearts) isAction()   {}
func (SpendGems) isAction()      {}
func (EarnGems) isAction()       {}
func (AdvanceStage) isAction()   {}
func (LoadState) isAction()      {}
