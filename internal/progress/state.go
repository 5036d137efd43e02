package progress

import (
	"cloud.google.com/go/civil"

	"github.com/abhisek/owllearn/internal/curriculum"
)

const (
	// MaxHearts is the number of lives a learner starts with and refills to.
	MaxHearts = 5

	// InitialGems is the starting gem balance.
	InitialGems = 100

	// LessonCompletionGems is paid for every completed lesson, including replays.
	LessonCompletionGems = 5

	// XPPerLevel is the experience needed for each level.
	XPPerLevel = 100
)

// State is the learner's canonical progression. Values are only ever
// produced by Apply; a State is safe to copy and compare with Equal.
type State struct {
	Hearts  int
	XP      int
	TotalXP int
	Streak  int

	// LastPlayDate is the last calendar day a streak check-in happened,
	// nil before the first one.
	LastPlayDate *civil.Date

	// CurrentStage and CurrentSubStage are the frontier lesson.
	CurrentStage    int
	CurrentSubStage int

	CompletedLessons LessonSet
	Gems             int
}

// Defaults returns the state of a brand-new learner.
func Defaults() State {
	return State{
		Hearts:           MaxHearts,
		CurrentStage:     1,
		CurrentSubStage:  1,
		CompletedLessons: NewLessonSet(),
		Gems:             InitialGems,
	}
}

// Frontier returns the current lesson.
func (s State) Frontier() LessonID {
	return LessonID{Stage: s.CurrentStage, SubStage: s.CurrentSubStage}
}

// Level returns the learner's level, starting at 1.
func (s State) Level() int {
	return Level(s.TotalXP)
}

// StageCompleted reports whether every substage of stage is in the
// completed set.
func (s State) StageCompleted(stage int) bool {
	for sub := 1; sub <= curriculum.SubStagesPerStage; sub++ {
		if !s.CompletedLessons.Has(LessonID{Stage: stage, SubStage: sub}) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.CompletedLessons = s.CompletedLessons.Clone()
	if s.LastPlayDate != nil {
		d := *s.LastPlayDate
		out.LastPlayDate = &d
	}
	return out
}

// Equal compares two states by value.
func (s State) Equal(other State) bool {
	if s.Hearts != other.Hearts ||
		s.XP != other.XP ||
		s.TotalXP != other.TotalXP ||
		s.Streak != other.Streak ||
		s.CurrentStage != other.CurrentStage ||
		s.CurrentSubStage != other.CurrentSubStage ||
		s.Gems != other.Gems {
		return false
	}
	if (s.LastPlayDate == nil) != (other.LastPlayDate == nil) {
		return false
	}
	if s.LastPlayDate != nil && *s.LastPlayDate != *other.LastPlayDate {
		return false
	}
	return s.CompletedLessons.Equal(other.CompletedLessons)
}

// Level maps total experience to a level: every XPPerLevel adds one.
func Level(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/XPPerLevel + 1
}

// XPToNextLevel returns the experience still missing for the next level.
func XPToNextLevel(totalXP int) int {
	return Level(totalXP)*XPPerLevel - max(totalXP, 0)
}
