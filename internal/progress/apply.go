package progress

import (
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/abhisek/owllearn/internal/curriculum"
)

// Apply returns the state that results from applying a to s. It is pure and
// defined for every Action; s is never modified.
func Apply(s State, a Action) State {
	next := s

	switch a := a.(type) {
	case LoseHeart:
		next.Hearts = max(0, s.Hearts-1)

	case GainXP:
		amount := max(0, a.Amount)
		next.XP = s.XP + amount
		next.TotalXP = s.TotalXP + amount

	case CompleteLesson:
		next.CompletedLessons = s.CompletedLessons.Add(a.ID)
		if a.ID == s.Frontier() {
			next.CurrentStage, next.CurrentSubStage = advance(s.CurrentStage, s.CurrentSubStage)
		}
		next.Gems = s.Gems + LessonCompletionGems

	case UpdateStreak:
		return updateStreak(s, a.Today)

	case RefillHearts:
		next.Hearts = MaxHearts

	case SpendGems:
		next.Gems = max(0, s.Gems-max(0, a.Amount))

	case EarnGems:
		next.Gems = s.Gems + max(0, a.Amount)

	case AdvanceStage:
		next.CurrentStage, next.CurrentSubStage = advance(s.CurrentStage, s.CurrentSubStage)

	case LoadState:
		return load(s, a.Partial)

	default:
		panic(fmt.Sprintf("progress: unhandled action %T", a))
	}

	return next
}

// advance moves a frontier position forward by one lesson.
func advance(stage, subStage int) (int, int) {
	if subStage < curriculum.SubStagesPerStage {
		return stage, subStage + 1
	}
	return stage + 1, 1
}

func updateStreak(s State, today civil.Date) State {
	if s.LastPlayDate != nil {
		switch *s.LastPlayDate {
		case today:
			return s
		case today.AddDays(-1):
			next := s
			next.Streak = s.Streak + 1
			next.LastPlayDate = &today
			return next
		}
	}
	next := s
	next.Streak = 1
	next.LastPlayDate = &today
	return next
}

// load merges p over s and clamps the result back into the state invariants,
// so a hand-edited record can never produce an impossible state.
func load(s State, p Partial) State {
	next := s
	setInt(&next.Hearts, p.Hearts)
	setInt(&next.XP, p.XP)
	setInt(&next.TotalXP, p.TotalXP)
	setInt(&next.Streak, p.Streak)
	setInt(&next.CurrentStage, p.CurrentStage)
	setInt(&next.CurrentSubStage, p.CurrentSubStage)
	setInt(&next.Gems, p.Gems)

	if p.SetLastPlayDate {
		next.LastPlayDate = nil
		if p.LastPlayDate != nil {
			d := *p.LastPlayDate
			next.LastPlayDate = &d
		}
	}

	if p.SetCompletedLessons {
		next.CompletedLessons = NewLessonSet(p.CompletedLessons...)
	}

	next.Hearts = min(max(next.Hearts, 0), MaxHearts)
	next.XP = max(next.XP, 0)
	next.TotalXP = max(next.TotalXP, 0)
	next.Streak = max(next.Streak, 0)
	next.Gems = max(next.Gems, 0)
	next.CurrentStage = max(next.CurrentStage, 1)
	next.CurrentSubStage = min(max(next.CurrentSubStage, 1), curriculum.SubStagesPerStage)
	return next
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
