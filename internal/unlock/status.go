package unlock

import (
	"github.com/abhisek/owllearn/internal/curriculum"
	"github.com/abhisek/owllearn/internal/progress"
)

// Status is a lesson node's state relative to the learner.
type Status int

const (
	Locked    Status = iota // Not reachable yet
	Available                // Playable: behind the frontier or the next one ahead
	Current                  // The frontier lesson
	Completed                // Already finished; replayable
)

// Icon returns the map marker for a status.
func (s Status) Icon() string {
	switch s {
	case Locked:
		return "🔒"
	case Available:
		return "⭐"
	case Current:
		return "▶"
	case Completed:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the display label for a status.
func (s Status) Label() string {
	switch s {
	case Locked:
		return "Locked"
	case Available:
		return "Available"
	case Current:
		return "Current"
	case Completed:
		return "Completed"
	default:
		return "Unknown"
	}
}

func (s Status) String() string { return s.Label() }

// Playable reports whether a node with this status can be entered.
func (s Status) Playable() bool {
	return s != Locked
}

// StatusOf classifies the node (stage, subStage). Rules are tried in order
// and the first match wins. Nodes outside shape are Locked.
func StatusOf(s progress.State, shape curriculum.Shape, stage, subStage int) Status {
	if !shape.Contains(stage, subStage) {
		return Locked
	}

	id := progress.LessonID{Stage: stage, SubStage: subStage}
	switch {
	case s.CompletedLessons.Has(id):
		return Completed
	case stage == s.CurrentStage && subStage == s.CurrentSubStage:
		return Current
	case stage < s.CurrentStage,
		stage == s.CurrentStage && subStage < s.CurrentSubStage:
		return Available
	case stage == s.CurrentStage && subStage == s.CurrentSubStage+1:
		return Available
	case stage == s.CurrentStage+1 && subStage == 1 && stageDone(s, shape, s.CurrentStage):
		return Available
	default:
		return Locked
	}
}

func stageDone(s progress.State, shape curriculum.Shape, stage int) bool {
	for sub := 1; sub <= shape.SubStagesPerStage; sub++ {
		if !s.CompletedLessons.Has(progress.LessonID{Stage: stage, SubStage: sub}) {
			return false
		}
	}
	return true
}
