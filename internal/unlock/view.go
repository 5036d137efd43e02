package unlock

import (
	"github.com/abhisek/owllearn/internal/curriculum"
	"github.com/abhisek/owllearn/internal/progress"
)

// NodeView is one lesson on the map.
type NodeView struct {
	ID     progress.LessonID
	Status Status
}

// StageView is one row of the map.
type StageView struct {
	Stage     int
	Band      curriculum.Band
	Theme     curriculum.Theme
	Nodes     []NodeView
	Completed int
}

// Done reports whether every lesson in the stage is completed.
func (v StageView) Done() bool {
	return v.Completed == len(v.Nodes)
}

// Map projects the whole tree for display. It is recomputed from state on
// every change and holds no state of its own.
func Map(s progress.State, shape curriculum.Shape) []StageView {
	views := make([]StageView, 0, shape.Stages)
	for stage := 1; stage <= shape.Stages; stage++ {
		v := StageView{
			Stage: stage,
			Band:  curriculum.BandOf(stage),
			Theme: curriculum.ThemeOf(stage),
			Nodes: make([]NodeView, 0, shape.SubStagesPerStage),
		}
		for sub := 1; sub <= shape.SubStagesPerStage; sub++ {
			st := StatusOf(s, shape, stage, sub)
			if st == Completed {
				v.Completed++
			}
			v.Nodes = append(v.Nodes, NodeView{
				ID:     progress.LessonID{Stage: stage, SubStage: sub},
				Status: st,
			})
		}
		views = append(views, v)
	}
	return views
}

// Playable lists every node that can be entered, in map order.
func Playable(s progress.State, shape curriculum.Shape) []progress.LessonID {
	var out []progress.LessonID
	for n := range shape.Lessons() {
		if StatusOf(s, shape, n.Stage, n.SubStage).Playable() {
			out = append(out, progress.LessonID{Stage: n.Stage, SubStage: n.SubStage})
		}
	}
	return out
}
