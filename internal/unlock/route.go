package unlock

import (
	"github.com/abhisek/owllearn/internal/curriculum"
	"github.com/abhisek/owllearn/internal/progress"
)

// Route is where an attempt to open a lesson node leads.
type Route int

const (
	RouteNone   Route = iota // Node is locked; nothing happens
	RouteLesson              // Start the lesson
	RouteShop                // Out of hearts; go buy a refill
)

func (r Route) String() string {
	switch r {
	case RouteNone:
		return "none"
	case RouteLesson:
		return "lesson"
	case RouteShop:
		return "shop"
	default:
		return "unknown"
	}
}

// Enter decides what opening (stage, subStage) does. Hearts gate every
// playable node, whatever its status.
func Enter(s progress.State, shape curriculum.Shape, stage, subStage int) Route {
	if !StatusOf(s, shape, stage, subStage).Playable() {
		return RouteNone
	}
	if s.Hearts == 0 {
		return RouteShop
	}
	return RouteLesson
}
