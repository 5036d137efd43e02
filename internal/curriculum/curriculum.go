package curriculum

import (
	"fmt"
	"iter"
)

const (
	// DefaultStages is the number of stages in the shipped skill tree.
	DefaultStages = 20

	// SubStagesPerStage is the number of lessons in every stage.
	SubStagesPerStage = 5
)

// Shape is the static outline of the skill tree. The content subsystem owns
// the lessons themselves; the progression engine only needs these two counts.
type Shape struct {
	Stages            int
	SubStagesPerStage int
}

// Node addresses one lesson in the tree.
type Node struct {
	Stage    int
	SubStage int
}

// Default returns the 20×5 tree.
func Default() Shape {
	return Shape{Stages: DefaultStages, SubStagesPerStage: SubStagesPerStage}
}

// Validate checks that both counts are positive.
func (s Shape) Validate() error {
	if s.Stages < 1 {
		return fmt.Errorf("curriculum: stages must be >= 1, got %d", s.Stages)
	}
	if s.SubStagesPerStage < 1 {
		return fmt.Errorf("curriculum: substages per stage must be >= 1, got %d", s.SubStagesPerStage)
	}
	return nil
}

// Contains reports whether (stage, subStage) is a node of the tree.
func (s Shape) Contains(stage, subStage int) bool {
	return stage >= 1 && stage <= s.Stages &&
		subStage >= 1 && subStage <= s.SubStagesPerStage
}

// TotalLessons returns the number of nodes in the tree.
func (s Shape) TotalLessons() int {
	return s.Stages * s.SubStagesPerStage
}

// Lessons yields every node in stage-major order.
func (s Shape) Lessons() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for stage := 1; stage <= s.Stages; stage++ {
			for sub := 1; sub <= s.SubStagesPerStage; sub++ {
				if !yield(Node{Stage: stage, SubStage: sub}) {
					return
				}
			}
		}
	}
}
