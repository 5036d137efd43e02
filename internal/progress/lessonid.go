package progress

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/abhisek/owllearn/internal/curriculum"
)

// LessonID names one lesson by its position in the skill tree.
type LessonID struct {
	Stage    int
	SubStage int
}

// NewLessonID validates stage and subStage and returns the identifier.
func NewLessonID(stage, subStage int) (LessonID, error) {
	if stage < 1 {
		return LessonID{}, fmt.Errorf("%w: stage %d must be >= 1", ErrInvalidLessonID, stage)
	}
	if subStage < 1 || subStage > curriculum.SubStagesPerStage {
		return LessonID{}, fmt.Errorf("%w: substage %d must be in [1, %d]",
			ErrInvalidLessonID, subStage, curriculum.SubStagesPerStage)
	}
	return LessonID{Stage: stage, SubStage: subStage}, nil
}

// ParseLessonID parses the "{stage}-{subStage}" form.
func ParseLessonID(s string) (LessonID, error) {
	stagePart, subPart, ok := strings.Cut(s, "-")
	if !ok {
		return LessonID{}, fmt.Errorf("%w: %q has no separator", ErrInvalidLessonID, s)
	}
	stage, err := parseComponent(stagePart)
	if err != nil {
		return LessonID{}, fmt.Errorf("%w: %q: stage: %v", ErrInvalidLessonID, s, err)
	}
	sub, err := parseComponent(subPart)
	if err != nil {
		return LessonID{}, fmt.Errorf("%w: %q: substage: %v", ErrInvalidLessonID, s, err)
	}
	return NewLessonID(stage, sub)
}

// parseComponent accepts plain decimal digits only: no sign, no spaces, no
// leading zeros.
func parseComponent(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty")
	}
	if s[0] == '0' {
		return 0, errors.New("leading zero")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit %q", r)
		}
	}
	return strconv.Atoi(s)
}

// String returns the "{stage}-{subStage}" form.
func (id LessonID) String() string {
	return fmt.Sprintf("%d-%d", id.Stage, id.SubStage)
}

// Less orders lessons by stage, then substage.
func (id LessonID) Less(other LessonID) bool {
	if id.Stage != other.Stage {
		return id.Stage < other.Stage
	}
	return id.SubStage < other.SubStage
}

func (id LessonID) compare(other LessonID) int {
	switch {
	case id.Less(other):
		return -1
	case other.Less(id):
		return 1
	default:
		return 0
	}
}

// LessonSet is a membership-only set of completed lessons. The zero value is
// an empty set. Add returns a new set so a State never shares its set with
// another State.
type LessonSet struct {
	m map[LessonID]struct{}
}

// NewLessonSet builds a set from ids, collapsing duplicates.
func NewLessonSet(ids ...LessonID) LessonSet {
	m := make(map[LessonID]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return LessonSet{m: m}
}

// Has reports membership.
func (s LessonSet) Has(id LessonID) bool {
	_, ok := s.m[id]
	return ok
}

// Len returns the number of lessons in the set.
func (s LessonSet) Len() int {
	return len(s.m)
}

// Add returns a copy of s that also contains id.
func (s LessonSet) Add(id LessonID) LessonSet {
	out := s.Clone()
	out.m[id] = struct{}{}
	return out
}

// Clone returns an independent copy.
func (s LessonSet) Clone() LessonSet {
	m := make(map[LessonID]struct{}, len(s.m)+1)
	for id := range s.m {
		m[id] = struct{}{}
	}
	return LessonSet{m: m}
}

// Sorted returns the members in stage/substage order.
func (s LessonSet) Sorted() []LessonID {
	out := make([]LessonID, 0, len(s.m))
	for id := range s.m {
		out = append(out, id)
	}
	slices.SortFunc(out, LessonID.compare)
	return out
}

// Equal compares contents.
func (s LessonSet) Equal(other LessonSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for id := range s.m {
		if !other.Has(id) {
			return false
		}
	}
	return true
}
