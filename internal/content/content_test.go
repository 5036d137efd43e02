package content

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/abhisek/owllearn/internal/progress"
)

func TestStatic_LessonShape(t *testing.T) {
	p := NewSeeded(1)
	qs, err := p.Questions(progress.LessonID{Stage: 2, SubStage: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != len(AllKinds()) {
		t.Fatalf("len = %d, want %d", len(qs), len(AllKinds()))
	}
	for i, k := range AllKinds() {
		q := qs[i]
		if q.Kind != k {
			t.Errorf("question %d kind = %s, want %s", i, q.Kind, k)
		}
		if k.MultipleChoice() {
			if len(q.Options) != 4 {
				t.Errorf("%s has %d options, want 4", k, len(q.Options))
			}
			if !slices.Contains(q.Options, q.Answer) {
				t.Errorf("%s options %v miss answer %q", k, q.Options, q.Answer)
			}
		}
		if !Check(q, q.Answer) {
			t.Errorf("%s rejects its own answer %q", k, q.Answer)
		}
	}

	if qs[0].Prompt != "father" || qs[0].Answer != "父" {
		t.Errorf("meaning question = %q/%q, want father/父", qs[0].Prompt, qs[0].Answer)
	}
	if qs[1].Audio != "sister" {
		t.Errorf("listening word = %q, want sister", qs[1].Audio)
	}
	wo := qs[2]
	if strings.Join(slices.Sorted(slices.Values(wo.Tiles)), " ") !=
		strings.Join(slices.Sorted(slices.Values(strings.Fields(wo.Answer))), " ") {
		t.Errorf("tiles %v are not a permutation of %q", wo.Tiles, wo.Answer)
	}
}

func TestStatic_DeterministicWithSeed(t *testing.T) {
	id := progress.LessonID{Stage: 1, SubStage: 1}
	a, _ := NewSeeded(42).Questions(id)
	b, _ := NewSeeded(42).Questions(id)
	for i := range a {
		if !slices.Equal(a[i].Options, b[i].Options) || !slices.Equal(a[i].Tiles, b[i].Tiles) {
			t.Errorf("question %d differs between identical seeds", i)
		}
	}
}

func TestStatic_FallsBackToStageOne(t *testing.T) {
	qs, err := NewSeeded(7).Questions(progress.LessonID{Stage: 17, SubStage: 1})
	if err != nil {
		t.Fatal(err)
	}
	if qs[0].Prompt != "school" {
		t.Errorf("prompt = %q, want school", qs[0].Prompt)
	}
}

func TestStatic_DistractorsExcludeLessonWords(t *testing.T) {
	qs, _ := NewSeeded(3).Questions(progress.LessonID{Stage: 3, SubStage: 2})
	for _, q := range qs[:2] {
		seen := map[string]int{}
		for _, o := range q.Options {
			seen[o]++
		}
		for o, n := range seen {
			if n > 1 {
				t.Errorf("%s option %q repeated", q.Kind, o)
			}
		}
	}
}

func TestStatic_InvalidLesson(t *testing.T) {
	_, err := NewSeeded(1).Questions(progress.LessonID{Stage: 1, SubStage: 9})
	if !errors.Is(err, progress.ErrInvalidLessonID) {
		t.Errorf("err = %v, want ErrInvalidLessonID", err)
	}
}

func TestCheck(t *testing.T) {
	mc := Question{Kind: KindMeaningMC, Options: []string{"本", "学校", "水", "父"}, Answer: "学校"}
	hear := Question{Kind: KindTypeHear, Answer: "teacher"}
	order := Question{Kind: KindWordOrder, Answer: "I go to school every day"}
	phon := Question{Kind: KindPhoneticPractice, Answer: PhoneticCompleted}

	tests := []struct {
		name      string
		q         Question
		submitted string
		want      bool
	}{
		{"mc text", mc, "学校", true},
		{"mc index", mc, "2", true},
		{"mc wrong index", mc, "1", false},
		{"mc index out of range", mc, "5", false},
		{"mc wrong text", mc, "水", false},
		{"mc empty", mc, "  ", false},
		{"hear exact", hear, "teacher", true},
		{"hear case", hear, "  Teacher ", true},
		{"hear wrong", hear, "teachers", false},
		{"order exact", order, "I go to school every day", true},
		{"order spacing", order, "I  go to school   every day", true},
		{"order swapped", order, "I go to every school day", false},
		{"order case", order, "i go to school every day", false},
		{"phonetic done", phon, "completed", true},
		{"phonetic other", phon, "skip", false},
		{"unknown kind", Question{Kind: "X", Answer: "a"}, "a", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Check(tt.q, tt.submitted); got != tt.want {
				t.Errorf("Check(%q) = %v, want %v", tt.submitted, got, tt.want)
			}
		})
	}
}
