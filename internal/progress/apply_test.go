package progress

import (
	"testing"

	"cloud.google.com/go/civil"
)

var today = civil.Date{Year: 2026, Month: 10, Day: 14}

func stateAt(stage, sub int, completed ...LessonID) State {
	s := Defaults()
	s.CurrentStage = stage
	s.CurrentSubStage = sub
	s.CompletedLessons = NewLessonSet(completed...)
	return s
}

func TestDefaults(t *testing.T) {
	s := Defaults()
	if s.Hearts != 5 || s.Gems != 100 || s.XP != 0 || s.TotalXP != 0 || s.Streak != 0 {
		t.Errorf("unexpected counters: %+v", s)
	}
	if s.Frontier() != (LessonID{1, 1}) {
		t.Errorf("frontier = %v, want 1-1", s.Frontier())
	}
	if s.LastPlayDate != nil {
		t.Errorf("lastPlayDate = %v, want nil", s.LastPlayDate)
	}
	if s.CompletedLessons.Len() != 0 {
		t.Errorf("completed = %d, want 0", s.CompletedLessons.Len())
	}
}

func TestApply_LoseHeartSaturates(t *testing.T) {
	s := Defaults()
	for i := 0; i < MaxHearts+3; i++ {
		s = Apply(s, LoseHeart{})
		if s.Hearts < 0 {
			t.Fatalf("hearts went negative after %d losses", i+1)
		}
	}
	if s.Hearts != 0 {
		t.Errorf("hearts = %d, want 0", s.Hearts)
	}
	if got := Apply(s, LoseHeart{}); got.Hearts != 0 {
		t.Errorf("hearts at zero = %d, want 0", got.Hearts)
	}
}

func TestApply_GainXP(t *testing.T) {
	tests := []struct {
		name   string
		amount int
		want   int
	}{
		{"positive", 10, 10},
		{"zero", 0, 0},
		{"negative clamped", -20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Apply(Defaults(), GainXP{Amount: tt.amount})
			if s.XP != tt.want || s.TotalXP != tt.want {
				t.Errorf("xp=%d totalXp=%d, want %d", s.XP, s.TotalXP, tt.want)
			}
		})
	}
}

func TestApply_SpendGemsSaturates(t *testing.T) {
	tests := []struct {
		name   string
		amount int
		want   int
	}{
		{"affordable", 40, 60},
		{"exact", 100, 0},
		{"more than balance", 500, 0},
		{"negative ignored", -10, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Apply(Defaults(), SpendGems{Amount: tt.amount})
			if s.Gems != tt.want {
				t.Errorf("gems = %d, want %d", s.Gems, tt.want)
			}
		})
	}
}

func TestApply_EarnGemsAndRefill(t *testing.T) {
	s := Apply(Defaults(), EarnGems{Amount: 25})
	if s.Gems != 125 {
		t.Errorf("gems = %d, want 125", s.Gems)
	}
	s.Hearts = 1
	if s = Apply(s, RefillHearts{}); s.Hearts != MaxHearts {
		t.Errorf("hearts = %d, want %d", s.Hearts, MaxHearts)
	}
}

func TestApply_UpdateStreak(t *testing.T) {
	yesterday := today.AddDays(-1)
	twoAgo := today.AddDays(-2)
	tomorrow := today.AddDays(1)

	tests := []struct {
		name       string
		last       *civil.Date
		streak     int
		wantStreak int
	}{
		{"first play", nil, 0, 1},
		{"continues from yesterday", &yesterday, 6, 7},
		{"gap resets", &twoAgo, 9, 1},
		{"future date resets", &tomorrow, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			s.LastPlayDate = tt.last
			s.Streak = tt.streak
			got := Apply(s, UpdateStreak{Today: today})
			if got.Streak != tt.wantStreak {
				t.Errorf("streak = %d, want %d", got.Streak, tt.wantStreak)
			}
			if got.LastPlayDate == nil || *got.LastPlayDate != today {
				t.Errorf("lastPlayDate = %v, want %v", got.LastPlayDate, today)
			}
		})
	}
}

func TestApply_UpdateStreakSameDayIsNoop(t *testing.T) {
	s := Defaults()
	d := today
	s.LastPlayDate = &d
	s.Streak = 3
	got := Apply(s, UpdateStreak{Today: today})
	if !got.Equal(s) {
		t.Errorf("same-day streak changed state: %+v -> %+v", s, got)
	}
}

func TestApply_UpdateStreakAcrossMonthBoundary(t *testing.T) {
	last := civil.Date{Year: 2026, Month: 2, Day: 28}
	s := Defaults()
	s.LastPlayDate = &last
	s.Streak = 2
	got := Apply(s, UpdateStreak{Today: civil.Date{Year: 2026, Month: 3, Day: 1}})
	if got.Streak != 3 {
		t.Errorf("streak = %d, want 3", got.Streak)
	}
}

func TestApply_CompleteLesson(t *testing.T) {
	tests := []struct {
		name      string
		state     State
		id        LessonID
		wantStage int
		wantSub   int
	}{
		{"frontier within stage", stateAt(1, 1), LessonID{1, 1}, 1, 2},
		{"frontier at stage end", stateAt(1, 5), LessonID{1, 5}, 2, 1},
		{"backfill does not advance", stateAt(3, 2), LessonID{1, 1}, 3, 2},
		{"lesson ahead does not advance", stateAt(2, 3), LessonID{2, 4}, 2, 3},
		{"replay of completed frontier", stateAt(2, 3, LessonID{2, 3}), LessonID{2, 3}, 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.state
			got := Apply(before, CompleteLesson{ID: tt.id})
			if got.CurrentStage != tt.wantStage || got.CurrentSubStage != tt.wantSub {
				t.Errorf("frontier = %d-%d, want %d-%d",
					got.CurrentStage, got.CurrentSubStage, tt.wantStage, tt.wantSub)
			}
			if !got.CompletedLessons.Has(tt.id) {
				t.Errorf("%v not in completed set", tt.id)
			}
			for _, id := range before.CompletedLessons.Sorted() {
				if !got.CompletedLessons.Has(id) {
					t.Errorf("lost %v from completed set", id)
				}
			}
			if got.Gems != before.Gems+LessonCompletionGems {
				t.Errorf("gems = %d, want %d", got.Gems, before.Gems+LessonCompletionGems)
			}
		})
	}
}

func TestApply_CompleteLessonDoesNotMutateInput(t *testing.T) {
	before := stateAt(1, 1)
	_ = Apply(before, CompleteLesson{ID: LessonID{1, 1}})
	if before.CompletedLessons.Len() != 0 {
		t.Error("input state's completed set was modified")
	}
}

func TestApply_AdvanceStage(t *testing.T) {
	s := stateAt(4, 4)
	s = Apply(s, AdvanceStage{})
	if s.Frontier() != (LessonID{4, 5}) {
		t.Errorf("frontier = %v, want 4-5", s.Frontier())
	}
	s = Apply(s, AdvanceStage{})
	if s.Frontier() != (LessonID{5, 1}) {
		t.Errorf("frontier = %v, want 5-1", s.Frontier())
	}
	if s.CompletedLessons.Len() != 0 {
		t.Error("advance should not complete lessons")
	}
}

func TestApply_LoadState(t *testing.T) {
	hearts, stage := 2, 7
	d := civil.Date{Year: 2026, Month: 1, Day: 5}
	got := Apply(Defaults(), LoadState{Partial: Partial{
		Hearts:              &hearts,
		CurrentStage:        &stage,
		SetLastPlayDate:     true,
		LastPlayDate:        &d,
		SetCompletedLessons: true,
		CompletedLessons:    []LessonID{{1, 1}, {1, 2}, {1, 1}},
	}})

	if got.Hearts != 2 || got.CurrentStage != 7 {
		t.Errorf("hearts=%d stage=%d, want 2 and 7", got.Hearts, got.CurrentStage)
	}
	if got.Gems != InitialGems || got.CurrentSubStage != 1 {
		t.Errorf("unset fields changed: gems=%d sub=%d", got.Gems, got.CurrentSubStage)
	}
	if got.LastPlayDate == nil || *got.LastPlayDate != d {
		t.Errorf("lastPlayDate = %v, want %v", got.LastPlayDate, d)
	}
	if got.CompletedLessons.Len() != 2 {
		t.Errorf("completed = %d, want 2 after dedup", got.CompletedLessons.Len())
	}
}

func TestApply_LoadStateClearsDateAndClamps(t *testing.T) {
	s := Defaults()
	d := today
	s.LastPlayDate = &d
	s.CompletedLessons = NewLessonSet(LessonID{1, 1})

	hearts, gems, sub := 12, -4, 9
	got := Apply(s, LoadState{Partial: Partial{
		Hearts:          &hearts,
		Gems:            &gems,
		CurrentSubStage: &sub,
		SetLastPlayDate: true,

		SetCompletedLessons: true,
	}})
	if got.LastPlayDate != nil {
		t.Errorf("lastPlayDate = %v, want nil", got.LastPlayDate)
	}
	if got.Hearts != MaxHearts || got.Gems != 0 || got.CurrentSubStage != 5 {
		t.Errorf("not clamped: hearts=%d gems=%d sub=%d", got.Hearts, got.Gems, got.CurrentSubStage)
	}
	if got.CompletedLessons.Len() != 0 {
		t.Errorf("nil lesson list should rebuild an empty set, got %d", got.CompletedLessons.Len())
	}
}

func TestApply_EveryActionHandled(t *testing.T) {
	actions := []Action{
		LoseHeart{},
		GainXP{Amount: 1},
		CompleteLesson{ID: LessonID{1, 1}},
		UpdateStreak{Today: today},
		RefillHearts{},
		SpendGems{Amount: 1},
		EarnGems{Amount: 1},
		AdvanceStage{},
		LoadState{},
	}
	seen := make(map[string]bool)
	for _, a := range actions {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("%T panicked: %v", a, r)
				}
			}()
			_ = Apply(Defaults(), a)
		}()
		if seen[a.Kind()] {
			t.Errorf("duplicate kind %q", a.Kind())
		}
		seen[a.Kind()] = true
	}
}

func TestApply_TotalXPNeverDecreases(t *testing.T) {
	s := Defaults()
	seq := []Action{
		GainXP{Amount: 30}, LoseHeart{}, SpendGems{Amount: 500},
		CompleteLesson{ID: LessonID{1, 1}}, UpdateStreak{Today: today},
		AdvanceStage{}, RefillHearts{}, GainXP{Amount: -5}, EarnGems{Amount: 3},
	}
	prev := s.TotalXP
	for _, a := range seq {
		s = Apply(s, a)
		if s.TotalXP < prev {
			t.Fatalf("%s decreased totalXp %d -> %d", a.Kind(), prev, s.TotalXP)
		}
		prev = s.TotalXP
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		totalXP   int
		wantLevel int
		wantNext  int
	}{
		{0, 1, 100},
		{99, 1, 1},
		{100, 2, 100},
		{250, 3, 50},
	}
	for _, tt := range tests {
		if got := Level(tt.totalXP); got != tt.wantLevel {
			t.Errorf("Level(%d) = %d, want %d", tt.totalXP, got, tt.wantLevel)
		}
		if got := XPToNextLevel(tt.totalXP); got != tt.wantNext {
			t.Errorf("XPToNextLevel(%d) = %d, want %d", tt.totalXP, got, tt.wantNext)
		}
	}
}

func TestStageCompleted(t *testing.T) {
	s := stateAt(2, 1, LessonID{1, 1}, LessonID{1, 2}, LessonID{1, 3}, LessonID{1, 4})
	if s.StageCompleted(1) {
		t.Error("stage 1 reported complete with four lessons")
	}
	s.CompletedLessons = s.CompletedLessons.Add(LessonID{1, 5})
	if !s.StageCompleted(1) {
		t.Error("stage 1 not reported complete")
	}
}
