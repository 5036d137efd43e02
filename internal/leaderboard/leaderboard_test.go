package leaderboard

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/owllearn/internal/progress"
	"github.com/abhisek/owllearn/internal/store"
)

var roster = StaticRoster{
	{Name: "Emma Chen", TotalXP: 2850, Streak: 15, Lessons: 48},
	{Name: "Alex Kim", TotalXP: 1920, Streak: 8, Lessons: 32},
	{Name: "Lisa Wang", TotalXP: 750, Streak: 7, Lessons: 12},
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		in      string
		want    Metric
		wantErr bool
	}{
		{"", MetricXP, false},
		{"xp", MetricXP, false},
		{"streak", MetricStreak, false},
		{"lessons", MetricLessons, false},
		{"gems", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMetric(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownMetric) {
				t.Errorf("ParseMetric(%q) err = %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMetric(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestRank(t *testing.T) {
	s := progress.Defaults()
	s.TotalXP = 1000
	s.Streak = 20
	s.CompletedLessons = progress.NewLessonSet(progress.LessonID{Stage: 1, SubStage: 1})
	self := SelfEntry(s)

	tests := []struct {
		metric    Metric
		wantOrder []string
		wantSelf  int
	}{
		{MetricXP, []string{"Emma Chen", "Alex Kim", SelfName, "Lisa Wang"}, 3},
		{MetricStreak, []string{SelfName, "Emma Chen", "Alex Kim", "Lisa Wang"}, 1},
		{MetricLessons, []string{"Emma Chen", "Alex Kim", "Lisa Wang", SelfName}, 4},
	}
	for _, tt := range tests {
		t.Run(string(tt.metric), func(t *testing.T) {
			b, err := Rank(context.Background(), roster, tt.metric, self, 0)
			if err != nil {
				t.Fatal(err)
			}
			if len(b.Entries) != len(tt.wantOrder) {
				t.Fatalf("len = %d", len(b.Entries))
			}
			for i, name := range tt.wantOrder {
				if b.Entries[i].Name != name || b.Entries[i].Rank != i+1 {
					t.Errorf("entry %d = %s (rank %d), want %s", i, b.Entries[i].Name, b.Entries[i].Rank, name)
				}
			}
			if b.SelfRank != tt.wantSelf {
				t.Errorf("self rank = %d, want %d", b.SelfRank, tt.wantSelf)
			}
		})
	}
}

func TestRankLimitKeepsSelfRank(t *testing.T) {
	b, err := Rank(context.Background(), roster, MetricXP, SelfEntry(progress.Defaults()), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Entries) != 2 || b.SelfRank != 4 {
		t.Errorf("entries=%d selfRank=%d", len(b.Entries), b.SelfRank)
	}
}

func TestRankTieBreaksByName(t *testing.T) {
	r := StaticRoster{{Name: "Bea", TotalXP: 10}, {Name: "Ann", TotalXP: 10}}
	b, err := Rank(context.Background(), r, MetricXP, SelfEntry(progress.Defaults()), 0)
	if err != nil {
		t.Fatal(err)
	}
	if b.Entries[0].Name != "Ann" || b.Entries[1].Name != "Bea" {
		t.Errorf("order = %s, %s", b.Entries[0].Name, b.Entries[1].Name)
	}
}

type failingRoster struct{}

func (failingRoster) List(context.Context) ([]store.Peer, error) { return nil, errors.New("offline") }

func TestRankRosterError(t *testing.T) {
	if _, err := Rank(context.Background(), failingRoster{}, MetricXP, Entry{}, 0); err == nil {
		t.Error("expected error")
	}
}
