package progress

import (
	"sync"
	"testing"
	"time"
)

type recordingSink struct {
	mu      sync.Mutex
	records []Record
}

func (r *recordingSink) Enqueue(rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

func TestStore_DispatchNotifiesAndPersists(t *testing.T) {
	sink := &recordingSink{}
	s := NewStore(Defaults(), WithSink(sink))

	var seen []int
	cancel := s.Subscribe(func(st State) { seen = append(seen, st.Hearts) })

	s.Dispatch(LoseHeart{})
	s.Dispatch(LoseHeart{})
	cancel()
	s.Dispatch(LoseHeart{})

	if len(seen) != 2 || seen[0] != 4 || seen[1] != 3 {
		t.Errorf("subscriber saw %v, want [4 3]", seen)
	}
	if len(sink.records) != 3 {
		t.Fatalf("sink got %d records, want 3", len(sink.records))
	}
	if sink.records[2].Hearts != 2 {
		t.Errorf("last record hearts = %d, want 2", sink.records[2].Hearts)
	}
	if s.State().Hearts != 2 {
		t.Errorf("state hearts = %d, want 2", s.State().Hearts)
	}
}

func TestStore_NoopIsNotPersisted(t *testing.T) {
	sink := &recordingSink{}
	s := NewStore(Defaults(), WithSink(sink))
	s.Dispatch(UpdateStreak{Today: today})
	s.Dispatch(UpdateStreak{Today: today})
	if len(sink.records) != 1 {
		t.Errorf("sink got %d records, want 1", len(sink.records))
	}
}

func TestStore_StateIsACopy(t *testing.T) {
	s := NewStore(Defaults())
	snap := s.State()
	s.Dispatch(CompleteLesson{ID: LessonID{1, 1}})
	if snap.CompletedLessons.Has(LessonID{1, 1}) {
		t.Error("earlier snapshot observed a later mutation")
	}
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	sink := &recordingSink{}
	s := NewStore(Defaults(), WithSink(sink))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(GainXP{Amount: 2})
		}()
	}
	wg.Wait()

	if got := s.State().TotalXP; got != 100 {
		t.Errorf("totalXp = %d, want 100", got)
	}
	prev := 0
	for _, r := range sink.records {
		if r.TotalXP <= prev {
			t.Fatalf("records out of order: %d after %d", r.TotalXP, prev)
		}
		prev = r.TotalXP
	}
}

func TestStore_SubscriberMayReadState(t *testing.T) {
	s := NewStore(Defaults())

	var seen []int
	s.Subscribe(func(State) { seen = append(seen, s.State().Gems) })

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Dispatch(EarnGems{Amount: 5})
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatch blocked while a subscriber read the state")
	}
	if len(seen) != 1 || seen[0] != InitialGems+5 {
		t.Errorf("subscriber saw %v, want [%d]", seen, InitialGems+5)
	}
}

func TestStore_TransactAppliesAsOneStep(t *testing.T) {
	sink := &recordingSink{}
	s := NewStore(Defaults(), WithSink(sink))

	notified := 0
	s.Subscribe(func(State) { notified++ })

	before, after := s.Transact(func(st State) []Action {
		return []Action{GainXP{Amount: 10}, EarnGems{Amount: st.Hearts}}
	})
	if before.TotalXP != 0 || after.TotalXP != 10 {
		t.Errorf("totalXp before=%d after=%d, want 0 and 10", before.TotalXP, after.TotalXP)
	}
	if after.Gems != InitialGems+MaxHearts {
		t.Errorf("gems = %d, want %d", after.Gems, InitialGems+MaxHearts)
	}
	if len(sink.records) != 1 || notified != 1 {
		t.Errorf("records=%d notified=%d, want 1 and 1", len(sink.records), notified)
	}

	s.Transact(func(State) []Action { return nil })
	if len(sink.records) != 1 {
		t.Errorf("empty transaction persisted a record")
	}
}
