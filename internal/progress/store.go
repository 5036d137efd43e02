package progress

import (
	"log/slog"
	"slices"
	"sync"
)

// Sink receives the persistence record after every state change.
type Sink interface {
	Enqueue(Record)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithSink sets the destination for records written after each mutation.
func WithSink(sink Sink) StoreOption {
	return func(s *Store) { s.sink = sink }
}

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// Store owns the learner's State. Every mutation goes through Dispatch or
// Transact, which apply actions one at a time in call order.
type Store struct {
	mu          sync.Mutex
	state       State
	sink        Sink
	logger      *slog.Logger
	subscribers []subscriber
	nextSubID   int

	// notifyMu is taken before mu is released so subscribers see states in
	// the order they were produced.
	notifyMu sync.Mutex
}

type subscriber struct {
	id int
	fn func(State)
}

// NewStore returns a Store holding initial.
func NewStore(initial State, opts ...StoreOption) *Store {
	s := &Store{
		state:  initial.Clone(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch applies a and returns the new state. Subscribers run before
// Dispatch returns, in registration order. They may read State but must not
// call Dispatch or Transact. The sink only sees records for actions that
// changed the state.
func (s *Store) Dispatch(a Action) State {
	_, after := s.Transact(func(State) []Action { return []Action{a} })
	return after
}

// Transact calls fn with the current state and applies the actions it
// returns as one step: no other mutation runs between reading the state and
// applying the last action. The sink receives at most one record and
// subscribers are notified once.
func (s *Store) Transact(fn func(State) []Action) (before, after State) {
	s.mu.Lock()
	prev := s.state
	actions := fn(prev.Clone())
	for _, a := range actions {
		s.state = Apply(s.state, a)
		s.logger.Debug("dispatch",
			"action", a.Kind(),
			"hearts", s.state.Hearts,
			"gems", s.state.Gems,
			"frontier", s.state.Frontier().String(),
		)
	}
	changed := !s.state.Equal(prev)
	if changed && s.sink != nil {
		s.sink.Enqueue(RecordOf(s.state))
	}

	before, after = prev.Clone(), s.state.Clone()
	subs := slices.Clone(s.subscribers)
	s.notifyMu.Lock()
	s.mu.Unlock()

	defer s.notifyMu.Unlock()
	for _, sub := range subs {
		sub.fn(after.Clone())
	}
	return before, after
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn to be called after every Dispatch and Transact. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}
