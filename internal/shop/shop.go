package shop

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/owllearn/internal/progress"
	"github.com/abhisek/owllearn/internal/store"
)

// Dispatcher applies progress actions. *progress.Store satisfies it.
type Dispatcher interface {
	Dispatch(progress.Action) progress.State
	State() progress.State
}

// Receipt describes a completed purchase.
type Receipt struct {
	PurchaseID string
	Item       Item
	ExpiresAt  time.Time
	State      progress.State
}

// Shop sells catalog items for gems. Affordability is checked here, before
// anything is dispatched.
type Shop struct {
	d      Dispatcher
	events store.EventRepo
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Shop.
type Option func(*Shop)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Shop) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shop) { s.logger = l }
}

// New returns a Shop. events records purchases and backs ActiveBoosts; it
// may be nil, in which case timed boosts are not tracked.
func New(d Dispatcher, events store.EventRepo, opts ...Option) *Shop {
	s := &Shop{d: d, events: events, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Purchase buys id. It fails with *InsufficientFundsError without touching
// the state when the learner cannot afford the item.
func (s *Shop) Purchase(ctx context.Context, id ItemID) (Receipt, error) {
	item, ok := Lookup(id)
	if !ok {
		return Receipt{}, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}

	if balance := s.d.State().Gems; balance < item.Price {
		return Receipt{}, &InsufficientFundsError{Item: id, Price: item.Price, Balance: balance}
	}

	now := s.now()
	r := Receipt{PurchaseID: uuid.NewString(), Item: item}
	if item.Timed() {
		r.ExpiresAt = now.Add(item.Duration)
	}

	if s.events != nil {
		err := s.events.AppendPurchase(ctx, store.PurchaseEventData{
			Timestamp:  now,
			PurchaseID: r.PurchaseID,
			ItemID:     string(item.ID),
			Price:      item.Price,
			ExpiresAt:  r.ExpiresAt,
		})
		switch {
		case err != nil && item.Timed():
			// Timed boosts exist only as purchase records.
			return Receipt{}, fmt.Errorf("record purchase: %w", err)
		case err != nil:
			s.logger.Warn("recording purchase failed", "item", item.ID, "error", err)
		}
	}

	r.State = s.d.Dispatch(progress.SpendGems{Amount: item.Price})
	if item.ID == RefillHearts {
		r.State = s.d.Dispatch(progress.RefillHearts{})
	}

	s.logger.Info("purchase", "item", item.ID, "price", item.Price, "gems", r.State.Gems)
	return r, nil
}

// Boosts holds the expiry of each timed boost. A zero time means inactive.
type Boosts struct {
	DoubleXPUntil          time.Time
	MistakeProtectionUntil time.Time
	StreakFreezeUntil      time.Time
}

// XPMultiplier returns 2 while double XP is active, else 1.
func (b Boosts) XPMultiplier(now time.Time) int {
	if now.Before(b.DoubleXPUntil) {
		return 2
	}
	return 1
}

// MistakeProtected reports whether wrong answers keep hearts at now.
func (b Boosts) MistakeProtected(now time.Time) bool {
	return now.Before(b.MistakeProtectionUntil)
}

// StreakFrozen reports whether a time freeze is running at now.
func (b Boosts) StreakFrozen(now time.Time) bool {
	return now.Before(b.StreakFreezeUntil)
}

// ActiveBoosts derives live boosts from recent purchases. Buying a boost
// that is already running replaces its expiry with the later one.
func (s *Shop) ActiveBoosts(ctx context.Context) (Boosts, error) {
	var b Boosts
	if s.events == nil {
		return b, nil
	}
	now := s.now()
	purchases, err := s.events.QueryPurchases(ctx, store.QueryOpts{From: now.Add(-longestBoost())})
	if err != nil {
		return b, fmt.Errorf("active boosts: %w", err)
	}
	for _, p := range purchases {
		if !p.ExpiresAt.After(now) {
			continue
		}
		var until *time.Time
		switch ItemID(p.ItemID) {
		case DoubleXP:
			until = &b.DoubleXPUntil
		case MistakeProtection:
			until = &b.MistakeProtectionUntil
		case TimeFreeze:
			until = &b.StreakFreezeUntil
		default:
			continue
		}
		if p.ExpiresAt.After(*until) {
			*until = p.ExpiresAt
		}
	}
	return b, nil
}
