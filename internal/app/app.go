// Package app wires the progression store to persistence, the lesson
// collaborators, and the day-rollover job.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/abhisek/owllearn/internal/config"
	"github.com/abhisek/owllearn/internal/content"
	"github.com/abhisek/owllearn/internal/curriculum"
	"github.com/abhisek/owllearn/internal/leaderboard"
	"github.com/abhisek/owllearn/internal/lesson"
	"github.com/abhisek/owllearn/internal/profile"
	"github.com/abhisek/owllearn/internal/progress"
	"github.com/abhisek/owllearn/internal/quest"
	"github.com/abhisek/owllearn/internal/rewards"
	"github.com/abhisek/owllearn/internal/scheduler"
	"github.com/abhisek/owllearn/internal/shop"
	"github.com/abhisek/owllearn/internal/store"
	"github.com/abhisek/owllearn/internal/unlock"
)

// SnapshotsKept is how many daily snapshots survive pruning.
const SnapshotsKept = 30

const snapshotVersion = 1

// Option customizes Open.
type Option func(*App)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithContent replaces the built-in question provider.
func WithContent(p content.Provider) Option {
	return func(a *App) { a.content = p }
}

// WithShape replaces the default 20×5 skill tree.
func WithShape(s curriculum.Shape) Option {
	return func(a *App) { a.shape = s }
}

// App is one open learner profile.
type App struct {
	cfg    config.Config
	logger *slog.Logger
	now    func() time.Time
	shape  curriculum.Shape

	db        *store.Store
	events    store.EventRepo
	snapshots store.SnapshotRepo
	roster    leaderboard.Roster

	writer   *progress.Writer
	progress *progress.Store
	content  content.Provider
	shop     *shop.Shop
	quests   *quest.Service
	sched    *scheduler.Scheduler
}

// Open opens the database at cfg.DBPath, restores the saved progress, and
// starts the background writer and rollover scheduler.
func Open(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	a := &App{
		cfg:    cfg,
		logger: slog.Default(),
		now:    time.Now,
		shape:  curriculum.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.shape.Validate(); err != nil {
		return nil, err
	}

	dsn := cfg.DBPath
	if dsn == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		dsn = p
	}
	db, err := store.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.db = db
	a.events = db.EventRepo()
	a.snapshots = db.SnapshotRepo()
	a.roster = db.PeerRepo()

	persister := progress.NewPersister(db.KV())
	initial := progress.Restore(ctx, persister, a.logger)
	a.writer = progress.NewWriter(persister, a.logger)
	a.progress = progress.NewStore(initial,
		progress.WithSink(a.writer),
		progress.WithLogger(a.logger))

	if a.content == nil {
		seed := cfg.ContentSeed
		if seed == 0 {
			seed = rand.Uint64()
		}
		a.content = content.NewSeeded(seed)
	}
	a.shop = shop.New(a.progress, a.events, shop.WithClock(a.now), shop.WithLogger(a.logger))
	a.quests = quest.New(a.progress, a.events, quest.WithClock(a.now), quest.WithLogger(a.logger))

	a.sched = scheduler.New(time.Local, a.logger)
	if err := a.sched.OnDayStart(func(now time.Time) {
		a.Rollover(context.Background(), now)
	}); err != nil {
		a.writer.Close(ctx)
		db.Close()
		return nil, err
	}
	a.sched.Start()

	return a, nil
}

// Close stops the scheduler, takes the daily snapshot, flushes pending
// writes, and closes the database.
func (a *App) Close(ctx context.Context) error {
	a.sched.Stop()
	if err := a.snapshotDaily(ctx); err != nil {
		a.logger.Warn("daily snapshot failed", "error", err)
	}
	werr := a.writer.Close(ctx)
	return errors.Join(werr, a.db.Close())
}

// State returns the current progress.
func (a *App) State() progress.State {
	return a.progress.State()
}

// Progress exposes the progression store.
func (a *App) Progress() *progress.Store {
	return a.progress
}

// Shape returns the skill tree outline.
func (a *App) Shape() curriculum.Shape {
	return a.shape
}

// Shop returns the currency shop.
func (a *App) Shop() *shop.Shop {
	return a.shop
}

// Quests returns the quest service.
func (a *App) Quests() *quest.Service {
	return a.quests
}

// Visit records that the learner opened the app today.
func (a *App) Visit() rewards.CheckInResult {
	return rewards.CheckIn(a.progress, rewards.Today(a.now()))
}

// Rollover runs at local midnight: yesterday's progress is snapshotted and
// the new day is checked in.
func (a *App) Rollover(ctx context.Context, now time.Time) rewards.CheckInResult {
	if err := a.Snapshot(ctx); err != nil {
		a.logger.Warn("rollover snapshot failed", "error", err)
	}
	res := rewards.CheckIn(a.progress, rewards.Today(now))
	a.logger.Info("checked in", "streak", res.Streak, "gems", res.GemsEarned)
	return res
}

// Profile derives the learner's statistics.
func (a *App) Profile() profile.Profile {
	return profile.Build(a.State(), a.shape, a.cfg.DailyGoal)
}

// Map returns the skill tree with every node's status.
func (a *App) Map() []unlock.StageView {
	return unlock.Map(a.State(), a.shape)
}

// NextLesson returns the frontier lesson. ok is false once every lesson of
// the tree is completed.
func (a *App) NextLesson() (id progress.LessonID, ok bool) {
	id = a.State().Frontier()
	return id, a.shape.Contains(id.Stage, id.SubStage)
}

// StartLesson opens the lesson at (stage, subStage) with the boosts active
// right now.
func (a *App) StartLesson(ctx context.Context, stage, subStage int) (*lesson.Player, error) {
	id, err := progress.NewLessonID(stage, subStage)
	if err != nil {
		return nil, err
	}
	switch unlock.Enter(a.State(), a.shape, stage, subStage) {
	case unlock.RouteNone:
		return nil, fmt.Errorf("%w: %s", lesson.ErrLocked, id)
	case unlock.RouteShop:
		return nil, lesson.ErrOutOfHearts
	}

	questions, err := a.content.Questions(id)
	if err != nil {
		return nil, fmt.Errorf("load lesson %s: %w", id, err)
	}

	var mods lesson.Modifiers
	boosts, err := a.shop.ActiveBoosts(ctx)
	if err != nil {
		a.logger.Warn("reading boosts failed", "error", err)
	} else {
		now := a.now()
		mods.XPMultiplier = boosts.XPMultiplier(now)
		mods.MistakeProtection = boosts.MistakeProtected(now)
	}

	return lesson.Start(lesson.Config{
		Dispatcher: a.progress,
		Events:     a.events,
		Modifiers:  mods,
		Now:        a.now,
		Logger:     a.logger,
	}, id, questions)
}

// Leaderboard ranks the learner against the stored roster.
func (a *App) Leaderboard(ctx context.Context, m leaderboard.Metric, limit int) (leaderboard.Board, error) {
	return leaderboard.Rank(ctx, a.roster, m, leaderboard.SelfEntry(a.State()), limit)
}

// History is the recent activity log.
type History struct {
	Lessons   []store.LessonEvent
	Purchases []store.PurchaseEvent
	Claims    []store.QuestClaim
}

// History returns up to limit entries of each kind, newest first.
func (a *App) History(ctx context.Context, limit int) (History, error) {
	opts := store.QueryOpts{Limit: limit}
	var (
		h   History
		err error
	)
	if h.Lessons, err = a.events.QueryLessons(ctx, opts); err != nil {
		return History{}, err
	}
	if h.Purchases, err = a.events.QueryPurchases(ctx, opts); err != nil {
		return History{}, err
	}
	if h.Claims, err = a.events.QueryQuestClaims(ctx, opts); err != nil {
		return History{}, err
	}
	return h, nil
}

// Export encodes the current progress as a persistence record.
func (a *App) Export() ([]byte, error) {
	return progress.EncodeRecord(progress.RecordOf(a.State()))
}

// Import merges a persistence record into the current progress. Fields the
// record omits keep their current values.
func (a *App) Import(data []byte) (progress.State, error) {
	p, err := progress.DecodeRecord(data)
	if err != nil {
		return progress.State{}, err
	}
	return a.progress.Dispatch(progress.LoadState{Partial: p}), nil
}

// Reset replaces the progress with the defaults.
func (a *App) Reset() (progress.State, error) {
	p, err := progress.RecordOf(progress.Defaults()).Partial()
	if err != nil {
		return progress.State{}, err
	}
	return a.progress.Dispatch(progress.LoadState{Partial: p}), nil
}

// Snapshot stores a copy of the current progress.
func (a *App) Snapshot(ctx context.Context) error {
	err := a.snapshots.Save(ctx, &store.Snapshot{
		Timestamp: a.now(),
		Data: store.SnapshotData{
			Version: snapshotVersion,
			Record:  progress.RecordOf(a.State()),
		},
	})
	if err != nil {
		return err
	}
	return a.snapshots.Prune(ctx, SnapshotsKept)
}

// snapshotDaily takes a snapshot unless one exists for today already.
func (a *App) snapshotDaily(ctx context.Context) error {
	latest, err := a.snapshots.Latest(ctx)
	if err != nil {
		return err
	}
	if latest != nil && rewards.Today(latest.Timestamp.In(time.Local)) == rewards.Today(a.now().In(time.Local)) {
		return nil
	}
	return a.Snapshot(ctx)
}
