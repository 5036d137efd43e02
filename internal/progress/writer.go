package progress

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Saver persists a record.
type Saver interface {
	Save(ctx context.Context, r Record) error
}

const defaultSaveTimeout = 5 * time.Second

// Writer saves records on a single background goroutine. Only the newest
// unsaved record is kept, so a burst of mutations costs one write and saves
// are never reordered.
type Writer struct {
	saver   Saver
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	cond    *sync.Cond
	pending *Record
	closed  bool
	writes  int

	done chan struct{}
}

// NewWriter starts the write-back goroutine.
func NewWriter(saver Saver, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Writer{
		saver:   saver,
		logger:  logger,
		timeout: defaultSaveTimeout,
		done:    make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.run()
	return w
}

// Enqueue schedules r for saving. It never blocks. Records enqueued after
// Close are dropped.
func (w *Writer) Enqueue(r Record) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		w.logger.Warn("writer closed, dropping record")
		return
	}
	w.pending = &r
	w.cond.Signal()
}

// Writes returns the number of save attempts made so far.
func (w *Writer) Writes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writes
}

// Close saves any pending record and stops the goroutine. It returns
// ctx.Err() if ctx ends first; the goroutine still finishes the flush.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	w.closed = true
	w.cond.Signal()
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Writer) run() {
	defer close(w.done)
	for {
		w.mu.Lock()
		for w.pending == nil && !w.closed {
			w.cond.Wait()
		}
		rec := w.pending
		w.pending = nil
		if rec == nil {
			w.mu.Unlock()
			return
		}
		w.writes++
		w.mu.Unlock()

		w.save(*rec)
	}
}

func (w *Writer) save(r Record) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	if err := w.saver.Save(ctx, r); err != nil {
		if !errors.Is(err, ErrPersistenceWrite) {
			err = errors.Join(ErrPersistenceWrite, err)
		}
		w.logger.Warn("saving progress failed", "error", err)
	}
}
