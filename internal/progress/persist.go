package progress

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// StateKey is the key the learner's record is stored under.
const StateKey = "owllearn-game-state"

// KV is the key-value port the engine persists through.
type KV interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}

// Persister reads and writes the learner's record through a KV.
type Persister struct {
	kv  KV
	key string
}

// NewPersister returns a Persister using StateKey.
func NewPersister(kv KV) *Persister {
	return &Persister{kv: kv, key: StateKey}
}

// Load returns the stored record as a LoadState payload. ok is false when
// nothing has been saved yet. Errors wrap ErrPersistenceRead.
func (p *Persister) Load(ctx context.Context) (Partial, bool, error) {
	data, ok, err := p.kv.Get(ctx, p.key)
	if err != nil {
		return Partial{}, false, fmt.Errorf("%w: get %s: %v", ErrPersistenceRead, p.key, err)
	}
	if !ok {
		return Partial{}, false, nil
	}
	partial, err := DecodeRecord(data)
	if err != nil {
		return Partial{}, false, err
	}
	return partial, true, nil
}

// Save writes r. Errors wrap ErrPersistenceWrite.
func (p *Persister) Save(ctx context.Context, r Record) error {
	data, err := EncodeRecord(r)
	if err != nil {
		return fmt.Errorf("%w: encode record: %v", ErrPersistenceWrite, err)
	}
	if err := p.kv.Put(ctx, p.key, data); err != nil {
		return fmt.Errorf("%w: put %s: %v", ErrPersistenceWrite, p.key, err)
	}
	return nil
}

// Restore loads the saved state. A missing record yields Defaults(); an
// unreadable one is logged and also yields Defaults().
func Restore(ctx context.Context, p *Persister, logger *slog.Logger) State {
	if logger == nil {
		logger = slog.Default()
	}
	partial, ok, err := p.Load(ctx)
	if err != nil {
		logger.Warn("discarding saved progress", "key", p.key, "error", err)
		return Defaults()
	}
	if !ok {
		return Defaults()
	}
	return Apply(Defaults(), LoadState{Partial: partial})
}

// MemoryKV is an in-process KV.
type MemoryKV struct {
	mu sync.Mutex
	m  map[string][]byte
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string][]byte)}
}

func (kv *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.m[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (kv *MemoryKV) Put(_ context.Context, key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.m[key] = append([]byte(nil), value...)
	return nil
}
