package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Rowdraraz100/RazNotes/internal/core/domain"
)

type Clock func() time.Time

type EventKind string

const (
	EventLoaded     EventKind = "loaded"
	EventToggled    EventKind = "toggled"
	EventRolledOver EventKind = "rolled_over"
	EventReset      EventKind = "reset"
)

// Event is delivered to subscribers after a state change has been saved.
type Event struct {
	Kind     EventKind
	HabitID  string
	Snapshot domain.AppData
}

type Option func(*Engine)

func WithClock(clock Clock) Option {
	return func(e *Engine) {
		e.now = clock
	}
}

// Engine owns the in-memory aggregate. Every mutation goes through its
// methods and is written back to the store before the call returns.
//
// Events are queued under mu in mutation order and delivered by whichever
// caller holds deliverMu, so subscribers always see the latest state last.
// Subscribers may read the engine but must not mutate it.
type Engine struct {
	catalog *domain.Catalog
	store   domain.StateStore
	now     Clock

	mu      sync.Mutex
	data    *domain.AppData
	pending []Event

	deliverMu sync.Mutex

	subMu       sync.RWMutex
	subscribers map[int]func(Event)
	nextSubID   int
}

func NewEngine(ctx context.Context, catalog *domain.Catalog, store domain.StateStore, opts ...Option) (*Engine, error) {
	e := &Engine{
		catalog:     catalog,
		store:       store,
		now:         time.Now,
		subscribers: make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.loadLocked(ctx); err != nil {
		return nil, err
	}

	log.Printf("[ENGINE] Ready with %d habits for %s", catalog.Len(), e.data.LastDate)
	return e, nil
}

// loadLocked runs the load path: read, merge, roll over, save, swap. The
// caller holds e.mu.
func (e *Engine) loadLocked(ctx context.Context) error {
	stored, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: load: %v", domain.ErrStoreUnavailable, err)
	}

	data := MergeStored(e.catalog, stored)
	data.ApplyRollover(e.Today())

	if err := e.store.Save(ctx, data); err != nil {
		return fmt.Errorf("%w: save: %v", domain.ErrStoreUnavailable, err)
	}

	e.data = data
	return nil
}

func (e *Engine) Now() time.Time {
	return e.now()
}

func (e *Engine) Today() domain.DayKey {
	return domain.TodayKey(e.now())
}

func (e *Engine) Catalog() *domain.Catalog {
	return e.catalog
}

// Snapshot returns a copy of the aggregate as it is, without rolling over.
func (e *Engine) Snapshot() domain.AppData {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data.Clone()
}

// Current moves the aggregate to today if needed and returns a copy of it.
func (e *Engine) Current(ctx context.Context) (domain.AppData, error) {
	e.mu.Lock()
	snapshot, err := e.rolloverLocked(ctx)
	e.mu.Unlock()

	e.deliver()
	return snapshot, err
}

// Toggle flips a habit for today. A process that outlived midnight is moved
// to the new day first. Unknown ids leave state untouched.
func (e *Engine) Toggle(ctx context.Context, habitID string) (domain.AppData, error) {
	e.mu.Lock()
	snapshot, err := e.toggleLocked(ctx, habitID)
	e.mu.Unlock()

	e.deliver()
	return snapshot, err
}

func (e *Engine) toggleLocked(ctx context.Context, habitID string) (domain.AppData, error) {
	snapshot, err := e.rolloverLocked(ctx)
	if err != nil {
		return snapshot, err
	}

	if !e.data.Toggle(habitID, e.Today()) {
		log.Printf("[ENGINE] Toggle ignored for unknown habit %q", habitID)
		return snapshot, nil
	}

	snapshot, err = e.saveLocked(ctx)
	if err != nil {
		return snapshot, err
	}
	e.pending = append(e.pending, Event{Kind: EventToggled, HabitID: habitID, Snapshot: snapshot})
	return snapshot, nil
}

// Rollover applies the day change for the current clock and reports whether
// state moved.
func (e *Engine) Rollover(ctx context.Context) (bool, error) {
	e.mu.Lock()
	before := e.data.LastDate
	_, err := e.rolloverLocked(ctx)
	rolled := e.data.LastDate != before
	e.mu.Unlock()

	e.deliver()
	return rolled, err
}

func (e *Engine) rolloverLocked(ctx context.Context) (domain.AppData, error) {
	if !e.data.ApplyRollover(e.Today()) {
		return e.data.Clone(), nil
	}

	snapshot, err := e.saveLocked(ctx)
	if err != nil {
		return snapshot, err
	}
	e.pending = append(e.pending, Event{Kind: EventRolledOver, Snapshot: snapshot})
	return snapshot, nil
}

// Reset clears the durable slot and runs the first-run load path again. No
// other operation can interleave with it.
func (e *Engine) Reset(ctx context.Context) (domain.AppData, error) {
	e.mu.Lock()
	snapshot, err := e.resetLocked(ctx)
	e.mu.Unlock()

	e.deliver()
	return snapshot, err
}

func (e *Engine) resetLocked(ctx context.Context) (domain.AppData, error) {
	if err := e.store.Clear(ctx); err != nil {
		return e.data.Clone(), fmt.Errorf("%w: clear: %v", domain.ErrStoreUnavailable, err)
	}
	if err := e.loadLocked(ctx); err != nil {
		return e.data.Clone(), err
	}

	log.Println("[ENGINE] State reset to defaults")
	snapshot := e.data.Clone()
	e.pending = append(e.pending, Event{Kind: EventReset, Snapshot: snapshot})
	return snapshot, nil
}

// Subscribe registers fn for every saved change. The returned func removes it.
// fn runs after the state lock is released, in mutation order; it may read
// the engine but must not mutate it.
func (e *Engine) Subscribe(fn func(Event)) func() {
	e.subMu.Lock()
	id := e.nextSubID
	e.nextSubID++
	e.subscribers[id] = fn
	e.subMu.Unlock()

	return func() {
		e.subMu.Lock()
		delete(e.subscribers, id)
		e.subMu.Unlock()
	}
}

func (e *Engine) saveLocked(ctx context.Context) (domain.AppData, error) {
	snapshot := e.data.Clone()
	if err := e.store.Save(ctx, e.data); err != nil {
		return snapshot, fmt.Errorf("%w: save: %v", domain.ErrStoreUnavailable, err)
	}
	return snapshot, nil
}

// deliver drains the pending queue in order. Called without e.mu held.
func (e *Engine) deliver() {
	e.deliverMu.Lock()
	defer e.deliverMu.Unlock()

	for {
		e.mu.Lock()
		if len(e.pending) == 0 {
			e.mu.Unlock()
			return
		}
		ev := e.pending[0]
		e.pending = e.pending[1:]
		e.mu.Unlock()

		e.publish(ev)
	}
}

func (e *Engine) publish(ev Event) {
	e.subMu.RLock()
	subs := make([]func(Event), 0, len(e.subscribers))
	for id := range e.subscribers {
		subs = append(subs, e.subscribers[id])
	}
	e.subMu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}
