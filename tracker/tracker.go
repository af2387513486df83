// Package tracker coordinates the recording of sleep sessions. It sequences
// the storage operations behind each user action on a background worker and
// exposes the resulting screen state to observers.
package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/store"
)

const timeLayout = "Jan 02, 2006 03:04 PM"

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the wall clock used to timestamp sessions.
func WithClock(clock clockwork.Clock) Option {
	return func(t *Tracker) {
		t.clock = clock
	}
}

// Tracker is the coordinator between a sleep tracking screen and the store.
type Tracker struct {
	db     store.DB
	clock  clockwork.Clock
	ctx    context.Context
	cancel context.CancelFunc
	jobs   chan func()
	done   chan struct{}
	subs   map[int]chan State

	tonight           *models.Session
	navigateToQuality *models.Session
	navigateToDetail  *models.Session
	nights            []*models.Session

	closeOnce    sync.Once
	opMu         sync.Mutex
	mu           sync.Mutex
	nextSub      int
	showSnackbar bool
}

// New creates a Tracker over db and loads the current state from it.
func New(ctx context.Context, db store.DB, opts ...Option) (*Tracker, error) {
	workerCtx, cancel := context.WithCancel(context.Background())

	t := &Tracker{
		db:     db,
		clock:  clockwork.NewRealClock(),
		ctx:    workerCtx,
		cancel: cancel,
		jobs:   make(chan func()),
		done:   make(chan struct{}),
		subs:   make(map[int]chan State),
	}

	for _, opt := range opts {
		opt(t)
	}

	go t.work()

	tonight, err := t.tonightFromStore(ctx)
	if err != nil {
		t.Close()
		return nil, err
	}

	nights, err := t.allNights(ctx)
	if err != nil {
		t.Close()
		return nil, err
	}

	t.mu.Lock()
	t.tonight = tonight
	t.nights = nights
	t.mu.Unlock()

	return t, nil
}

// Now returns the current time according to the tracker's clock.
func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

// work executes store operations one at a time until the tracker is closed.
func (t *Tracker) work() {
	defer close(t.done)

	for {
		select {
		case <-t.ctx.Done():
			return
		case job := <-t.jobs:
			job()
		}
	}
}

// run executes fn on the background worker and waits for its result. ctx only
// bounds the wait for the worker to pick up the job.
func run[T any](
	ctx context.Context,
	t *Tracker,
	fn func(db store.DB) (T, error),
) (T, error) {
	var zero T

	type result struct {
		err error
		v   T
	}

	ch := make(chan result, 1)

	job := func() {
		v, err := fn(t.db)
		ch <- result{v: v, err: err}
	}

	select {
	case t.jobs <- job:
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-t.ctx.Done():
		return zero, ErrClosed
	}

	// an accepted job always runs to completion so state can follow the store
	select {
	case r := <-ch:
		return r.v, r.err
	case <-t.ctx.Done():
		return zero, ErrClosed
	}
}

// tonightFromStore returns the latest session if it is still in progress.
func (t *Tracker) tonightFromStore(ctx context.Context) (*models.Session, error) {
	return run(ctx, t, func(db store.DB) (*models.Session, error) {
		night, err := db.GetTonight()
		if err != nil || night == nil {
			return nil, err
		}

		if !night.InProgress() {
			return nil, nil
		}

		return night, nil
	})
}

func (t *Tracker) allNights(ctx context.Context) ([]*models.Session, error) {
	return run(ctx, t, func(db store.DB) ([]*models.Session, error) {
		return db.GetSessions(time.Time{}, time.Time{})
	})
}

// refreshNights reloads the session list and notifies observers.
func (t *Tracker) refreshNights(ctx context.Context) error {
	nights, err := t.allNights(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.nights = nights
	t.publish()
	t.mu.Unlock()

	return nil
}

// StartTracking begins recording a new session now.
func (t *Tracker) StartTracking(ctx context.Context) (*models.Session, error) {
	return t.StartTrackingAt(ctx, t.clock.Now())
}

// StartTrackingAt begins recording a session that started at the given time.
// It fails if a session is already in progress, if the start is in the future,
// or if it would overlap the previous session.
func (t *Tracker) StartTrackingAt(
	ctx context.Context,
	at time.Time,
) (*models.Session, error) {
	t.opMu.Lock()
	defer t.opMu.Unlock()

	t.mu.Lock()
	tonight := clone(t.tonight)

	var last *models.Session
	if len(t.nights) > 0 {
		last = clone(t.nights[0])
	}
	t.mu.Unlock()

	if tonight != nil {
		return nil, ErrSessionInProgress.Fmt(tonight.StartTime.Format(timeLayout))
	}

	if at.After(t.clock.Now()) {
		return nil, ErrStartInFuture
	}

	if last != nil && last.EndTime.After(at) {
		return nil, ErrSessionOverlap.Fmt(last.EndTime.Format(timeLayout))
	}

	newNight := models.NewSession(at)

	_, err := run(ctx, t, func(db store.DB) (int64, error) {
		return db.Insert(newNight)
	})
	if err != nil {
		return nil, err
	}

	// the session is stored, so the state must catch up with it
	ctx = context.WithoutCancel(ctx)

	tonight, err = t.tonightFromStore(ctx)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.tonight = tonight
	t.mu.Unlock()

	slog.InfoContext(ctx, "sleep session started", slog.Int64("id", newNight.ID))

	err = t.refreshNights(ctx)
	if err != nil {
		return nil, err
	}

	return clone(tonight), nil
}

// StopTracking ends the session in progress now.
func (t *Tracker) StopTracking(ctx context.Context) (*models.Session, error) {
	return t.StopTrackingAt(ctx, t.clock.Now())
}

// StopTrackingAt ends the session in progress at the given time and raises
// the navigate-to-quality event with the stopped session.
func (t *Tracker) StopTrackingAt(
	ctx context.Context,
	at time.Time,
) (*models.Session, error) {
	t.opMu.Lock()
	defer t.opMu.Unlock()

	t.mu.Lock()
	oldNight := clone(t.tonight)
	t.mu.Unlock()

	if oldNight == nil {
		return nil, ErrNoSessionInProgress
	}

	at = at.Truncate(time.Millisecond)
	if !at.After(oldNight.StartTime) {
		return nil, ErrEndBeforeStart.Fmt(oldNight.StartTime.Format(timeLayout))
	}

	oldNight.Stop(at)

	_, err := run(ctx, t, func(db store.DB) (struct{}, error) {
		return struct{}{}, db.Update(oldNight)
	})
	if err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)

	t.mu.Lock()
	t.tonight = nil
	t.navigateToQuality = clone(oldNight)
	t.mu.Unlock()

	slog.InfoContext(
		ctx,
		"sleep session stopped",
		slog.Int64("id", oldNight.ID),
		slog.Duration("duration", oldNight.Duration()),
	)

	err = t.refreshNights(ctx)
	if err != nil {
		return nil, err
	}

	return oldNight, nil
}

// SetQuality records the quality rating of the specified session.
func (t *Tracker) SetQuality(
	ctx context.Context,
	id int64,
	quality models.Quality,
) (*models.Session, error) {
	if !quality.Valid() {
		return nil, ErrInvalidQuality.Fmt(int(quality))
	}

	t.opMu.Lock()
	defer t.opMu.Unlock()

	night, err := run(ctx, t, func(db store.DB) (*models.Session, error) {
		night, err := db.Get(id)
		if err != nil {
			return nil, err
		}

		night.Quality = quality

		return night, db.Update(night)
	})
	if err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)

	slog.InfoContext(
		ctx,
		"sleep quality recorded",
		slog.Int64("id", id),
		slog.String("quality", quality.String()),
	)

	t.mu.Lock()
	if t.tonight != nil && t.tonight.ID == id {
		t.tonight = clone(night)
	}
	t.mu.Unlock()

	err = t.refreshNights(ctx)
	if err != nil {
		return nil, err
	}

	return night, nil
}

// SelectSession raises the navigate-to-detail event for the specified
// session.
func (t *Tracker) SelectSession(
	ctx context.Context,
	id int64,
) (*models.Session, error) {
	night, err := run(ctx, t, func(db store.DB) (*models.Session, error) {
		return db.Get(id)
	})
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.navigateToDetail = clone(night)
	t.publish()
	t.mu.Unlock()

	return night, nil
}

// Clear deletes every session and raises the snackbar event.
func (t *Tracker) Clear(ctx context.Context) error {
	t.opMu.Lock()
	defer t.opMu.Unlock()

	_, err := run(ctx, t, func(db store.DB) (struct{}, error) {
		return struct{}{}, db.Clear()
	})
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.tonight = nil
	t.nights = nil
	t.showSnackbar = true
	t.publish()
	t.mu.Unlock()

	slog.InfoContext(ctx, "sleep sessions cleared")

	return nil
}

// DoneNavigating consumes the navigate-to-quality event.
func (t *Tracker) DoneNavigating() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.navigateToQuality = nil
	t.publish()
}

// DoneNavigatingToDetail consumes the navigate-to-detail event.
func (t *Tracker) DoneNavigatingToDetail() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.navigateToDetail = nil
	t.publish()
}

// DoneShowingSnackbar consumes the snackbar event.
func (t *Tracker) DoneShowingSnackbar() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.showSnackbar = false
	t.publish()
}

// State returns a snapshot of the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.snapshot()
}

// snapshot must be called with mu held.
func (t *Tracker) snapshot() State {
	nights := make([]models.Session, len(t.nights))
	for i := range t.nights {
		nights[i] = *t.nights[i]
	}

	return State{
		Tonight:           clone(t.tonight),
		NavigateToQuality: clone(t.navigateToQuality),
		NavigateToDetail:  clone(t.navigateToDetail),
		Nights:            nights,
		StartVisible:      t.tonight == nil,
		StopVisible:       t.tonight != nil,
		ClearVisible:      len(t.nights) > 0,
		ShowSnackbar:      t.showSnackbar,
	}
}

// Subscribe returns a channel that receives the latest state whenever it
// changes. A subscriber that falls behind only sees the most recent state.
// The returned function cancels the subscription.
func (t *Tracker) Subscribe() (<-chan State, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ch := make(chan State, 1)
	ch <- t.snapshot()

	id := t.nextSub
	t.nextSub++
	t.subs[id] = ch

	return ch, func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		if c, ok := t.subs[id]; ok {
			delete(t.subs, id)
			close(c)
		}
	}
}

// publish must be called with mu held.
func (t *Tracker) publish() {
	if len(t.subs) == 0 {
		return
	}

	s := t.snapshot()

	for _, ch := range t.subs {
		// replace a snapshot the subscriber has not read yet
		select {
		case <-ch:
		default:
		}

		select {
		case ch <- s:
		default:
		}
	}
}

// Close cancels all pending work and ends every subscription. The store is
// not closed.
func (t *Tracker) Close() {
	t.closeOnce.Do(func() {
		t.cancel()
		<-t.done

		t.mu.Lock()
		defer t.mu.Unlock()

		for id, ch := range t.subs {
			delete(t.subs, id)
			close(ch)
		}
	})
}
