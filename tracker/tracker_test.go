package tracker

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/store"
)

var bedtime = time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC)

func newStore(t *testing.T) store.DB {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "slumber.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func newTracker(t *testing.T, db store.DB) (*Tracker, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClockAt(bedtime)

	tr, err := New(context.Background(), db, WithClock(clock))
	require.NoError(t, err)

	t.Cleanup(tr.Close)

	return tr, clock
}

func count(t *testing.T, db store.DB) int {
	t.Helper()

	sessions, err := db.GetSessions(time.Time{}, time.Time{})
	require.NoError(t, err)

	return len(sessions)
}

func TestNewEmptyStore(t *testing.T) {
	tr, _ := newTracker(t, newStore(t))

	s := tr.State()

	assert.Nil(t, s.Tonight)
	assert.Empty(t, s.Nights)
	assert.True(t, s.StartVisible)
	assert.False(t, s.StopVisible)
	assert.False(t, s.ClearVisible)
	assert.False(t, s.ShowSnackbar)
}

func TestStartTracking(t *testing.T) {
	db := newStore(t)
	tr, _ := newTracker(t, db)
	ctx := context.Background()

	sess, err := tr.StartTracking(ctx)
	require.NoError(t, err)

	assert.True(t, sess.InProgress())
	assert.True(t, bedtime.Equal(sess.StartTime))
	assert.Equal(t, models.QualityUnrated, sess.Quality)

	s := tr.State()

	require.NotNil(t, s.Tonight)
	assert.Equal(t, sess.ID, s.Tonight.ID)
	assert.False(t, s.StartVisible)
	assert.True(t, s.StopVisible)
	assert.True(t, s.ClearVisible)
	assert.Len(t, s.Nights, 1)

	assert.Equal(t, 1, count(t, db))

	stored, err := db.GetTonight()
	require.NoError(t, err)
	assert.True(t, stored.InProgress())
}

func TestStartTrackingWhileInProgress(t *testing.T) {
	db := newStore(t)
	tr, clock := newTracker(t, db)
	ctx := context.Background()

	_, err := tr.StartTracking(ctx)
	require.NoError(t, err)

	clock.Advance(time.Hour)

	_, err = tr.StartTracking(ctx)

	assert.ErrorIs(t, err, ErrSessionInProgress)
	assert.Equal(t, 1, count(t, db))
}

func TestStartTrackingAt(t *testing.T) {
	tr, _ := newTracker(t, newStore(t))
	ctx := context.Background()

	_, err := tr.StartTrackingAt(ctx, bedtime.Add(time.Minute))
	assert.ErrorIs(t, err, ErrStartInFuture)

	sess, err := tr.StartTrackingAt(ctx, bedtime.Add(-30*time.Minute))
	require.NoError(t, err)
	assert.True(t, bedtime.Add(-30*time.Minute).Equal(sess.StartTime))
}

func TestStartTrackingOverlap(t *testing.T) {
	tr, clock := newTracker(t, newStore(t))
	ctx := context.Background()

	_, err := tr.StartTracking(ctx)
	require.NoError(t, err)

	clock.Advance(8 * time.Hour)

	_, err = tr.StopTracking(ctx)
	require.NoError(t, err)

	_, err = tr.StartTrackingAt(ctx, bedtime.Add(4*time.Hour))
	assert.ErrorIs(t, err, ErrSessionOverlap)
}

func TestStopTracking(t *testing.T) {
	db := newStore(t)
	tr, clock := newTracker(t, db)
	ctx := context.Background()

	started, err := tr.StartTracking(ctx)
	require.NoError(t, err)

	clock.Advance(7*time.Hour + 45*time.Minute)

	stopped, err := tr.StopTracking(ctx)
	require.NoError(t, err)

	assert.Equal(t, started.ID, stopped.ID)
	assert.True(t, clock.Now().Equal(stopped.EndTime))
	assert.Equal(t, 7*time.Hour+45*time.Minute, stopped.Duration())

	s := tr.State()

	assert.Nil(t, s.Tonight)
	assert.True(t, s.StartVisible)
	assert.False(t, s.StopVisible)
	require.NotNil(t, s.NavigateToQuality)
	assert.Equal(t, started.ID, s.NavigateToQuality.ID)

	stored, err := db.Get(started.ID)
	require.NoError(t, err)
	assert.True(t, clock.Now().Equal(stored.EndTime))

	tr.DoneNavigating()

	assert.Nil(t, tr.State().NavigateToQuality)
}

func TestStopTrackingWithoutSession(t *testing.T) {
	tr, _ := newTracker(t, newStore(t))

	_, err := tr.StopTracking(context.Background())

	assert.ErrorIs(t, err, ErrNoSessionInProgress)
}

func TestStopTrackingBeforeStart(t *testing.T) {
	tr, _ := newTracker(t, newStore(t))
	ctx := context.Background()

	_, err := tr.StartTracking(ctx)
	require.NoError(t, err)

	_, err = tr.StopTrackingAt(ctx, bedtime.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrEndBeforeStart)

	_, err = tr.StopTrackingAt(ctx, bedtime)
	assert.ErrorIs(t, err, ErrEndBeforeStart)

	assert.True(t, tr.State().StopVisible)
}

func TestResumeTonight(t *testing.T) {
	db := newStore(t)
	ctx := context.Background()

	first, _ := newTracker(t, db)

	sess, err := first.StartTracking(ctx)
	require.NoError(t, err)

	first.Close()

	second, _ := newTracker(t, db)

	s := second.State()
	require.NotNil(t, s.Tonight)
	assert.Equal(t, sess.ID, s.Tonight.ID)
	assert.True(t, s.StopVisible)
}

func TestSetQuality(t *testing.T) {
	db := newStore(t)
	tr, clock := newTracker(t, db)
	ctx := context.Background()

	sess, err := tr.StartTracking(ctx)
	require.NoError(t, err)

	clock.Advance(8 * time.Hour)

	_, err = tr.StopTracking(ctx)
	require.NoError(t, err)

	rated, err := tr.SetQuality(ctx, sess.ID, models.QualityPrettyGood)
	require.NoError(t, err)
	assert.Equal(t, models.QualityPrettyGood, rated.Quality)

	stored, err := db.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QualityPrettyGood, stored.Quality)
	assert.False(t, stored.InProgress())

	s := tr.State()
	require.Len(t, s.Nights, 1)
	assert.Equal(t, models.QualityPrettyGood, s.Nights[0].Quality)

	_, err = tr.SetQuality(ctx, sess.ID, models.Quality(6))
	assert.ErrorIs(t, err, ErrInvalidQuality)

	_, err = tr.SetQuality(ctx, 404, models.QualityOK)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestSelectSession(t *testing.T) {
	tr, _ := newTracker(t, newStore(t))
	ctx := context.Background()

	sess, err := tr.StartTracking(ctx)
	require.NoError(t, err)

	_, err = tr.SelectSession(ctx, sess.ID)
	require.NoError(t, err)

	s := tr.State()
	require.NotNil(t, s.NavigateToDetail)
	assert.Equal(t, sess.ID, s.NavigateToDetail.ID)

	tr.DoneNavigatingToDetail()

	assert.Nil(t, tr.State().NavigateToDetail)
}

func TestClear(t *testing.T) {
	db := newStore(t)
	tr, clock := newTracker(t, db)
	ctx := context.Background()

	for range 3 {
		_, err := tr.StartTracking(ctx)
		require.NoError(t, err)

		clock.Advance(8 * time.Hour)

		_, err = tr.StopTracking(ctx)
		require.NoError(t, err)

		clock.Advance(16 * time.Hour)
	}

	_, err := tr.StartTracking(ctx)
	require.NoError(t, err)

	require.NoError(t, tr.Clear(ctx))

	assert.Zero(t, count(t, db))

	s := tr.State()

	assert.Nil(t, s.Tonight)
	assert.Empty(t, s.Nights)
	assert.True(t, s.StartVisible)
	assert.False(t, s.ClearVisible)
	assert.True(t, s.ShowSnackbar)

	tr.DoneShowingSnackbar()

	assert.False(t, tr.State().ShowSnackbar)
}

func TestSubscribe(t *testing.T) {
	tr, _ := newTracker(t, newStore(t))

	updates, unsubscribe := tr.Subscribe()
	defer unsubscribe()

	initial := <-updates
	assert.True(t, initial.StartVisible)

	_, err := tr.StartTracking(context.Background())
	require.NoError(t, err)

	latest := <-updates
	assert.True(t, latest.StopVisible)
	assert.True(t, latest.Recording())

	unsubscribe()

	_, ok := <-updates
	assert.False(t, ok)
}

func TestClose(t *testing.T) {
	tr, _ := newTracker(t, newStore(t))

	updates, _ := tr.Subscribe()
	<-updates

	tr.Close()

	_, err := tr.StartTracking(context.Background())
	assert.ErrorIs(t, err, ErrClosed)

	_, ok := <-updates
	assert.False(t, ok)

	// closing twice is a no-op
	tr.Close()
}

// blockingDB blocks Insert until release is closed.
type blockingDB struct {
	store.DB
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingDB) Insert(sess *models.Session) (int64, error) {
	b.once.Do(func() {
		close(b.entered)
	})
	<-b.release

	return b.DB.Insert(sess)
}

func TestCloseCancelsPendingWork(t *testing.T) {
	db := &blockingDB{
		DB:      newStore(t),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}

	tr, _ := newTracker(t, db)

	errc := make(chan error, 1)

	go func() {
		_, err := tr.StartTracking(context.Background())
		errc <- err
	}()

	<-db.entered

	closed := make(chan struct{})

	go func() {
		tr.Close()
		close(closed)
	}()

	assert.ErrorIs(t, <-errc, ErrClosed)

	close(db.release)
	<-closed
}

func TestCancelledStartStillTracksSession(t *testing.T) {
	db := &blockingDB{
		DB:      newStore(t),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}

	tr, clock := newTracker(t, db)

	ctx, cancel := context.WithCancel(context.Background())

	type result struct {
		sess *models.Session
		err  error
	}

	resc := make(chan result, 1)

	go func() {
		sess, err := tr.StartTracking(ctx)
		resc <- result{sess, err}
	}()

	<-db.entered
	cancel()
	close(db.release)

	res := <-resc
	require.NoError(t, res.err)
	require.NotNil(t, res.sess)

	s := tr.State()
	require.NotNil(t, s.Tonight)
	assert.Equal(t, res.sess.ID, s.Tonight.ID)
	assert.False(t, s.StartVisible)
	assert.True(t, s.StopVisible)

	clock.Advance(time.Minute)

	_, err := tr.StartTracking(context.Background())
	require.ErrorIs(t, err, ErrSessionInProgress)

	sessions, err := db.GetSessions(time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].InProgress())
}

var errDisk = errors.New("disk full")

// failingDB fails every write.
type failingDB struct {
	store.DB
}

func (f *failingDB) Insert(*models.Session) (int64, error) {
	return 0, errDisk
}

func (f *failingDB) Clear() error {
	return errDisk
}

func TestStoreFailurePropagates(t *testing.T) {
	db := &failingDB{DB: newStore(t)}
	tr, _ := newTracker(t, db)
	ctx := context.Background()

	_, err := tr.StartTracking(ctx)
	assert.ErrorIs(t, err, errDisk)

	err = tr.Clear(ctx)
	assert.ErrorIs(t, err, errDisk)

	s := tr.State()
	assert.True(t, s.StartVisible)
	assert.False(t, s.ShowSnackbar)
}
