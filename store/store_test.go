package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/slumber/internal/models"
)

var base = time.Date(2024, 3, 1, 22, 0, 0, 0, time.UTC)

type backend struct {
	open func(t *testing.T) DB
	name string
}

var backends = []backend{
	{
		name: "bolt",
		open: func(t *testing.T) DB {
			t.Helper()

			db, err := Open("bolt", filepath.Join(t.TempDir(), "slumber.db"))
			require.NoError(t, err)

			return db
		},
	},
	{
		name: "sqlite",
		open: func(t *testing.T) DB {
			t.Helper()

			db, err := Open("sqlite", filepath.Join(t.TempDir(), "slumber.sqlite"))
			require.NoError(t, err)

			return db
		},
	},
}

// forEachBackend runs fn against a fresh database for every storage driver.
func forEachBackend(t *testing.T, fn func(t *testing.T, db DB)) {
	t.Helper()

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			db := b.open(t)

			t.Cleanup(func() {
				_ = db.Close()
			})

			fn(t, db)
		})
	}
}

// seed inserts n finished sessions, one per night, starting from base.
func seed(t *testing.T, db DB, n int) []*models.Session {
	t.Helper()

	sessions := make([]*models.Session, n)

	for i := range n {
		sess := models.NewSession(base.AddDate(0, 0, i))
		sess.Stop(sess.StartTime.Add(8 * time.Hour))
		sess.Quality = models.Quality(i % 6)

		_, err := db.Insert(sess)
		require.NoError(t, err)

		sessions[i] = sess
	}

	return sessions
}

func TestGetTonightEmpty(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db DB) {
		sess, err := db.GetTonight()

		require.NoError(t, err)
		assert.Nil(t, sess)
	})
}

func TestInsertAndGet(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db DB) {
		sess := models.NewSession(base)

		id, err := db.Insert(sess)
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
		assert.Equal(t, id, sess.ID)

		got, err := db.Get(id)
		require.NoError(t, err)

		if diff := cmp.Diff(sess, got); diff != "" {
			t.Errorf("Get() mismatch (-want +got):\n%s", diff)
		}

		assert.True(t, got.InProgress())
		assert.Equal(t, models.QualityUnrated, got.Quality)
	})
}

func TestGetMissing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db DB) {
		_, err := db.Get(99)

		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestGetTonightReturnsLatest(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db DB) {
		sessions := seed(t, db, 3)

		got, err := db.GetTonight()
		require.NoError(t, err)

		if diff := cmp.Diff(sessions[2], got); diff != "" {
			t.Errorf("GetTonight() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestUpdate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db DB) {
		sess := models.NewSession(base)

		_, err := db.Insert(sess)
		require.NoError(t, err)

		sess.Stop(base.Add(7 * time.Hour))
		sess.Quality = models.QualityExcellent

		require.NoError(t, db.Update(sess))

		got, err := db.Get(sess.ID)
		require.NoError(t, err)

		assert.False(t, got.InProgress())
		assert.Equal(t, 7*time.Hour, got.Duration())
		assert.Equal(t, models.QualityExcellent, got.Quality)
	})
}

func TestUpdateMissing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db DB) {
		sess := models.NewSession(base)
		sess.ID = 42

		assert.ErrorIs(t, db.Update(sess), ErrSessionNotFound)
	})
}

func TestGetSessions(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db DB) {
		seed(t, db, 5)

		all, err := db.GetSessions(time.Time{}, time.Time{})
		require.NoError(t, err)
		require.Len(t, all, 5)

		// newest first
		assert.Equal(t, int64(5), all[0].ID)
		assert.Equal(t, int64(1), all[4].ID)

		some, err := db.GetSessions(
			base.AddDate(0, 0, 1),
			base.AddDate(0, 0, 3),
		)
		require.NoError(t, err)
		require.Len(t, some, 3)
		assert.Equal(t, []int64{4, 3, 2}, ids(some))
	})
}

func TestClear(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db DB) {
		seed(t, db, 3)

		require.NoError(t, db.Clear())

		all, err := db.GetSessions(time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Empty(t, all)

		tonight, err := db.GetTonight()
		require.NoError(t, err)
		assert.Nil(t, tonight)

		// IDs are not reused after a clear
		id, err := db.Insert(models.NewSession(base))
		require.NoError(t, err)
		assert.Equal(t, int64(4), id)
	})
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("postgres", "")

	assert.ErrorIs(t, err, errUnknownDriver)
}

func TestBoltLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slumber.db")

	db, err := NewClient(path)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	_, err = NewClient(path)

	assert.ErrorIs(t, err, errSlumberRunning)
}

func ids(sessions []*models.Session) []int64 {
	out := make([]int64, len(sessions))

	for i := range sessions {
		out[i] = sessions[i].ID
	}

	return out
}
