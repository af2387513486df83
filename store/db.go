// Package store connects to the data store and manages sleep sessions
package store

import (
	"time"

	"github.com/ayoisaiah/slumber/internal/apperr"
	"github.com/ayoisaiah/slumber/internal/models"
)

var (
	ErrSessionNotFound = &apperr.Error{
		Message: "sleep session %d not found",
	}

	errSlumberRunning = &apperr.Error{
		Message: "is slumber already running? Only one instance can access the database at a time",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown storage driver: %q",
	}
)

// DB is the database storage interface.
type DB interface {
	// Insert saves a new session and returns the ID assigned to it
	Insert(sess *models.Session) (int64, error)
	// Update overwrites an existing session
	Update(sess *models.Session) error
	// Get retrieves the session with the specified ID
	Get(id int64) (*models.Session, error)
	// GetTonight returns the most recently created session or nil if there
	// are no sessions
	GetTonight() (*models.Session, error)
	// GetSessions returns the sessions that started within the specified
	// bounds, newest first. A zero endTime means no upper bound
	GetSessions(startTime, endTime time.Time) ([]*models.Session, error)
	// Clear deletes all sessions
	Clear() error
	// Close ends the database connection
	Close() error
}

// Open connects to the database at dbPath using the specified driver.
func Open(driver, dbPath string) (DB, error) {
	switch driver {
	case "", "bolt":
		return NewClient(dbPath)
	case "sqlite":
		return NewSQLiteClient(dbPath)
	}

	return nil, errUnknownDriver.Fmt(driver)
}

func inRange(t, startTime, endTime time.Time) bool {
	if t.Before(startTime) {
		return false
	}

	return endTime.IsZero() || !t.After(endTime)
}
