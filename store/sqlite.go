package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ayoisaiah/slumber/internal/models"
)

const schema = `CREATE TABLE IF NOT EXISTS daily_sleep_quality_table (
	night_id INTEGER PRIMARY KEY AUTOINCREMENT,
	start_time_milli INTEGER NOT NULL,
	end_time_milli INTEGER NOT NULL,
	quality_rating INTEGER NOT NULL DEFAULT -1
);`

const selectColumns = `SELECT night_id, start_time_milli, end_time_milli, quality_rating
	FROM daily_sleep_quality_table`

// SQLiteClient stores sessions in a single SQLite table.
type SQLiteClient struct {
	db *sql.DB
}

// NewSQLiteClient opens (or creates) the SQLite database at dbPath.
func NewSQLiteClient(dbPath string) (*SQLiteClient, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// a single connection serialises writers and keeps :memory: databases
	// alive for the lifetime of the client
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLiteClient{db: db}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*models.Session, error) {
	var (
		sess       models.Session
		start, end int64
		quality    int
	)

	err := row.Scan(&sess.ID, &start, &end, &quality)
	if err != nil {
		return nil, err
	}

	sess.StartTime = time.UnixMilli(start)
	sess.EndTime = time.UnixMilli(end)
	sess.Quality = models.Quality(quality)

	return &sess, nil
}

func (c *SQLiteClient) Insert(sess *models.Session) (int64, error) {
	res, err := c.db.Exec(
		`INSERT INTO daily_sleep_quality_table
		(start_time_milli, end_time_milli, quality_rating) VALUES (?, ?, ?)`,
		sess.StartTime.UnixMilli(),
		sess.EndTime.UnixMilli(),
		int(sess.Quality),
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}

	sess.ID = id

	return id, nil
}

func (c *SQLiteClient) Update(sess *models.Session) error {
	res, err := c.db.Exec(
		`UPDATE daily_sleep_quality_table
		SET start_time_milli = ?, end_time_milli = ?, quality_rating = ?
		WHERE night_id = ?`,
		sess.StartTime.UnixMilli(),
		sess.EndTime.UnixMilli(),
		int(sess.Quality),
		sess.ID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	if n == 0 {
		return ErrSessionNotFound.Fmt(sess.ID)
	}

	return nil
}

func (c *SQLiteClient) Get(id int64) (*models.Session, error) {
	sess, err := scanSession(
		c.db.QueryRow(selectColumns+" WHERE night_id = ?", id),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound.Fmt(id)
	}

	return sess, err
}

func (c *SQLiteClient) GetTonight() (*models.Session, error) {
	sess, err := scanSession(
		c.db.QueryRow(selectColumns + " ORDER BY night_id DESC LIMIT 1"),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	return sess, err
}

func (c *SQLiteClient) GetSessions(
	startTime, endTime time.Time,
) ([]*models.Session, error) {
	query := selectColumns + " WHERE start_time_milli >= ?"
	args := []any{startTime.UnixMilli()}

	if !endTime.IsZero() {
		query += " AND start_time_milli <= ?"
		args = append(args, endTime.UnixMilli())
	}

	rows, err := c.db.Query(query+" ORDER BY night_id DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session

	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}

		sessions = append(sessions, sess)
	}

	return sessions, rows.Err()
}

func (c *SQLiteClient) Clear() error {
	_, err := c.db.Exec("DELETE FROM daily_sleep_quality_table")
	if err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}

	return nil
}

func (c *SQLiteClient) Close() error {
	return c.db.Close()
}
