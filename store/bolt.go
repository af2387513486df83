package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/slumber/internal/models"
)

const sessionBucket = "sessions"

// Client is a BoltDB database client.
type Client struct {
	db *bolt.DB
}

// itob returns an 8-byte big endian representation of v so that keys sort in
// insertion order.
func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))

	return b
}

func (c *Client) Insert(sess *models.Session) (int64, error) {
	err := c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}

		sess.ID = int64(seq)

		value, err := json.Marshal(sess)
		if err != nil {
			return err
		}

		return b.Put(itob(sess.ID), value)
	})
	if err != nil {
		return 0, err
	}

	return sess.ID, nil
}

func (c *Client) Update(sess *models.Session) error {
	value, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))

		key := itob(sess.ID)
		if b.Get(key) == nil {
			return ErrSessionNotFound.Fmt(sess.ID)
		}

		return b.Put(key, value)
	})
}

func (c *Client) Get(id int64) (*models.Session, error) {
	var sess *models.Session

	err := c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(sessionBucket)).Get(itob(id))
		if v == nil {
			return ErrSessionNotFound.Fmt(id)
		}

		sess = &models.Session{}

		return json.Unmarshal(v, sess)
	})
	if err != nil {
		return nil, err
	}

	return sess, nil
}

func (c *Client) GetTonight() (*models.Session, error) {
	var sess *models.Session

	err := c.db.View(func(tx *bolt.Tx) error {
		_, v := tx.Bucket([]byte(sessionBucket)).Cursor().Last()
		if v == nil {
			return nil
		}

		sess = &models.Session{}

		return json.Unmarshal(v, sess)
	})
	if err != nil {
		return nil, err
	}

	return sess, nil
}

func (c *Client) GetSessions(
	startTime, endTime time.Time,
) ([]*models.Session, error) {
	var sessions []*models.Session

	err := c.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()

		for k, v := cur.Last(); k != nil; k, v = cur.Prev() {
			sess := &models.Session{}

			err := json.Unmarshal(v, sess)
			if err != nil {
				return err
			}

			if inRange(sess.StartTime, startTime, endTime) {
				sessions = append(sessions, sess)
			}
		}

		return nil
	})

	return sessions, err
}

// Clear deletes every session but keeps the bucket sequence so that IDs are
// never reused.
func (c *Client) Clear() error {
	return c.db.Update(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()

		for k, _ := cur.First(); k != nil; k, _ = cur.First() {
			err := cur.Delete()
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *Client) Close() error {
	return c.db.Close()
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errSlumberRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db: db,
	}, nil
}
