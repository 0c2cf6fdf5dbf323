package fetch

import (
	"bytes"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

const cacheBucket = "payloads"

// Cache stores fetched payloads in a bolt database keyed by URL, each row
// prefixed with its fetched-at timestamp so stale entries can be skipped.
type Cache struct {
	db *bolt.DB
}

// OpenCache opens (creating if needed) the cache database at path.
func OpenCache(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

// Get returns the cached payload for url when one exists and is no older
// than maxAge.
func (c *Cache) Get(url string, maxAge time.Duration) ([]byte, bool, error) {
	var payload []byte
	var found bool

	err := c.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(cacheBucket))
		if bucket == nil {
			return nil
		}
		row := bucket.Get([]byte(url))
		if row == nil {
			return nil
		}

		sep := bytes.IndexByte(row, '\n')
		if sep < 0 {
			return nil // malformed row, treat as a miss
		}
		fetchedAt, err := time.Parse(time.RFC3339, string(row[:sep]))
		if err != nil {
			return nil
		}
		if time.Since(fetchedAt) > maxAge {
			return nil
		}

		payload = make([]byte, len(row)-sep-1)
		copy(payload, row[sep+1:])
		found = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return payload, found, nil
}

// Put stores body for url, stamped with the current time.
func (c *Cache) Put(url string, body []byte) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(cacheBucket))
		if err != nil {
			return err
		}

		row := make([]byte, 0, len(time.RFC3339)+1+len(body))
		row = time.Now().UTC().AppendFormat(row, time.RFC3339)
		row = append(row, '\n')
		row = append(row, body...)
		return bucket.Put([]byte(url), row)
	})
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
