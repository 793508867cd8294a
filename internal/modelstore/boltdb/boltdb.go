// Package boltdb persists model records as JSON rows in bbolt, one bucket
// per algorithm.
package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	bolt "go.etcd.io/bbolt"

	"github.com/go-grove/grove/internal/database"
	"github.com/go-grove/grove/internal/modelstore"
)

const (
	algorithmKeys = "algorithm:keys:"
	prefix        = "model:"
)

type FilterFn func(record modelstore.Record) bool

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

type DB struct {
	sDB *database.DB
}

func (db *DB) extractKey(key string) string {
	prefixPos := strings.Index(key, prefix)

	return key[prefixPos+len(prefix):]
}

// Keys lists the algorithms that own at least one persisted record.
func (db *DB) Keys() ([]string, error) {
	var bucketKeys []string
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(algorithmKeys))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			bucketKeys = append(bucketKeys, db.extractKey(string(k)))
		}
		return nil
	})

	return bucketKeys, err
}

func (db *DB) Store(_ context.Context, record modelstore.Record) error {
	var b *bolt.Bucket
	bytes, err := json.Marshal(record)
	if err != nil {
		return err
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b = tx.Bucket([]byte(prefix + record.Algorithm))
		if b == nil {
			b, err = tx.CreateBucket([]byte(prefix + record.Algorithm))
			if err != nil {
				return fmt.Errorf("create bucket: %w", err)
			}
		}
		if err := b.Put([]byte(record.ID.String()), bytes); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}
		b = tx.Bucket([]byte(algorithmKeys))
		if b == nil {
			b, err = tx.CreateBucket([]byte(algorithmKeys))
			if err != nil {
				return fmt.Errorf("unable create algorithms bucket: %w", err)
			}
		}
		if err := b.Put([]byte(prefix+record.Algorithm), []byte{0x0}); err != nil {
			return fmt.Errorf("unable put to algorithms bucket: %w", err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %v", err)
	}

	return nil
}

func (db *DB) AppendMany(_ context.Context, records []modelstore.Record) error {
	var b *bolt.Bucket
	if err := db.sDB.DB.Batch(func(tx *bolt.Tx) error {
		for _, record := range records {
			b = tx.Bucket([]byte(prefix + record.Algorithm))
			if b == nil {
				algBucket, err := tx.CreateBucket([]byte(prefix + record.Algorithm))
				if err != nil {
					return fmt.Errorf("create bucket: %w", err)
				}
				b = algBucket
			}
			bytes, err := json.Marshal(record)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(record.ID.String()), bytes); err != nil {
				return fmt.Errorf("put to bucket error: %w", err)
			}
			keysBucket := tx.Bucket([]byte(algorithmKeys))
			if keysBucket == nil {
				created, err := tx.CreateBucket([]byte(algorithmKeys))
				if err != nil {
					return fmt.Errorf("unable create algorithms bucket: %w", err)
				}
				keysBucket = created
			}
			if err := keysBucket.Put([]byte(prefix+record.Algorithm), []byte{0x0}); err != nil {
				return fmt.Errorf("unable put to algorithms bucket: %w", err)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %v", err)
	}

	return nil
}

func (db *DB) DeleteMany(_ context.Context, records []modelstore.Record) error {
	var b *bolt.Bucket
	if err := db.sDB.DB.Batch(func(tx *bolt.Tx) error {
		for _, record := range records {
			b = tx.Bucket([]byte(prefix + record.Algorithm))
			if b == nil {
				continue
			}
			if err := b.Delete([]byte(record.ID.String())); err != nil {
				return fmt.Errorf("unable delete: %w", err)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %v", err)
	}

	return nil
}

func (db *DB) Delete(_ context.Context, record modelstore.Record) error {
	var b *bolt.Bucket
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b = tx.Bucket([]byte(prefix + record.Algorithm))
		if b == nil {
			return nil
		}

		return b.Delete([]byte(record.ID.String()))
	}); err != nil {
		return fmt.Errorf("update transaction error: %v", err)
	}

	return nil
}

func (db *DB) FindAll(_ context.Context, filter FilterFn) ([]modelstore.Record, error) {
	var records []modelstore.Record
	keys, err := db.Keys()
	if err != nil {
		return nil, fmt.Errorf("unable to fetch algorithm keys: %w", err)
	}
	for _, key := range keys {
		list, err := db.FindByAlgorithm(key, filter)
		if err != nil {
			return nil, err
		}
		records = append(records, list...)
	}
	return records, nil
}

func (db *DB) CountByAlgorithm(algorithm string) (int, error) {
	var length int
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(prefix + algorithm))
		if b == nil {
			length = 0
			return nil
		}
		stats := b.Stats()
		length = stats.KeyN
		return nil
	}); err != nil {
		return 0, fmt.Errorf("view transaction error: %v", err)
	}

	return length, nil
}

func (db *DB) FindByAlgorithm(algorithm string, filter FilterFn) ([]modelstore.Record, error) {
	var list []modelstore.Record
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(prefix + algorithm))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var record modelstore.Record
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("json unmarshal error, %q", err)
			}
			if filter == nil || filter(record) {
				list = append(list, record)
			}
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %v", err)
	}

	return list, nil
}
