// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"

	"github.com/sigma-desa/kiosk/internal/logging"
	"github.com/sigma-desa/kiosk/internal/metrics"
)

// docKeyPrefix namespaces cached documents within the database.
const docKeyPrefix = "kioskdoc:"

// ErrNotFound is returned when a key has no cached entry.
var ErrNotFound = errors.New("cache: entry not found")

// Entry is a cached document with its fetch time.
type Entry struct {
	// Data is the document body, kept as raw JSON so the cache never
	// needs to understand document schemas.
	Data json.RawMessage `json:"data"`

	// Timestamp is when the entry was stored, in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// Age returns how long ago the entry was stored.
func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(e.Timestamp))
}

// Store is a durable key-value cache for kiosk documents.
// All methods are safe for concurrent use.
type Store struct {
	db  *badger.DB
	now func() time.Time
}

// Open creates (or reopens) a Store at the given directory.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("cache: directory must not be empty")
	}

	opts := badger.DefaultOptions(dir)
	// Kiosk caches are small, keep Badger's memory footprint down.
	opts.MemTableSize = 8 << 20
	opts.NumMemtables = 2
	opts.NumCompactors = 2
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("cache: open badger at %s: %w", dir, err)
	}

	logging.Info().Str("dir", dir).Msg("Document cache opened")
	return &Store{db: db, now: time.Now}, nil
}

// NewWithDB wraps an already-open Badger database. Used by tests.
func NewWithDB(db *badger.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Set stores data under key with the current time.
func (s *Store) Set(key string, data json.RawMessage) error {
	entry := Entry{
		Data:      data,
		Timestamp: s.now().UnixMilli(),
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		metrics.CacheOperations.WithLabelValues("set", "error").Inc()
		return fmt.Errorf("cache: encode entry %s: %w", key, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(docKeyPrefix+key), encoded)
	})
	if err != nil {
		metrics.CacheOperations.WithLabelValues("set", "error").Inc()
		return fmt.Errorf("cache: set %s: %w", key, err)
	}

	metrics.CacheOperations.WithLabelValues("set", "ok").Inc()
	return nil
}

// Get retrieves the entry stored under key. Returns ErrNotFound when
// the key has never been written or was removed.
func (s *Store) Get(key string) (Entry, error) {
	var entry Entry

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(docKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("cache: get %s: %w", key, err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			metrics.CacheOperations.WithLabelValues("get", "miss").Inc()
		} else {
			metrics.CacheOperations.WithLabelValues("get", "error").Inc()
		}
		return Entry{}, err
	}

	metrics.CacheOperations.WithLabelValues("get", "hit").Inc()
	return entry, nil
}

// Age reports how long ago key was cached. Returns ErrNotFound when
// the key is absent.
func (s *Store) Age(key string) (time.Duration, error) {
	entry, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	return entry.Age(s.now()), nil
}

// Remove deletes the entry under key. Removing an absent key is not an
// error.
func (s *Store) Remove(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(docKeyPrefix + key))
	})
	if err != nil {
		metrics.CacheOperations.WithLabelValues("remove", "error").Inc()
		return fmt.Errorf("cache: remove %s: %w", key, err)
	}
	metrics.CacheOperations.WithLabelValues("remove", "ok").Inc()
	return nil
}

// Clear deletes every cached document.
func (s *Store) Clear() error {
	err := s.db.DropPrefix([]byte(docKeyPrefix))
	if err != nil {
		metrics.CacheOperations.WithLabelValues("clear", "error").Inc()
		return fmt.Errorf("cache: clear: %w", err)
	}
	metrics.CacheOperations.WithLabelValues("clear", "ok").Inc()
	return nil
}

// Keys lists the cached document keys without their prefix.
func (s *Store) Keys() ([]string, error) {
	var keys []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(docKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cache: list keys: %w", err)
	}
	return keys, nil
}

// GetDocument decodes the cached document under key into T.
func GetDocument[T any](s *Store, key string) (*T, Entry, error) {
	entry, err := s.Get(key)
	if err != nil {
		return nil, Entry{}, err
	}

	var doc T
	if err := json.Unmarshal(entry.Data, &doc); err != nil {
		return nil, Entry{}, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return &doc, entry, nil
}

// SetDocument encodes doc and stores it under key.
func SetDocument[T any](s *Store, key string, doc *T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cache: encode document %s: %w", key, err)
	}
	return s.Set(key, data)
}
