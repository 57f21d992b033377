package badger

import (
	"errors"

	badger "github.com/dgraph-io/badger/v4"

	"go.hackfix.me/kangyang/store"
)

// Badger is a store backed by a Badger database.
type Badger struct {
	db *badger.DB
}

var _ store.Store = &Badger{}

// Option is a function that allows configuring the Badger options before the
// database is opened.
type Option func(*badger.Options)

// WithEncryptionKey enables Badger's encryption at rest. The key must be 16, 24
// or 32 bytes, for AES-128, AES-192 or AES-256 respectively.
func WithEncryptionKey(key []byte) Option {
	return func(opts *badger.Options) {
		if len(key) == 0 {
			return
		}
		*opts = opts.WithEncryptionKey(key).
			// An index cache is required when encryption is enabled.
			WithIndexCacheSize(10 << 20)
	}
}

// Open opens or creates a Badger database at path. If path is empty or
// ":memory:", the database is kept in memory.
func Open(path string, options ...Option) (*Badger, error) {
	var opts badger.Options
	if path == "" || path == ":memory:" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil

	for _, opt := range options {
		opt(&opts)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Badger{db: db}, nil
}

// Close closes the underlying database.
func (s *Badger) Close() error {
	return s.db.Close()
}

// Get returns the value of key.
func (s *Badger) Get(key string) (value []byte, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, mapErr(err)
	}

	return value, true, nil
}

// Set writes value under key.
func (s *Badger) Set(key string, value []byte) error {
	return mapErr(s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	}))
}

// Delete removes key.
func (s *Badger) Delete(key string) error {
	return mapErr(s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	}))
}

// Keys returns all keys with the given prefix.
func (s *Badger) Keys(prefix string) ([]string, error) {
	keys := []string{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		// Enable key-only iteration, which is more efficient.
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}

		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}

	return keys, nil
}

func mapErr(err error) error {
	if errors.Is(err, badger.ErrDBClosed) {
		return store.ErrClosed
	}
	return err
}
