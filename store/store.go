// Package store defines the persistent medium the key-value namespaces are
// built on. A Store is a flat, string-keyed key space shared by all
// namespaces; partitioning is done by key prefix in package kv.
package store

import "errors"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// Store defines the operations a persistent medium must implement.
type Store interface {
	// Get returns the value of key. ok is false if the key doesn't exist.
	Get(key string) (value []byte, ok bool, err error)
	// Set writes value under key, replacing any existing value.
	Set(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Keys returns all keys starting with prefix, in lexical order. An empty
	// prefix enumerates the whole key space.
	Keys(prefix string) ([]string, error)
	Close() error
}
