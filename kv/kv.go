// Package kv implements namespaced key-value storage on top of a shared
// persistent medium.
//
// Faults of the medium are never returned to callers. Reads degrade to an
// absent value and writes to a no-op, and every fault is logged. This keeps
// the layers above free of storage error handling, at the cost of writes
// being fire-and-forget.
package kv

import (
	"encoding/json"
	"log/slog"
	"strings"

	"go.hackfix.me/kangyang/crypto"
	"go.hackfix.me/kangyang/store"
)

// Well-known namespace names.
const (
	DefaultNamespace = "default"
	SecureNamespace  = "secure"
)

const separator = ":"

// Namespace is a view of a store where every key is prefixed with
// "<name>:". Namespaces sharing a store never see each other's keys.
type Namespace struct {
	name   string
	prefix string
	store  store.Store
	logger *slog.Logger
	encKey *[crypto.KeySize]byte
}

// Option is a function that allows configuring a Namespace.
type Option func(*Namespace)

// WithLogger sets the logger faults are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Namespace) {
		n.logger = logger
	}
}

// WithEncryptionKey seals every value written to the namespace with key, so
// that it's encrypted at rest. A nil key disables sealing.
func WithEncryptionKey(key *[crypto.KeySize]byte) Option {
	return func(n *Namespace) {
		n.encKey = key
	}
}

// New returns a namespace called name over s.
func New(name string, s store.Store, opts ...Option) *Namespace {
	n := &Namespace{
		name:   name,
		prefix: name + separator,
		store:  s,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Name returns the namespace name.
func (n *Namespace) Name() string {
	return n.name
}

// Sealed returns true if values are encrypted before being stored.
func (n *Namespace) Sealed() bool {
	return n.encKey != nil
}

// Set writes value under key.
func (n *Namespace) Set(key, value string) {
	data := []byte(value)
	if n.encKey != nil {
		var err error
		data, err = crypto.EncryptSym(data, n.encKey)
		if err != nil {
			n.logger.Error("failed sealing value", n.attrs(key, err)...)
			return
		}
	}

	if err := n.store.Set(n.prefix+key, data); err != nil {
		n.logger.Error("failed writing value", n.attrs(key, err)...)
	}
}

// GetString returns the value of key. ok is false if the key doesn't exist,
// or if it couldn't be read.
func (n *Namespace) GetString(key string) (value string, ok bool) {
	data, ok, err := n.store.Get(n.prefix + key)
	if err != nil {
		n.logger.Error("failed reading value", n.attrs(key, err)...)
		return "", false
	}
	if !ok {
		return "", false
	}

	if n.encKey != nil {
		data, err = crypto.DecryptSym(data, n.encKey)
		if err != nil {
			n.logger.Warn("failed opening sealed value", n.attrs(key, err)...)
			return "", false
		}
	}

	return string(data), true
}

// Delete removes key. It's a no-op if the key doesn't exist.
func (n *Namespace) Delete(key string) {
	if err := n.store.Delete(n.prefix + key); err != nil {
		n.logger.Error("failed deleting value", n.attrs(key, err)...)
	}
}

// Keys returns the keys in the namespace starting with prefix, without the
// namespace prefix.
func (n *Namespace) Keys(prefix string) []string {
	keys, err := n.store.Keys(n.prefix + prefix)
	if err != nil {
		n.logger.Error("failed listing keys", n.attrs(prefix, err)...)
		return []string{}
	}

	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, n.prefix)
	}

	return keys
}

// ClearAll removes every key in the namespace. The whole medium is
// enumerated, since it's shared with other namespaces.
func (n *Namespace) ClearAll() {
	keys, err := n.store.Keys("")
	if err != nil {
		n.logger.Error("failed listing keys", "namespace", n.name, "error", err)
		return
	}

	for _, k := range keys {
		if !strings.HasPrefix(k, n.prefix) {
			continue
		}
		if err := n.store.Delete(k); err != nil {
			n.logger.Error("failed deleting value",
				n.attrs(strings.TrimPrefix(k, n.prefix), err)...)
		}
	}
}

// SetObject JSON encodes v and writes it under key.
func (n *Namespace) SetObject(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		n.logger.Error("failed encoding value", n.attrs(key, err)...)
		return
	}

	n.Set(key, string(data))
}

// GetObject JSON decodes the value of key into v. It returns false if the key
// doesn't exist or if the value can't be decoded, in which case v must be
// considered unset.
func (n *Namespace) GetObject(key string, v any) bool {
	data, ok := n.GetString(key)
	if !ok {
		return false
	}

	if err := json.Unmarshal([]byte(data), v); err != nil {
		n.logger.Warn("failed decoding value", n.attrs(key, err)...)
		return false
	}

	return true
}

func (n *Namespace) attrs(key string, err error) []any {
	return []any{"namespace", n.name, "key", key, "error", err}
}
