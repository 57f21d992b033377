package kv

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hackfix.me/kangyang/crypto"
	"go.hackfix.me/kangyang/store"
	"go.hackfix.me/kangyang/store/badger"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := badger.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}

func TestNamespaceStrings(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ns := New(DefaultNamespace, s)

	_, ok := ns.GetString("missing")
	assert.False(t, ok)

	ns.Set("greeting", "你好")
	val, ok := ns.GetString("greeting")
	assert.True(t, ok)
	assert.Equal(t, "你好", val)

	ns.Set("greeting", "hello")
	val, _ = ns.GetString("greeting")
	assert.Equal(t, "hello", val)

	raw, ok, err := s.Get("default:greeting")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", string(raw))

	ns.Delete("greeting")
	_, ok = ns.GetString("greeting")
	assert.False(t, ok)

	// Deleting a missing key is a no-op.
	ns.Delete("greeting")
}

func TestNamespaceIsolation(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	general := New(DefaultNamespace, s)
	secure := New(SecureNamespace, s)

	general.Set("token", "general")
	secure.Set("token", "secure")
	general.Set("a", "1")
	secure.Set("b", "2")

	val, _ := general.GetString("token")
	assert.Equal(t, "general", val)
	val, _ = secure.GetString("token")
	assert.Equal(t, "secure", val)

	assert.Equal(t, []string{"a", "token"}, general.Keys(""))
	assert.Equal(t, []string{"b", "token"}, secure.Keys(""))

	general.ClearAll()
	assert.Empty(t, general.Keys(""))
	assert.Equal(t, []string{"b", "token"}, secure.Keys(""))
}

func TestNamespaceObjects(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name  string         `json:"name"`
		Tags  []string       `json:"tags"`
		Count map[string]int `json:"count"`
	}

	logger, logBuf := newTestLogger()
	s := newTestStore(t)
	ns := New(DefaultNamespace, s, WithLogger(logger))

	testCases := []struct {
		name string
		in   any
		out  func() any
	}{
		{"struct", payload{Name: "a", Tags: []string{"x"}, Count: map[string]int{"1": 2}},
			func() any { return &payload{} }},
		{"map", map[string]int{"1": 3, "7": 1}, func() any { return &map[string]int{} }},
		{"slice", []string{"b", "a"}, func() any { return &[]string{} }},
		{"number", 42.5, func() any { return new(float64) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ns.SetObject(tc.name, tc.in)
			out := tc.out()
			require.True(t, ns.GetObject(tc.name, out))
			// Compare dereferenced values.
			switch v := out.(type) {
			case *payload:
				assert.Equal(t, tc.in, *v)
			case *map[string]int:
				assert.Equal(t, tc.in, *v)
			case *[]string:
				assert.Equal(t, tc.in, *v)
			case *float64:
				assert.Equal(t, tc.in, *v)
			}
		})
	}

	t.Run("absent", func(t *testing.T) {
		var v payload
		assert.False(t, ns.GetObject("never-written", &v))
	})

	t.Run("malformed", func(t *testing.T) {
		ns.Set("broken", "{not json")
		var v payload
		assert.False(t, ns.GetObject("broken", &v))
		assert.Contains(t, logBuf.String(), "failed decoding value")
	})

	t.Run("unencodable", func(t *testing.T) {
		ns.SetObject("chan", make(chan int))
		_, ok := ns.GetString("chan")
		assert.False(t, ok)
		assert.Contains(t, logBuf.String(), "failed encoding value")
	})
}

func TestNamespaceSealed(t *testing.T) {
	t.Parallel()

	key, err := crypto.NewKey()
	require.NoError(t, err)

	s := newTestStore(t)
	secure := New(SecureNamespace, s, WithEncryptionKey(key))
	assert.True(t, secure.Sealed())

	secure.Set("token", "s3cr3t-value")
	val, ok := secure.GetString("token")
	assert.True(t, ok)
	assert.Equal(t, "s3cr3t-value", val)

	raw, ok, err := s.Get("secure:token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, string(raw), "s3cr3t-value")

	// A namespace with another key can't open the value.
	otherKey, err := crypto.NewKey()
	require.NoError(t, err)
	logger, logBuf := newTestLogger()
	other := New(SecureNamespace, s, WithEncryptionKey(otherKey), WithLogger(logger))
	_, ok = other.GetString("token")
	assert.False(t, ok)
	assert.Contains(t, logBuf.String(), "failed opening sealed value")
}

// faultyStore fails every operation.
type faultyStore struct{}

var errFault = errors.New("disk on fire")

func (faultyStore) Get(string) ([]byte, bool, error) { return nil, false, errFault }
func (faultyStore) Set(string, []byte) error         { return errFault }
func (faultyStore) Delete(string) error              { return errFault }
func (faultyStore) Keys(string) ([]string, error)    { return nil, errFault }
func (faultyStore) Close() error                     { return nil }

func TestNamespaceFaults(t *testing.T) {
	t.Parallel()

	logger, logBuf := newTestLogger()
	ns := New(DefaultNamespace, faultyStore{}, WithLogger(logger))

	assert.NotPanics(t, func() {
		ns.Set("k", "v")
		ns.SetObject("o", map[string]int{"a": 1})
		ns.Delete("k")
		ns.ClearAll()
	})

	_, ok := ns.GetString("k")
	assert.False(t, ok)
	var m map[string]int
	assert.False(t, ns.GetObject("o", &m))
	assert.Equal(t, []string{}, ns.Keys(""))

	logs := logBuf.String()
	for _, msg := range []string{
		"failed writing value", "failed reading value",
		"failed deleting value", "failed listing keys",
	} {
		assert.Contains(t, logs, msg)
	}
	assert.Contains(t, logs, "disk on fire")
}
