// Package storetest contains the behavior tests every store.Store
// implementation must pass.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hackfix.me/kangyang/store"
)

// Run runs the store tests against stores returned by open. Each test gets a
// new empty store.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Helper()

	newStore := func(t *testing.T) store.Store {
		s := open(t)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}

	t.Run("get_set", func(t *testing.T) {
		s := newStore(t)

		_, ok, err := s.Get("default:missing")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, s.Set("default:key", []byte("value")))
		val, ok, err := s.Get("default:key")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("value"), val)

		require.NoError(t, s.Set("default:key", []byte("新的值")))
		val, _, err = s.Get("default:key")
		require.NoError(t, err)
		assert.Equal(t, "新的值", string(val))
	})

	t.Run("empty_value", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Set("default:empty", nil))
		val, ok, err := s.Get("default:empty")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, val)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Set("default:key", []byte("value")))
		require.NoError(t, s.Delete("default:key"))
		_, ok, err := s.Get("default:key")
		require.NoError(t, err)
		assert.False(t, ok)

		assert.NoError(t, s.Delete("default:missing"))
	})

	t.Run("keys", func(t *testing.T) {
		s := newStore(t)

		for _, k := range []string{
			"secure:token", "default:b", "default:a", "default:ab", "defaults:x",
		} {
			require.NoError(t, s.Set(k, []byte("v")))
		}

		testCases := []struct {
			prefix string
			exp    []string
		}{
			{prefix: "default:", exp: []string{"default:a", "default:ab", "default:b"}},
			{prefix: "default:a", exp: []string{"default:a", "default:ab"}},
			{prefix: "secure:", exp: []string{"secure:token"}},
			{prefix: "other:", exp: []string{}},
			{prefix: "", exp: []string{
				"default:a", "default:ab", "default:b", "defaults:x", "secure:token",
			}},
		}

		for _, tc := range testCases {
			keys, err := s.Keys(tc.prefix)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, keys, "prefix %q", tc.prefix)
		}
	})

	t.Run("closed", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Close())

		assert.ErrorIs(t, s.Set("default:key", []byte("v")), store.ErrClosed)
		_, _, err := s.Get("default:key")
		assert.ErrorIs(t, err, store.ErrClosed)
		_, err = s.Keys("")
		assert.ErrorIs(t, err, store.ErrClosed)
	})
}
