package badger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hackfix.me/kangyang/store"
	"go.hackfix.me/kangyang/store/storetest"
)

func TestStore(t *testing.T) {
	t.Parallel()

	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := Open(":memory:")
		require.NoError(t, err)
		return s
	})
}

func TestPersistence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := []byte("0123456789abcdef0123456789abcdef")

	s, err := Open(dir, WithEncryptionKey(key))
	require.NoError(t, err)
	require.NoError(t, s.Set("default:@kangyang_grocery_cart", []byte(`{"1":2}`)))
	require.NoError(t, s.Close())

	s, err = Open(dir, WithEncryptionKey(key))
	require.NoError(t, err)
	defer s.Close()

	val, ok, err := s.Get("default:@kangyang_grocery_cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"1":2}`, string(val))
}
