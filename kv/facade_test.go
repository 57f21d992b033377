package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFacade(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	general := New(DefaultNamespace, s)
	secure := New(SecureNamespace, s)
	f := NewFacade(general, secure)

	t.Run("tokens", func(t *testing.T) {
		_, ok := f.AuthToken()
		assert.False(t, ok)

		f.SetAuthToken("access-1")
		f.SetRefreshToken("refresh-1")

		tok, ok := f.AuthToken()
		assert.True(t, ok)
		assert.Equal(t, "access-1", tok)
		tok, ok = f.RefreshToken()
		assert.True(t, ok)
		assert.Equal(t, "refresh-1", tok)

		// Tokens live in the secure namespace only.
		_, ok = general.GetString(AuthTokenKey)
		assert.False(t, ok)

		f.RemoveAuthToken()
		_, ok = f.AuthToken()
		assert.False(t, ok)
		_, ok = f.RefreshToken()
		assert.True(t, ok)

		f.SetAuthToken("access-2")
		f.ClearSession()
		_, ok = f.AuthToken()
		assert.False(t, ok)
		_, ok = f.RefreshToken()
		assert.False(t, ok)
	})

	t.Run("settings", func(t *testing.T) {
		_, ok := f.UserSettings()
		assert.False(t, ok)

		want := UserSettings{Language: "zh-CN", FontScale: 1.25, Notifications: true}
		f.SetUserSettings(want)

		got, ok := f.UserSettings()
		assert.True(t, ok)
		assert.Equal(t, want, *got)

		general.Set(UserSettingsKey, "[")
		_, ok = f.UserSettings()
		assert.False(t, ok)
	})
}
