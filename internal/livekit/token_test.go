package livekit

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenMinter(t *testing.T) {
	t.Run("requires credentials", func(t *testing.T) {
		_, err := NewTokenMinter("", "secret", 0)
		assert.Error(t, err)

		_, err = NewTokenMinter("key", "", 0)
		assert.Error(t, err)
	})

	t.Run("zero ttl selects default", func(t *testing.T) {
		m, err := NewTokenMinter("key", "secret", 0)
		require.NoError(t, err)
		assert.Equal(t, defaultTTL, m.ttl)
	})
}

func TestMint(t *testing.T) {
	m, err := NewTokenMinter("api-key", "api-secret", time.Hour)
	require.NoError(t, err)

	t.Run("requires room and identity", func(t *testing.T) {
		_, err := m.Mint(GrantOptions{Room: "room-1"})
		assert.Error(t, err)

		_, err = m.Mint(GrantOptions{Identity: "user-1"})
		assert.Error(t, err)
	})

	t.Run("signed claims round trip", func(t *testing.T) {
		signed, err := m.Mint(GrantOptions{
			Room:         "webinar-abc",
			Identity:     "user-1",
			Name:         "Ada",
			CanPublish:   true,
			CanSubscribe: true,
		})
		require.NoError(t, err)

		parsed, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
			return []byte("api-secret"), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		require.NoError(t, err)
		require.True(t, parsed.Valid)

		claims, ok := parsed.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, "api-key", claims["iss"])
		assert.Equal(t, "user-1", claims["sub"])
		assert.Equal(t, "Ada", claims["name"])

		video, ok := claims["video"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "webinar-abc", video["room"])
		assert.Equal(t, true, video["roomJoin"])
		assert.Equal(t, true, video["canPublish"])
		assert.Equal(t, true, video["canSubscribe"])
		assert.Equal(t, true, video["canPublishData"])

		exp, err := claims.GetExpirationTime()
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		signed, err := m.Mint(GrantOptions{Room: "r", Identity: "u"})
		require.NoError(t, err)

		_, err = jwt.Parse(signed, func(token *jwt.Token) (any, error) {
			return []byte("wrong"), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		assert.Error(t, err)
	})
}
