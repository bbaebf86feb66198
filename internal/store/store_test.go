package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	t.Run("zero values fall back to defaults", func(t *testing.T) {
		open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
		assert.Equal(t, 20, open)
		assert.Equal(t, 5, idle)
		assert.Equal(t, 5*time.Minute, lifetime)
		assert.Equal(t, 10*time.Minute, idleTime)
	})

	t.Run("explicit values pass through", func(t *testing.T) {
		open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(50, 10, time.Hour, time.Hour)
		assert.Equal(t, 50, open)
		assert.Equal(t, 10, idle)
		assert.Equal(t, time.Hour, lifetime)
		assert.Equal(t, time.Hour, idleTime)
	})

	t.Run("idle conns clamp to open conns", func(t *testing.T) {
		open, idle, _, _ := NormalizeConnectionPoolSettings(4, 10, 0, 0)
		assert.Equal(t, 4, open)
		assert.Equal(t, 4, idle)
	})
}
