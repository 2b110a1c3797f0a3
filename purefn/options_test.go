package purefn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigExpiration(t *testing.T) {
	now := time.Now()

	cfg := newConfig(nil)
	_, forever := cfg.expiration(now)
	assert.True(t, forever)

	cfg = newConfig([]Option{WithTTL(time.Second)})
	expires, forever := cfg.expiration(now)
	assert.False(t, forever)
	assert.Equal(t, now.Add(time.Second), expires)

	// a nil ttl func keeps the previous setting
	cfg = newConfig([]Option{WithTTL(time.Second), WithTTLFunc(nil)})
	expires, forever = cfg.expiration(now)
	assert.False(t, forever)
	assert.Equal(t, now.Add(time.Second), expires)

	// a zero clock reading still expires
	expires, forever = newConfig([]Option{WithTTL(0)}).expiration(time.Time{})
	assert.False(t, forever)
	assert.True(t, expires.IsZero())
}
