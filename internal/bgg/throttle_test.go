package bgg

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottle_SpacesCalls(t *testing.T) {
	th := newThrottle(100 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, th.Wait(ctx))
	}
	assert.GreaterOrEqual(t, time.Since(start), 190*time.Millisecond)
}

func TestThrottle_FirstCallImmediate(t *testing.T) {
	th := newThrottle(time.Hour)

	start := time.Now()
	require.NoError(t, th.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestThrottle_Disabled(t *testing.T) {
	th := newThrottle(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 50; i++ {
		require.NoError(t, th.Wait(ctx))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
