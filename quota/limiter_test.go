package quota

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyLimitExhausts(t *testing.T) {
	l := NewLimiter(0, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.WaitAndReserve(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := l.WaitAndReserve(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, l.UsedToday())
}

func TestDailyLimitResetsOnNewDay(t *testing.T) {
	now := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	l := NewLimiter(0, 1)
	l.now = func() time.Time { return now }

	ok, _ := l.WaitAndReserve(context.Background())
	assert.True(t, ok)
	ok, _ = l.WaitAndReserve(context.Background())
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	ok, err := l.WaitAndReserve(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPerMinuteWaitHonoursContext(t *testing.T) {
	l := NewLimiter(1, 0)

	ok, err := l.WaitAndReserve(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	ok, err = l.WaitAndReserve(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestUnlimited(t *testing.T) {
	l := NewLimiter(0, 0)
	for i := 0; i < 50; i++ {
		ok, err := l.WaitAndReserve(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
	}
}
