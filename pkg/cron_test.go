package pkg

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSchedulerRunsJob(t *testing.T) {
	scheduler := NewScheduler(nil, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	require.NoError(t, scheduler.AddSchedule(ctx, "* * * * * *", "print", func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("logged and ignored")
	}))

	scheduler.Start()
	defer scheduler.ShutdownFunc()

	assert.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	scheduler := NewScheduler(nil, zap.NewNop())
	err := scheduler.AddSchedule(context.Background(), "every minute", "print", func(context.Context) error { return nil })
	assert.ErrorContains(t, err, "every minute")
}

func TestSchedulerLockTTL(t *testing.T) {
	scheduler := NewScheduler(nil, zap.NewNop())
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	everyTenSeconds, err := scheduleParser.Parse("*/10 * * * * *")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, scheduler.lockTTL(everyTenSeconds, now))

	hourly, err := scheduleParser.Parse("@hourly")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, scheduler.lockTTL(hourly, now))

	scheduler.LockTTL = time.Second
	assert.Equal(t, time.Second, scheduler.lockTTL(hourly, now))
}
