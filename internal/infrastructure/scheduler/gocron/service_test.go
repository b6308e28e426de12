package scheduler_test

import (
	"sync/atomic"
	"testing"
	"time"

	scheduler "github.com/orbital-network/auction/internal/infrastructure/scheduler/gocron"
	"github.com/stretchr/testify/require"
)

func TestScheduler(t *testing.T) {
	svc := scheduler.NewScheduler()

	before := time.Now().Unix()
	now := svc.Now()
	require.GreaterOrEqual(t, now.Time, before)
	require.Equal(t, now.Time, now.Height)

	require.Error(t, svc.ScheduleTask(500*time.Millisecond, true, func() {}))

	var runs atomic.Int32
	require.NoError(t, svc.ScheduleTask(time.Second, true, func() {
		runs.Add(1)
	}))

	svc.Start()
	defer svc.Stop()

	require.Eventually(t, func() bool {
		return runs.Load() >= 1
	}, 3*time.Second, 50*time.Millisecond)
}
