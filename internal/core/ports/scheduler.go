package ports

import (
	"time"

	"github.com/orbital-network/auction/internal/core/domain"
)

type SchedulerService interface {
	Start()
	Stop()

	// Now returns the current point of the host clock.
	Now() domain.BlockInfo
	ScheduleTask(interval time.Duration, immediate bool, task func()) error
}
