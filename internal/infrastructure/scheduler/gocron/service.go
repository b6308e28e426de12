package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/core/ports"
)

type service struct {
	scheduler *gocron.Scheduler
}

func NewScheduler() ports.SchedulerService {
	svc := gocron.NewScheduler(time.UTC)
	return &service{svc}
}

func (s *service) Start() {
	s.scheduler.StartAsync()
}

func (s *service) Stop() {
	s.scheduler.Stop()
}

// Now uses the unix time as block height, the host clock being the only
// chain this scheduler knows about.
func (s *service) Now() domain.BlockInfo {
	now := time.Now().Unix()
	return domain.BlockInfo{
		Height: now,
		Time:   now,
	}
}

// ScheduleTask runs task every interval, rounded down to the second. A run
// is skipped if the previous one is still going.
func (s *service) ScheduleTask(interval time.Duration, immediate bool, task func()) error {
	seconds := int(interval / time.Second)
	if seconds <= 0 {
		return fmt.Errorf("invalid interval %s, must be at least 1s", interval)
	}

	job := s.scheduler.Every(seconds).Seconds().SingletonMode()
	if !immediate {
		job = job.WaitForSchedule()
	}
	_, err := job.Do(task)
	return err
}
