package application_test

import (
	"context"
	"sync"
	"time"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type mockedNotifier struct {
	mock.Mock
}

func (m *mockedNotifier) Notify(ctx context.Context, message domain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *mockedNotifier) Close() {}

func (m *mockedNotifier) messages() []domain.Message {
	msgs := make([]domain.Message, 0)
	for _, call := range m.Calls {
		if call.Method != "Notify" {
			continue
		}
		msgs = append(msgs, call.Arguments.Get(1).(domain.Message))
	}
	return msgs
}

// fakeScheduler is a manually driven clock. Scheduled tasks never run.
type fakeScheduler struct {
	lock *sync.Mutex
	now  time.Time
}

func newFakeScheduler(now time.Time) *fakeScheduler {
	return &fakeScheduler{&sync.Mutex{}, now}
}

func (s *fakeScheduler) Start() {}
func (s *fakeScheduler) Stop()  {}

func (s *fakeScheduler) Now() domain.BlockInfo {
	s.lock.Lock()
	defer s.lock.Unlock()
	return domain.BlockInfo{Height: s.now.Unix(), Time: s.now.Unix()}
}

func (s *fakeScheduler) ScheduleTask(time.Duration, bool, func()) error {
	return nil
}

func (s *fakeScheduler) set(now time.Time) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.now = now
}
