package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

type service struct {
	// services
	repoManager ports.RepoManager
	liveStore   ports.LiveStore
	notifier    ports.Notifier
	scheduler   ports.SchedulerService

	// config
	cfg     Config
	auction domain.AuctionConfig

	// mutations are serialized, queries share the read lock
	lock *sync.RWMutex
	// guards the read-check-write of the batch archive
	archiveLock *sync.Mutex
}

// NewService loads the stored auction config, or stores auctionConfig if
// this is the first start. A stored config is never overwritten.
func NewService(
	cfg Config, auctionConfig domain.AuctionConfig,
	repoManager ports.RepoManager, liveStore ports.LiveStore,
	notifier ports.Notifier, scheduler ports.SchedulerService,
) (Service, error) {
	ctx := context.Background()

	stored, err := repoManager.AuctionConfig().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auction config from db: %w", err)
	}

	if stored == nil {
		if err := auctionConfig.Validate(); err != nil {
			return nil, err
		}
		if err := repoManager.AuctionConfig().Upsert(ctx, auctionConfig); err != nil {
			return nil, fmt.Errorf("failed to store auction config: %w", err)
		}
		stored = &auctionConfig
		log.Infof("stored auction config for route %s", stored.Route)
	} else if stored.Differs(auctionConfig) {
		log.Warnf(
			"configured auction parameters differ from the stored ones, keeping route %s with batch size %d",
			stored.Route, stored.BatchSize,
		)
	}

	svc := &service{
		repoManager: repoManager,
		liveStore:   liveStore,
		notifier:    notifier,
		scheduler:   scheduler,
		cfg:         cfg,
		auction:     *stored,
		lock:        &sync.RWMutex{},
		archiveLock: &sync.Mutex{},
	}

	repoManager.Events().RegisterEventsHandler(
		domain.BatchTopic, func(events []domain.Event) {
			defer func() {
				if r := recover(); r != nil {
					log.Errorf("recovered from panic in batch archive: %v", r)
				}
			}()

			svc.updateArchive(events)
		},
	)

	return svc, nil
}

func (s *service) Start() error {
	if s.cfg.KeeperInterval > 0 {
		if err := s.scheduler.ScheduleTask(s.cfg.KeeperInterval, false, s.keep); err != nil {
			return fmt.Errorf("failed to schedule keeper: %w", err)
		}
		log.Debugf("keeper scheduled every %s", s.cfg.KeeperInterval)
	}

	log.Debug("starting scheduler...")
	s.scheduler.Start()
	return nil
}

func (s *service) Stop() {
	s.scheduler.Stop()
	log.Debug("stopped scheduler")
	s.notifier.Close()
	log.Debug("closed notifier")
	s.repoManager.Close()
	log.Debug("closed connection to db")
}

// keep is the periodic job that moves the auction forward.
func (s *service) keep() {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("recovered from panic in keeper: %v", r)
		}
	}()

	result, err := s.Tick(context.Background(), nil)
	if err != nil {
		if isNotExpired(err) {
			log.WithError(err).Debug("keeper: nothing to do")
			return
		}
		log.WithError(err).Warn("keeper: failed to tick")
		return
	}
	if result.Closed == nil && result.Opened == nil {
		log.Debug("keeper: orderbook is empty")
	}
}

func (s *service) now() (time.Time, domain.BlockInfo) {
	block := s.scheduler.Now()
	return time.Unix(block.Time, 0), block
}

func (s *service) isController(caller string) error {
	if len(s.cfg.Controller) <= 0 || caller != s.cfg.Controller {
		return fmt.Errorf("%w: %s is not the controller", domain.ErrUnauthorized, caller)
	}
	return nil
}

// saveEvents publishes to the event bus. Subscribers are projections, so a
// failure is logged without undoing the committed change.
func (s *service) saveEvents(ctx context.Context, topic, id string, events []domain.Event) {
	if len(events) <= 0 {
		return
	}
	if err := s.repoManager.Events().Save(ctx, topic, id, events); err != nil {
		log.WithError(err).Warnf("failed to save %s events for %s", topic, id)
	}
}

// updateArchive keeps the batch archive in sync with the in-process batch
// history. Partial histories, seen after a restart, are ignored.
func (s *service) updateArchive(events []domain.Event) {
	if len(events) <= 0 {
		return
	}
	if _, ok := events[0].(domain.BatchStarted); !ok {
		return
	}

	batch := domain.NewBatchFromEvents(events)
	if err := s.archiveBatch(context.Background(), batch); err != nil {
		log.WithError(err).Warnf("failed to archive batch %s", batch.Id)
	}
}

func (s *service) archiveBatch(ctx context.Context, batch *domain.Batch) error {
	s.archiveLock.Lock()
	defer s.archiveLock.Unlock()

	existing, err := s.repoManager.Batches().GetBatchWithId(ctx, batch.Id)
	if err == nil && existing != nil {
		// a closed batch is final, an older history must not win over a newer one
		if existing.Closed {
			return nil
		}
		if !batch.Closed && existing.Version >= batch.Version {
			return nil
		}
		if batch.Closed && batch.Version <= existing.Version {
			batch.Version = existing.Version + 1
		}
	}

	return s.repoManager.Batches().AddOrUpdateBatch(ctx, *batch)
}
