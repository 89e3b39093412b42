package scheduler

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSyncSchedule is used when no schedule is configured
const DefaultSyncSchedule = "@every 10m"

const syncTimeout = time.Minute

// Syncer adds configuration for schema tables that have none yet
type Syncer interface {
	Sync(ctx context.Context) ([]string, error)
}

// Scheduler runs the periodic schema sync
type Scheduler struct {
	cron    *cron.Cron
	syncer  Syncer
	log     *zap.Logger
	entry   cron.EntryID
	enabled bool
}

// cronLogger adapts zap to the cron logger
type cronLogger struct {
	log *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Errorw(msg, append(keysAndValues, "error", err)...)
}

// NewScheduler registers the sync job, an empty schedule disables it
func NewScheduler(log *zap.Logger, schedule string, syncer Syncer) (*Scheduler, error) {
	logger := cronLogger{log: log.Sugar()}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		syncer: syncer,
		log:    log,
	}
	if schedule == "" {
		log.Info("schema sync schedule is empty, periodic sync disabled")
		return s, nil
	}
	id, err := s.cron.AddFunc(schedule, s.sync)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid sync schedule %q", schedule)
	}
	s.entry = id
	s.enabled = true
	log.Info("scheduled schema sync", zap.String("schedule", schedule))
	return s, nil
}

// Enabled reports whether a sync job is registered
func (s *Scheduler) Enabled() bool {
	return s.enabled
}

// Next returns when the sync runs next, zero when the scheduler is not running
func (s *Scheduler) Next() time.Time {
	if !s.enabled {
		return time.Time{}
	}
	return s.cron.Entry(s.entry).Next
}

func (s *Scheduler) sync() {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()
	added, err := s.syncer.Sync(ctx)
	if err != nil {
		s.log.Warn("scheduled schema sync failed", zap.Error(err))
		return
	}
	if len(added) > 0 {
		s.log.Info("scheduled schema sync added tables", zap.Strings("tables", added))
	}
}

// Start starts the scheduler in its own goroutine
func (s *Scheduler) Start() {
	if !s.enabled {
		return
	}
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the scheduler and waits for a running sync to finish
func (s *Scheduler) Stop() {
	if !s.enabled {
		return
	}
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}
