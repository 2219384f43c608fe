package pkg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const CronPackage = "cron_package"

const minLockTTL = 10 * time.Millisecond

// scheduleParser accepts the same specs as cron.WithSeconds.
var scheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler runs jobs on six-field cron specs. With a redis client each
// tick runs on one replica only: the lock is never released and expires
// before the next tick.
type Scheduler struct {
	C      *cron.Cron
	Locker *redislock.Client
	// LockTTL overrides the lock lifetime, zero means half the interval
	// between ticks.
	LockTTL time.Duration
	logger  *zap.Logger
}

func NewScheduler(rdb *redis.Client, logger *zap.Logger) *Scheduler {
	s := &Scheduler{
		C:      cron.New(cron.WithSeconds()),
		logger: logger,
	}
	if rdb != nil {
		s.Locker = redislock.New(rdb)
	}
	return s
}

func (s *Scheduler) AddSchedule(father context.Context, spec, name string, job func(ctx context.Context) error) error {
	schedule, err := scheduleParser.Parse(spec)
	if err != nil {
		return fmt.Errorf("add schedule %q for %s: %w", spec, name, err)
	}

	s.C.Schedule(schedule, cron.FuncJob(func() {
		if father.Err() != nil {
			return
		}
		if s.Locker != nil {
			_, err := s.Locker.Obtain(father, "lock:"+name, s.lockTTL(schedule, time.Now()), nil)
			if errors.Is(err, redislock.ErrNotObtained) {
				s.logger.Debug("tick is taken by another replica", zap.String("job", name))
				return
			} else if err != nil {
				s.logger.Error("failed to obtain lock", zap.String("job", name), zap.Error(err))
				return
			}
		}

		if err := job(father); err != nil {
			s.logger.Error("scheduled job failed", zap.String("job", name), zap.Error(err))
		}
	}))
	return nil
}

func (s *Scheduler) lockTTL(schedule cron.Schedule, now time.Time) time.Duration {
	if s.LockTTL > 0 {
		return s.LockTTL
	}
	next := schedule.Next(now)
	ttl := schedule.Next(next).Sub(next) / 2
	if ttl < minLockTTL {
		return minLockTTL
	}
	return ttl
}

func (s *Scheduler) Start() {
	s.C.Start()
}

// ShutdownFunc stops the scheduler and waits for running jobs.
func (s *Scheduler) ShutdownFunc() {
	<-s.C.Stop().Done()
	s.logger.Info("scheduler stopped")
}
