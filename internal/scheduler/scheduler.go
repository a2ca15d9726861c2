package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// MinInterval is the shortest interval a task can be registered with.
const MinInterval = time.Millisecond

// TaskFunc is a unit of scheduled work.
type TaskFunc func(ctx context.Context) error

// Scheduler runs named interval tasks on a shared cron instance. A tick that
// arrives while the previous run of the same task is still busy is skipped.
type Scheduler struct {
	cron    *cron.Cron
	log     *zap.Logger
	tasks   map[string]cron.EntryID
	mu      sync.Mutex
	running bool
	stopped bool

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a stopped scheduler.
func New(log *zap.Logger) *Scheduler {
	log = log.Named("scheduler")
	cl := cronLogger{log: log.Sugar()}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log:    log,
		tasks:  make(map[string]cron.EntryID),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddIntervalTask registers task to run every interval. Registering a name
// twice replaces the earlier task.
func (s *Scheduler) AddIntervalTask(name string, interval time.Duration, task TaskFunc) error {
	if task == nil {
		return fmt.Errorf("task %q: nil func", name)
	}
	if interval < MinInterval {
		interval = MinInterval
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.tasks[name]; ok {
		s.cron.Remove(id)
		delete(s.tasks, name)
	}
	id := s.cron.Schedule(intervalSchedule{delay: interval}, cron.FuncJob(func() {
		s.runTask(name, task)
	}))
	s.tasks[name] = id
	s.log.Debug("added interval task", zap.String("name", name), zap.Duration("interval", interval))
	return nil
}

// Tasks returns the names of the registered tasks.
func (s *Scheduler) Tasks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.tasks))
	for name := range s.tasks {
		names = append(names, name)
	}
	return names
}

// ErrStopped is returned when starting a scheduler that has been stopped.
var ErrStopped = errors.New("scheduler stopped")

// Start begins firing tasks. Calling Start on a running scheduler is a no-op;
// a stopped scheduler cannot be restarted.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}
	if s.running {
		return nil
	}
	s.cron.Start()
	s.running = true
	s.log.Info("scheduler started", zap.Int("tasks", len(s.tasks)))
	return nil
}

// Stop halts every task together and waits for in-flight runs to finish or
// for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false
	s.stopped = true
	s.cancel()

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		s.log.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out")
		return fmt.Errorf("stop scheduler: %w", ctx.Err())
	}
}

func (s *Scheduler) runTask(name string, task TaskFunc) {
	if s.ctx.Err() != nil {
		return
	}
	started := time.Now()
	if err := task(s.ctx); err != nil {
		s.log.Error("scheduled task failed", zap.String("name", name), zap.Error(err))
		return
	}
	s.log.Debug("scheduled task completed", zap.String("name", name), zap.Duration("took", time.Since(started)))
}

// intervalSchedule fires every delay after the previous activation. Unlike
// cron.Every it keeps sub-second precision.
type intervalSchedule struct {
	delay time.Duration
}

func (s intervalSchedule) Next(t time.Time) time.Time {
	return t.Add(s.delay)
}

// cronLogger routes cron's own logging through zap.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
