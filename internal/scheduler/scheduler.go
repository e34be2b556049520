package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
)

// ErrCycleRunning is returned by RunNow while a cycle is in flight.
var ErrCycleRunning = errors.New("a sync cycle is already running")

// Task is one unit of periodic work.
type Task func(ctx context.Context) error

// Status describes the last completed cycle.
type Status struct {
	Runs       int       `json:"runs"`
	Running    bool      `json:"running"`
	StartedAt  time.Time `json:"started_at,omitempty"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Scheduler reruns a Task on a fixed interval. At most one run is in flight;
// a run that would overlap the previous one is skipped and rescheduled.
type Scheduler struct {
	sched   gocron.Scheduler
	job     gocron.Job
	task    Task
	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool

	mu     sync.RWMutex
	status Status
}

// New creates a scheduler running task every interval, starting as soon as
// Start is called.
func New(interval time.Duration, task Task) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid interval %s", interval)
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{sched: sched, task: task, ctx: ctx, cancel: cancel}

	s.job, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.safeRun),
		gocron.WithName("roster-sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithIntervalFromCompletion(),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		cancel()
		_ = sched.Shutdown()
		return nil, fmt.Errorf("failed to schedule job: %w", err)
	}
	return s, nil
}

// Start begins executing the job.
func (s *Scheduler) Start() {
	log.Info("Starting scheduler", "job", s.job.Name())
	s.sched.Start()
}

// RunNow triggers a cycle outside the interval unless one is already running.
func (s *Scheduler) RunNow() error {
	if s.running.Load() {
		return ErrCycleRunning
	}
	return s.job.RunNow()
}

// Status returns the state of the last cycle.
func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.status
	st.Running = s.running.Load()
	return st
}

// NextRun returns when the next cycle is due.
func (s *Scheduler) NextRun() (time.Time, error) {
	return s.job.NextRun()
}

// Stop cancels the in-flight cycle and waits for the scheduler to shut down.
func (s *Scheduler) Stop() error {
	s.cancel()
	return s.sched.Shutdown()
}

// safeRun executes the task, logging its error or panic so the job always
// stays scheduled.
func (s *Scheduler) safeRun() {
	if !s.running.CompareAndSwap(false, true) {
		log.Warn("Skipping sync cycle, previous one still running")
		return
	}
	defer s.running.Store(false)

	started := time.Now()
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			log.Error("Sync cycle failed", "error", err, "duration", time.Since(started))
		}
		s.finish(started, err)
	}()

	err = s.task(s.ctx)
}

func (s *Scheduler) finish(started time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Runs++
	s.status.StartedAt = started
	s.status.FinishedAt = time.Now()
	s.status.Error = ""
	if err != nil {
		s.status.Error = err.Error()
	}
}
