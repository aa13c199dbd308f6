// Package scheduler runs the fulfillment and liveness tasks on fixed intervals.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"listingmanager/config"
	"listingmanager/internal/delivery"
	deliverycontext "listingmanager/internal/delivery/context"
	"listingmanager/internal/domain/constants"
	domainerrors "listingmanager/internal/domain/errors"
	"listingmanager/internal/domain/lifecycle"
	"listingmanager/internal/infra/metrics"
	"listingmanager/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrUnknownTask is returned by Trigger for a task name that is not registered
	ErrUnknownTask = errors.New("unknown task")
	// ErrTaskRunning is returned by Trigger when a cycle of the task is in flight
	ErrTaskRunning = errors.New("task cycle already running")
	// ErrStopped is returned by Trigger after shutdown began
	ErrStopped = errors.New("scheduler stopped")
)

type task struct {
	name     string
	enabled  bool
	interval time.Duration
	run      func(ctx context.Context) error

	// One cycle per task at a time.
	guard *semaphore.Weighted
}

// Scheduler owns one ticker loop per enabled task.
type Scheduler struct {
	tasks      []*task
	byName     map[string]*task
	runOnStart bool
	metrics    *metrics.TaskMetrics
	logger     *slog.Logger

	// loopCtx ends the ticker loops as soon as stop begins. cycleCtx is only
	// cancelled once in-flight cycles overrun the shutdown deadline.
	loopCtx      context.Context
	cancelLoops  context.CancelFunc
	cycleCtx     context.Context
	cancelCycles context.CancelFunc

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// SchedulerParams holds dependencies for the scheduler, injected by Fx
type SchedulerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	Metrics     *metrics.TaskMetrics
	Fulfillment usecase.FulfillmentUsecase
	Liveness    usecase.LivenessUsecase
}

// NewScheduler wires the three periodic tasks to their use cases
func NewScheduler(params SchedulerParams) *Scheduler {
	sched := params.Cfg.Schedule
	m := params.Metrics

	tasks := []*task{
		{
			name:     constants.TaskFulfillment,
			enabled:  sched.Fulfillment.Enabled,
			interval: sched.Fulfillment.Interval,
			run: func(ctx context.Context) error {
				result, err := params.Fulfillment.FulfillNextOrder(ctx)
				if err != nil {
					return err
				}
				if result.Fulfilled {
					m.OrdersFulfilled.Inc()
				}

				return nil
			},
		},
		{
			name:     constants.TaskRentedSweep,
			enabled:  sched.RentedSweep.Enabled,
			interval: sched.RentedSweep.Interval,
			run:      sweepRunner(constants.TaskRentedSweep, params.Liveness.SweepRentedDevices, m),
		},
		{
			name:     constants.TaskListedSweep,
			enabled:  sched.ListedSweep.Enabled,
			interval: sched.ListedSweep.Interval,
			run:      sweepRunner(constants.TaskListedSweep, params.Liveness.SweepListedDevices, m),
		},
	}

	s := newScheduler(tasks, sched.RunOnStart, m, params.Logger)
	params.Lc.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s
}

// NewDelivery exposes the scheduler as a delivery
func NewDelivery(s *Scheduler) delivery.Delivery {
	return s
}

func sweepRunner(name string, sweep func(context.Context) (*usecase.SweepResult, error), m *metrics.TaskMetrics) func(context.Context) error {
	return func(ctx context.Context) error {
		result, err := sweep(ctx)
		if result != nil {
			for _, action := range result.Actions {
				m.ObserveAction(name, action.Reason)
			}
		}

		return err
	}
}

func newScheduler(tasks []*task, runOnStart bool, m *metrics.TaskMetrics, logger *slog.Logger) *Scheduler {
	loopCtx, cancelLoops := context.WithCancel(context.Background())
	cycleCtx, cancelCycles := context.WithCancel(context.Background())

	s := &Scheduler{
		tasks:        tasks,
		byName:       make(map[string]*task, len(tasks)),
		runOnStart:   runOnStart,
		metrics:      m,
		logger:       logger,
		loopCtx:      loopCtx,
		cancelLoops:  cancelLoops,
		cycleCtx:     cycleCtx,
		cancelCycles: cancelCycles,
	}
	for _, t := range tasks {
		t.guard = semaphore.NewWeighted(1)
		s.byName[t.name] = t
	}

	return s
}

// Serve starts a loop per enabled task and blocks until the scheduler is stopped
func (s *Scheduler) Serve(ctx context.Context) error {
	for _, t := range s.tasks {
		if !t.enabled {
			s.logger.Info("Task disabled", slog.String("task", t.name))

			continue
		}

		s.logger.Info("Scheduling task",
			slog.String("task", t.name),
			slog.Duration("interval", t.interval),
			slog.Bool("run_on_start", s.runOnStart),
		)
		s.spawn(func() { s.loop(t) })
	}

	select {
	case <-ctx.Done():
	case <-s.loopCtx.Done():
	}

	return nil
}

// Trigger starts a cycle of the named task outside its schedule and returns
// the cycle ID. A request ID on ctx is reused as the cycle ID.
func (s *Scheduler) Trigger(ctx context.Context, name string) (string, error) {
	t, ok := s.byName[name]
	if !ok {
		return "", errors.WithStack(ErrUnknownTask)
	}

	cycleID := deliverycontext.GetRequestIDFromContext(ctx)
	if cycleID == "" {
		cycleID = uuid.NewString()
	}

	if err := s.start(t, cycleID); err != nil {
		return "", err
	}

	return cycleID, nil
}

// Tasks lists the registered task names in schedule order
func (s *Scheduler) Tasks() []string {
	names := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		names = append(names, t.name)
	}

	return names
}

func (s *Scheduler) loop(t *task) {
	if s.runOnStart {
		_ = s.start(t, uuid.NewString())
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.loopCtx.Done():
			return
		case <-ticker.C:
			_ = s.start(t, uuid.NewString())
		}
	}
}

// start runs one cycle in the background unless one is already in flight.
func (s *Scheduler) start(t *task, cycleID string) error {
	if !t.guard.TryAcquire(1) {
		s.logger.Warn("Previous cycle still running, skipping",
			slog.String("task", t.name),
			slog.String("cycle_id", cycleID),
		)
		s.metrics.ObserveSkip(t.name)

		return errors.WithStack(ErrTaskRunning)
	}

	if !s.spawn(func() {
		defer t.guard.Release(1)
		s.runCycle(t, cycleID)
	}) {
		t.guard.Release(1)

		return errors.WithStack(ErrStopped)
	}

	return nil
}

// spawn runs fn on a tracked goroutine. It reports false once stop has begun.
func (s *Scheduler) spawn(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return false
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()

	return true
}

func (s *Scheduler) runCycle(t *task, cycleID string) {
	logger := s.logger.With(
		slog.String("task", t.name),
		slog.String("cycle_id", cycleID),
	)
	ctx := deliverycontext.WithCycleID(s.cycleCtx, cycleID)
	ctx = deliverycontext.WithLogger(ctx, logger)

	start := time.Now()
	err := s.invoke(ctx, t)
	elapsed := time.Since(start)

	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
		logger.Debug("Cycle finished", slog.Duration("elapsed", elapsed))
	case domainerrors.IsTransient(err):
		outcome = metrics.OutcomeTransient
		logger.Warn("Cycle abandoned, remote server unavailable",
			slog.Any("error", err),
			slog.Duration("elapsed", elapsed),
		)
	default:
		outcome = metrics.OutcomeFailure
		logger.Error("Cycle failed",
			slog.Any("error", err),
			slog.String("detail", fmt.Sprintf("%+v", err)),
			slog.Duration("elapsed", elapsed),
		)
	}

	s.metrics.ObserveCycle(t.name, outcome, elapsed)
}

// invoke runs the task, turning a panic into an error so one bad cycle does
// not take the process down.
func (s *Scheduler) invoke(ctx context.Context, t *task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic in %s cycle: %v", t.name, r)
		}
	}()

	return t.run(ctx)
}

// stop ends the loops and lets in-flight cycles finish. Cycles still running
// when the deadline passes are cancelled.
func (s *Scheduler) stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	s.logger.Info("Stopping scheduler")
	s.cancelLoops()
	defer s.cancelCycles()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	waitCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	select {
	case <-done:
		return nil
	case <-waitCtx.Done():
		s.logger.Warn("In-flight cycles overran shutdown deadline, cancelling")

		return errors.Wrap(waitCtx.Err(), "waiting for in-flight cycles")
	}
}
