package scheduler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	deliverycontext "listingmanager/internal/delivery/context"
	domainerrors "listingmanager/internal/domain/errors"
	"listingmanager/internal/infra/metrics"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T, runOnStart bool, tasks ...*task) (*Scheduler, *metrics.TaskMetrics) {
	t.Helper()

	m := metrics.NewTaskMetrics()
	s := newScheduler(tasks, runOnStart, m, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = s.stop(context.Background()) })

	return s, m
}

func waitForIdle(t *testing.T, tk *task) {
	t.Helper()

	require.Eventually(t, func() bool {
		if !tk.guard.TryAcquire(1) {
			return false
		}
		tk.guard.Release(1)

		return true
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_RunOnStartCarriesCycleContext(t *testing.T) {
	type seen struct {
		cycleID string
		logger  *slog.Logger
	}
	got := make(chan seen, 1)

	tk := &task{
		name:     "fulfillment",
		enabled:  true,
		interval: time.Hour,
		run: func(ctx context.Context) error {
			got <- seen{cycleID: deliverycontext.GetCycleID(ctx), logger: deliverycontext.GetLogger(ctx)}

			return nil
		},
	}
	s, m := newTestScheduler(t, true, tk)

	go func() { _ = s.Serve(context.Background()) }()

	select {
	case v := <-got:
		assert.NotEmpty(t, v.cycleID)
		assert.NotNil(t, v.logger)
	case <-time.After(time.Second):
		t.Fatal("task did not run on start")
	}

	waitForIdle(t, tk)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CyclesTotal.WithLabelValues("fulfillment", metrics.OutcomeSuccess)), 0)
}

func TestScheduler_TicksRepeatedly(t *testing.T) {
	var runs atomic.Int32
	tk := &task{
		name:     "rented-sweep",
		enabled:  true,
		interval: 10 * time.Millisecond,
		run: func(context.Context) error {
			runs.Add(1)

			return nil
		},
	}
	s, _ := newTestScheduler(t, false, tk)

	go func() { _ = s.Serve(context.Background()) }()

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestScheduler_DisabledTaskNeverRuns(t *testing.T) {
	var runs atomic.Int32
	tk := &task{
		name:     "listed-sweep",
		enabled:  false,
		interval: 5 * time.Millisecond,
		run: func(context.Context) error {
			runs.Add(1)

			return nil
		},
	}
	s, _ := newTestScheduler(t, true, tk)

	go func() { _ = s.Serve(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
}

func TestScheduler_OverlapGuard(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	tk := &task{
		name:     "fulfillment",
		enabled:  true,
		interval: time.Hour,
		run: func(context.Context) error {
			started <- struct{}{}
			<-release

			return nil
		},
	}
	s, m := newTestScheduler(t, false, tk)
	ctx := context.Background()

	_, err := s.Trigger(ctx, "fulfillment")
	require.NoError(t, err)
	<-started

	_, err = s.Trigger(ctx, "fulfillment")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTaskRunning))
	assert.InDelta(t, 1, testutil.ToFloat64(m.SkippedTotal.WithLabelValues("fulfillment")), 0)

	close(release)
	waitForIdle(t, tk)

	_, err = s.Trigger(ctx, "fulfillment")
	require.NoError(t, err)
	<-started
}

func TestScheduler_TriggerUnknownTask(t *testing.T) {
	s, _ := newTestScheduler(t, false)

	_, err := s.Trigger(context.Background(), "defrag")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTask))
}

func TestScheduler_TriggerReusesRequestID(t *testing.T) {
	got := make(chan string, 1)
	tk := &task{
		name:     "listed-sweep",
		enabled:  true,
		interval: time.Hour,
		run: func(ctx context.Context) error {
			got <- deliverycontext.GetCycleID(ctx)

			return nil
		},
	}
	s, _ := newTestScheduler(t, false, tk)

	ctx := deliverycontext.WithRequestID(context.Background(), "req-42")
	cycleID, err := s.Trigger(ctx, "listed-sweep")
	require.NoError(t, err)
	assert.Equal(t, "req-42", cycleID)
	assert.Equal(t, "req-42", <-got)
}

func TestScheduler_CycleOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		run     func(context.Context) error
		outcome string
	}{
		{
			name:    "success",
			run:     func(context.Context) error { return nil },
			outcome: metrics.OutcomeSuccess,
		},
		{
			name: "transient",
			run: func(context.Context) error {
				return domainerrors.NewStatusError(http.MethodGet, "http://fleet/api/rentedDevices/list", http.StatusBadGateway, "")
			},
			outcome: metrics.OutcomeTransient,
		},
		{
			name:    "failure",
			run:     func(context.Context) error { return domainerrors.ErrMalformedSlug.WithDetails("rental-") },
			outcome: metrics.OutcomeFailure,
		},
		{
			name:    "panic",
			run:     func(context.Context) error { panic("boom") },
			outcome: metrics.OutcomeFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := &task{name: "rented-sweep", enabled: true, interval: time.Hour, run: tt.run}
			s, m := newTestScheduler(t, false, tk)

			_, err := s.Trigger(context.Background(), "rented-sweep")
			require.NoError(t, err)

			assert.Eventually(t, func() bool {
				return testutil.ToFloat64(m.CyclesTotal.WithLabelValues("rented-sweep", tt.outcome)) == 1
			}, time.Second, 5*time.Millisecond)
		})
	}
}

func TestScheduler_StopLetsInFlightCycleFinish(t *testing.T) {
	reached := make(chan struct{}, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached <- struct{}{}
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	var steps atomic.Int32
	tk := &task{
		name:     "fulfillment",
		enabled:  true,
		interval: time.Hour,
		run: func(ctx context.Context) error {
			for _, path := range []string{"/orderfulfillment", "/marknotificationasread/n1"} {
				req, err := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL+path, nil)
				if err != nil {
					return err
				}
				resp, err := srv.Client().Do(req)
				if err != nil {
					return err
				}
				_ = resp.Body.Close()
				steps.Add(1)
			}

			return nil
		},
	}
	s, m := newTestScheduler(t, false, tk)

	_, err := s.Trigger(context.Background(), "fulfillment")
	require.NoError(t, err)
	<-reached

	require.NoError(t, s.stop(context.Background()))
	assert.Equal(t, int32(2), steps.Load())
	assert.InDelta(t, 1, testutil.ToFloat64(m.CyclesTotal.WithLabelValues("fulfillment", metrics.OutcomeSuccess)), 0)

	_, err = s.Trigger(context.Background(), "fulfillment")
	assert.True(t, errors.Is(err, ErrStopped))
}

func TestScheduler_StopCancelsCyclePastDeadline(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})
	tk := &task{
		name:     "rented-sweep",
		enabled:  true,
		interval: time.Hour,
		run: func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			close(cancelled)

			return ctx.Err()
		},
	}
	s, _ := newTestScheduler(t, false, tk)

	_, err := s.Trigger(context.Background(), "rented-sweep")
	require.NoError(t, err)
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = s.stop(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("cycle was not cancelled after the shutdown deadline")
	}
}

func TestScheduler_Tasks(t *testing.T) {
	s, _ := newTestScheduler(t, false,
		&task{name: "fulfillment"},
		&task{name: "rented-sweep"},
	)

	assert.Equal(t, []string{"fulfillment", "rented-sweep"}, s.Tasks())
}
