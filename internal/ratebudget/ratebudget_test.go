package ratebudget

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GlebRadaev/orderbackfill/internal/metrics"
)

type fakeSource struct {
	credits atomic.Int64
	calls   atomic.Int64
}

func (s *fakeSource) CreditsLeft(context.Context) (int, error) {
	s.calls.Add(1)
	return int(s.credits.Load()), nil
}

type fakeClock struct {
	ticks chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{ticks: make(chan time.Time)}
}

func (c *fakeClock) After(time.Duration) <-chan time.Time {
	return c.ticks
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.WarnLevel)
	prev := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })
	return logs
}

const waitingGauge = `
# HELP backfill_rate_limit_waiting 1 while the run is waiting for upstream credits.
# TYPE backfill_rate_limit_waiting gauge
backfill_rate_limit_waiting %s
`

func gaugeIs(m *metrics.Metrics, v string) bool {
	expected := strings.Replace(waitingGauge, "%s", v, 1)
	return testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "backfill_rate_limit_waiting") == nil
}

func TestBudget_AcquireAboveMargin(t *testing.T) {
	source := &fakeSource{}
	source.credits.Store(11)
	budget := New(source, 10, time.Second, WithClock(newFakeClock()))

	require.NoError(t, budget.Acquire(context.Background()))
	assert.Equal(t, int64(1), source.calls.Load())
	assert.Equal(t, int64(0), budget.Waits())
	assert.False(t, budget.Waiting())
}

func TestBudget_AcquireWaitsForRefresh(t *testing.T) {
	logs := observeLogs(t)
	m := metrics.New()
	source := &fakeSource{}
	source.credits.Store(10)
	clock := newFakeClock()
	budget := New(source, 10, time.Second, WithClock(clock), WithMetrics(m))

	done := make(chan error, 1)
	go func() {
		done <- budget.Acquire(context.Background())
	}()

	require.Eventually(t, budget.Waiting, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return gaugeIs(m, "1") }, time.Second, time.Millisecond)
	select {
	case <-done:
		t.Fatal("acquire returned while credits were at the margin")
	default:
	}

	// one tick later the credits are still at the margin
	clock.ticks <- time.Now()
	require.Eventually(t, func() bool { return source.calls.Load() >= 2 }, time.Second, time.Millisecond)
	select {
	case <-done:
		t.Fatal("acquire returned before credits were refreshed")
	default:
	}

	source.credits.Store(35)
	clock.ticks <- time.Now()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("acquire did not return after credits were refreshed")
	}
	assert.False(t, budget.Waiting())
	assert.Equal(t, int64(2), budget.Waits())
	assert.True(t, gaugeIs(m, "0"))
	assert.GreaterOrEqual(t, logs.FilterMessage("Warning! low on credits").Len(), 2)
}

func TestBudget_AcquireCanceledWhileWaiting(t *testing.T) {
	source := &fakeSource{}
	source.credits.Store(0)
	budget := New(source, 10, time.Hour, WithClock(newFakeClock()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- budget.Acquire(ctx)
	}()

	require.Eventually(t, budget.Waiting, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("acquire ignored cancellation")
	}
	assert.False(t, budget.Waiting())
}

func TestBudget_AcquireCanceledBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockCreditSource(ctrl)
	source.EXPECT().CreditsLeft(gomock.Any()).Times(0)
	budget := New(source, 10, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, budget.Acquire(ctx), context.Canceled)
}

func TestBudget_AcquireRechecksAfterSourceError(t *testing.T) {
	logs := observeLogs(t)
	ctrl := gomock.NewController(t)
	source := NewMockCreditSource(ctrl)
	clock := NewMockClock(ctrl)

	fired := make(chan time.Time, 1)
	fired <- time.Now()

	gomock.InOrder(
		source.EXPECT().CreditsLeft(gomock.Any()).Return(0, errors.New("connection refused")),
		clock.EXPECT().After(5*time.Second).Return((<-chan time.Time)(fired)),
		source.EXPECT().CreditsLeft(gomock.Any()).Return(40, nil),
	)

	budget := New(source, 10, 5*time.Second, WithClock(clock))
	require.NoError(t, budget.Acquire(context.Background()))
	assert.Equal(t, int64(1), budget.Waits())
	assert.Equal(t, 1, logs.FilterMessage("Can't read credits left, will recheck").Len())
}

func TestBudget_Remaining(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockCreditSource(ctrl)
	budget := New(source, 10, time.Second)

	source.EXPECT().CreditsLeft(gomock.Any()).Return(17, nil)
	assert.Equal(t, 17, budget.Remaining(context.Background()))

	source.EXPECT().CreditsLeft(gomock.Any()).Return(0, errors.New("boom"))
	assert.Equal(t, -1, budget.Remaining(context.Background()))
}

func TestNew_Defaults(t *testing.T) {
	budget := New(&fakeSource{}, -1, 0)

	assert.Equal(t, DefaultMargin, budget.margin)
	assert.Equal(t, DefaultPollInterval, budget.pollInterval)
	assert.IsType(t, realClock{}, budget.clock)
}
