package ratebudget

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/orderbackfill/internal/metrics"
)

//go:generate mockgen -source=ratebudget.go -destination=mock_ratebudget.go -package=ratebudget

const (
	DefaultMargin       = 10
	DefaultPollInterval = 5 * time.Second
)

// CreditSource reports the upstream's remaining request credits.
type CreditSource interface {
	CreditsLeft(ctx context.Context) (int, error)
}

// Clock abstracts the timer used between credit checks.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Budget gates upstream requests on the remaining credit count. It is owned
// by one run and is not meant for concurrent, uncoordinated consumers.
type Budget struct {
	source       CreditSource
	margin       int
	pollInterval time.Duration
	clock        Clock
	metrics      *metrics.Metrics

	waiting atomic.Bool
	waits   atomic.Int64
}

type Option func(*Budget)

func WithClock(c Clock) Option {
	return func(b *Budget) { b.clock = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Budget) { b.metrics = m }
}

func New(source CreditSource, margin int, pollInterval time.Duration, opts ...Option) *Budget {
	if margin < 0 {
		margin = DefaultMargin
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	b := &Budget{
		source:       source,
		margin:       margin,
		pollInterval: pollInterval,
		clock:        realClock{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Acquire blocks until more than margin credits are left. It only fails when
// ctx is done.
func (b *Budget) Acquire(ctx context.Context) error {
	defer b.setWaiting(false)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		credits, err := b.source.CreditsLeft(ctx)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			zap.L().Warn("Can't read credits left, will recheck", zap.Error(err), zap.Duration("interval", b.pollInterval))
		case credits > b.margin:
			return nil
		default:
			zap.L().Warn("Warning! low on credits",
				zap.Int("credits_left", credits),
				zap.Int("margin", b.margin),
				zap.Duration("interval", b.pollInterval),
			)
		}

		b.setWaiting(true)
		b.waits.Add(1)
		b.metrics.ObserveRateWait()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-b.clock.After(b.pollInterval):
		}
	}
}

// Remaining returns the current credit count, or -1 when it can't be read.
func (b *Budget) Remaining(ctx context.Context) int {
	credits, err := b.source.CreditsLeft(ctx)
	if err != nil {
		return -1
	}
	return credits
}

// Waiting reports whether a caller is currently stalled in Acquire.
func (b *Budget) Waiting() bool {
	return b.waiting.Load()
}

// Waits is the number of sleeps taken since the budget was created.
func (b *Budget) Waits() int64 {
	return b.waits.Load()
}

func (b *Budget) setWaiting(v bool) {
	if b.waiting.Swap(v) != v {
		b.metrics.SetRateWaiting(v)
	}
}
