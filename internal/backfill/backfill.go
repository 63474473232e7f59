package backfill

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/orderbackfill/internal/domain"
	"github.com/GlebRadaev/orderbackfill/internal/extractor"
	"github.com/GlebRadaev/orderbackfill/internal/metrics"
)

//go:generate mockgen -source=backfill.go -destination=mock_backfill.go -package=backfill

var ErrWindowsFailed = errors.New("windows failed")

type Extractor interface {
	Extract(ctx context.Context, window domain.DateWindow) (*extractor.Result, error)
}

type Transformer interface {
	Transform(rows []domain.FlatRow) ([]domain.FlatRow, bool)
}

type Loader interface {
	Load(ctx context.Context, window domain.DateWindow, rows []domain.FlatRow) (int64, error)
}

// RateState reports whether the run is sleeping for upstream credits and
// how often it has slept.
type RateState interface {
	Waiting() bool
	Waits() int64
}

// Summary is the outcome of a finished run.
type Summary struct {
	RunID         string
	Windows       int
	Loaded        int
	Empty         int
	Failed        int
	Rows          int64
	FailedWindows []domain.DateWindow
	Canceled      bool
	Duration      time.Duration
}

// Progress is a point-in-time view of a run.
type Progress struct {
	RunID         string
	StartedAt     time.Time
	CurrentWindow string
	WindowsTotal  int
	WindowsDone   int
	WindowsEmpty  int
	WindowsFailed int
	RowsLoaded    int64
	RateWaiting   bool
	RateWaits     int64
	Finished      bool
}

type Option func(*Driver)

// WithStopOnError aborts the run on the first failed window.
func WithStopOnError(stop bool) Option {
	return func(d *Driver) {
		d.stopOnError = stop
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Driver) {
		d.metrics = m
	}
}

func WithRateState(r RateState) Option {
	return func(d *Driver) {
		d.rate = r
	}
}

type Driver struct {
	windows     []domain.DateWindow
	extractor   Extractor
	transformer Transformer
	loader      Loader
	rate        RateState
	metrics     *metrics.Metrics
	stopOnError bool

	mu       sync.Mutex
	progress Progress
}

func New(windows []domain.DateWindow, ex Extractor, tr Transformer, ld Loader, opts ...Option) *Driver {
	d := &Driver{
		windows:     windows,
		extractor:   ex,
		transformer: tr,
		loader:      ld,
		progress: Progress{
			RunID:        uuid.NewString(),
			WindowsTotal: len(windows),
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run processes the windows in order. Failed windows are collected and the
// run goes on unless stop-on-error is set. Cancellation is observed between
// windows and inside budget waits.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	started := time.Now()
	d.update(func(p *Progress) {
		p.StartedAt = started
	})

	summary := Summary{RunID: d.progress.RunID, Windows: len(d.windows)}
	var errs []error

	zap.L().Info("backfill started",
		zap.String("run_id", summary.RunID),
		zap.Int("windows", len(d.windows)),
		zap.Bool("stop_on_error", d.stopOnError),
	)

	for _, window := range d.windows {
		if ctx.Err() != nil {
			summary.Canceled = true
			break
		}
		d.update(func(p *Progress) {
			p.CurrentWindow = window.String()
		})

		outcome, rows, err := d.runWindow(ctx, window)
		if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			summary.Canceled = true
			break
		}

		d.metrics.ObserveWindow(outcome)
		switch outcome {
		case metrics.OutcomeLoaded:
			summary.Loaded++
			summary.Rows += rows
			d.metrics.ObserveRows(rows)
		case metrics.OutcomeEmpty:
			summary.Empty++
		case metrics.OutcomeFailed:
			summary.Failed++
			summary.FailedWindows = append(summary.FailedWindows, window)
			errs = append(errs, fmt.Errorf("window %s: %w", window, err))
			zap.L().Error("window failed", zap.Stringer("window", window), zap.Error(err))
		}
		d.update(func(p *Progress) {
			p.WindowsDone++
			p.RowsLoaded = summary.Rows
			p.WindowsEmpty = summary.Empty
			p.WindowsFailed = summary.Failed
		})

		if outcome == metrics.OutcomeFailed && d.stopOnError {
			break
		}
	}

	summary.Duration = time.Since(started)
	d.update(func(p *Progress) {
		p.CurrentWindow = ""
		p.Finished = true
	})

	zap.L().Info("backfill finished",
		zap.String("run_id", summary.RunID),
		zap.Duration("duration", summary.Duration),
		zap.Int("loaded", summary.Loaded),
		zap.Int("empty", summary.Empty),
		zap.Int("failed", summary.Failed),
		zap.Int64("rows", summary.Rows),
		zap.Bool("canceled", summary.Canceled),
	)

	var err error
	if summary.Failed > 0 {
		err = fmt.Errorf("%w: %d of %d: %w", ErrWindowsFailed, summary.Failed, summary.Windows, errors.Join(errs...))
	}
	if summary.Canceled {
		err = errors.Join(err, ctx.Err())
	}
	return summary, err
}

func (d *Driver) runWindow(ctx context.Context, window domain.DateWindow) (string, int64, error) {
	res, err := d.extractor.Extract(ctx, window)
	if err != nil {
		return metrics.OutcomeFailed, 0, err
	}
	if res.Empty() {
		return metrics.OutcomeEmpty, 0, nil
	}

	rows, ok := d.transformer.Transform(res.Rows)
	if !ok {
		zap.L().Info("window has no line items - skipping", zap.Stringer("window", window), zap.Int("orders", res.Orders))
		return metrics.OutcomeEmpty, 0, nil
	}

	n, err := d.loader.Load(ctx, window, rows)
	if err != nil {
		return metrics.OutcomeFailed, 0, err
	}
	return metrics.OutcomeLoaded, n, nil
}

func (d *Driver) update(fn func(p *Progress)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(&d.progress)
}

// Progress returns a snapshot safe to use from other goroutines.
func (d *Driver) Progress() Progress {
	d.mu.Lock()
	p := d.progress
	d.mu.Unlock()

	if d.rate != nil {
		p.RateWaiting = d.rate.Waiting()
		p.RateWaits = d.rate.Waits()
	}
	return p
}
