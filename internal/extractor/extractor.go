package extractor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GlebRadaev/orderbackfill/internal/domain"
	"github.com/GlebRadaev/orderbackfill/internal/metrics"
	"github.com/GlebRadaev/orderbackfill/internal/orderapi"
)

//go:generate mockgen -source=extractor.go -destination=mock_extractor.go -package=extractor

var ErrExtractFailed = errors.New("extract failed")

type Fetcher interface {
	Find(ctx context.Context, p orderapi.FindParams) ([]domain.Order, error)
}

type Budget interface {
	Acquire(ctx context.Context) error
}

// Result holds the flattened rows of one window.
type Result struct {
	Window domain.DateWindow
	Orders int
	Pages  int
	Rows   []domain.FlatRow
}

// Empty reports that no order was seen in the window.
func (r *Result) Empty() bool {
	return r == nil || r.Orders == 0
}

type Extractor struct {
	fetcher Fetcher
	budget  Budget
	limit   int
	metrics *metrics.Metrics
}

func New(fetcher Fetcher, budget Budget, limit int, m *metrics.Metrics) *Extractor {
	return &Extractor{
		fetcher: fetcher,
		budget:  budget,
		limit:   limit,
		metrics: m,
	}
}

func (e *Extractor) Extract(ctx context.Context, window domain.DateWindow) (*Result, error) {
	res := &Result{Window: window}
	cursor := NewCursor(e.fetcher, window, 0, e.limit)

	for page, err := range cursor.Pages(ctx, e.budget) {
		if err != nil {
			return nil, fmt.Errorf("%w: window %s after id %d: %w", ErrExtractFailed, window, cursor.LastID(), err)
		}
		res.Pages++
		res.Orders += len(page.Orders)
		e.metrics.ObservePage(len(page.Orders))

		for _, order := range page.Orders {
			zap.L().Debug("order fetched",
				zap.Int64("order_id", order.ID),
				zap.Time("created_at", order.CreatedAt),
				zap.Time("updated_at", order.UpdatedAt),
			)
			res.Rows = append(res.Rows, Flatten(order)...)
		}
	}

	// Drain check: leave enough credits for the next window's first request.
	if err := e.budget.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("%w: window %s: %w", ErrExtractFailed, window, err)
	}

	if res.Empty() {
		zap.L().Info("empty window - skipping", zap.Stringer("window", window), zap.Int("pages", res.Pages))
		return res, nil
	}
	zap.L().Info("window extracted",
		zap.Stringer("window", window),
		zap.Int("pages", res.Pages),
		zap.Int("orders", res.Orders),
		zap.Int("rows", len(res.Rows)),
	)
	return res, nil
}
