package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/orderbackfill/internal/domain"
	"github.com/GlebRadaev/orderbackfill/internal/metrics"
)

func NewMock(t *testing.T) (*Extractor, *MockFetcher, *MockBudget, *metrics.Metrics) {
	ctrl := gomock.NewController(t)
	fetcher := NewMockFetcher(ctrl)
	budget := NewMockBudget(ctrl)
	m := metrics.New()
	return New(fetcher, budget, 250, m), fetcher, budget, m
}

func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		name      string
		pages     [][]int
		wantPages int
		wantRows  int
	}{
		{
			name:      "partial page stops the walk",
			pages:     [][]int{{1, 249}},
			wantPages: 1,
			wantRows:  249,
		},
		{
			name:      "full page requests one more",
			pages:     [][]int{{1, 250}, {251, 0}},
			wantPages: 2,
			wantRows:  250,
		},
		{
			name:      "three pages",
			pages:     [][]int{{1, 250}, {251, 250}, {501, 7}},
			wantPages: 3,
			wantRows:  507,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, fetcher, budget, m := NewMock(t)

			var calls []any
			var sinceID int64
			for _, p := range tt.pages {
				page := orders(int64(p[0]), p[1])
				calls = append(calls,
					budget.EXPECT().Acquire(gomock.Any()).Return(nil),
					fetcher.EXPECT().Find(gomock.Any(), params(sinceID, 250)).Return(page, nil),
				)
				if len(page) > 0 {
					sinceID = page[len(page)-1].ID
				}
			}
			calls = append(calls, budget.EXPECT().Acquire(gomock.Any()).Return(nil))
			gomock.InOrder(calls...)

			res, err := e.Extract(context.Background(), testWindow)
			require.NoError(t, err)
			assert.False(t, res.Empty())
			assert.Equal(t, tt.wantPages, res.Pages)
			assert.Equal(t, tt.wantRows, res.Orders)
			assert.Len(t, res.Rows, tt.wantRows)
			assert.Equal(t, testWindow, res.Window)
			expected := fmt.Sprintf(`
# HELP backfill_pages_fetched_total Order pages fetched from the upstream API.
# TYPE backfill_pages_fetched_total counter
backfill_pages_fetched_total %d
# HELP backfill_orders_fetched_total Orders fetched from the upstream API.
# TYPE backfill_orders_fetched_total counter
backfill_orders_fetched_total %d
`, tt.wantPages, tt.wantRows)
			assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
				"backfill_pages_fetched_total", "backfill_orders_fetched_total"))
		})
	}
}

func TestExtractor_ExtractFlattens(t *testing.T) {
	e, fetcher, budget, _ := NewMock(t)

	budget.EXPECT().Acquire(gomock.Any()).Return(nil).Times(2)
	fetcher.EXPECT().Find(gomock.Any(), params(0, 250)).Return([]domain.Order{sampleOrder()}, nil)

	res, err := e.Extract(context.Background(), testWindow)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "A", res.Rows[0].SKU)
	assert.Equal(t, "B", res.Rows[1].SKU)
}

func TestExtractor_EmptyWindow(t *testing.T) {
	e, fetcher, budget, _ := NewMock(t)

	budget.EXPECT().Acquire(gomock.Any()).Return(nil).Times(2)
	fetcher.EXPECT().Find(gomock.Any(), params(0, 250)).Return(nil, nil)

	res, err := e.Extract(context.Background(), testWindow)
	require.NoError(t, err)
	assert.True(t, res.Empty())
	assert.Equal(t, 1, res.Pages)
	assert.Empty(t, res.Rows)
}

func TestExtractor_FetchError(t *testing.T) {
	e, fetcher, budget, _ := NewMock(t)

	fetchErr := errors.New("fetch failed after 3 attempts")
	gomock.InOrder(
		budget.EXPECT().Acquire(gomock.Any()).Return(nil),
		fetcher.EXPECT().Find(gomock.Any(), params(0, 250)).Return(orders(1, 250), nil),
		budget.EXPECT().Acquire(gomock.Any()).Return(nil),
		fetcher.EXPECT().Find(gomock.Any(), params(250, 250)).Return(nil, fetchErr),
	)

	res, err := e.Extract(context.Background(), testWindow)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrExtractFailed)
	assert.ErrorIs(t, err, fetchErr)
	assert.Contains(t, err.Error(), "after id 250")
}

func TestExtractor_DrainCanceled(t *testing.T) {
	e, fetcher, budget, _ := NewMock(t)

	gomock.InOrder(
		budget.EXPECT().Acquire(gomock.Any()).Return(nil),
		fetcher.EXPECT().Find(gomock.Any(), gomock.Any()).Return(orders(1, 3), nil),
		budget.EXPECT().Acquire(gomock.Any()).Return(context.Canceled),
	)

	_, err := e.Extract(context.Background(), testWindow)
	require.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrExtractFailed)
}

func TestResult_Empty(t *testing.T) {
	var res *Result
	assert.True(t, res.Empty())
	assert.True(t, (&Result{}).Empty())
	assert.False(t, (&Result{Orders: 1}).Empty())
}
