package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/orderbackfill/internal/backfill"
	"github.com/GlebRadaev/orderbackfill/internal/handlers/status"
	"github.com/GlebRadaev/orderbackfill/internal/metrics"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := New(status.NewMockService(ctrl), metrics.New().Registry())
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.Metrics)

	h = New(status.NewMockService(ctrl), nil)
	assert.NotNil(t, h.Metrics)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStatusHandler := NewMockStatusHandler(ctrl)
	mockStatusHandler.EXPECT().GetStatus(gomock.Any(), gomock.Any()).AnyTimes()
	mockStatusHandler.EXPECT().Healthz(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		StatusHandler: mockStatusHandler,
		Metrics:       New(nil, metrics.New().Registry()).Metrics,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"GET", "/status", http.StatusOK},
		{"GET", "/healthz", http.StatusOK},
		{"GET", "/metrics", http.StatusOK},
		{"POST", "/status", http.StatusMethodNotAllowed},
		{"GET", "/api/user/orders", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestInitRoutes_Metrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	progress := status.NewMockService(ctrl)
	gomock.InOrder(
		progress.EXPECT().Progress().Return(backfill.Progress{RunID: "run"}),
		progress.EXPECT().Progress().Return(backfill.Progress{RunID: "run", StartedAt: time.Now()}),
	)

	m := metrics.New()
	m.ObservePage(250)
	m.ObserveWindow(metrics.OutcomeLoaded)

	router := chi.NewRouter()
	New(progress, m.Registry()).InitRoutes(router)

	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "backfill_pages_fetched_total 1")
	assert.Contains(t, string(body), "backfill_orders_fetched_total 250")
	assert.Contains(t, string(body), `backfill_windows_total{outcome="loaded"} 1`)

	for _, want := range []int{http.StatusServiceUnavailable, http.StatusOK} {
		resp, err = http.Get(srv.URL + "/status")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode)
	}
}
