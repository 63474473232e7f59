package status

import (
	"net/http"
	"time"

	"github.com/GlebRadaev/orderbackfill/internal/backfill"
	"github.com/GlebRadaev/orderbackfill/internal/dto"
	"github.com/GlebRadaev/orderbackfill/pkg/utils"
)

//go:generate mockgen -source=status.go -destination=mock_status.go -package=status

type Service interface {
	Progress() backfill.Progress
}

type StatusHandler struct {
	progress Service
}

func New(progress Service) *StatusHandler {
	return &StatusHandler{
		progress: progress,
	}
}

// GetStatus godoc
//
//	@Summary		Backfill progress
//	@Description	Snapshot of the running backfill: windows processed, rows loaded and whether the run is waiting for API credits.
//	@Tags			Status
//	@Produce		json
//	@Success		200	{object}	dto.ProgressResponseDTO	"Current progress"
//	@Failure		503	{object}	utils.Response			"Backfill not started"
//	@Router			/status [get]
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	p := h.progress.Progress()
	if p.StartedAt.IsZero() {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "backfill not started")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.ProgressResponseDTO{
		RunID:         p.RunID,
		StartedAt:     p.StartedAt.UTC().Format(time.RFC3339),
		CurrentWindow: p.CurrentWindow,
		WindowsTotal:  p.WindowsTotal,
		WindowsDone:   p.WindowsDone,
		WindowsEmpty:  p.WindowsEmpty,
		WindowsFailed: p.WindowsFailed,
		RowsLoaded:    p.RowsLoaded,
		RateWaiting:   p.RateWaiting,
		RateWaits:     p.RateWaits,
		Finished:      p.Finished,
	})
}

// Healthz godoc
//
//	@Summary	Liveness check
//	@Tags		Status
//	@Success	200	{object}	utils.Response	"Process is alive"
//	@Router		/healthz [get]
func (h *StatusHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "ok"})
}
