package backfill

import (
	"time"

	"github.com/GlebRadaev/orderbackfill/internal/domain"
)

// Windows splits the days from today-days through today into consecutive
// windows of span days. The last window ends on today.
func Windows(today time.Time, days, span int) []domain.DateWindow {
	if days < 0 {
		days = 0
	}
	if span <= 0 {
		span = 1
	}

	end := domain.Day(today)
	windows := make([]domain.DateWindow, 0, days/span+1)
	for first := end.AddDate(0, 0, -days); !first.After(end); first = first.AddDate(0, 0, span) {
		last := first.AddDate(0, 0, span-1)
		if last.After(end) {
			last = end
		}
		windows = append(windows, domain.NewDateWindow(first, last))
	}
	return windows
}
