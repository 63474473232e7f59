package extractor

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/GlebRadaev/orderbackfill/internal/domain"
	"github.com/GlebRadaev/orderbackfill/internal/orderapi"
)

var ErrCursorStalled = errors.New("cursor did not advance")

// Page is one response of the since-id walk. Exhausted is set on the last
// page of a window; requesting past it yields empty exhausted pages.
type Page struct {
	Orders    []domain.Order
	SinceID   int64
	Exhausted bool
}

// Cursor walks the orders of one window in ascending id order.
type Cursor struct {
	fetcher   Fetcher
	window    domain.DateWindow
	sinceID   int64
	limit     int
	exhausted bool
}

// NewCursor starts strictly after sinceID, so a walk can be resumed from
// the LastID of an earlier cursor.
func NewCursor(fetcher Fetcher, window domain.DateWindow, sinceID int64, limit int) *Cursor {
	return &Cursor{
		fetcher: fetcher,
		window:  window,
		sinceID: sinceID,
		limit:   limit,
	}
}

func (c *Cursor) Next(ctx context.Context) (Page, error) {
	if c.exhausted {
		return Page{SinceID: c.sinceID, Exhausted: true}, nil
	}

	orders, err := c.fetcher.Find(ctx, orderapi.FindParams{
		UpdatedAtMin: c.window.Min,
		UpdatedAtMax: c.window.Max,
		SinceID:      c.sinceID,
		Limit:        c.limit,
		Status:       orderapi.StatusAny,
	})
	if err != nil {
		return Page{}, err
	}

	page := Page{Orders: orders, SinceID: c.sinceID}
	if len(orders) < c.limit {
		c.exhausted = true
	}
	if len(orders) > 0 {
		last := orders[len(orders)-1].ID
		if last <= c.sinceID && !c.exhausted {
			return Page{}, fmt.Errorf("%w: last id %d, since id %d", ErrCursorStalled, last, c.sinceID)
		}
		c.sinceID = last
	}
	page.Exhausted = c.exhausted
	return page, nil
}

func (c *Cursor) LastID() int64 {
	return c.sinceID
}

func (c *Cursor) Exhausted() bool {
	return c.exhausted
}

// Pages yields pages until the window is exhausted or an error occurs.
// gate, when set, is acquired before every request.
func (c *Cursor) Pages(ctx context.Context, gate Budget) iter.Seq2[Page, error] {
	return func(yield func(Page, error) bool) {
		for !c.exhausted {
			if gate != nil {
				if err := gate.Acquire(ctx); err != nil {
					yield(Page{}, err)
					return
				}
			}
			page, err := c.Next(ctx)
			if err != nil {
				yield(Page{}, err)
				return
			}
			if !yield(page, nil) {
				return
			}
		}
	}
}
