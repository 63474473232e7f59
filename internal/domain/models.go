package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for window bounds and row dates.
const DateLayout = "2006-01-02"

type Order struct {
	ID            int64
	Name          string
	CreatedAt     time.Time
	ProcessedAt   time.Time
	UpdatedAt     time.Time
	ShippingLines []ShippingLine
	LineItems     []LineItem
}

type ShippingLine struct {
	Price decimal.Decimal
}

type LineItem struct {
	ID                  int64
	Title               string
	Vendor              string
	SKU                 string
	Price               decimal.Decimal
	Quantity            int
	TaxLines            []TaxLine
	DiscountAllocations []DiscountAllocation
}

type TaxLine struct {
	Price decimal.Decimal
}

type DiscountAllocation struct {
	Amount decimal.Decimal
}

// FlatRow is one line item joined with the fields of its order.
// CreatedAt and UpdatedAt are dates (midnight UTC).
type FlatRow struct {
	Title               string          `db:"title"`
	Vendor              string          `db:"vendor"`
	SKU                 string          `db:"sku"`
	CreatedAt           time.Time       `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
	Price               decimal.Decimal `db:"price"`
	OrderID             int64           `db:"order_id"`
	GrossSales          decimal.Decimal `db:"gross_sales"`
	Discounts           decimal.Decimal `db:"discounts"`
	NetSales            decimal.Decimal `db:"net_sales"`
	Taxes               decimal.Decimal `db:"taxes"`
	Quantity            int             `db:"ordered_item_quantity"`
	Shipping            decimal.Decimal `db:"shipping"`
	ExternalOrderNumber string          `db:"externalordernumber"`
	LineItemID          int64           `db:"-"`
}

// DateWindow is an inclusive UTC interval from Min (00:00:00 of its first day)
// to Max (23:59:59 of its last day).
type DateWindow struct {
	Min time.Time
	Max time.Time
}

// NewDateWindow builds the window covering the calendar days first..last in UTC.
func NewDateWindow(first, last time.Time) DateWindow {
	f := Day(first)
	l := Day(last)
	return DateWindow{
		Min: f,
		Max: l.Add(24*time.Hour - time.Second),
	}
}

func (w DateWindow) MinDate() string {
	return w.Min.Format(DateLayout)
}

func (w DateWindow) MaxDate() string {
	return w.Max.Format(DateLayout)
}

// ContainsDate reports whether the calendar day of t lies in the window.
func (w DateWindow) ContainsDate(t time.Time) bool {
	d := Day(t)
	return !d.Before(Day(w.Min)) && !d.After(Day(w.Max))
}

func (w DateWindow) String() string {
	if w.MinDate() == w.MaxDate() {
		return w.MinDate()
	}
	return w.MinDate() + ".." + w.MaxDate()
}

// Day truncates t to midnight of its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
