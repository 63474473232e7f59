package dto

import (
	"github.com/shopspring/decimal"
)

type OrdersResponseDTO struct {
	Orders []OrderDTO `json:"orders"`
}

type OrderDTO struct {
	ID            int64             `json:"id" example:"1001"`
	Name          string            `json:"name" example:"#1001"`
	CreatedAt     string            `json:"created_at" example:"2024-01-01T10:00:00-05:00"`
	ProcessedAt   string            `json:"processed_at,omitempty"`
	UpdatedAt     string            `json:"updated_at"`
	ShippingLines []ShippingLineDTO `json:"shipping_lines"`
	LineItems     []LineItemDTO     `json:"line_items"`
}

type ShippingLineDTO struct {
	Price decimal.Decimal `json:"price" example:"3.00"`
}

type LineItemDTO struct {
	ID                  int64                   `json:"id"`
	Title               string                  `json:"title"`
	Vendor              string                  `json:"vendor"`
	SKU                 string                  `json:"sku"`
	Price               decimal.Decimal         `json:"price" example:"10.00"`
	Quantity            int                     `json:"quantity"`
	TaxLines            []TaxLineDTO            `json:"tax_lines"`
	DiscountAllocations []DiscountAllocationDTO `json:"discount_allocations"`
}

type TaxLineDTO struct {
	Price decimal.Decimal `json:"price"`
}

type DiscountAllocationDTO struct {
	Amount decimal.Decimal `json:"amount"`
}

type ShopResponseDTO struct {
	Shop struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"shop"`
}

// ProgressResponseDTO is the body of GET /status.
type ProgressResponseDTO struct {
	RunID         string `json:"run_id" example:"5f0c7e0e-2a4f-4c1e-9d0f-0d7f3f2b8a11"`
	StartedAt     string `json:"started_at" example:"2024-01-02T15:04:05Z"`
	CurrentWindow string `json:"current_window,omitempty" example:"2024-01-01"`
	WindowsTotal  int    `json:"windows_total"`
	WindowsDone   int    `json:"windows_done"`
	WindowsEmpty  int    `json:"windows_empty"`
	WindowsFailed int    `json:"windows_failed"`
	RowsLoaded    int64  `json:"rows_loaded"`
	RateWaiting   bool   `json:"rate_waiting"`
	RateWaits     int64  `json:"rate_waits"`
	Finished      bool   `json:"finished"`
}
