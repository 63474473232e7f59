package transform

import (
	"cmp"
	"slices"

	"go.uber.org/zap"

	"github.com/GlebRadaev/orderbackfill/internal/domain"
)

// Columns is the column order of the target table.
var Columns = []string{
	"title",
	"vendor",
	"sku",
	"created_at",
	"updated_at",
	"price",
	"order_id",
	"gross_sales",
	"discounts",
	"net_sales",
	"taxes",
	"ordered_item_quantity",
	"shipping",
	"externalordernumber",
}

// Project returns the row values in Columns order.
func Project(row domain.FlatRow) []any {
	return []any{
		row.Title,
		row.Vendor,
		row.SKU,
		row.CreatedAt,
		row.UpdatedAt,
		row.Price,
		row.OrderID,
		row.GrossSales,
		row.Discounts,
		row.NetSales,
		row.Taxes,
		row.Quantity,
		row.Shipping,
		row.ExternalOrderNumber,
	}
}

type rowKey struct {
	title, vendor, sku   string
	createdAt, updatedAt int64
	price                string
	orderID              int64
	gross, discounts     string
	net, taxes           string
	quantity             int
	shipping             string
	externalOrderNumber  string
	lineItemID           int64
}

func keyOf(row domain.FlatRow) rowKey {
	return rowKey{
		title:               row.Title,
		vendor:              row.Vendor,
		sku:                 row.SKU,
		createdAt:           row.CreatedAt.Unix(),
		updatedAt:           row.UpdatedAt.Unix(),
		price:               row.Price.String(),
		orderID:             row.OrderID,
		gross:               row.GrossSales.String(),
		discounts:           row.Discounts.String(),
		net:                 row.NetSales.String(),
		taxes:               row.Taxes.String(),
		quantity:            row.Quantity,
		shipping:            row.Shipping.String(),
		externalOrderNumber: row.ExternalOrderNumber,
		lineItemID:          row.LineItemID,
	}
}

type Transformer struct{}

func New() *Transformer {
	return &Transformer{}
}

// Transform drops exact duplicates, keeping the first occurrence, and sorts
// by (created_at, order_id, sku). It reports false when there is nothing to load.
func (t *Transformer) Transform(rows []domain.FlatRow) ([]domain.FlatRow, bool) {
	if len(rows) == 0 {
		return nil, false
	}

	seen := make(map[rowKey]struct{}, len(rows))
	out := make([]domain.FlatRow, 0, len(rows))
	for _, row := range rows {
		key := keyOf(row)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	if dropped := len(rows) - len(out); dropped > 0 {
		zap.L().Debug("duplicate rows dropped", zap.Int("dropped", dropped), zap.Int("kept", len(out)))
	}

	slices.SortStableFunc(out, func(a, b domain.FlatRow) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if c := cmp.Compare(a.OrderID, b.OrderID); c != 0 {
			return c
		}
		return cmp.Compare(a.SKU, b.SKU)
	})
	return out, true
}
