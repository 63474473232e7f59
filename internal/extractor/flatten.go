package extractor

import (
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/orderbackfill/internal/domain"
)

// Flatten produces one row per line item. Order-level fields, shipping total
// included, are copied onto every row.
func Flatten(order domain.Order) []domain.FlatRow {
	shipping := decimal.Zero
	for _, line := range order.ShippingLines {
		shipping = shipping.Add(line.Price)
	}

	createdAt := order.ProcessedAt
	if createdAt.IsZero() {
		createdAt = order.CreatedAt
	}

	rows := make([]domain.FlatRow, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		taxes := decimal.Zero
		for _, tax := range item.TaxLines {
			taxes = taxes.Add(tax.Price)
		}
		discounts := decimal.Zero
		for _, d := range item.DiscountAllocations {
			discounts = discounts.Add(d.Amount)
		}

		rows = append(rows, domain.FlatRow{
			Title:               item.Title,
			Vendor:              item.Vendor,
			SKU:                 item.SKU,
			CreatedAt:           domain.Day(createdAt),
			UpdatedAt:           domain.Day(order.UpdatedAt),
			Price:               item.Price,
			OrderID:             order.ID,
			GrossSales:          item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
			Discounts:           discounts.Neg(),
			NetSales:            item.Price,
			Taxes:               taxes,
			Quantity:            item.Quantity,
			Shipping:            shipping,
			ExternalOrderNumber: order.Name,
			LineItemID:          item.ID,
		})
	}
	return rows
}
