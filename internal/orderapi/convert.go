package orderapi

import (
	"fmt"
	"time"

	"github.com/GlebRadaev/orderbackfill/internal/domain"
	"github.com/GlebRadaev/orderbackfill/internal/dto"
)

func toDomain(o dto.OrderDTO) (domain.Order, error) {
	createdAt, err := parseTime(o.CreatedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("created_at: %w", err)
	}
	processedAt, err := parseTime(o.ProcessedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("processed_at: %w", err)
	}
	updatedAt, err := parseTime(o.UpdatedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("updated_at: %w", err)
	}

	order := domain.Order{
		ID:            o.ID,
		Name:          o.Name,
		CreatedAt:     createdAt,
		ProcessedAt:   processedAt,
		UpdatedAt:     updatedAt,
		ShippingLines: make([]domain.ShippingLine, 0, len(o.ShippingLines)),
		LineItems:     make([]domain.LineItem, 0, len(o.LineItems)),
	}
	for _, s := range o.ShippingLines {
		order.ShippingLines = append(order.ShippingLines, domain.ShippingLine{Price: s.Price})
	}
	for _, li := range o.LineItems {
		item := domain.LineItem{
			ID:       li.ID,
			Title:    li.Title,
			Vendor:   li.Vendor,
			SKU:      li.SKU,
			Price:    li.Price,
			Quantity: li.Quantity,
		}
		for _, t := range li.TaxLines {
			item.TaxLines = append(item.TaxLines, domain.TaxLine{Price: t.Price})
		}
		for _, d := range li.DiscountAllocations {
			item.DiscountAllocations = append(item.DiscountAllocations, domain.DiscountAllocation{Amount: d.Amount})
		}
		order.LineItems = append(order.LineItems, item)
	}
	return order, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
