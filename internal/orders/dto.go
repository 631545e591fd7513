package orders

import (
	"time"

	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// OrderSummary is the read-only projection consumed by confirmation and
// order-history views. It is derived from the canonical aggregate and never
// written back.
type OrderSummary struct {
	ID     string             `json:"id"`
	Date   time.Time          `json:"date"`
	Status enums.OrderStatus  `json:"status"`
	Total  decimal.Decimal    `json:"total"`
	Items  []OrderSummaryItem `json:"items"`
}

// OrderSummaryItem is the slim line shape shown in order lists.
type OrderSummaryItem struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
}

// Summarize projects an order into its display shape.
func Summarize(order *Order) OrderSummary {
	summary := OrderSummary{
		ID:     order.ID,
		Date:   order.CreatedAt,
		Status: order.Status,
		Total:  order.Total,
		Items:  make([]OrderSummaryItem, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		summary.Items = append(summary.Items, OrderSummaryItem{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Image:     item.Image,
		})
	}
	return summary
}
