package domain

import "time"

// OrderStatus is admin-settable. Transitions are unconstrained.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
)

// ParseOrderStatus validates an incoming status value.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case StatusPending, StatusShipped, StatusDelivered:
		return OrderStatus(s), true
	}
	return "", false
}

type Order struct {
	ID        string      `json:"id"`
	AccountID string      `json:"accountId"`
	Status    OrderStatus `json:"status"`
	Address   string      `json:"address"`
	Phone     string      `json:"phone"`
	CreatedAt time.Time   `json:"createdAt"`
	Items     []OrderItem `json:"items,omitempty"`
}

// OrderItem snapshots quantity and price at purchase time. ProductID is a
// bare reference; the product may later change price or be deleted without
// affecting the snapshot.
type OrderItem struct {
	ID                   string `json:"id"`
	OrderID              string `json:"orderId"`
	ProductID            string `json:"productId"`
	Quantity             int    `json:"quantity"`
	PriceAtPurchaseCents int64  `json:"priceAtPurchaseCents"`
}

// TotalCents sums the order's line totals.
func (o Order) TotalCents() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.PriceAtPurchaseCents * int64(it.Quantity)
	}
	return total
}
