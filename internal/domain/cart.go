package domain

// CartEntry is a raw cart row: a product reference and a quantity.
// The product may have been deleted since the entry was added.
type CartEntry struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartItem is an entry joined with live product data.
type CartItem struct {
	Product        Product `json:"product"`
	Quantity       int     `json:"quantity"`
	LineTotalCents int64   `json:"lineTotalCents"`
}

// Cart is the read-only projection served to clients. Entries whose
// product no longer exists are omitted.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalCents int64      `json:"totalCents"`
}
