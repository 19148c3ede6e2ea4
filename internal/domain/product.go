package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Stock       int       `json:"stock"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PriceBand buckets products for catalogue search.
type PriceBand string

const (
	PriceBandAny    PriceBand = ""
	PriceBandLow    PriceBand = "low"    // under 5000 cents
	PriceBandMedium PriceBand = "medium" // 5000..30000 cents
	PriceBandHigh   PriceBand = "high"   // over 30000 cents
)
