package domain

import "time"

// Product is a catalog record. Prices are stored as decimal in the database
// and carried as float64 on the wire, matching the display payloads.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	Barcode   string    `json:"barcode,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Snapshot returns the denormalized display fields cached on cart lines.
func (p Product) Snapshot() *ProductSnapshot {
	return &ProductSnapshot{ID: p.ID, Name: p.Name, Price: p.Price}
}
