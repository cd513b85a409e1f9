package domain

// DisplayProduct is the product slice of a customer-display cart line.
type DisplayProduct struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// DisplayLine is one cart row as shown on the customer-facing screen.
type DisplayLine struct {
	Product  DisplayProduct `json:"product"`
	Quantity int            `json:"quantity"`
}

// CurrentItem is the most recently scanned item, shown transiently to the
// customer.
type CurrentItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// DisplayPayload is the full customer-display state. It is replaced wholesale
// on every register update, never merged, and is pushed bare (no type
// envelope) to display stream subscribers.
//
// ItemCount is supplied by the register and is not cross-checked against the
// cart lines it accompanies.
type DisplayPayload struct {
	Cart        []DisplayLine `json:"cart"`
	Total       float64       `json:"total"`
	ItemCount   int           `json:"itemCount"`
	CurrentItem *CurrentItem  `json:"currentItem,omitempty"`
}
