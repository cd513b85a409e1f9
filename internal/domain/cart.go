package domain

// ProductSnapshot is a denormalized copy of product display fields cached on a
// cart line at add-time, so viewers can render without a catalog lookup.
// It is not authoritative and is never synced back to the catalog.
type ProductSnapshot struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CartItem is a single line of the active cart. ProductID is the unique key
// within a cart; Quantity is always positive while stored.
type CartItem struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *ProductSnapshot `json:"product,omitempty"`
}

// CartUpdate is the wire payload pushed to cart stream subscribers on every
// mutation.
type CartUpdate struct {
	Type string     `json:"type"`
	Cart []CartItem `json:"cart"`
}

// CartUpdateType is the type tag carried by every CartUpdate.
const CartUpdateType = "cart-update"
