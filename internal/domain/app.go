package domain

import (
	"context"

	"github.com/google/uuid"
)

// AppService is the application surface consumed by the HTTP handlers.
type AppService interface {
	// Catalog
	GetProduct(ctx context.Context, id string) (*Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id string) error

	// Auth
	LoginByBadge(ctx context.Context, code string) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)

	// Orders
	Checkout(ctx context.Context) (*Order, error)
	AdvanceOrder(ctx context.Context, id uuid.UUID, status OrderStatus) (*Order, error)
	ListOpenOrders(ctx context.Context) ([]Order, error)
}
