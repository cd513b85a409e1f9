// Package app provides the application service layer.
//
// Orchestrates use cases: catalog management, badge sign-in, checkout, and
// kitchen order progression. Sits between HTTP handlers and domain
// repositories. Depends on domain interfaces, not concrete implementations.
package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/getSono/OpenPOS-sub000/internal/cart"
	"github.com/getSono/OpenPOS-sub000/internal/domain"
	apperrors "github.com/getSono/OpenPOS-sub000/internal/errors"
	"github.com/getSono/OpenPOS-sub000/internal/kitchen"
	"github.com/getSono/OpenPOS-sub000/internal/logging"
	"github.com/getSono/OpenPOS-sub000/internal/metrics"
)

// Service is the application layer — the only component that references
// multiple domain components. It orchestrates all use cases.
type Service struct {
	products domain.ProductRepository
	orders   domain.OrderRepository
	users    domain.UserRepository
	cart     *cart.Store
	hub      *kitchen.Hub
	clock    clockwork.Clock
}

// NewService creates the application layer service.
// hub may be nil when no kitchen board is attached (tests, CLI tooling).
func NewService(products domain.ProductRepository, orders domain.OrderRepository, users domain.UserRepository, cartStore *cart.Store, hub *kitchen.Hub, clock clockwork.Clock) *Service {
	return &Service{
		products: products,
		orders:   orders,
		users:    users,
		cart:     cartStore,
		hub:      hub,
		clock:    clock,
	}
}

// GetProduct retrieves a catalog product by ID.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// GetProductByBarcode resolves a scanned barcode to a product.
func (s *Service) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	return s.products.GetByBarcode(ctx, barcode)
}

// ListProducts returns the full catalog.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// CreateProduct adds a new catalog entry. An empty ID is assigned a fresh UUID.
func (s *Service) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	now := s.clock.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.products.Create(ctx, p)
}

// UpdateProduct overwrites an existing catalog entry.
func (s *Service) UpdateProduct(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = s.clock.Now()
	return s.products.Update(ctx, p)
}

// DeleteProduct removes a catalog entry.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// LoginByBadge resolves a scanned badge code to a clerk.
func (s *Service) LoginByBadge(ctx context.Context, code string) (*domain.User, error) {
	if code == "" {
		return nil, apperrors.ValidationError("badge code is required")
	}
	return s.users.GetByBadgeCode(ctx, code)
}

// GetUserByID retrieves a clerk by internal ID.
func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Checkout freezes the active cart into an order, persists it, clears the
// cart, and announces the new order to connected kitchen boards.
//
// The cart store runs persistence under its own lock, so a concurrent scan
// can never land between the order snapshot and the clear. A persistence
// failure leaves the cart untouched.
func (s *Service) Checkout(ctx context.Context) (*domain.Order, error) {
	var order *domain.Order

	err := s.cart.Checkout(func(items []domain.CartItem) error {
		now := s.clock.Now()
		o := &domain.Order{
			ID:        uuid.New(),
			Status:    domain.OrderPlaced,
			PlacedAt:  now,
			UpdatedAt: now,
		}

		for _, item := range items {
			line := domain.OrderLine{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			}
			if item.Product != nil {
				line.Name = item.Product.Name
				line.Price = item.Product.Price
			}
			o.Lines = append(o.Lines, line)
			o.Total += line.Price * float64(line.Quantity)
		}

		if err := s.orders.Create(ctx, o); err != nil {
			return err
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersPlacedTotal.Inc()
	logging.WithOrder(order.ID.String()).Info("order placed",
		slog.Int("lines", len(order.Lines)),
		slog.Float64("total", order.Total))

	if s.hub != nil {
		s.hub.Broadcast(kitchen.EventOrderPlaced, *order)
	}
	return order, nil
}

// AdvanceOrder moves an order to the given status and announces the change
// to connected kitchen boards.
func (s *Service) AdvanceOrder(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.OrderStatusChangesTotal.WithLabelValues(string(status)).Inc()
	logging.WithOrder(id.String()).Info("order status changed", slog.String("status", string(status)))

	if s.hub != nil {
		s.hub.Broadcast(kitchen.EventOrderUpdated, *order)
	}
	return order, nil
}

// ListOpenOrders returns all orders not yet completed, oldest first.
func (s *Service) ListOpenOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListOpen(ctx)
}
