package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/getSono/OpenPOS-sub000/internal/broadcast"
	"github.com/getSono/OpenPOS-sub000/internal/cart"
	"github.com/getSono/OpenPOS-sub000/internal/config"
	"github.com/getSono/OpenPOS-sub000/internal/display"
	"github.com/getSono/OpenPOS-sub000/internal/domain"
	apperrors "github.com/getSono/OpenPOS-sub000/internal/errors"
)

// --- Mock implementations ---

type mockAppService struct {
	getProductFn          func(ctx context.Context, id string) (*domain.Product, error)
	getProductByBarcodeFn func(ctx context.Context, barcode string) (*domain.Product, error)
	listProductsFn        func(ctx context.Context) ([]domain.Product, error)
	createProductFn       func(ctx context.Context, p *domain.Product) error
	updateProductFn       func(ctx context.Context, p *domain.Product) error
	deleteProductFn       func(ctx context.Context, id string) error
	loginByBadgeFn        func(ctx context.Context, code string) (*domain.User, error)
	getUserByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	checkoutFn            func(ctx context.Context) (*domain.Order, error)
	advanceOrderFn        func(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	listOpenOrdersFn      func(ctx context.Context) ([]domain.Order, error)
}

func (m *mockAppService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if m.getProductFn != nil {
		return m.getProductFn(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockAppService) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	if m.getProductByBarcodeFn != nil {
		return m.getProductByBarcodeFn(ctx, barcode)
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockAppService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if m.listProductsFn != nil {
		return m.listProductsFn(ctx)
	}
	return nil, nil
}

func (m *mockAppService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if m.createProductFn != nil {
		return m.createProductFn(ctx, p)
	}
	p.ID = uuid.NewString()
	return nil
}

func (m *mockAppService) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if m.updateProductFn != nil {
		return m.updateProductFn(ctx, p)
	}
	return nil
}

func (m *mockAppService) DeleteProduct(ctx context.Context, id string) error {
	if m.deleteProductFn != nil {
		return m.deleteProductFn(ctx, id)
	}
	return nil
}

func (m *mockAppService) LoginByBadge(ctx context.Context, code string) (*domain.User, error) {
	if m.loginByBadgeFn != nil {
		return m.loginByBadgeFn(ctx, code)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockAppService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockAppService) Checkout(ctx context.Context) (*domain.Order, error) {
	if m.checkoutFn != nil {
		return m.checkoutFn(ctx)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) AdvanceOrder(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if m.advanceOrderFn != nil {
		return m.advanceOrderFn(ctx, id, status)
	}
	return nil, domain.ErrOrderNotFound
}

func (m *mockAppService) ListOpenOrders(ctx context.Context) ([]domain.Order, error) {
	if m.listOpenOrdersFn != nil {
		return m.listOpenOrdersFn(ctx)
	}
	return nil, nil
}

// --- Test helpers ---

func newTestStores() Stores {
	cartRegistry := broadcast.NewRegistry()
	displayRegistry := broadcast.NewRegistry()
	return Stores{
		Cart:            cart.NewStore(broadcast.NewBroadcaster("cart", cartRegistry)),
		CartRegistry:    cartRegistry,
		Display:         display.NewStore(broadcast.NewBroadcaster("display", displayRegistry)),
		DisplayRegistry: displayRegistry,
	}
}

func newTestServer(t *testing.T, app domain.AppService) *Server {
	t.Helper()

	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!!"))
	store.Options = &sessions.Options{
		Path:   "/",
		MaxAge: 3600,
	}

	e := echo.New()
	// Install error middleware for tests to match production behavior
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:         e,
		config:       &config.Config{Port: "8080", StreamKeepalive: 15 * time.Second},
		app:          app,
		stores:       newTestStores(),
		sessionStore: store,
		clock:        clockwork.NewFakeClock(),
	}
	srv.startTime = srv.clock.Now()

	srv.registerRoutes()

	return srv
}

// callHandler wraps a handler with error middleware, matching production behavior
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return apperrors.Middleware()(handler)(c)
}

func setSessionUserID(t *testing.T, srv *Server, req *http.Request, rec *httptest.ResponseRecorder, userID uuid.UUID) {
	t.Helper()
	session, err := srv.sessionStore.Get(req, sessionName)
	require.NoError(t, err)
	session.Values[sessionKeyUserID] = userID.String()
	require.NoError(t, session.Save(req, rec))
}
