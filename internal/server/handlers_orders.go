package server

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/getSono/OpenPOS-sub000/internal/domain"
	apperrors "github.com/getSono/OpenPOS-sub000/internal/errors"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // kitchen boards run on tablets across the local network
	},
}

func (s *Server) handleCheckout(c echo.Context) error {
	order, err := s.app.Checkout(c.Request().Context())
	if errors.Is(err, domain.ErrCartEmpty) {
		return apperrors.ConflictError("cart is empty")
	}
	if err != nil {
		return apperrors.InternalError("checkout failed", err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (s *Server) handleListOpenOrders(c echo.Context) error {
	orders, err := s.app.ListOpenOrders(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to list orders", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

type advanceOrderRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleAdvanceOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid order id")
	}

	var req advanceOrderRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		return apperrors.ValidationError(err.Error())
	}

	order, err := s.app.AdvanceOrder(c.Request().Context(), id, status)
	if errors.Is(err, domain.ErrOrderNotFound) {
		return apperrors.NotFoundError("order not found")
	}
	if err != nil {
		return apperrors.InternalError("failed to advance order", err)
	}
	return c.JSON(http.StatusOK, order)
}

func (s *Server) handleKitchenSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return apperrors.InternalError("websocket upgrade failed", err)
	}

	s.hub.Register(conn)
	defer s.hub.Unregister(conn)

	// Read pump — blocks until the connection closes. Boards never send
	// application messages; reading surfaces close frames and errors.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	return nil
}
