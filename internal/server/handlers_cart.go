package server

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/getSono/OpenPOS-sub000/internal/broadcast"
	"github.com/getSono/OpenPOS-sub000/internal/domain"
	apperrors "github.com/getSono/OpenPOS-sub000/internal/errors"
	"github.com/getSono/OpenPOS-sub000/internal/metrics"
)

// cartActionRequest is the register's mutation envelope. Action selects the
// operation; the remaining fields apply to it.
type cartActionRequest struct {
	Action    string                  `json:"action"`
	ProductID string                  `json:"productId"`
	Quantity  *int                    `json:"quantity"`
	Product   *domain.ProductSnapshot `json:"product"`
}

func (s *Server) handleCartAction(c echo.Context) error {
	var req cartActionRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	// Missing action means add, matching the register clients.
	switch req.Action {
	case "add", "":
		if req.ProductID == "" {
			return apperrors.ValidationError("productId is required")
		}
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		s.stores.Cart.AddItem(req.ProductID, quantity, req.Product)

	case "update":
		if req.ProductID == "" {
			return apperrors.ValidationError("productId is required")
		}
		if req.Quantity == nil {
			return apperrors.ValidationError("quantity is required")
		}
		s.stores.Cart.UpdateItem(req.ProductID, *req.Quantity)

	case "remove":
		if req.ProductID == "" {
			return apperrors.ValidationError("productId is required")
		}
		s.stores.Cart.RemoveItem(req.ProductID)

	case "clear":
		s.stores.Cart.Clear()

	default:
		return apperrors.ValidationError("unknown action").WithField("action", req.Action)
	}

	return c.JSON(http.StatusOK, s.stores.Cart.Snapshot())
}

func (s *Server) handleCartState(c echo.Context) error {
	return c.JSON(http.StatusOK, s.stores.Cart.Snapshot())
}

func (s *Server) handleCartStream(c echo.Context) error {
	return s.serveStream(c, "cart", s.stores.CartRegistry, func() (any, error) {
		return s.stores.Cart.Snapshot(), nil
	})
}

// serveStream runs the event-stream lifecycle shared by the cart and display
// streams: send the current snapshot, register the connection for future
// broadcasts, then block until the client goes away. Comment frames tick on
// idle streams so dead connections surface as write errors.
func (s *Server) serveStream(c echo.Context, stream string, registry *broadcast.Registry, snapshot func() (any, error)) error {
	sink, err := broadcast.NewSSESink(c.Response())
	if err != nil {
		return apperrors.InternalError("streaming not supported", err)
	}

	h := c.Response().Header()
	h.Set(echo.HeaderContentType, "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	state, err := snapshot()
	if err != nil {
		return err
	}
	data, err := json.Marshal(state)
	if err != nil {
		return apperrors.InternalError("failed to serialize snapshot", err)
	}
	if err := sink.Send(data); err != nil {
		return nil
	}

	handle := registry.Add(sink)
	metrics.BroadcastSubscribers.WithLabelValues(stream).Set(float64(registry.Len()))
	defer func() {
		registry.Remove(handle)
		metrics.BroadcastSubscribers.WithLabelValues(stream).Set(float64(registry.Len()))
	}()

	ticker := s.clock.NewTicker(s.config.StreamKeepalive)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			if err := sink.Comment("keepalive"); err != nil {
				return nil
			}
		}
	}
}
