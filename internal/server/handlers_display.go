package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/getSono/OpenPOS-sub000/internal/domain"
	apperrors "github.com/getSono/OpenPOS-sub000/internal/errors"
)

func readBody(c echo.Context) ([]byte, error) {
	defer c.Request().Body.Close()
	return io.ReadAll(c.Request().Body)
}

// displayUpdateRequest mirrors domain.DisplayPayload but keeps the numeric
// fields as pointers so missing keys are distinguishable from zero values.
// ItemCount is accepted as sent; it is display metadata owned by the register.
type displayUpdateRequest struct {
	Cart        []domain.DisplayLine `json:"cart"`
	Total       *float64             `json:"total"`
	ItemCount   *int                 `json:"itemCount"`
	CurrentItem *domain.CurrentItem  `json:"currentItem"`
}

func (s *Server) handleDisplayUpdate(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if _, ok := raw["cart"]; !ok {
		return apperrors.ValidationError("cart is required")
	}

	var req displayUpdateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Total == nil {
		return apperrors.ValidationError("total is required")
	}
	if req.ItemCount == nil {
		return apperrors.ValidationError("itemCount is required")
	}

	s.stores.Display.Set(domain.DisplayPayload{
		Cart:        req.Cart,
		Total:       *req.Total,
		ItemCount:   *req.ItemCount,
		CurrentItem: req.CurrentItem,
	})

	return c.JSON(http.StatusOK, s.stores.Display.Get())
}

func (s *Server) handleDisplayState(c echo.Context) error {
	return c.JSON(http.StatusOK, s.stores.Display.Get())
}

func (s *Server) handleDisplayStream(c echo.Context) error {
	return s.serveStream(c, "display", s.stores.DisplayRegistry, func() (any, error) {
		return s.stores.Display.Get(), nil
	})
}
