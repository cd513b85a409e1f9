package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/getSono/OpenPOS-sub000/internal/domain"
	apperrors "github.com/getSono/OpenPOS-sub000/internal/errors"
)

func (s *Server) handleListProducts(c echo.Context) error {
	products, err := s.app.ListProducts(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to list products", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(http.StatusOK, products)
}

func (s *Server) handleGetProduct(c echo.Context) error {
	product, err := s.app.GetProduct(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrProductNotFound) {
		return apperrors.NotFoundError("product not found")
	}
	if err != nil {
		return apperrors.InternalError("failed to load product", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (s *Server) handleGetProductByBarcode(c echo.Context) error {
	product, err := s.app.GetProductByBarcode(c.Request().Context(), c.Param("code"))
	if errors.Is(err, domain.ErrProductNotFound) {
		return apperrors.NotFoundError("product not found")
	}
	if err != nil {
		return apperrors.InternalError("failed to load product", err)
	}
	return c.JSON(http.StatusOK, product)
}

type productRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Barcode  string  `json:"barcode"`
	Active   *bool   `json:"active"`
}

func (r *productRequest) validate() error {
	if r.Name == "" {
		return apperrors.ValidationError("name is required")
	}
	if r.Price < 0 {
		return apperrors.ValidationError("price must not be negative")
	}
	return nil
}

func (r *productRequest) toProduct(id string) *domain.Product {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &domain.Product{
		ID:       id,
		Name:     r.Name,
		Price:    r.Price,
		Category: r.Category,
		Barcode:  r.Barcode,
		Active:   active,
	}
}

func (s *Server) handleCreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	product := req.toProduct("")
	if err := s.app.CreateProduct(c.Request().Context(), product); err != nil {
		return apperrors.InternalError("failed to create product", err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (s *Server) handleUpdateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	product := req.toProduct(c.Param("id"))
	err := s.app.UpdateProduct(c.Request().Context(), product)
	if errors.Is(err, domain.ErrProductNotFound) {
		return apperrors.NotFoundError("product not found")
	}
	if err != nil {
		return apperrors.InternalError("failed to update product", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(c echo.Context) error {
	err := s.app.DeleteProduct(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrProductNotFound) {
		return apperrors.NotFoundError("product not found")
	}
	if err != nil {
		return apperrors.InternalError("failed to delete product", err)
	}
	return c.NoContent(http.StatusNoContent)
}
