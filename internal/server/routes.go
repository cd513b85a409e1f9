package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth
	s.echo.POST("/auth/login", s.handleBadgeLogin, s.mutationRateLimiter())
	s.echo.POST("/auth/logout", s.handleLogout)
	s.echo.GET("/auth/me", s.handleCurrentUser, s.requireAuth)

	// Cart: mutations from the register, stream for every viewer
	s.echo.POST("/api/cart", s.handleCartAction, s.requireAuth, s.mutationRateLimiter())
	s.echo.GET("/api/cart", s.handleCartState)
	s.echo.GET("/api/cart/stream", s.handleCartStream)

	// Customer display: replaced wholesale by the register
	s.echo.POST("/api/display", s.handleDisplayUpdate, s.requireAuth, s.mutationRateLimiter())
	s.echo.GET("/api/display", s.handleDisplayState)
	s.echo.GET("/api/display/stream", s.handleDisplayStream)

	// Catalog
	s.echo.GET("/api/products", s.handleListProducts)
	s.echo.GET("/api/products/:id", s.handleGetProduct)
	s.echo.GET("/api/products/barcode/:code", s.handleGetProductByBarcode)
	s.echo.POST("/api/products", s.handleCreateProduct, s.requireAuth, s.mutationRateLimiter())
	s.echo.PUT("/api/products/:id", s.handleUpdateProduct, s.requireAuth, s.mutationRateLimiter())
	s.echo.DELETE("/api/products/:id", s.handleDeleteProduct, s.requireAuth, s.mutationRateLimiter())

	// Orders and the kitchen board
	s.echo.POST("/api/checkout", s.handleCheckout, s.requireAuth, s.mutationRateLimiter())
	s.echo.GET("/api/orders", s.handleListOpenOrders, s.requireAuth)
	s.echo.PATCH("/api/orders/:id/status", s.handleAdvanceOrder, s.requireAuth, s.mutationRateLimiter())
	s.echo.GET("/ws/kitchen", s.handleKitchenSocket)
}
