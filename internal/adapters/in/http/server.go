// Package http is the REST transport of the order lifecycle, built on echo.
// Domain errors map to status codes in one place, see statusFor.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"orders/internal/core/application/usecases"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Server exposes the order lifecycle over JSON.
type Server struct {
	lifecycle usecases.OrderLifecycle
	logger    *slog.Logger
}

// NewServer wraps lifecycle. A nil logger means slog.Default.
//
// Example:
//
//	e := echo.New()
//	http.NewServer(lifecycle, logger).Register(e)
//	_ = e.Start(":8080")
func NewServer(lifecycle usecases.OrderLifecycle, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		lifecycle: lifecycle,
		logger:    logger.With("component", "http"),
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:id", s.GetOrder)
	v1.DELETE("/orders/:id", s.DeleteOrder)
	v1.POST("/orders/:id/cancel", s.CancelOrder)
	v1.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	v1.POST("/orders/:id/reorder", s.Reorder)
	v1.POST("/orders/:id/confirm", s.ConfirmOrder)
	v1.POST("/orders/:id/prepare", s.StartPreparingOrder)
	v1.POST("/orders/:id/assign", s.AssignDeliveryPerson)
	v1.POST("/orders/:id/complete", s.CompleteOrder)
	v1.PUT("/orders/:id/special-requests", s.UpdateSpecialRequests)

	v1.GET("/customers/:id/orders", s.ListOrdersByCustomer)
	v1.GET("/stores/:id/orders", s.ListOrdersByStore)
	v1.GET("/delivery-persons/:id/orders", s.ListOrdersByDeliveryPerson)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req NewOrder
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	in, err := req.toInput()
	if err != nil {
		return s.fail(c, err)
	}

	created, err := s.lifecycle.CreateOrder(c.Request().Context(), in)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toOrder(created))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	return s.withOrder(c, s.lifecycle.GetOrder)
}

// DeleteOrder handles DELETE /api/v1/orders/:id and answers 204.
func (s *Server) DeleteOrder(c echo.Context) error {
	orderID, err := parseUUID("orderID", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.lifecycle.DeleteOrder(c.Request().Context(), orderID); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CancelOrder only accepts Pending and Confirmed orders.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := parseUUID("orderID", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	var req CancelOrder
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	ctx := c.Request().Context()
	if err = s.lifecycle.CancelOrder(ctx, orderID, req.Reason); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	orderID, err := parseUUID("orderID", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	var req UpdateStatus
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.fail(c, err)
	}

	updated, err := s.lifecycle.UpdateOrderStatus(c.Request().Context(), orderID, status, req.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrder(updated))
}

// Reorder handles POST /api/v1/orders/:id/reorder and answers 201.
func (s *Server) Reorder(c echo.Context) error {
	orderID, err := parseUUID("orderID", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	var req Reorder
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	created, err := s.lifecycle.Reorder(c.Request().Context(), orderID, req.DeliveryAddress, req.SpecialRequests)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toOrder(created))
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm.
func (s *Server) ConfirmOrder(c echo.Context) error {
	return s.withOrder(c, s.lifecycle.ConfirmOrder)
}

// StartPreparingOrder handles POST /api/v1/orders/:id/prepare.
func (s *Server) StartPreparingOrder(c echo.Context) error {
	return s.withOrder(c, s.lifecycle.StartPreparingOrder)
}

// CompleteOrder handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	return s.withOrder(c, s.lifecycle.CompleteOrder)
}

// AssignDeliveryPerson handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignDeliveryPerson(c echo.Context) error {
	orderID, err := parseUUID("orderID", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	var req AssignDeliveryPerson
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := s.lifecycle.AssignDeliveryPerson(c.Request().Context(), orderID,
		kernel.UUIDFrom(req.DeliveryPersonID))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrder(updated))
}

// UpdateSpecialRequests handles PUT /api/v1/orders/:id/special-requests.
func (s *Server) UpdateSpecialRequests(c echo.Context) error {
	orderID, err := parseUUID("orderID", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	var req SpecialRequests
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := s.lifecycle.UpdateSpecialRequests(c.Request().Context(), orderID, req.SpecialRequests)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrder(updated))
}

// ListOrdersByCustomer handles GET /api/v1/customers/:id/orders. The page and
// size query parameters are optional integers.
func (s *Server) ListOrdersByCustomer(c echo.Context) error {
	return s.listBy(c, "customerID", s.lifecycle.ListOrdersByCustomer)
}

// ListOrdersByStore handles GET /api/v1/stores/:id/orders.
func (s *Server) ListOrdersByStore(c echo.Context) error {
	return s.listBy(c, "storeID", s.lifecycle.ListOrdersByStore)
}

// ListOrdersByDeliveryPerson handles GET /api/v1/delivery-persons/:id/orders.
func (s *Server) ListOrdersByDeliveryPerson(c echo.Context) error {
	return s.listBy(c, "deliveryPersonID", s.lifecycle.ListOrdersByDeliveryPerson)
}

type orderAction func(ctx context.Context, orderID kernel.UUID) (*order.Order, error)

func (s *Server) withOrder(c echo.Context, action orderAction) error {
	orderID, err := parseUUID("orderID", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	o, err := action(c.Request().Context(), orderID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrder(o))
}

type listAction func(ctx context.Context, ownerID kernel.UUID, page, size int) (ports.OrderPage, error)

// listBy serves ?page=&size= listings. Missing values fall back to the first
// page of the default size.
func (s *Server) listBy(c echo.Context, param string, list listAction) error {
	ownerID, err := parseUUID(param, c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	var page, size int
	if err = echo.QueryParamsBinder(c).Int("page", &page).Int("size", &size).BindError(); err != nil {
		return badRequest(c, queryErrorMessage(err))
	}

	result, err := list(c.Request().Context(), ownerID, page, size)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderPage(result))
}

// queryErrorMessage names the offending query parameter.
func queryErrorMessage(err error) string {
	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) {
		return fmt.Sprintf("%s must be an integer", bindErr.Field)
	}
	return "invalid query parameters"
}
