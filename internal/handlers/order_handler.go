package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"tienda/internal/authz"
	"tienda/internal/middleware"
	"tienda/internal/services"
)

// OrderHandler handles HTTP requests for orders. Every route requires
// authentication; object-level ownership is enforced in the service.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	grp := router.Group("/order", auth)

	grp.Get("/my_orders", middleware.RequireAction(authz.ActionOrderRead), h.HandleMyOrders)
	grp.Get("/", middleware.RequireAction(authz.ActionOrderRead), h.HandleList)
	grp.Post("/", middleware.RequireAction(authz.ActionOrderCreate), h.HandleCreate)
	grp.Get("/:id", middleware.RequireAction(authz.ActionOrderRead), h.HandleGetByID)
	grp.Put("/:id", middleware.RequireAction(authz.ActionOrderUpdate), h.HandleUpdate)
	grp.Delete("/:id", h.HandleDelete)
}

// HandleList lists orders: all of them for admins, own orders for visitors.
func (h *OrderHandler) HandleList(c *fiber.Ctx) error {
	orders, err := h.service.List(middleware.Principal(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(orders)
}

// HandleMyOrders lists the requester's own orders regardless of role.
func (h *OrderHandler) HandleMyOrders(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	orders, err := h.service.MyOrders(principal)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"count":  len(orders),
		"orders": orders,
	})
}

// HandleGetByID returns one order if the requester owns it or is an admin.
func (h *OrderHandler) HandleGetByID(c *fiber.Ctx) error {
	order, err := h.service.GetByID(middleware.Principal(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}

// OrderWriteRequest is the create/update payload. Only the total is
// client-controlled; the owner always comes from the token.
type OrderWriteRequest struct {
	Total decimal.Decimal `json:"total"`
}

// HandleCreate places a new order owned by the requester.
func (h *OrderHandler) HandleCreate(c *fiber.Ctx) error {
	var req OrderWriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	order, err := h.service.Create(middleware.Principal(c), req.Total)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleUpdate changes the total of an order the requester may modify.
func (h *OrderHandler) HandleUpdate(c *fiber.Ctx) error {
	var req OrderWriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	order, err := h.service.UpdateTotal(middleware.Principal(c), c.Params("id"), req.Total)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}

// HandleDelete removes an order; the service restricts this to admins.
func (h *OrderHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(middleware.Principal(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
