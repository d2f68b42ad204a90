package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"tienda/internal/authz"
	"tienda/internal/middleware"
	"tienda/internal/models"
	"tienda/internal/services"
)

// ReferenceHandler handles HTTP requests for colors, sizes and suppliers.
// Reads need an authenticated caller; writes are admin-only; deletes fail
// with 409 while any product references the row.
type ReferenceHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(service *services.CatalogService) *ReferenceHandler {
	return &ReferenceHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the color, size and supplier routes.
func (h *ReferenceHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	read := middleware.RequireAction(authz.ActionCatalogRead)
	write := middleware.RequireAction(authz.ActionCatalogWrite)

	colors := router.Group("/color", auth)
	colors.Get("/", read, h.HandleListColors)
	colors.Post("/", write, h.HandleCreateColor)
	colors.Get("/:id", read, h.HandleGetColor)
	colors.Put("/:id", write, h.HandleUpdateColor)
	colors.Delete("/:id", write, h.HandleDeleteColor)

	sizes := router.Group("/size", auth)
	sizes.Get("/", read, h.HandleListSizes)
	sizes.Post("/", write, h.HandleCreateSize)
	sizes.Get("/:id", read, h.HandleGetSize)
	sizes.Put("/:id", write, h.HandleUpdateSize)
	sizes.Delete("/:id", write, h.HandleDeleteSize)

	suppliers := router.Group("/supplier", auth)
	suppliers.Get("/", read, h.HandleListSuppliers)
	suppliers.Post("/", write, h.HandleCreateSupplier)
	suppliers.Get("/:id", read, h.HandleGetSupplier)
	suppliers.Put("/:id", write, h.HandleUpdateSupplier)
	suppliers.Delete("/:id", write, h.HandleDeleteSupplier)
}

// TitleRequest is the payload for colors and sizes.
type TitleRequest struct {
	Title string `json:"title" validate:"required,max=50"`
}

func (h *ReferenceHandler) HandleListColors(c *fiber.Ctx) error {
	colors, err := h.service.Colors()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(colors)
}

func (h *ReferenceHandler) HandleGetColor(c *fiber.Ctx) error {
	color, err := h.service.GetColor(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(color)
}

func (h *ReferenceHandler) HandleCreateColor(c *fiber.Ctx) error {
	var req TitleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	color := &models.Color{Title: req.Title}
	if err := h.service.CreateColor(color); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(color)
}

func (h *ReferenceHandler) HandleUpdateColor(c *fiber.Ctx) error {
	var req TitleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	color, err := h.service.GetColor(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	color.Title = req.Title
	if err := h.service.UpdateColor(color); err != nil {
		return fail(c, err)
	}
	return c.JSON(color)
}

func (h *ReferenceHandler) HandleDeleteColor(c *fiber.Ctx) error {
	if err := h.service.DeleteColor(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ReferenceHandler) HandleListSizes(c *fiber.Ctx) error {
	sizes, err := h.service.Sizes()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sizes)
}

func (h *ReferenceHandler) HandleGetSize(c *fiber.Ctx) error {
	size, err := h.service.GetSize(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(size)
}

func (h *ReferenceHandler) HandleCreateSize(c *fiber.Ctx) error {
	var req TitleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	size := &models.Size{Title: req.Title}
	if err := h.service.CreateSize(size); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(size)
}

func (h *ReferenceHandler) HandleUpdateSize(c *fiber.Ctx) error {
	var req TitleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	size, err := h.service.GetSize(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	size.Title = req.Title
	if err := h.service.UpdateSize(size); err != nil {
		return fail(c, err)
	}
	return c.JSON(size)
}

func (h *ReferenceHandler) HandleDeleteSize(c *fiber.Ctx) error {
	if err := h.service.DeleteSize(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SupplierWriteRequest is the supplier create/update payload.
type SupplierWriteRequest struct {
	CompanyName   string `json:"company_name" validate:"required,max=50"`
	ContactPerson string `json:"contact_person" validate:"omitempty,max=50"`
	ContactEmail  string `json:"contact_email" validate:"omitempty,email"`
	Address       string `json:"address" validate:"omitempty,max=100"`
	Country       string `json:"country" validate:"omitempty,max=50"`
}

func (h *ReferenceHandler) HandleListSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.Suppliers()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(suppliers)
}

func (h *ReferenceHandler) HandleGetSupplier(c *fiber.Ctx) error {
	supplier, err := h.service.GetSupplier(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(supplier)
}

func (h *ReferenceHandler) HandleCreateSupplier(c *fiber.Ctx) error {
	var req SupplierWriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	supplier := &models.Supplier{
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		Address:       req.Address,
		Country:       req.Country,
	}
	if err := h.service.CreateSupplier(supplier); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

func (h *ReferenceHandler) HandleUpdateSupplier(c *fiber.Ctx) error {
	var req SupplierWriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	supplier, err := h.service.GetSupplier(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	supplier.CompanyName = req.CompanyName
	supplier.ContactPerson = req.ContactPerson
	supplier.ContactEmail = req.ContactEmail
	supplier.Address = req.Address
	supplier.Country = req.Country

	if err := h.service.UpdateSupplier(supplier); err != nil {
		return fail(c, err)
	}
	return c.JSON(supplier)
}

func (h *ReferenceHandler) HandleDeleteSupplier(c *fiber.Ctx) error {
	if err := h.service.DeleteSupplier(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
