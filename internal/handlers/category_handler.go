package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"tienda/internal/authz"
	"tienda/internal/middleware"
	"tienda/internal/models"
	"tienda/internal/services"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CatalogService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the category routes. public_list stays open.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	grp := router.Group("/category")

	grp.Get("/public_list", h.HandlePublicList)
	grp.Get("/", auth, middleware.RequireAction(authz.ActionCatalogRead), h.HandleList)
	grp.Post("/", auth, middleware.RequireAction(authz.ActionCatalogWrite), h.HandleCreate)
	grp.Get("/:id", auth, middleware.RequireAction(authz.ActionCatalogRead), h.HandleGetByID)
	grp.Put("/:id", auth, middleware.RequireAction(authz.ActionCatalogWrite), h.HandleUpdate)
	grp.Delete("/:id", auth, middleware.RequireAction(authz.ActionCatalogWrite), h.HandleDelete)
}

// HandleList lists active categories for authenticated callers.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.Query("search"), c.Query("ordering"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(categories)
}

// HandlePublicList is the unauthenticated category listing.
func (h *CategoryHandler) HandlePublicList(c *fiber.Ctx) error {
	categories, err := h.service.Categories("", "")
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"count":      len(categories),
		"categories": categories,
	})
}

// HandleGetByID returns one category.
func (h *CategoryHandler) HandleGetByID(c *fiber.Ctx) error {
	category, err := h.service.GetCategory(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(category)
}

// CategoryWriteRequest is the create/update payload.
type CategoryWriteRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"omitempty,max=100"`
}

// HandleCreate creates a new category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var req CategoryWriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	category := &models.Category{Name: req.Name, Description: req.Description}
	if err := h.service.CreateCategory(category); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdate saves an existing category.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	var req CategoryWriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	category, err := h.service.GetCategory(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	category.Name = req.Name
	category.Description = req.Description

	if err := h.service.UpdateCategory(category); err != nil {
		return fail(c, err)
	}
	return c.JSON(category)
}

// HandleDelete removes a category unless a product still references it.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
