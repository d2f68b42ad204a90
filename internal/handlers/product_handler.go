package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"tienda/internal/authz"
	"tienda/internal/middleware"
	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog and the
// stock ledger.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes. auth is the token middleware
// applied to everything except the public catalog.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	grp := router.Group("/product")

	grp.Get("/public_catalog", h.HandlePublicCatalog)
	grp.Get("/low_stock", auth, middleware.RequireAction(authz.ActionStockReport), h.HandleLowStock)
	grp.Get("/out_of_stock", auth, middleware.RequireAction(authz.ActionStockReport), h.HandleOutOfStock)

	grp.Get("/", auth, middleware.RequireAction(authz.ActionCatalogRead), h.HandleList)
	grp.Post("/", auth, middleware.RequireAction(authz.ActionCatalogWrite), h.HandleCreate)
	grp.Get("/:id", auth, middleware.RequireAction(authz.ActionCatalogRead), h.HandleGetByID)
	grp.Put("/:id", auth, middleware.RequireAction(authz.ActionCatalogWrite), h.HandleUpdate)
	grp.Delete("/:id", auth, middleware.RequireAction(authz.ActionCatalogWrite), h.HandleDelete)
	grp.Patch("/:id/toggle_status", auth, middleware.RequireAction(authz.ActionCatalogWrite), h.HandleToggleStatus)
	grp.Patch("/:id/update_stock", auth, middleware.RequireAction(authz.ActionCatalogWrite), h.HandleUpdateStock)
}

func filterFromQuery(c *fiber.Ctx) repositories.ProductFilter {
	return repositories.ProductFilter{
		Search:     c.Query("search"),
		CategoryID: c.Query("categories"),
		SupplierID: c.Query("supplier"),
		ColorID:    c.Query("color"),
		SizeID:     c.Query("size"),
		Ordering:   c.Query("ordering"),
	}
}

// HandleList returns the authenticated product listing.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	products, err := h.service.List(filterFromQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toProductListItems(products))
}

// HandlePublicCatalog returns the reduced projection for anonymous callers.
func (h *ProductHandler) HandlePublicCatalog(c *fiber.Ctx) error {
	products, err := h.service.PublicCatalog(filterFromQuery(c))
	if err != nil {
		return fail(c, err)
	}
	items := toProductPublicItems(products)
	return c.JSON(fiber.Map{
		"count":    len(items),
		"products": items,
	})
}

// HandleLowStock returns active products in the critical stock window.
func (h *ProductHandler) HandleLowStock(c *fiber.Ctx) error {
	products, err := h.service.LowStock()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toProductListItems(products))
}

// HandleOutOfStock returns active products with no stock.
func (h *ProductHandler) HandleOutOfStock(c *fiber.Ctx) error {
	products, err := h.service.OutOfStock()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toProductListItems(products))
}

// HandleGetByID returns the full detail projection of one product.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	product, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toProductDetail(product))
}

// ProductWriteRequest is the create/update payload.
type ProductWriteRequest struct {
	Name       string   `json:"name" validate:"required,min=2,max=100"`
	Stock      int      `json:"stock" validate:"gte=0"`
	Img        string   `json:"img" validate:"omitempty,url"`
	ColorID    string   `json:"color_id" validate:"required"`
	SizeID     string   `json:"size_id" validate:"required"`
	SupplierID string   `json:"supplier_id"`
	Categories []string `json:"categories"`
}

// HandleCreate creates a new product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req ProductWriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	product := &models.Product{
		Name:       req.Name,
		Stock:      req.Stock,
		Img:        req.Img,
		IsActive:   true,
		ColorID:    req.ColorID,
		SizeID:     req.SizeID,
		SupplierID: req.SupplierID,
	}
	if err := h.service.Create(product, req.Categories); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductDetail(product))
}

// HandleUpdate replaces the mutable fields of an existing product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var req ProductWriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	product, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	product.Name = req.Name
	product.Stock = req.Stock
	product.Img = req.Img
	product.ColorID = req.ColorID
	product.SizeID = req.SizeID
	product.SupplierID = req.SupplierID

	if err := h.service.Update(product, req.Categories); err != nil {
		return fail(c, err)
	}
	return c.JSON(toProductDetail(product))
}

// HandleDelete removes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleToggleStatus flips the product's active flag.
func (h *ProductHandler) HandleToggleStatus(c *fiber.Ctx) error {
	product, err := h.service.ToggleStatus(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toProductDetail(product))
}

// UpdateStockRequest is the stock adjustment payload.
type UpdateStockRequest struct {
	Quantity  int    `json:"quantity" validate:"required"`
	Operation string `json:"operation" validate:"required,oneof=add reduce"`
}

// HandleUpdateStock applies an add or reduce adjustment to the stock.
func (h *ProductHandler) HandleUpdateStock(c *fiber.Ctx) error {
	var req UpdateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	product, err := h.service.UpdateStock(c.Params("id"), req.Quantity, req.Operation)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toProductDetail(product))
}
