package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"tienda/internal/authz"
	"tienda/internal/middleware"
	"tienda/internal/models"
	"tienda/internal/services"
)

// GeoHandler handles HTTP requests for geographic reference data. Reads are
// public so registration and checkout forms can populate their dropdowns.
type GeoHandler struct {
	service  *services.GeoService
	validate *validator.Validate
}

// NewGeoHandler creates a new GeoHandler.
func NewGeoHandler(service *services.GeoService) *GeoHandler {
	return &GeoHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the geo routes. Writes are admin-only.
func (h *GeoHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	grp := router.Group("/geo")
	write := middleware.RequireAction(authz.ActionCatalogWrite)

	grp.Get("/countries", h.HandleCountries)
	grp.Post("/countries", auth, write, h.HandleCreateCountry)
	grp.Get("/provinces", h.HandleProvinces)
	grp.Post("/provinces", auth, write, h.HandleCreateProvince)
	grp.Get("/cities", h.HandleCities)
	grp.Post("/cities", auth, write, h.HandleCreateCity)
}

// HandleCountries lists all countries.
func (h *GeoHandler) HandleCountries(c *fiber.Ctx) error {
	countries, err := h.service.Countries()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"count":     len(countries),
		"countries": countries,
	})
}

// HandleProvinces lists the provinces of the country named by country_id.
func (h *GeoHandler) HandleProvinces(c *fiber.Ctx) error {
	countryID := c.Query("country_id")
	if countryID == "" {
		return badRequest(c, "Query parameter 'country_id' is required", nil)
	}

	country, provinces, err := h.service.ProvincesByCountry(countryID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"country":   country,
		"count":     len(provinces),
		"provinces": provinces,
	})
}

// HandleCities lists the cities of the province named by province_id.
func (h *GeoHandler) HandleCities(c *fiber.Ctx) error {
	provinceID := c.Query("province_id")
	if provinceID == "" {
		return badRequest(c, "Query parameter 'province_id' is required", nil)
	}

	province, cities, err := h.service.CitiesByProvince(provinceID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"province": province,
		"count":    len(cities),
		"cities":   cities,
	})
}

// NameRequest is the country payload.
type NameRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

// HandleCreateCountry creates a country.
func (h *GeoHandler) HandleCreateCountry(c *fiber.Ctx) error {
	var req NameRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	country := &models.Country{Name: req.Name}
	if err := h.service.CreateCountry(country); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(country)
}

// ProvinceWriteRequest is the province payload.
type ProvinceWriteRequest struct {
	Name      string `json:"name" validate:"required,max=50"`
	CountryID string `json:"country_id" validate:"required"`
}

// HandleCreateProvince creates a province under an existing country.
func (h *GeoHandler) HandleCreateProvince(c *fiber.Ctx) error {
	var req ProvinceWriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	province := &models.Province{Name: req.Name, CountryID: req.CountryID}
	if err := h.service.CreateProvince(province); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(province)
}

// CityWriteRequest is the city payload.
type CityWriteRequest struct {
	Name       string `json:"name" validate:"required,max=50"`
	ProvinceID string `json:"province_id" validate:"required"`
}

// HandleCreateCity creates a city under an existing province.
func (h *GeoHandler) HandleCreateCity(c *fiber.Ctx) error {
	var req CityWriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	city := &models.City{Name: req.Name, ProvinceID: req.ProvinceID}
	if err := h.service.CreateCity(city); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(city)
}
