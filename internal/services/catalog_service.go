package services

import (
	"strings"

	"tienda/internal/apperrors"
	"tienda/internal/models"
	"tienda/internal/repositories"
)

// CatalogService handles the reference entities products hang off of:
// categories, colors, sizes and suppliers. Deletion of any of them is
// protected while a product references it; the repositories enforce that
// and surface it as an integrity error.
type CatalogService struct {
	categories repositories.CategoryRepository
	colors     repositories.ColorRepository
	sizes      repositories.SizeRepository
	suppliers  repositories.SupplierRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	categories repositories.CategoryRepository,
	colors repositories.ColorRepository,
	sizes repositories.SizeRepository,
	suppliers repositories.SupplierRepository,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		colors:     colors,
		sizes:      sizes,
		suppliers:  suppliers,
	}
}

// Categories lists active categories with optional search and ordering.
func (s *CatalogService) Categories(search, ordering string) ([]models.Category, error) {
	return s.categories.GetAll(search, ordering)
}

func (s *CatalogService) GetCategory(id string) (*models.Category, error) {
	return s.categories.GetByID(id)
}

func (s *CatalogService) CreateCategory(category *models.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return apperrors.Validation("category name cannot be empty")
	}
	category.IsActive = true
	return s.categories.Create(category)
}

func (s *CatalogService) UpdateCategory(category *models.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return apperrors.Validation("category name cannot be empty")
	}
	return s.categories.Update(category)
}

func (s *CatalogService) DeleteCategory(id string) error {
	return s.categories.Delete(id)
}

// Colors lists every color.
func (s *CatalogService) Colors() ([]models.Color, error) {
	return s.colors.GetAll()
}

func (s *CatalogService) GetColor(id string) (*models.Color, error) {
	return s.colors.GetByID(id)
}

func (s *CatalogService) CreateColor(color *models.Color) error {
	color.Title = strings.TrimSpace(color.Title)
	if color.Title == "" {
		return apperrors.Validation("color title cannot be empty")
	}
	return s.colors.Create(color)
}

func (s *CatalogService) UpdateColor(color *models.Color) error {
	color.Title = strings.TrimSpace(color.Title)
	if color.Title == "" {
		return apperrors.Validation("color title cannot be empty")
	}
	return s.colors.Update(color)
}

func (s *CatalogService) DeleteColor(id string) error {
	return s.colors.Delete(id)
}

// Sizes lists every size.
func (s *CatalogService) Sizes() ([]models.Size, error) {
	return s.sizes.GetAll()
}

func (s *CatalogService) GetSize(id string) (*models.Size, error) {
	return s.sizes.GetByID(id)
}

func (s *CatalogService) CreateSize(size *models.Size) error {
	size.Title = strings.TrimSpace(size.Title)
	if size.Title == "" {
		return apperrors.Validation("size title cannot be empty")
	}
	return s.sizes.Create(size)
}

func (s *CatalogService) UpdateSize(size *models.Size) error {
	size.Title = strings.TrimSpace(size.Title)
	if size.Title == "" {
		return apperrors.Validation("size title cannot be empty")
	}
	return s.sizes.Update(size)
}

func (s *CatalogService) DeleteSize(id string) error {
	return s.sizes.Delete(id)
}

// Suppliers lists every supplier.
func (s *CatalogService) Suppliers() ([]models.Supplier, error) {
	return s.suppliers.GetAll()
}

func (s *CatalogService) GetSupplier(id string) (*models.Supplier, error) {
	return s.suppliers.GetByID(id)
}

func (s *CatalogService) CreateSupplier(supplier *models.Supplier) error {
	supplier.CompanyName = strings.TrimSpace(supplier.CompanyName)
	if supplier.CompanyName == "" {
		return apperrors.Validation("supplier company name cannot be empty")
	}
	return s.suppliers.Create(supplier)
}

func (s *CatalogService) UpdateSupplier(supplier *models.Supplier) error {
	supplier.CompanyName = strings.TrimSpace(supplier.CompanyName)
	if supplier.CompanyName == "" {
		return apperrors.Validation("supplier company name cannot be empty")
	}
	return s.suppliers.Update(supplier)
}

func (s *CatalogService) DeleteSupplier(id string) error {
	return s.suppliers.Delete(id)
}
