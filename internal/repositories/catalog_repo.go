package repositories

import "tienda/internal/models"

// CategoryRepository defines the interface for category data access.
// Delete is protected: it fails while any product references the category.
type CategoryRepository interface {
	GetAll(search, ordering string) ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id string) error
}

// ColorRepository defines the interface for color data access.
// Delete is protected while any product references the color.
type ColorRepository interface {
	GetAll() ([]models.Color, error)
	GetByID(id string) (*models.Color, error)
	Create(color *models.Color) error
	Update(color *models.Color) error
	Delete(id string) error
}

// SizeRepository defines the interface for size data access.
// Delete is protected while any product references the size.
type SizeRepository interface {
	GetAll() ([]models.Size, error)
	GetByID(id string) (*models.Size, error)
	Create(size *models.Size) error
	Update(size *models.Size) error
	Delete(id string) error
}

// SupplierRepository defines the interface for supplier data access.
// Delete is protected while any product references the supplier.
type SupplierRepository interface {
	GetAll() ([]models.Supplier, error)
	GetByID(id string) (*models.Supplier, error)
	Create(supplier *models.Supplier) error
	Update(supplier *models.Supplier) error
	Delete(id string) error
}
