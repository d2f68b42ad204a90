package repositories

import (
	"tienda/internal/models"
)

// ProductFilter narrows and orders a product listing. Zero values mean "no
// constraint".
type ProductFilter struct {
	Search     string // case-insensitive match on name, color title, size title
	CategoryID string
	SupplierID string
	ColorID    string
	SizeID     string
	Ordering   string // name, -name, stock, -stock
	ActiveOnly bool
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(filter ProductFilter) ([]models.Product, error)
	ListLowStock() ([]models.Product, error)
	ListOutOfStock() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product, categoryIDs []string) error
	Update(product *models.Product, categoryIDs []string) error
	Delete(id string) error
	// AdjustStock applies a relative stock change with a guarded UPDATE so
	// concurrent reductions cannot drive stock negative. Returns the product
	// after the change.
	AdjustStock(id string, delta int) (*models.Product, error)
	SetActive(id string, active bool) error
}
