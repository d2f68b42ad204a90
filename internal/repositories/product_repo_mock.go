package repositories

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"tienda/internal/apperrors"
	"tienda/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// List returns products matching the filter.
func (r *MockProductRepository) List(filter ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if !matchesFilter(p, filter) {
			continue
		}
		out = append(out, p)
	}
	sortProducts(out, filter.Ordering)
	return out, nil
}

func matchesFilter(p models.Product, f ProductFilter) bool {
	if f.ActiveOnly && !p.IsActive {
		return false
	}
	if f.SupplierID != "" && p.SupplierID != f.SupplierID {
		return false
	}
	if f.ColorID != "" && p.ColorID != f.ColorID {
		return false
	}
	if f.SizeID != "" && p.SizeID != f.SizeID {
		return false
	}
	if f.CategoryID != "" {
		found := false
		for _, c := range p.Categories {
			if c.ID == f.CategoryID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		haystack := strings.ToLower(p.Name)
		if p.Color != nil {
			haystack += " " + strings.ToLower(p.Color.Title)
		}
		if p.Size != nil {
			haystack += " " + strings.ToLower(p.Size.Title)
		}
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func sortProducts(products []models.Product, ordering string) {
	sort.Slice(products, func(i, j int) bool {
		switch ordering {
		case "-name":
			return products[i].Name > products[j].Name
		case "stock":
			return products[i].Stock < products[j].Stock
		case "-stock":
			return products[i].Stock > products[j].Stock
		default:
			return products[i].Name < products[j].Name
		}
	})
}

// ListLowStock returns active products in the critical window.
func (r *MockProductRepository) ListLowStock() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Product
	for _, p := range r.products {
		if p.IsActive && p.IsLowStock() {
			out = append(out, p)
		}
	}
	sortProducts(out, "stock")
	return out, nil
}

// ListOutOfStock returns active products with no stock.
func (r *MockProductRepository) ListOutOfStock() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Product
	for _, p := range r.products {
		if p.IsActive && p.Stock == 0 {
			out = append(out, p)
		}
	}
	sortProducts(out, "name")
	return out, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound("product with ID %s not found", id)
	}
	return &product, nil
}

// Create adds a new product. Category IDs become bare category references.
func (r *MockProductRepository) Create(product *models.Product, categoryIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.Categories = categoriesFromIDs(categoryIDs)
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product, categoryIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return apperrors.NotFound("product with ID %s not found for update", product.ID)
	}
	if categoryIDs != nil {
		product.Categories = categoriesFromIDs(categoryIDs)
	}
	r.products[product.ID] = *product
	return nil
}

func categoriesFromIDs(ids []string) []models.Category {
	categories := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		categories = append(categories, models.Category{ID: id})
	}
	return categories
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return apperrors.NotFound("product with ID %s not found for deletion", id)
	}
	delete(r.products, id)
	return nil
}

// AdjustStock applies the delta under the write lock, mirroring the guarded
// UPDATE of the GORM implementation.
func (r *MockProductRepository) AdjustStock(id string, delta int) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound("product with ID %s not found", id)
	}
	if product.Stock+delta < 0 {
		return nil, apperrors.Validation("insufficient stock to reduce by %d", -delta)
	}
	product.Stock += delta
	r.products[id] = product
	return &product, nil
}

// SetActive writes the active flag.
func (r *MockProductRepository) SetActive(id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return apperrors.NotFound("product with ID %s not found", id)
	}
	product.IsActive = active
	r.products[id] = product
	return nil
}
