package services

import (
	"encoding/json"
	"log"
	"strings"

	"tienda/internal/apperrors"
	"tienda/internal/models"
	"tienda/internal/repositories"
)

// Stock operations accepted by UpdateStock.
const (
	StockOperationAdd    = "add"
	StockOperationReduce = "reduce"
)

// ProductService handles business logic related to products: the stock
// ledger and the catalog query side.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
	}
}

// List retrieves products matching the filter.
func (s *ProductService) List(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.repo.List(filter)
}

// PublicCatalog retrieves the active products shown to anonymous callers.
// The handler projects them down to the public field set.
func (s *ProductService) PublicCatalog(filter repositories.ProductFilter) ([]models.Product, error) {
	filter.ActiveOnly = true
	return s.repo.List(filter)
}

// LowStock returns active products in the critical stock window.
func (s *ProductService) LowStock() ([]models.Product, error) {
	return s.repo.ListLowStock()
}

// OutOfStock returns active products with no stock.
func (s *ProductService) OutOfStock() ([]models.Product, error) {
	return s.repo.ListOutOfStock()
}

// GetByID retrieves a single product by its ID.
func (s *ProductService) GetByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Create validates and persists a new product.
func (s *ProductService) Create(product *models.Product, categoryIDs []string) error {
	if err := normalizeProduct(product); err != nil {
		return err
	}
	return s.repo.Create(product, categoryIDs)
}

// Update validates and saves an existing product. A nil categoryIDs keeps
// the current category set.
func (s *ProductService) Update(product *models.Product, categoryIDs []string) error {
	if err := normalizeProduct(product); err != nil {
		return err
	}
	return s.repo.Update(product, categoryIDs)
}

func normalizeProduct(product *models.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	if len(product.Name) < 2 {
		return apperrors.Validation("product name must have at least 2 characters")
	}
	if product.Stock < 0 {
		return apperrors.Validation("stock cannot be negative")
	}
	return nil
}

// Delete removes a product by its ID.
func (s *ProductService) Delete(id string) error {
	return s.repo.Delete(id)
}

// UpdateStock applies a stock adjustment. The quantity must be positive and
// a reduce may not exceed the current stock; the repository enforces the
// floor atomically. When a reduction empties the shelf a stock.depleted
// event is published.
func (s *ProductService) UpdateStock(id string, quantity int, operation string) (*models.Product, error) {
	if quantity <= 0 {
		return nil, apperrors.Validation("quantity must be positive, got %d", quantity)
	}

	var delta int
	switch operation {
	case StockOperationAdd:
		delta = quantity
	case StockOperationReduce:
		delta = -quantity
	default:
		return nil, apperrors.Validation("operation must be %q or %q, got %q", StockOperationAdd, StockOperationReduce, operation)
	}

	product, err := s.repo.AdjustStock(id, delta)
	if err != nil {
		return nil, err
	}

	if operation == StockOperationReduce && product.Stock == 0 {
		s.publishStockDepleted(product)
	}
	return product, nil
}

func (s *ProductService) publishStockDepleted(product *models.Product) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"productID": product.ID,
		"name":      product.Name,
		"stock":     product.Stock,
	})
	if err != nil {
		log.Printf("Failed to marshal stock.depleted event: %v", err)
		return
	}
	if err := s.events.Publish("stock", "stock.depleted", body); err != nil {
		log.Printf("Warning: failed to publish stock.depleted event for product %s: %v", product.ID, err)
	}
}

// ToggleStatus flips the product's active flag and returns the updated
// product. Stock is untouched.
func (s *ProductService) ToggleStatus(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	product.ToggleStatus()
	if err := s.repo.SetActive(id, product.IsActive); err != nil {
		return nil, err
	}
	return product, nil
}
