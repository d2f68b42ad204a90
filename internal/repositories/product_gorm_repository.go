package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tienda/internal/apperrors"
	"tienda/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves products matching the filter, with color/size preloaded.
func (r *GORMProductRepository) List(filter ProductFilter) ([]models.Product, error) {
	q := r.db.Model(&models.Product{}).
		Joins("LEFT JOIN colors ON colors.id = products.color_id").
		Joins("LEFT JOIN sizes ON sizes.id = products.size_id")

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where(
			"LOWER(products.name) LIKE ? OR LOWER(colors.title) LIKE ? OR LOWER(sizes.title) LIKE ?",
			like, like, like,
		)
	}
	if filter.CategoryID != "" {
		q = q.Joins("JOIN product_categories pc ON pc.product_id = products.id").
			Where("pc.category_id = ?", filter.CategoryID)
	}
	if filter.SupplierID != "" {
		q = q.Where("products.supplier_id = ?", filter.SupplierID)
	}
	if filter.ColorID != "" {
		q = q.Where("products.color_id = ?", filter.ColorID)
	}
	if filter.SizeID != "" {
		q = q.Where("products.size_id = ?", filter.SizeID)
	}
	if filter.ActiveOnly {
		q = q.Where("products.is_active = ?", true)
	}
	q = q.Order(orderClause(filter.Ordering))

	var products []models.Product
	if err := q.Preload("Color").Preload("Size").Preload("Categories").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func orderClause(ordering string) string {
	switch ordering {
	case "-name":
		return "products.name DESC"
	case "stock":
		return "products.stock ASC"
	case "-stock":
		return "products.stock DESC"
	default:
		return "products.name ASC"
	}
}

// ListLowStock returns active products in the critical stock window.
func (r *GORMProductRepository) ListLowStock() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("is_active = ? AND stock > 0 AND stock < ?", true, models.LowStockThreshold).
		Order("stock ASC").
		Preload("Color").Preload("Size").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}
	return products, nil
}

// ListOutOfStock returns active products with no stock.
func (r *GORMProductRepository) ListOutOfStock() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("is_active = ? AND stock = 0", true).
		Order("name ASC").
		Preload("Color").Preload("Size").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list out of stock products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product with its references preloaded.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Color").Preload("Size").Preload("Supplier").Preload("Categories").
		First(&product, "products.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create persists a new product and its category set.
func (r *GORMProductRepository) Create(product *models.Product, categoryIDs []string) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		if len(categoryIDs) > 0 {
			categories, err := categoriesByIDs(tx, categoryIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(product).Association("Categories").Replace(categories); err != nil {
				return fmt.Errorf("failed to set product categories: %w", err)
			}
		}
		return nil
	})
}

// Update saves product fields and, when categoryIDs is non-nil, replaces the
// category set.
func (r *GORMProductRepository) Update(product *models.Product, categoryIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Omit("Categories").Save(product)
		if res.Error != nil {
			return fmt.Errorf("failed to update product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("product with ID %s not found for update", product.ID)
		}
		if categoryIDs != nil {
			categories, err := categoriesByIDs(tx, categoryIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(product).Association("Categories").Replace(categories); err != nil {
				return fmt.Errorf("failed to replace product categories: %w", err)
			}
		}
		return nil
	})
}

func categoriesByIDs(tx *gorm.DB, ids []string) ([]models.Category, error) {
	var categories []models.Category
	if err := tx.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve categories: %w", err)
	}
	if len(categories) != len(ids) {
		return nil, apperrors.Validation("one or more category IDs do not exist")
	}
	return categories, nil
}

// Delete removes a product by its ID.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product with ID %s not found for deletion", id)
	}
	return nil
}

// AdjustStock applies the delta with a compare-and-set UPDATE. The WHERE
// clause rejects any change that would leave stock negative, closing the
// read-then-write race between concurrent reductions.
func (r *GORMProductRepository) AdjustStock(id string, delta int) (*models.Product, error) {
	res := r.db.Model(&models.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to adjust stock for product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the product does not exist or the guard rejected the delta.
		if _, err := r.GetByID(id); err != nil {
			return nil, err
		}
		return nil, apperrors.Validation("insufficient stock to reduce by %d", -delta)
	}
	return r.GetByID(id)
}

// SetActive writes the active flag without touching other columns.
func (r *GORMProductRepository) SetActive(id string, active bool) error {
	res := r.db.Model(&models.Product{}).Where("id = ?", id).UpdateColumn("is_active", active)
	if res.Error != nil {
		return fmt.Errorf("failed to set active flag for product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product with ID %s not found", id)
	}
	return nil
}
