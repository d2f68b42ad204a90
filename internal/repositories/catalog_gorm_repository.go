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

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// GetAll lists active categories, optionally filtered by a name/description
// search and ordered by name.
func (r *GORMCategoryRepository) GetAll(search, ordering string) ([]models.Category, error) {
	q := r.db.Where("is_active = ?", true)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if ordering == "-name" {
		q = q.Order("name DESC")
	} else {
		q = q.Order("name ASC")
	}
	var categories []models.Category
	if err := q.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *GORMCategoryRepository) GetByID(id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("category with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get category by ID %s: %w", id, err)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *GORMCategoryRepository) Update(category *models.Category) error {
	res := r.db.Save(category)
	if res.Error != nil {
		return fmt.Errorf("failed to update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("category with ID %s not found for update", category.ID)
	}
	return nil
}

// Delete removes a category unless a product still references it.
func (r *GORMCategoryRepository) Delete(id string) error {
	var refs int64
	if err := r.db.Table("product_categories").Where("category_id = ?", id).Count(&refs).Error; err != nil {
		return fmt.Errorf("failed to count category references: %w", err)
	}
	if refs > 0 {
		return apperrors.Integrity("category %s is referenced by %d product(s) and cannot be deleted", id, refs)
	}
	res := r.db.Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("category with ID %s not found for deletion", id)
	}
	return nil
}

// GORMColorRepository is a GORM implementation of ColorRepository.
type GORMColorRepository struct {
	db *gorm.DB
}

func NewGORMColorRepository(db *gorm.DB) *GORMColorRepository {
	return &GORMColorRepository{db: db}
}

func (r *GORMColorRepository) GetAll() ([]models.Color, error) {
	var colors []models.Color
	if err := r.db.Order("title ASC").Find(&colors).Error; err != nil {
		return nil, fmt.Errorf("failed to list colors: %w", err)
	}
	return colors, nil
}

func (r *GORMColorRepository) GetByID(id string) (*models.Color, error) {
	var color models.Color
	if err := r.db.First(&color, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("color with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get color by ID %s: %w", id, err)
	}
	return &color, nil
}

func (r *GORMColorRepository) Create(color *models.Color) error {
	if color.ID == "" {
		color.ID = uuid.New().String()
	}
	if err := r.db.Create(color).Error; err != nil {
		return fmt.Errorf("failed to create color: %w", err)
	}
	return nil
}

func (r *GORMColorRepository) Update(color *models.Color) error {
	res := r.db.Save(color)
	if res.Error != nil {
		return fmt.Errorf("failed to update color: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("color with ID %s not found for update", color.ID)
	}
	return nil
}

// Delete enforces the protected reference: a color in use cannot go away.
func (r *GORMColorRepository) Delete(id string) error {
	if err := protectedDelete(r.db, "color_id", id, "color"); err != nil {
		return err
	}
	res := r.db.Delete(&models.Color{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete color: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("color with ID %s not found for deletion", id)
	}
	return nil
}

// GORMSizeRepository is a GORM implementation of SizeRepository.
type GORMSizeRepository struct {
	db *gorm.DB
}

func NewGORMSizeRepository(db *gorm.DB) *GORMSizeRepository {
	return &GORMSizeRepository{db: db}
}

func (r *GORMSizeRepository) GetAll() ([]models.Size, error) {
	var sizes []models.Size
	if err := r.db.Order("title ASC").Find(&sizes).Error; err != nil {
		return nil, fmt.Errorf("failed to list sizes: %w", err)
	}
	return sizes, nil
}

func (r *GORMSizeRepository) GetByID(id string) (*models.Size, error) {
	var size models.Size
	if err := r.db.First(&size, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("size with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get size by ID %s: %w", id, err)
	}
	return &size, nil
}

func (r *GORMSizeRepository) Create(size *models.Size) error {
	if size.ID == "" {
		size.ID = uuid.New().String()
	}
	if err := r.db.Create(size).Error; err != nil {
		return fmt.Errorf("failed to create size: %w", err)
	}
	return nil
}

func (r *GORMSizeRepository) Update(size *models.Size) error {
	res := r.db.Save(size)
	if res.Error != nil {
		return fmt.Errorf("failed to update size: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("size with ID %s not found for update", size.ID)
	}
	return nil
}

func (r *GORMSizeRepository) Delete(id string) error {
	if err := protectedDelete(r.db, "size_id", id, "size"); err != nil {
		return err
	}
	res := r.db.Delete(&models.Size{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete size: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("size with ID %s not found for deletion", id)
	}
	return nil
}

// GORMSupplierRepository is a GORM implementation of SupplierRepository.
type GORMSupplierRepository struct {
	db *gorm.DB
}

func NewGORMSupplierRepository(db *gorm.DB) *GORMSupplierRepository {
	return &GORMSupplierRepository{db: db}
}

func (r *GORMSupplierRepository) GetAll() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := r.db.Order("company_name ASC").Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *GORMSupplierRepository) GetByID(id string) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("supplier with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get supplier by ID %s: %w", id, err)
	}
	return &supplier, nil
}

func (r *GORMSupplierRepository) Create(supplier *models.Supplier) error {
	if supplier.ID == "" {
		supplier.ID = uuid.New().String()
	}
	if err := r.db.Create(supplier).Error; err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

func (r *GORMSupplierRepository) Update(supplier *models.Supplier) error {
	res := r.db.Save(supplier)
	if res.Error != nil {
		return fmt.Errorf("failed to update supplier: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("supplier with ID %s not found for update", supplier.ID)
	}
	return nil
}

func (r *GORMSupplierRepository) Delete(id string) error {
	if err := protectedDelete(r.db, "supplier_id", id, "supplier"); err != nil {
		return err
	}
	res := r.db.Delete(&models.Supplier{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete supplier: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("supplier with ID %s not found for deletion", id)
	}
	return nil
}

// protectedDelete fails with an integrity error when any live product still
// references the row about to be deleted.
func protectedDelete(db *gorm.DB, column, id, kind string) error {
	var refs int64
	if err := db.Model(&models.Product{}).Where(column+" = ?", id).Count(&refs).Error; err != nil {
		return fmt.Errorf("failed to count %s references: %w", kind, err)
	}
	if refs > 0 {
		return apperrors.Integrity("%s %s is referenced by %d product(s) and cannot be deleted", kind, id, refs)
	}
	return nil
}
