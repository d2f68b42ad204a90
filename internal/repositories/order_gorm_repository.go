package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tienda/internal/apperrors"
	"tienda/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves every order, newest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByUser retrieves the orders owned by one user, newest first.
func (r *GORMOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// Create persists a new order.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update saves an existing order.
func (r *GORMOrderRepository) Update(order *models.Order) error {
	res := r.db.Save(order)
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("order with ID %s not found for update", order.ID)
	}
	return nil
}

// Delete removes an order by its ID.
func (r *GORMOrderRepository) Delete(id string) error {
	res := r.db.Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("order with ID %s not found for deletion", id)
	}
	return nil
}
