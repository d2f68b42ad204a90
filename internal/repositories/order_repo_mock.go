package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tienda/internal/apperrors"
	"tienda/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetAll returns all orders, newest first.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	sortNewestFirst(orderList)
	return orderList, nil
}

// GetByUser returns orders owned by the given user, newest first.
func (r *MockOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.NotFound("order with ID %s not found", id)
	}
	return &order, nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// Update saves an existing order.
func (r *MockOrderRepository) Update(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return apperrors.NotFound("order with ID %s not found for update", order.ID)
	}
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// Delete removes an order by its ID.
func (r *MockOrderRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return apperrors.NotFound("order with ID %s not found for deletion", id)
	}
	delete(r.orders, id)
	return nil
}
