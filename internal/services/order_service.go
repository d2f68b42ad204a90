package services

import (
	"encoding/json"
	"log"

	"github.com/shopspring/decimal"

	"tienda/internal/apperrors"
	"tienda/internal/authz"
	"tienda/internal/models"
	"tienda/internal/repositories"
)

// OrderService handles order placement and the ownership rules around
// reading and modifying orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	events    EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, events EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		events:    events,
	}
}

// Create places an order owned by the requesting principal. The owner is
// fixed here and never changes afterwards.
func (s *OrderService) Create(principal authz.Principal, total decimal.Decimal) (*models.Order, error) {
	if total.IsNegative() {
		return nil, apperrors.Validation("total cannot be negative")
	}

	order := &models.Order{
		UserID: principal.UserID,
		Total:  total,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	s.publishOrderCreated(order)
	return order, nil
}

func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"total":   order.Total.String(),
	})
	if err != nil {
		log.Printf("Failed to marshal order.created event: %v", err)
		return
	}
	if err := s.events.Publish("order", "order.created", body); err != nil {
		log.Printf("Warning: failed to publish order.created event for order %s: %v", order.ID, err)
	}
}

// List returns the orders the principal may see: admins get everything,
// visitors get a list narrowed to their own orders.
func (s *OrderService) List(principal authz.Principal) ([]models.Order, error) {
	if principal.IsAdmin() {
		return s.orderRepo.GetAll()
	}
	return s.orderRepo.GetByUser(principal.UserID)
}

// MyOrders returns the principal's own orders regardless of role.
func (s *OrderService) MyOrders(principal authz.Principal) ([]models.Order, error) {
	return s.orderRepo.GetByUser(principal.UserID)
}

// GetByID returns a single order if the principal owns it or is an admin.
func (s *OrderService) GetByID(principal authz.Principal, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !authz.AllowedOnOrder(principal, order.UserID, authz.ActionOrderRead) {
		return nil, apperrors.Authorization("you do not have access to order %s", id)
	}
	return order, nil
}

// UpdateTotal changes the order total. Only the total is mutable; the owner
// set at creation time stays untouched.
func (s *OrderService) UpdateTotal(principal authz.Principal, id string, total decimal.Decimal) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !authz.AllowedOnOrder(principal, order.UserID, authz.ActionOrderUpdate) {
		return nil, apperrors.Authorization("you do not have access to order %s", id)
	}
	if total.IsNegative() {
		return nil, apperrors.Validation("total cannot be negative")
	}

	order.Total = total
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Delete removes an order. Only admins may delete, regardless of ownership.
func (s *OrderService) Delete(principal authz.Principal, id string) error {
	if !authz.Allowed(principal.Role, authz.ActionOrderDelete) {
		return apperrors.Authorization("only administrators can delete orders")
	}
	return s.orderRepo.Delete(id)
}
