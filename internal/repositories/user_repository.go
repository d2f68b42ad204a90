package repositories

import "tienda/internal/models"

// UserRepository defines the interface for user and profile data access.
type UserRepository interface {
	// Create persists the user and, when person is non-nil, the attached
	// profile in the same transaction.
	Create(user *models.User, person *models.Person) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetPerson(userID string) (*models.Person, error)
}
