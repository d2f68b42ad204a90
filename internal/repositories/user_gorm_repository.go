package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tienda/internal/apperrors"
	"tienda/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create persists the user and optional person profile atomically.
func (r *GORMUserRepository) Create(user *models.User, person *models.Person) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if person != nil {
			if person.ID == "" {
				person.ID = uuid.New().String()
			}
			person.UserID = user.ID
			if err := tx.Create(person).Error; err != nil {
				return fmt.Errorf("failed to create person profile: %w", err)
			}
		}
		return nil
	})
}

// GetByUsername retrieves a user by their username.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user with username %s not found", username)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetPerson retrieves the profile attached to a user, with the city chain
// preloaded for display.
func (r *GORMUserRepository) GetPerson(userID string) (*models.Person, error) {
	var person models.Person
	err := r.db.Preload("City").Preload("City.Province").Preload("City.Province.Country").
		First(&person, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("person profile for user %s not found", userID)
		}
		return nil, fmt.Errorf("failed to get person for user %s: %w", userID, err)
	}
	return &person, nil
}
