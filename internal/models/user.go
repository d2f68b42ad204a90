package models

import (
	"gorm.io/gorm"

	"tienda/internal/authz"
)

// User is an account that can authenticate against the API. Role decides
// the default capability set; new registrations get the visitor role.
type User struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string     `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string     `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string     `json:"-" gorm:"type:varchar(255)" validate:"required,min=8"`
	Role       authz.Role `json:"role" gorm:"type:varchar(20);default:visitor"`
	IsActive   bool       `json:"is_active" gorm:"default:true"`
	gorm.Model `json:"-"`
}

// Principal converts the account into the request-scoped identity the
// access control gate works with.
func (u *User) Principal() authz.Principal {
	return authz.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// Person is the profile attached to a user account: legal name, document
// number and the city used for shipping forms.
type Person struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Name       string `json:"name" gorm:"type:varchar(150)" validate:"required,max=150"`
	LastName   string `json:"last_name" gorm:"type:varchar(150)" validate:"required,max=150"`
	DNI        string `json:"dni" gorm:"type:varchar(40)" validate:"required,max=40"`
	CityID     string `json:"city_id" gorm:"type:varchar(36)"`
	City       *City  `json:"city,omitempty" gorm:"foreignKey:CityID"`
	gorm.Model `json:"-"`
}
