package models

import "gorm.io/gorm"

// Category groups products for navigation. A category referenced by any
// product cannot be deleted.
type Category struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string `json:"name" gorm:"type:varchar(50);index" validate:"required,max=50"`
	Description string `json:"description" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	gorm.Model  `json:"-"`
}
