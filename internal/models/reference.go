package models

import "gorm.io/gorm"

// Color is a protected product attribute: deletion is blocked while any
// product references it.
type Color struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title      string `json:"title" gorm:"type:varchar(50)" validate:"required,max=50"`
	gorm.Model `json:"-"`
}

// Size is a protected product attribute, same deletion rule as Color.
type Size struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title      string `json:"title" gorm:"type:varchar(50)" validate:"required,max=50"`
	gorm.Model `json:"-"`
}

// Supplier provides products. Deletion is blocked while referenced.
type Supplier struct {
	ID            string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CompanyName   string `json:"company_name" gorm:"type:varchar(50)" validate:"required,max=50"`
	ContactPerson string `json:"contact_person" gorm:"type:varchar(50)" validate:"omitempty,max=50"`
	ContactEmail  string `json:"contact_email" gorm:"type:varchar(200)" validate:"omitempty,email"`
	Address       string `json:"address" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Country       string `json:"country" gorm:"type:varchar(50)" validate:"omitempty,max=50"`
	gorm.Model    `json:"-"`
}
