package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a purchase placed by a user. UserID is the owner and is fixed at
// creation time; only the owner or an admin may read or modify the order.
type Order struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string          `json:"user_id" gorm:"type:varchar(36);index"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(12,2)"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// OwnedBy reports whether the order belongs to the given user.
func (o *Order) OwnedBy(userID string) bool {
	return o.UserID == userID
}
