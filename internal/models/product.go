package models

import (
	"gorm.io/gorm"

	"tienda/internal/apperrors"
)

// LowStockThreshold is the stock level below which a product counts as
// critical.
const LowStockThreshold = 5

const (
	StockStatusOut       = "Sin stock"
	StockStatusCritical  = "Stock crítico"
	StockStatusAvailable = "Disponible"
)

// Product is a sellable item. Color and Size are protected references: the
// referenced row cannot be deleted while a product points at it.
type Product struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string     `json:"name" gorm:"type:varchar(100);index" validate:"required,min=2,max=100"`
	Stock      int        `json:"stock" gorm:"index" validate:"gte=0"`
	Img        string     `json:"img" gorm:"type:varchar(200)" validate:"omitempty,url"`
	IsActive   bool       `json:"is_active" gorm:"index;default:true"`
	ColorID    string     `json:"color_id" gorm:"type:varchar(36);index" validate:"required"`
	Color      *Color     `json:"color,omitempty" gorm:"foreignKey:ColorID;constraint:OnDelete:RESTRICT"`
	SizeID     string     `json:"size_id" gorm:"type:varchar(36);index" validate:"required"`
	Size       *Size      `json:"size,omitempty" gorm:"foreignKey:SizeID;constraint:OnDelete:RESTRICT"`
	SupplierID string     `json:"supplier_id" gorm:"type:varchar(36);index"`
	Supplier   *Supplier  `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Categories []Category `json:"categories,omitempty" gorm:"many2many:product_categories"`
	gorm.Model `json:"-"`
}

// AddStock increments stock by quantity. Quantity must be positive.
func (p *Product) AddStock(quantity int) error {
	if quantity <= 0 {
		return apperrors.Validation("quantity must be positive, got %d", quantity)
	}
	p.Stock += quantity
	return nil
}

// ReduceStock decrements stock by quantity. Stock never goes negative: a
// quantity above the current stock fails and leaves the product unchanged.
func (p *Product) ReduceStock(quantity int) error {
	if quantity <= 0 {
		return apperrors.Validation("quantity must be positive, got %d", quantity)
	}
	if quantity > p.Stock {
		return apperrors.Validation("insufficient stock: requested %d, available %d", quantity, p.Stock)
	}
	p.Stock -= quantity
	return nil
}

// ToggleStatus flips the active flag. Stock is untouched.
func (p *Product) ToggleStatus() {
	p.IsActive = !p.IsActive
}

// IsAvailable reports whether the product can be sold right now.
func (p *Product) IsAvailable() bool {
	return p.IsActive && p.Stock > 0
}

// IsLowStock reports whether stock sits in the critical window (0, threshold).
func (p *Product) IsLowStock() bool {
	return p.Stock > 0 && p.Stock < LowStockThreshold
}

// StockStatus returns the display label for the current stock level.
func (p *Product) StockStatus() string {
	switch {
	case p.Stock == 0:
		return StockStatusOut
	case p.Stock < LowStockThreshold:
		return StockStatusCritical
	default:
		return StockStatusAvailable
	}
}
