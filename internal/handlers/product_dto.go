package handlers

import (
	"time"

	"tienda/internal/models"
)

// Explicit per-use-case projections of Product. Each endpoint returns
// exactly the fields its audience needs instead of the full entity.

// ProductListItem is the row shape for authenticated listings.
type ProductListItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Stock           int    `json:"stock"`
	Img             string `json:"img,omitempty"`
	ColorName       string `json:"color_name,omitempty"`
	SizeName        string `json:"size_name,omitempty"`
	TotalCategories int    `json:"total_categories"`
	IsLowStock      bool   `json:"is_low_stock"`
	CreatedAt       time.Time `json:"created_at"`
}

// ProductDetail is the full shape for single-product reads.
type ProductDetail struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Stock       int              `json:"stock"`
	Img         string           `json:"img,omitempty"`
	IsActive    bool             `json:"is_active"`
	Color       *models.Color    `json:"color,omitempty"`
	Size        *models.Size     `json:"size,omitempty"`
	Supplier    *models.Supplier `json:"supplier,omitempty"`
	Categories  []string         `json:"categories"`
	IsAvailable bool             `json:"is_available"`
	IsLowStock  bool             `json:"is_low_stock"`
	StockStatus string           `json:"stock_status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProductPublicItem is the reduced shape for the anonymous catalog. It
// exposes availability as a boolean, never the exact stock figure.
type ProductPublicItem struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Img            string `json:"img,omitempty"`
	StockAvailable bool   `json:"stock_available"`
}

func toProductListItem(p *models.Product) ProductListItem {
	item := ProductListItem{
		ID:              p.ID,
		Name:            p.Name,
		Stock:           p.Stock,
		Img:             p.Img,
		TotalCategories: len(p.Categories),
		IsLowStock:      p.IsLowStock(),
		CreatedAt:       p.CreatedAt,
	}
	if p.Color != nil {
		item.ColorName = p.Color.Title
	}
	if p.Size != nil {
		item.SizeName = p.Size.Title
	}
	return item
}

func toProductListItems(products []models.Product) []ProductListItem {
	items := make([]ProductListItem, 0, len(products))
	for i := range products {
		items = append(items, toProductListItem(&products[i]))
	}
	return items
}

func toProductDetail(p *models.Product) ProductDetail {
	categories := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		categories = append(categories, c.Name)
	}
	return ProductDetail{
		ID:          p.ID,
		Name:        p.Name,
		Stock:       p.Stock,
		Img:         p.Img,
		IsActive:    p.IsActive,
		Color:       p.Color,
		Size:        p.Size,
		Supplier:    p.Supplier,
		Categories:  categories,
		IsAvailable: p.IsAvailable(),
		IsLowStock:  p.IsLowStock(),
		StockStatus: p.StockStatus(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductPublicItems(products []models.Product) []ProductPublicItem {
	items := make([]ProductPublicItem, 0, len(products))
	for i := range products {
		p := &products[i]
		items = append(items, ProductPublicItem{
			ID:             p.ID,
			Name:           p.Name,
			Img:            p.Img,
			StockAvailable: p.Stock > 0,
		})
	}
	return items
}
