package models

import "fmt"

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryFootwear    Category = "footwear"
	CategoryBooks       Category = "books"
	CategoryCosmetics   Category = "cosmetics"
	CategoryHealth      Category = "health"
	CategoryHome        Category = "home"
	CategoryOther       Category = "other"
)

// ParseCategory maps a request string onto a known category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryElectronics, CategoryClothing, CategoryFootwear, CategoryBooks,
		CategoryCosmetics, CategoryHealth, CategoryHome, CategoryOther:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Product is a sellable catalog entry. The stock count is owned by the
// inventory registry: nothing outside it may write Stock.
type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Category Category `json:"category"`
	Stock    int      `json:"stock"`
}

func NewProduct(id, name string, price float64, category Category, stock int) (*Product, error) {
	if price < 0 {
		return nil, fmt.Errorf("product %s: price must not be negative", id)
	}
	if stock < 0 {
		return nil, fmt.Errorf("product %s: stock must not be negative", id)
	}
	return &Product{ID: id, Name: name, Price: price, Category: category, Stock: stock}, nil
}

type CreateProductRequest struct {
	ID       string  `json:"id" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price"`
	Category string  `json:"category" binding:"required"`
	Stock    int     `json:"stock"`
}
