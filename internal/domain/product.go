package domain

import (
	"time"
)

// Product is the relational read model of a catalog product. Brand and
// Category references are resolved by the repository at read time, so a
// loaded Product is self-contained.
type Product struct {
	ID            int64     `json:"id"`
	Key           string    `json:"key"`
	Path          string    `json:"path"`
	Name          *string   `json:"name"`
	SKU           *string   `json:"sku"`
	Description   *string   `json:"description"`
	Price         *Quantity `json:"price"`
	StockQuantity *float64  `json:"stockQuantity"`
	Weight        *float64  `json:"weight"`
	Brand         *Brand    `json:"brand,omitempty"`
	Category      *Category `json:"category,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Quantity is a numeric value paired with an optional measurement unit.
// Both parts are independently optional.
type Quantity struct {
	Value *float64 `json:"value"`
	Unit  *Unit    `json:"unit,omitempty"`
}

// Unit is a measurement unit. Code is the stable identifier; Abbreviation is
// the preferred display form when set.
type Unit struct {
	Code         string  `json:"code"`
	Abbreviation *string `json:"abbreviation,omitempty"`
}

// Label returns the preferred textual form of the unit: the abbreviation when
// present, otherwise the raw code.
func (u *Unit) Label() string {
	if u.Abbreviation != nil && *u.Abbreviation != "" {
		return *u.Abbreviation
	}
	return u.Code
}

// Brand is a product brand.
type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Category is a product category. Categories form a tree via ParentID.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	ParentID *int64 `json:"parentId,omitempty"`
}
