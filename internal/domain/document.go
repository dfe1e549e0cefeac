package domain

import (
	"encoding/json"
	"time"
)

// Document is the denormalized projection of a Product stored in the search
// index. Its ID equals the source Product's ID, so re-indexing overwrites
// rather than appends. Field names must stay in lockstep with the index
// mapping: the mapping disables dynamic fields, so anything not declared
// there is silently dropped by the index.
type Document struct {
	ID            int64       `json:"id"`
	Key           *string     `json:"key"`
	Path          *string     `json:"path"`
	Name          *string     `json:"name"`
	SKU           *string     `json:"sku"`
	SKUSearch     string      `json:"sku_search"`
	Description   *string     `json:"description"`
	Price         *PriceField `json:"price"`
	StockQuantity *float64    `json:"stockQuantity"`
	Weight        *float64    `json:"weight"`
	Brand         *EntityRef  `json:"brand"`
	Category      *EntityRef  `json:"category"`
	CreatedAt     *string     `json:"createdAt"`
	UpdatedAt     *string     `json:"updatedAt"`
}

// PriceField is the price sub-object of a Document.
type PriceField struct {
	Value *float64 `json:"value"`
	Unit  *string  `json:"unit"`
}

// EntityRef is the flattened brand/category sub-object of a Document.
type EntityRef struct {
	ID   int64   `json:"id"`
	Name *string `json:"name"`
	Path *string `json:"path"`
}

// DocumentFromProduct maps a Product to its search Document. Pure: no I/O,
// no failure for a well-formed Product. Prices and weights are expected
// pre-rounded to 2 decimal places by the caller.
func DocumentFromProduct(p *Product) Document {
	doc := Document{
		ID:            p.ID,
		Key:           strOrNil(p.Key),
		Path:          strOrNil(p.Path),
		Name:          p.Name,
		SKU:           p.SKU,
		Description:   p.Description,
		StockQuantity: p.StockQuantity,
		Weight:        p.Weight,
		Price:         &PriceField{},
	}

	if p.SKU != nil {
		doc.SKUSearch = *p.SKU
	}

	if p.Price != nil {
		doc.Price.Value = p.Price.Value
		if p.Price.Unit != nil {
			label := p.Price.Unit.Label()
			doc.Price.Unit = &label
		}
	}

	if p.Brand != nil {
		doc.Brand = &EntityRef{
			ID:   p.Brand.ID,
			Name: strOrNil(p.Brand.Name),
			Path: strOrNil(p.Brand.Path),
		}
	}
	if p.Category != nil {
		doc.Category = &EntityRef{
			ID:   p.Category.ID,
			Name: strOrNil(p.Category.Name),
			Path: strOrNil(p.Category.Path),
		}
	}

	if !p.CreatedAt.IsZero() {
		s := p.CreatedAt.UTC().Format(time.RFC3339)
		doc.CreatedAt = &s
	}
	if !p.UpdatedAt.IsZero() {
		s := p.UpdatedAt.UTC().Format(time.RFC3339)
		doc.UpdatedAt = &s
	}

	return doc
}

// Source returns the document as the generic map shape the index stores,
// the same shape Search returns in each hit's _source.
func (d Document) Source() map[string]any {
	raw, err := json.Marshal(d)
	if err != nil {
		return map[string]any{}
	}
	var src map[string]any
	if err := json.Unmarshal(raw, &src); err != nil {
		return map[string]any{}
	}
	return src
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
