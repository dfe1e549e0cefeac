package domain

// ProductView is the API read model built from a search hit. Every field is
// independently optional: documents written by older mappings may lack fields
// or carry them in an unexpected shape, and the decode must never fail on
// such input.
type ProductView struct {
	ID            *int64     `json:"id"`
	Key           *string    `json:"key"`
	Path          *string    `json:"path"`
	Name          *string    `json:"name"`
	SKU           *string    `json:"sku"`
	Description   *string    `json:"description"`
	Price         *PriceView `json:"price"`
	StockQuantity *float64   `json:"stockQuantity"`
	Weight        *float64   `json:"weight"`
	Brand         *RefView   `json:"brand"`
	Category      *RefView   `json:"category"`
	CreatedAt     *string    `json:"createdAt"`
	UpdatedAt     *string    `json:"updatedAt"`
}

// PriceView is the price sub-object of a ProductView.
type PriceView struct {
	Value *float64 `json:"value"`
	Unit  *string  `json:"unit"`
}

// RefView is the brand/category sub-object of a ProductView.
type RefView struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
	Path *string `json:"path"`
}

// ViewFromSource is the lenient decode of a stored document source into the
// API read model. Each field defaults to nil when absent or of the wrong
// shape; numeric fields go through a numeric check before coercion so
// malformed input can never panic.
func ViewFromSource(src map[string]any) ProductView {
	v := ProductView{
		Key:           asString(src["key"]),
		Path:          asString(src["path"]),
		Name:          asString(src["name"]),
		SKU:           asString(src["sku"]),
		Description:   asString(src["description"]),
		StockQuantity: asFloat(src["stockQuantity"]),
		Weight:        asFloat(src["weight"]),
		CreatedAt:     asString(src["createdAt"]),
		UpdatedAt:     asString(src["updatedAt"]),
	}

	if f := asFloat(src["id"]); f != nil {
		id := int64(*f)
		v.ID = &id
	}

	v.Price = asPrice(src["price"])
	v.Brand = asRef(src["brand"])
	v.Category = asRef(src["category"])

	return v
}

// asPrice accepts the {value, unit} object shape or, for legacy documents,
// a bare number; anything else decodes to nil.
func asPrice(raw any) *PriceView {
	if m, ok := raw.(map[string]any); ok {
		return &PriceView{
			Value: asFloat(m["value"]),
			Unit:  asString(m["unit"]),
		}
	}
	if f := asFloat(raw); f != nil {
		return &PriceView{Value: f}
	}
	return nil
}

// asRef accepts only an associative shape for brand/category sub-objects.
func asRef(raw any) *RefView {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	ref := &RefView{
		Name: asString(m["name"]),
		Path: asString(m["path"]),
	}
	if f := asFloat(m["id"]); f != nil {
		id := int64(*f)
		ref.ID = &id
	}
	return ref
}

func asString(raw any) *string {
	if s, ok := raw.(string); ok {
		return &s
	}
	return nil
}

func asFloat(raw any) *float64 {
	switch n := raw.(type) {
	case float64:
		return &n
	case float32:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	}
	return nil
}
