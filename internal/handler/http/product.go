package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/CatalogGo/internal/service"
	"github.com/utafrali/CatalogGo/pkg/httputil"
	"github.com/utafrali/CatalogGo/pkg/validator"
)

// ProductHandler handles HTTP requests for catalog mutations.
type ProductHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(catalog *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// --- Request DTOs ---

// BulkPriceRequest is the JSON request body for a bulk price adjustment.
// Percent is required; Count optionally caps how many products are visited.
type BulkPriceRequest struct {
	Percent *float64 `json:"percent"`
	Count   *int     `json:"count" validate:"omitempty,gte=1"`
}

// SeedRequest is the JSON request body for seeding synthetic products.
type SeedRequest struct {
	Count int `json:"count" validate:"gte=1,lte=10000"`
}

// ReindexRequest is the JSON request body for triggering a reindex.
type ReindexRequest struct {
	Recreate bool `json:"recreate"`
}

// --- Handlers ---

// Update handles PATCH /api/v1/products/{id}
//
// The patch is presence-aware: an absent key leaves the field untouched, an
// explicit null clears it. Unknown fields reject the request.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid JSON body"},
		})
		return
	}

	patch, err := buildPatch(raw)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()},
		})
		return
	}

	result, err := h.catalog.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if result.IndexErr != nil {
		httputil.WriteJSON(w, http.StatusMultiStatus, httputil.Response{
			Data: result.Product,
			Error: &httputil.ErrorResponse{
				Code:    "INDEX_SYNC_FAILED",
				Message: "product saved, but the search index update failed: " + result.IndexErr.Error(),
			},
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result.Product})
}

// buildPatch validates the raw patch body field by field. Every value must be
// the documented type or null; any other key is rejected.
func buildPatch(raw map[string]json.RawMessage) (*service.ProductPatch, error) {
	patch := &service.ProductPatch{}

	for key, val := range raw {
		switch key {
		case "name":
			s, err := decodeNullableString(val)
			if err != nil {
				return nil, fmt.Errorf("name must be a string or null")
			}
			patch.Name, patch.NameSet = s, true

		case "sku":
			s, err := decodeNullableString(val)
			if err != nil {
				return nil, fmt.Errorf("sku must be a string or null")
			}
			patch.SKU, patch.SKUSet = s, true

		case "description":
			s, err := decodeNullableString(val)
			if err != nil {
				return nil, fmt.Errorf("description must be a string or null")
			}
			patch.Description, patch.DescriptionSet = s, true

		case "price":
			p, err := decodeNullablePrice(val)
			if err != nil {
				return nil, fmt.Errorf("price must be an object or null")
			}
			patch.Price, patch.PriceSet = p, true

		case "stockQuantity":
			f, err := decodeNullableFloat(val)
			if err != nil {
				return nil, fmt.Errorf("stockQuantity must be numeric or null")
			}
			patch.StockQuantity, patch.StockQuantitySet = f, true

		case "weight":
			f, err := decodeNullableFloat(val)
			if err != nil {
				return nil, fmt.Errorf("weight must be numeric or null")
			}
			patch.Weight, patch.WeightSet = f, true

		case "brandId":
			id, err := decodeNullableID(val)
			if err != nil {
				return nil, fmt.Errorf("brandId must be a positive integer or null")
			}
			patch.BrandID, patch.BrandIDSet = id, true

		case "categoryId":
			id, err := decodeNullableID(val)
			if err != nil {
				return nil, fmt.Errorf("categoryId must be a positive integer or null")
			}
			patch.CategoryID, patch.CategoryIDSet = id, true

		default:
			return nil, fmt.Errorf("unknown field %q", key)
		}
	}

	return patch, nil
}

func decodeNullableString(val json.RawMessage) (*string, error) {
	var s *string
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeNullableFloat(val json.RawMessage) (*float64, error) {
	var f *float64
	if err := json.Unmarshal(val, &f); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeNullableID(val json.RawMessage) (*int64, error) {
	var id *int64
	if err := json.Unmarshal(val, &id); err != nil {
		return nil, err
	}
	if id != nil && *id <= 0 {
		return nil, fmt.Errorf("not positive")
	}
	return id, nil
}

func decodeNullablePrice(val json.RawMessage) (*service.PricePatch, error) {
	var p *service.PricePatch
	if err := json.Unmarshal(val, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// BulkPriceMeta summarizes a bulk price adjustment in the response envelope.
type BulkPriceMeta struct {
	Percent    float64        `json:"percent"`
	Matched    int            `json:"matched"`
	UpdatedSQL int            `json:"updated_sql"`
	IndexedES  int            `json:"indexed_es"`
	Skipped    BulkPriceSkips `json:"skipped"`
	Errors     int            `json:"errors"`
}

// BulkPriceSkips breaks down why products were left untouched.
type BulkPriceSkips struct {
	NoPriceField   int `json:"noPriceField"`
	NullPriceValue int `json:"nullPriceValue"`
}

// BulkPrice handles POST /api/v1/products/bulk-price
func (h *ProductHandler) BulkPrice(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req BulkPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Percent == nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: `provide {"percent": number}`},
		})
		return
	}

	if err := validator.Validate(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	limit := 0
	if req.Count != nil {
		limit = *req.Count
	}

	result, err := h.catalog.BulkPriceAdjust(r.Context(), *req.Percent, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: result.Errors,
		Meta: BulkPriceMeta{
			Percent:    result.Percent,
			Matched:    result.Matched,
			UpdatedSQL: result.Updated,
			IndexedES:  result.Indexed,
			Skipped: BulkPriceSkips{
				NoPriceField:   result.SkippedNoPrice,
				NullPriceValue: result.SkippedNullValue,
			},
			Errors: result.Failed,
		},
	})
}

// SeedMeta summarizes a seeding run in the response envelope.
type SeedMeta struct {
	Requested int `json:"requested"`
	Created   int `json:"created"`
}

// Seed handles POST /api/v1/products/seed
func (h *ProductHandler) Seed(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req SeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: `provide {"count": <positive integer>}`},
		})
		return
	}

	if err := validator.Validate(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.catalog.SeedProducts(r.Context(), req.Count)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if result.Failed > 0 {
		httputil.WriteJSON(w, http.StatusMultiStatus, httputil.Response{
			Data: result.Created,
			Meta: SeedMeta{Requested: result.Requested, Created: len(result.Created)},
			Error: &httputil.ErrorResponse{
				Code:    "INDEX_SYNC_FAILED",
				Message: fmt.Sprintf("products saved, but %d index operations failed", result.Failed),
			},
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: result.Created,
		Meta: SeedMeta{Requested: result.Requested, Created: len(result.Created)},
	})
}

// Reindex handles POST /api/v1/products/reindex
//
// The rebuild runs in the background; the response only acknowledges the
// trigger. Progress and the final count are logged.
func (h *ProductHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req ReindexRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid JSON body"},
			})
			return
		}
	}

	// Detach from the request so the rebuild survives the response, keeping
	// request-scoped values for log correlation.
	ctx := context.WithoutCancel(r.Context())
	go func() {
		if _, err := h.catalog.Reindex(ctx, req.Recreate); err != nil {
			h.logger.ErrorContext(ctx, "background reindex failed", slog.String("error", err.Error()))
		}
	}()

	httputil.WriteJSON(w, http.StatusAccepted, httputil.Response{
		Data: map[string]any{"status": "reindex started", "recreate": req.Recreate},
	})
}
