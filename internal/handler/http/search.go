package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/utafrali/CatalogGo/internal/domain"
	"github.com/utafrali/CatalogGo/internal/service"
	"github.com/utafrali/CatalogGo/pkg/httputil"
)

// SearchHandler handles HTTP requests for product search.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// SearchMeta is the paging, sorting and filter echo attached to every search
// response. Sort carries the resolved index field.
type SearchMeta struct {
	Page    int           `json:"page"`
	PerPage int           `json:"perPage"`
	Total   int           `json:"total"`
	Pages   int           `json:"pages"`
	Sort    string        `json:"sort"`
	Dir     string        `json:"dir"`
	Filters SearchFilters `json:"filters"`
}

// SearchFilters echoes the filters the query actually applied. Unset filters
// are serialized as null.
type SearchFilters struct {
	Q          string   `json:"q"`
	BrandID    *int64   `json:"brandId"`
	CategoryID *int64   `json:"categoryId"`
	PriceMin   *float64 `json:"priceMin"`
	PriceMax   *float64 `json:"priceMax"`
	StockMin   *float64 `json:"stockMin"`
	StockMax   *float64 `json:"stockMax"`
}

// Search handles GET /api/v1/products/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	out, err := h.service.SearchProducts(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: out.Items,
		Meta: SearchMeta{
			Page:    out.Page,
			PerPage: out.PerPage,
			Total:   out.Total,
			Pages:   out.Pages,
			Sort:    out.Sort,
			Dir:     out.Dir,
			Filters: SearchFilters{
				Q:          query.Q,
				BrandID:    query.BrandID,
				CategoryID: query.CategoryID,
				PriceMin:   query.PriceMin,
				PriceMax:   query.PriceMax,
				StockMin:   query.StockMin,
				StockMax:   query.StockMax,
			},
		},
	})
}

// parseQuery builds a normalized product query from URL parameters. A
// malformed numeric parameter is a 400; unknown sort keys are accepted and
// resolved downstream.
func (h *SearchHandler) parseQuery(w http.ResponseWriter, r *http.Request) (*domain.ProductQuery, bool) {
	params := r.URL.Query()
	query := domain.NewProductQuery()

	query.Q = strings.TrimSpace(params.Get("q"))

	if v := params.Get("sort"); v != "" {
		query.Sort = v
	}
	if v := params.Get("dir"); v != "" {
		query.Dir = v
	}

	for name, target := range map[string]**int64{
		"brandId":    &query.BrandID,
		"categoryId": &query.CategoryID,
	} {
		v := params.Get(name)
		if v == "" {
			continue
		}
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id < 0 {
			writeInvalidParam(w, name+" must be a non-negative integer")
			return nil, false
		}
		*target = &id
	}

	for name, target := range map[string]**float64{
		"priceMin": &query.PriceMin,
		"priceMax": &query.PriceMax,
		"stockMin": &query.StockMin,
		"stockMax": &query.StockMax,
	} {
		v := params.Get(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeInvalidParam(w, name+" must be numeric")
			return nil, false
		}
		*target = &f
	}

	if v := params.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			writeInvalidParam(w, "page must be an integer")
			return nil, false
		}
		if page > 0 {
			query.Page = page
		}
	}
	if v := params.Get("perPage"); v != "" {
		perPage, err := strconv.Atoi(v)
		if err != nil || perPage > 1000000 {
			writeInvalidParam(w, "perPage must be an integer between 1 and 1000000")
			return nil, false
		}
		if perPage > 0 {
			query.PerPage = perPage
		}
	}

	return query, true
}

func writeInvalidParam(w http.ResponseWriter, message string) {
	httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
		Error: &httputil.ErrorResponse{
			Code:    "INVALID_PARAMETER",
			Message: message,
		},
	})
}
