package query

import (
	"context"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

// SearchProductsQuery represents a filtered, paginated product search
type SearchProductsQuery struct {
	Search       string
	Category     string
	IsActive     *bool
	LowStockOnly bool
	SortBy       string
	SortDesc     bool
	Page         int
	PageSize     int
}

// SearchProductsResult is a page of products plus pagination metadata
type SearchProductsResult struct {
	Items      []domain.Product `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalCount int64            `json:"total_count"`
	TotalPages int64            `json:"total_pages"`
}

// SearchProductsHandler handles product searches
type SearchProductsHandler struct {
	products domain.ProductRepository
}

// NewSearchProductsHandler creates a new search products handler
func NewSearchProductsHandler(products domain.ProductRepository) *SearchProductsHandler {
	return &SearchProductsHandler{products: products}
}

// Handle executes the search products query
func (h *SearchProductsHandler) Handle(ctx context.Context, q SearchProductsQuery) (*SearchProductsResult, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	filter := domain.ProductFilter{
		Search:       q.Search,
		Category:     q.Category,
		IsActive:     q.IsActive,
		LowStockOnly: q.LowStockOnly,
		SortBy:       q.SortBy,
		SortDesc:     q.SortDesc,
		Page:         page,
		PageSize:     pageSize,
	}

	products, total, err := h.products.Search(filter)
	if err != nil {
		return nil, err
	}

	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}

	return &SearchProductsResult{
		Items:      products,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}
