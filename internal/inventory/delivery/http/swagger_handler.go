package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for Inventory Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CreateProduct godoc
// @Summary Create new product
// @Description Create a new product with an optional initial stock level (Admin only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,sku=string,description=string,category=string,price=number,initial_stock=int,reorder_level=int,minimum_stock=int,maximum_stock=int,unit_of_measure=string} true "Product data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,errors=array}
// @Failure 409 {object} object{success=bool,errors=array}
// @Router /api/products [post]
func (h *InventoryHandler) CreateProductDoc() {}

// SearchProducts godoc
// @Summary Search products
// @Description Search products with filtering, sorting and pagination
// @Tags Products
// @Produce json
// @Param q query string false "Free text search over name, SKU and description"
// @Param category query string false "Category filter"
// @Param is_active query bool false "Active filter"
// @Param low_stock query bool false "Only products at or below reorder level"
// @Param sort_by query string false "Sort field: name, price, stock, created_at"
// @Param sort_desc query bool false "Sort descending"
// @Param page query int false "Page number (1-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} object{success=bool,data=object{items=array,page=int,page_size=int,total_count=int,total_pages=int}}
// @Router /api/products [get]
func (h *InventoryHandler) SearchProductsDoc() {}

// GetProduct godoc
// @Summary Get product by ID
// @Description Get a specific product by its ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,errors=array}
// @Router /api/products/{id} [get]
func (h *InventoryHandler) GetProductDoc() {}

// AdjustStock godoc
// @Summary Adjust product stock
// @Description Apply an INCREMENT, DECREMENT or SET stock adjustment and record a movement (Admin only)
// @Tags Stock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body object{quantity=int,adjustment_type=string,reason=string,reference_number=string} true "Adjustment data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,errors=array}
// @Failure 404 {object} object{success=bool,errors=array}
// @Failure 409 {object} object{success=bool,errors=array}
// @Router /api/products/{id}/stock [post]
func (h *InventoryHandler) AdjustStockDoc() {}

// GetStockHistory godoc
// @Summary Get stock movement history
// @Description Get the stock movement ledger for a product, newest first
// @Tags Stock
// @Produce json
// @Param id path string true "Product ID"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object{movements=array,total_count=int}}
// @Failure 404 {object} object{success=bool,errors=array}
// @Router /api/products/{id}/stock-history [get]
func (h *InventoryHandler) GetStockHistoryDoc() {}

// CheckStock godoc
// @Summary Check stock availability
// @Description Check whether the requested quantity is available for a product (Authenticated users)
// @Tags Stock
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Param quantity query int false "Requested quantity (default: 1)"
// @Success 200 {object} object{success=bool,data=object{product_id=string,requested=int,current_stock=int,available=bool}}
// @Failure 404 {object} object{success=bool,errors=array}
// @Router /api/products/{id}/check-stock [get]
func (h *InventoryHandler) CheckStockDoc() {}

// ListAlerts godoc
// @Summary List inventory alerts
// @Description List inventory alerts with optional filters (Authenticated users)
// @Tags Alerts
// @Security BearerAuth
// @Produce json
// @Param product_id query string false "Product ID filter"
// @Param alert_type query string false "Alert type: LOW_STOCK, OUT_OF_STOCK"
// @Param unresolved query bool false "Only unresolved alerts"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/alerts [get]
func (h *InventoryHandler) ListAlertsDoc() {}

// ResolveAlert godoc
// @Summary Resolve an alert
// @Description Mark an open inventory alert as resolved (Admin only)
// @Tags Alerts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,errors=array}
// @Router /api/alerts/{id}/resolve [post]
func (h *InventoryHandler) ResolveAlertDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,errors=array}
// @Router /health [get]
func (h *InventoryHandler) HealthCheckDoc() {}
