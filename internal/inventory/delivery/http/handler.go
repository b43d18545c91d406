package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
	"github.com/nexus-scm/scm-platform/internal/inventory/usecase/command"
	"github.com/nexus-scm/scm-platform/internal/inventory/usecase/query"
	"github.com/nexus-scm/scm-platform/pkg/logger"
)

// InventoryHandler handles HTTP requests for products, stock, alerts and
// warehouses using CQRS pattern
type InventoryHandler struct {
	// Command handlers
	createHandler      *command.CreateProductHandler
	updateHandler      *command.UpdateProductHandler
	deleteHandler      *command.DeleteProductHandler
	adjustStockHandler *command.AdjustStockHandler
	resolveHandler     *command.ResolveAlertHandler
	warehouseHandler   *command.CreateWarehouseHandler

	// Query handlers
	getProductHandler *query.GetProductHandler
	searchHandler     *query.SearchProductsHandler
	historyHandler    *query.StockHistoryHandler
	checkStockHandler *query.CheckStockHandler
	listAlertsHandler *query.ListAlertsHandler
	warehousesHandler *query.ListWarehousesHandler

	repo           domain.ProductRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	totalProducts  prometheus.Gauge
}

// NewInventoryHandler creates a new inventory handler using dependency injection
// This is used by Wire for automatic dependency injection
func NewInventoryHandler(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	adjustStockHandler *command.AdjustStockHandler,
	resolveHandler *command.ResolveAlertHandler,
	warehouseHandler *command.CreateWarehouseHandler,
	getProductHandler *query.GetProductHandler,
	searchHandler *query.SearchProductsHandler,
	historyHandler *query.StockHistoryHandler,
	checkStockHandler *query.CheckStockHandler,
	listAlertsHandler *query.ListAlertsHandler,
	warehousesHandler *query.ListWarehousesHandler,
	repo domain.ProductRepository,
) *InventoryHandler {
	// Initialize Prometheus metrics
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_service_requests_total",
			Help: "Total number of requests to inventory service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_service_request_duration_seconds",
			Help:    "Duration of inventory service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Summary metric for percentile calculation (p50, p90, p95, p99)
	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "inventory_service_request_duration_summary",
			Help: "Summary of request durations with percentiles (client-side quantiles)",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_service_total_products",
			Help: "Total number of products in the system",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(requestSummary)
	prometheus.MustRegister(totalProducts)

	return &InventoryHandler{
		createHandler:      createHandler,
		updateHandler:      updateHandler,
		deleteHandler:      deleteHandler,
		adjustStockHandler: adjustStockHandler,
		resolveHandler:     resolveHandler,
		warehouseHandler:   warehouseHandler,
		getProductHandler:  getProductHandler,
		searchHandler:      searchHandler,
		historyHandler:     historyHandler,
		checkStockHandler:  checkStockHandler,
		listAlertsHandler:  listAlertsHandler,
		warehousesHandler:  warehousesHandler,
		repo:               repo,
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
		requestSummary:     requestSummary,
		totalProducts:      totalProducts,
	}
}

type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *InventoryHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	// Public routes (no auth required)
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.SearchProducts)).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/api/products/{id}/stock-history", h.metricsMiddleware("/api/products/{id}/stock-history", h.GetStockHistory)).Methods("GET")

	// Authenticated routes
	router.HandleFunc("/api/products/{id}/check-stock", h.metricsMiddleware("/api/products/{id}/check-stock", AuthMiddleware(h.CheckStock))).Methods("GET")
	router.HandleFunc("/api/alerts", h.metricsMiddleware("/api/alerts", AuthMiddleware(h.ListAlerts))).Methods("GET")
	router.HandleFunc("/api/warehouses", h.metricsMiddleware("/api/warehouses", AuthMiddleware(h.ListWarehouses))).Methods("GET")

	// Admin routes (admin role required)
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", AdminMiddleware(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", AdminMiddleware(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", AdminMiddleware(h.DeleteProduct))).Methods("DELETE")
	router.HandleFunc("/api/products/{id}/stock", h.metricsMiddleware("/api/products/{id}/stock", AdminMiddleware(h.AdjustStock))).Methods("POST")
	router.HandleFunc("/api/alerts/{id}/resolve", h.metricsMiddleware("/api/alerts/{id}/resolve", AdminMiddleware(h.ResolveAlert))).Methods("POST")
	router.HandleFunc("/api/warehouses", h.metricsMiddleware("/api/warehouses", AdminMiddleware(h.CreateWarehouse))).Methods("POST")
}

// CreateProduct handles POST /api/products
func (h *InventoryHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string     `json:"name"`
		SKU           string     `json:"sku"`
		Description   string     `json:"description"`
		Category      string     `json:"category"`
		Price         float64    `json:"price"`
		InitialStock  int        `json:"initial_stock"`
		ReorderLevel  int        `json:"reorder_level"`
		MinimumStock  int        `json:"minimum_stock"`
		MaximumStock  int        `json:"maximum_stock"`
		UnitOfMeasure string     `json:"unit_of_measure"`
		WarehouseID   *uuid.UUID `json:"warehouse_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.CreateProductCommand{
		Name:          req.Name,
		SKU:           req.SKU,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		InitialStock:  req.InitialStock,
		ReorderLevel:  req.ReorderLevel,
		MinimumStock:  req.MinimumStock,
		MaximumStock:  req.MaximumStock,
		UnitOfMeasure: req.UnitOfMeasure,
		WarehouseID:   req.WarehouseID,
		CreatedBy:     usernameFromContext(r),
	}

	product, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		respondError(w, statusForError(err), err.Error())
		return
	}

	h.updateProductsMetric()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// SearchProducts handles GET /api/products
func (h *InventoryHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	sortDesc, _ := strconv.ParseBool(r.URL.Query().Get("sort_desc"))
	lowStock, _ := strconv.ParseBool(r.URL.Query().Get("low_stock"))

	q := query.SearchProductsQuery{
		Search:       r.URL.Query().Get("q"),
		Category:     r.URL.Query().Get("category"),
		LowStockOnly: lowStock,
		SortBy:       r.URL.Query().Get("sort_by"),
		SortDesc:     sortDesc,
		Page:         page,
		PageSize:     pageSize,
	}
	if raw := r.URL.Query().Get("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid is_active value")
			return
		}
		q.IsActive = &active
	}

	result, err := h.searchHandler.Handle(r.Context(), q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to search products")
		respondError(w, http.StatusInternalServerError, "Failed to search products")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// GetProduct handles GET /api/products/{id}
func (h *InventoryHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ProductID: id})
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    product,
	})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *InventoryHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name         *string  `json:"name"`
		Description  *string  `json:"description"`
		Category     *string  `json:"category"`
		Price        *float64 `json:"price"`
		ReorderLevel *int     `json:"reorder_level"`
		MinimumStock *int     `json:"minimum_stock"`
		MaximumStock *int     `json:"maximum_stock"`
		IsActive     *bool    `json:"is_active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateProductCommand{
		ProductID:    id,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		ReorderLevel: req.ReorderLevel,
		MinimumStock: req.MinimumStock,
		MaximumStock: req.MaximumStock,
		IsActive:     req.IsActive,
		UpdatedBy:    usernameFromContext(r),
	}

	product, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update product")
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *InventoryHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	cmd := command.DeleteProductCommand{ProductID: id, DeletedBy: usernameFromContext(r)}
	if err := h.deleteHandler.Handle(r.Context(), cmd); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to delete product")
		respondError(w, statusForError(err), err.Error())
		return
	}

	h.updateProductsMetric()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// AdjustStock handles POST /api/products/{id}/stock
func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req struct {
		Quantity        int        `json:"quantity"`
		AdjustmentType  string     `json:"adjustment_type"`
		Reason          string     `json:"reason"`
		ReferenceNumber string     `json:"reference_number"`
		ReferenceID     *uuid.UUID `json:"reference_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.AdjustStockCommand{
		ProductID:       id,
		Quantity:        req.Quantity,
		AdjustmentType:  req.AdjustmentType,
		Reason:          req.Reason,
		ReferenceNumber: req.ReferenceNumber,
		ReferenceID:     req.ReferenceID,
		AdjustedBy:      usernameFromContext(r),
	}

	product, err := h.adjustStockHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to adjust stock")
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock adjusted successfully",
		Data:    product,
	})
}

// GetStockHistory handles GET /api/products/{id}/stock-history
func (h *InventoryHandler) GetStockHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.historyHandler.Handle(r.Context(), query.StockHistoryQuery{
		ProductID: id,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// CheckStock handles GET /api/products/{id}/check-stock
func (h *InventoryHandler) CheckStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil || quantity <= 0 {
		quantity = 1
	}

	result, err := h.checkStockHandler.Handle(r.Context(), query.CheckStockQuery{
		ProductID: id,
		Quantity:  quantity,
	})
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// ListAlerts handles GET /api/alerts
func (h *InventoryHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	unresolved, _ := strconv.ParseBool(r.URL.Query().Get("unresolved"))

	q := query.ListAlertsQuery{
		AlertType:  r.URL.Query().Get("alert_type"),
		Unresolved: unresolved,
		Limit:      limit,
		Offset:     offset,
	}
	if raw := r.URL.Query().Get("product_id"); raw != "" {
		productID, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid product_id value")
			return
		}
		q.ProductID = &productID
	}

	alerts, err := h.listAlertsHandler.Handle(r.Context(), q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list alerts")
		respondError(w, http.StatusInternalServerError, "Failed to list alerts")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    alerts,
	})
}

// ResolveAlert handles POST /api/alerts/{id}/resolve
func (h *InventoryHandler) ResolveAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	cmd := command.ResolveAlertCommand{
		AlertID:    id,
		ResolvedBy: usernameFromContext(r),
	}

	if err := h.resolveHandler.Handle(r.Context(), cmd); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to resolve alert")
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Alert resolved successfully",
	})
}

// CreateWarehouse handles POST /api/warehouses
func (h *InventoryHandler) CreateWarehouse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code    string `json:"code"`
		Name    string `json:"name"`
		Address string `json:"address"`
		City    string `json:"city"`
		Country string `json:"country"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	warehouse, err := h.warehouseHandler.Handle(r.Context(), command.CreateWarehouseCommand{
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create warehouse")
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Warehouse created successfully",
		Data:    warehouse,
	})
}

// ListWarehouses handles GET /api/warehouses
func (h *InventoryHandler) ListWarehouses(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.warehousesHandler.Handle(r.Context(), query.ListWarehousesQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list warehouses")
		respondError(w, http.StatusInternalServerError, "Failed to list warehouses")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    warehouses,
	})
}

func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondError(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Inventory service is healthy",
		})
	}).Methods("GET")
}

// updateProductsMetric updates the total products gauge
func (h *InventoryHandler) updateProductsMetric() {
	count, err := h.repo.Count()
	if err == nil {
		h.totalProducts.Set(float64(count))
	}
}

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrAlertNotFound),
		errors.Is(err, domain.ErrReservationNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSKUAlreadyExists),
		errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidAdjustmentType),
		errors.Is(err, domain.ErrNegativeStock),
		errors.Is(err, domain.ErrInvalidMovement):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseID extracts and validates the {id} path variable
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

// usernameFromContext returns the authenticated username, or "system" for
// unauthenticated paths
func usernameFromContext(r *http.Request) string {
	if username, ok := r.Context().Value(UsernameKey).(string); ok && username != "" {
		return username
	}
	return "system"
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload Response) {
	payload.Timestamp = time.Now().UTC()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{
		Success: false,
		Errors:  []string{message},
	})
}
