package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

// ListAlertsQuery represents the query for inventory alerts
type ListAlertsQuery struct {
	ProductID  *uuid.UUID
	AlertType  string
	Unresolved bool
	Limit      int
	Offset     int
}

// ListAlertsHandler handles alert listings
type ListAlertsHandler struct {
	alerts domain.AlertRepository
}

// NewListAlertsHandler creates a new list alerts handler
func NewListAlertsHandler(alerts domain.AlertRepository) *ListAlertsHandler {
	return &ListAlertsHandler{alerts: alerts}
}

// Handle executes the list alerts query
func (h *ListAlertsHandler) Handle(ctx context.Context, q ListAlertsQuery) ([]domain.InventoryAlert, error) {
	return h.alerts.FindAll(domain.AlertFilter{
		ProductID:  q.ProductID,
		AlertType:  q.AlertType,
		Unresolved: q.Unresolved,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
}
