package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
	"github.com/nexus-scm/scm-platform/pkg/logger"
)

// ResolveAlertCommand represents an operator resolving an open alert
type ResolveAlertCommand struct {
	AlertID    uuid.UUID
	ResolvedBy string
}

// ResolveAlertHandler handles manual alert resolution
type ResolveAlertHandler struct {
	alerts domain.AlertRepository
}

// NewResolveAlertHandler creates a new resolve alert handler
func NewResolveAlertHandler(alerts domain.AlertRepository) *ResolveAlertHandler {
	return &ResolveAlertHandler{alerts: alerts}
}

// Handle executes the resolve alert command
func (h *ResolveAlertHandler) Handle(ctx context.Context, cmd ResolveAlertCommand) error {
	resolvedBy := cmd.ResolvedBy
	if resolvedBy == "" {
		resolvedBy = "operator"
	}

	if err := h.alerts.Resolve(cmd.AlertID, resolvedBy); err != nil {
		return err
	}

	logger.Info(ctx).
		Str("alert_id", cmd.AlertID.String()).
		Str("resolved_by", resolvedBy).
		Msg("Alert resolved")

	return nil
}
