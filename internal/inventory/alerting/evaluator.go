package alerting

import (
	"context"
	"fmt"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
	"github.com/nexus-scm/scm-platform/pkg/logger"
)

// Evaluator inspects a product's stock after every mutation and opens or
// resolves LOW_STOCK / OUT_OF_STOCK alerts. Open alerts are deduplicated
// per (product, alert type); alerts whose condition no longer holds are
// auto-resolved.
type Evaluator struct {
	alerts domain.AlertRepository
}

// NewEvaluator creates a new alert evaluator
func NewEvaluator(alerts domain.AlertRepository) *Evaluator {
	return &Evaluator{alerts: alerts}
}

// Evaluate applies both threshold rules independently. Alert persistence
// failures are logged, never propagated: alerting must not fail the stock
// operation that triggered it.
func (e *Evaluator) Evaluate(ctx context.Context, product *domain.Product) {
	if product.IsLowStock() {
		e.open(ctx, product, domain.AlertLowStock,
			fmt.Sprintf("Product %s (SKU: %s) is low on stock. Current: %d, Reorder Level: %d",
				product.Name, product.SKU, product.StockQuantity, product.ReorderLevel))
	} else {
		e.resolve(ctx, product, domain.AlertLowStock)
	}

	if product.StockQuantity == 0 {
		e.open(ctx, product, domain.AlertOutOfStock,
			fmt.Sprintf("Product %s (SKU: %s) is out of stock.", product.Name, product.SKU))
	} else {
		e.resolve(ctx, product, domain.AlertOutOfStock)
	}
}

func (e *Evaluator) open(ctx context.Context, product *domain.Product, alertType, message string) {
	existing, err := e.alerts.FindOpenByProductAndType(product.ID, alertType)
	if err != nil {
		logger.Error(ctx).
			Err(err).
			Str("product_id", product.ID.String()).
			Str("alert_type", alertType).
			Msg("Failed to check for open alert")
		return
	}
	if existing != nil {
		return
	}

	alert := &domain.InventoryAlert{
		ProductID: product.ID,
		AlertType: alertType,
		Message:   message,
	}
	if err := e.alerts.Create(alert); err != nil {
		// The partial unique index may reject a concurrent duplicate;
		// that still leaves exactly one open alert, which is the goal.
		logger.Warn(ctx).
			Err(err).
			Str("product_id", product.ID.String()).
			Str("alert_type", alertType).
			Msg("Failed to create alert")
		return
	}

	logger.Info(ctx).
		Str("product_id", product.ID.String()).
		Str("alert_type", alertType).
		Int("stock", product.StockQuantity).
		Msg("Inventory alert opened")
}

func (e *Evaluator) resolve(ctx context.Context, product *domain.Product, alertType string) {
	existing, err := e.alerts.FindOpenByProductAndType(product.ID, alertType)
	if err != nil || existing == nil {
		return
	}

	if err := e.alerts.Resolve(existing.ID, "system"); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("alert_id", existing.ID.String()).
			Msg("Failed to auto-resolve alert")
		return
	}

	logger.Info(ctx).
		Str("product_id", product.ID.String()).
		Str("alert_type", alertType).
		Int("stock", product.StockQuantity).
		Msg("Inventory alert auto-resolved")
}
