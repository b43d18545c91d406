package alerting

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

type memoryAlertRepo struct {
	alerts []*domain.InventoryAlert
}

func (r *memoryAlertRepo) Create(alert *domain.InventoryAlert) error {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	stored := *alert
	r.alerts = append(r.alerts, &stored)
	return nil
}

func (r *memoryAlertRepo) FindOpenByProductAndType(productID uuid.UUID, alertType string) (*domain.InventoryAlert, error) {
	for _, a := range r.alerts {
		if a.ProductID == productID && a.AlertType == alertType && !a.IsResolved {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryAlertRepo) FindAll(filter domain.AlertFilter) ([]domain.InventoryAlert, error) {
	var out []domain.InventoryAlert
	for _, a := range r.alerts {
		out = append(out, *a)
	}
	return out, nil
}

func (r *memoryAlertRepo) Resolve(id uuid.UUID, resolvedBy string) error {
	for _, a := range r.alerts {
		if a.ID == id {
			a.IsResolved = true
			a.ResolvedBy = resolvedBy
			return nil
		}
	}
	return domain.ErrAlertNotFound
}

func (r *memoryAlertRepo) open(productID uuid.UUID, alertType string) []*domain.InventoryAlert {
	var out []*domain.InventoryAlert
	for _, a := range r.alerts {
		if a.ProductID == productID && a.AlertType == alertType && !a.IsResolved {
			out = append(out, a)
		}
	}
	return out
}

func TestEvaluatorOpensLowStockAlert(t *testing.T) {
	repo := &memoryAlertRepo{}
	evaluator := NewEvaluator(repo)

	product := &domain.Product{ID: uuid.New(), Name: "Widget", SKU: "W-1", StockQuantity: 3, ReorderLevel: 5}
	evaluator.Evaluate(context.Background(), product)

	alerts := repo.open(product.ID, domain.AlertLowStock)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Message, "Widget")
	assert.Contains(t, alerts[0].Message, "Current: 3")
	assert.Empty(t, repo.open(product.ID, domain.AlertOutOfStock))
}

func TestEvaluatorDeduplicatesOpenAlerts(t *testing.T) {
	repo := &memoryAlertRepo{}
	evaluator := NewEvaluator(repo)

	product := &domain.Product{ID: uuid.New(), Name: "Widget", SKU: "W-1", StockQuantity: 3, ReorderLevel: 5}
	evaluator.Evaluate(context.Background(), product)
	evaluator.Evaluate(context.Background(), product)
	evaluator.Evaluate(context.Background(), product)

	assert.Len(t, repo.open(product.ID, domain.AlertLowStock), 1)
}

func TestEvaluatorOpensBothAlertsAtZero(t *testing.T) {
	repo := &memoryAlertRepo{}
	evaluator := NewEvaluator(repo)

	product := &domain.Product{ID: uuid.New(), Name: "Widget", SKU: "W-1", StockQuantity: 0, ReorderLevel: 5}
	evaluator.Evaluate(context.Background(), product)

	assert.Len(t, repo.open(product.ID, domain.AlertLowStock), 1)
	assert.Len(t, repo.open(product.ID, domain.AlertOutOfStock), 1)
}

func TestEvaluatorAutoResolvesWhenStockRecovers(t *testing.T) {
	repo := &memoryAlertRepo{}
	evaluator := NewEvaluator(repo)

	product := &domain.Product{ID: uuid.New(), Name: "Widget", SKU: "W-1", StockQuantity: 0, ReorderLevel: 5}
	evaluator.Evaluate(context.Background(), product)
	require.Len(t, repo.open(product.ID, domain.AlertLowStock), 1)
	require.Len(t, repo.open(product.ID, domain.AlertOutOfStock), 1)

	// Restock above the reorder level clears both conditions.
	product.StockQuantity = 20
	evaluator.Evaluate(context.Background(), product)

	assert.Empty(t, repo.open(product.ID, domain.AlertLowStock))
	assert.Empty(t, repo.open(product.ID, domain.AlertOutOfStock))

	for _, a := range repo.alerts {
		assert.True(t, a.IsResolved)
		assert.Equal(t, "system", a.ResolvedBy)
	}
}

func TestEvaluatorPartialRecoveryKeepsLowStockOpen(t *testing.T) {
	repo := &memoryAlertRepo{}
	evaluator := NewEvaluator(repo)

	product := &domain.Product{ID: uuid.New(), Name: "Widget", SKU: "W-1", StockQuantity: 0, ReorderLevel: 5}
	evaluator.Evaluate(context.Background(), product)

	// Back above zero but still at the reorder level.
	product.StockQuantity = 4
	evaluator.Evaluate(context.Background(), product)

	assert.Len(t, repo.open(product.ID, domain.AlertLowStock), 1)
	assert.Empty(t, repo.open(product.ID, domain.AlertOutOfStock))
}
