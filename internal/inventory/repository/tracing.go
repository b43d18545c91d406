package repository

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// GormProductRepositoryWithTracing wraps GormProductRepository with tracing
// for the hot stock-mutation path.
type GormProductRepositoryWithTracing struct {
	*GormProductRepository
}

// NewGormProductRepositoryWithTracing creates a new repository with tracing
func NewGormProductRepositoryWithTracing(db *gorm.DB) *GormProductRepositoryWithTracing {
	return &GormProductRepositoryWithTracing{
		GormProductRepository: NewGormProductRepository(db),
	}
}

// FindByIDWithContext traces a product lookup
func (r *GormProductRepositoryWithTracing) FindByIDWithContext(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	_, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(
			attribute.String("product.id", id.String()),
		),
	)
	defer span.End()

	product, err := r.GormProductRepository.FindByID(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("product.sku", product.SKU),
		attribute.Int("product.stock", product.StockQuantity),
	)
	return product, nil
}

// UpdateStockCASWithContext traces the compare-and-swap stock write
func (r *GormProductRepositoryWithTracing) UpdateStockCASWithContext(ctx context.Context, id uuid.UUID, expectedVersion int64, newStock int) error {
	_, span := tracer.Start(ctx, "repository.UpdateStockCAS",
		trace.WithAttributes(
			attribute.String("product.id", id.String()),
			attribute.Int64("product.version", expectedVersion),
			attribute.Int("stock.new", newStock),
		),
	)
	defer span.End()

	err := r.GormProductRepository.UpdateStockCAS(id, expectedVersion, newStock)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// SearchWithContext traces a product search
func (r *GormProductRepositoryWithTracing) SearchWithContext(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	_, span := tracer.Start(ctx, "repository.Search",
		trace.WithAttributes(
			attribute.String("query.search", filter.Search),
			attribute.String("query.category", filter.Category),
			attribute.Bool("query.low_stock_only", filter.LowStockOnly),
		),
	)
	defer span.End()

	products, total, err := r.GormProductRepository.Search(filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, err
	}

	span.SetAttributes(attribute.Int64("result.total", total))
	return products, total, nil
}
