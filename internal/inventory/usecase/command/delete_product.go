package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
	"github.com/nexus-scm/scm-platform/pkg/logger"
)

// DeleteProductCommand represents the command to soft-delete a product
type DeleteProductCommand struct {
	ProductID uuid.UUID
	DeletedBy string
}

// DeleteProductHandler handles product deletion. Products are only ever
// soft-deleted; their movement history stays intact.
type DeleteProductHandler struct {
	products domain.ProductRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(products domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{products: products}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if err := h.products.Delete(cmd.ProductID); err != nil {
		return err
	}

	logger.Info(ctx).
		Str("product_id", cmd.ProductID.String()).
		Str("deleted_by", cmd.DeletedBy).
		Msg("Product deleted")

	return nil
}
