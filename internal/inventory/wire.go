//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/nexus-scm/scm-platform/internal/inventory/alerting"
	"github.com/nexus-scm/scm-platform/internal/inventory/consumer"
	"github.com/nexus-scm/scm-platform/internal/inventory/delivery/http"
	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
	"github.com/nexus-scm/scm-platform/internal/inventory/repository"
	"github.com/nexus-scm/scm-platform/internal/inventory/usecase/command"
	"github.com/nexus-scm/scm-platform/internal/inventory/usecase/query"
)

// Repository providers
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepositoryWithTracing(db)
}

func ProvideMovementRepository(db *gorm.DB) domain.MovementRepository {
	return repository.NewGormMovementRepository(db)
}

func ProvideAlertRepository(db *gorm.DB) domain.AlertRepository {
	return repository.NewGormAlertRepository(db)
}

func ProvideReservationRepository(db *gorm.DB) domain.ReservationRepository {
	return repository.NewGormReservationRepository(db)
}

func ProvideWarehouseRepository(db *gorm.DB) domain.WarehouseRepository {
	return repository.NewGormWarehouseRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideMovementRepository,
	ProvideAlertRepository,
	ProvideReservationRepository,
	ProvideWarehouseRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewCreateProductHandler,
	command.NewUpdateProductHandler,
	command.NewDeleteProductHandler,
	command.NewAdjustStockHandler,
	command.NewResolveAlertHandler,
	command.NewCreateWarehouseHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetProductHandler,
	query.NewSearchProductsHandler,
	query.NewStockHistoryHandler,
	query.NewCheckStockHandler,
	query.NewListAlertsHandler,
	query.NewListWarehousesHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	alerting.NewEvaluator,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher command.EventPublisher) (*http.InventoryHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewInventoryHandler,
	)
	return nil, nil
}

// InitializeStockCommandHandlers initializes the Kafka consumer-side handlers
func InitializeStockCommandHandlers(db *gorm.DB, publisher command.EventPublisher) (*consumer.StockCommandHandlers, error) {
	wire.Build(
		RepositorySet,
		alerting.NewEvaluator,
		command.NewReserveStockHandler,
		command.NewReleaseStockHandler,
		consumer.NewStockCommandHandlers,
	)
	return nil, nil
}
