package consumer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-scm/scm-platform/internal/inventory/alerting"
	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
	"github.com/nexus-scm/scm-platform/internal/inventory/usecase/command"
	"github.com/nexus-scm/scm-platform/kafka"
)

type recordingPublisher struct {
	reserved []kafka.StockReservedEvent
	released []kafka.StockReleasedEvent
}

func (p *recordingPublisher) PublishStockUpdated(ctx context.Context, event kafka.StockUpdatedEvent) error {
	return nil
}

func (p *recordingPublisher) PublishStockReserved(ctx context.Context, event kafka.StockReservedEvent) error {
	p.reserved = append(p.reserved, event)
	return nil
}

func (p *recordingPublisher) PublishStockReleased(ctx context.Context, event kafka.StockReleasedEvent) error {
	p.released = append(p.released, event)
	return nil
}

func (p *recordingPublisher) PublishProductCreated(ctx context.Context, event kafka.ProductCreatedEvent) error {
	return nil
}

type staticProductRepo struct {
	product *domain.Product
}

func (r *staticProductRepo) Create(*domain.Product) error { return nil }

func (r *staticProductRepo) FindByID(id uuid.UUID) (*domain.Product, error) {
	if r.product == nil || r.product.ID != id {
		return nil, domain.ErrProductNotFound
	}
	copied := *r.product
	return &copied, nil
}

func (r *staticProductRepo) FindBySKU(string) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}

func (r *staticProductRepo) Search(domain.ProductFilter) ([]domain.Product, int64, error) {
	return nil, 0, nil
}

func (r *staticProductRepo) Update(*domain.Product) error { return nil }

func (r *staticProductRepo) UpdateStockCAS(id uuid.UUID, expectedVersion int64, newStock int) error {
	if r.product == nil || r.product.ID != id {
		return domain.ErrProductNotFound
	}
	if r.product.Version != expectedVersion {
		return domain.ErrVersionConflict
	}
	r.product.StockQuantity = newStock
	r.product.Version++
	return nil
}

func (r *staticProductRepo) Delete(uuid.UUID) error { return nil }
func (r *staticProductRepo) Count() (int64, error)  { return 0, nil }

type nullMovementRepo struct{}

func (nullMovementRepo) Create(*domain.StockMovement) error { return nil }
func (nullMovementRepo) FindByProductID(uuid.UUID, int, int) ([]domain.StockMovement, error) {
	return nil, nil
}
func (nullMovementRepo) CountByProductID(uuid.UUID) (int64, error) { return 0, nil }

type nullAlertRepo struct{}

func (nullAlertRepo) Create(*domain.InventoryAlert) error { return nil }
func (nullAlertRepo) FindOpenByProductAndType(uuid.UUID, string) (*domain.InventoryAlert, error) {
	return nil, nil
}
func (nullAlertRepo) FindAll(domain.AlertFilter) ([]domain.InventoryAlert, error) { return nil, nil }
func (nullAlertRepo) Resolve(uuid.UUID, string) error                             { return nil }

type memReservationRepo struct {
	reservations []*domain.Reservation
}

func (r *memReservationRepo) Create(res *domain.Reservation) error {
	for _, existing := range r.reservations {
		if existing.OrderID == res.OrderID && existing.ProductID == res.ProductID {
			return domain.ErrReservationExists
		}
	}
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	stored := *res
	r.reservations = append(r.reservations, &stored)
	return nil
}

func (r *memReservationRepo) FindByOrderAndProduct(orderID, productID uuid.UUID) (*domain.Reservation, error) {
	for _, res := range r.reservations {
		if res.OrderID == orderID && res.ProductID == productID {
			copied := *res
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memReservationRepo) FindByOrder(orderID uuid.UUID) ([]domain.Reservation, error) {
	return nil, nil
}

func (r *memReservationRepo) Transition(res *domain.Reservation, from string) (bool, error) {
	for _, existing := range r.reservations {
		if existing.ID == res.ID {
			if existing.Status != from {
				return false, nil
			}
			existing.Status = res.Status
			existing.Quantity = res.Quantity
			existing.FailureReason = res.FailureReason
			return true, nil
		}
	}
	return false, nil
}

func newTestHandlers(product *domain.Product) (*StockCommandHandlers, *recordingPublisher, *staticProductRepo) {
	products := &staticProductRepo{product: product}
	publisher := &recordingPublisher{}
	evaluator := alerting.NewEvaluator(nullAlertRepo{})
	reservations := &memReservationRepo{}

	reserve := command.NewReserveStockHandler(products, nullMovementRepo{}, reservations, evaluator, publisher)
	release := command.NewReleaseStockHandler(products, nullMovementRepo{}, reservations, evaluator, publisher)

	return NewStockCommandHandlers(reserve, release, publisher), publisher, products
}

func TestHandleReserveDecodesAndExecutes(t *testing.T) {
	product := &domain.Product{ID: uuid.New(), SKU: "A-1", Name: "Alpha", StockQuantity: 10, IsActive: true}
	handlers, publisher, products := newTestHandlers(product)

	payload, err := json.Marshal(kafka.ReserveStockCommand{
		OrderID: uuid.New(),
		Items:   []kafka.OrderItem{{ProductID: product.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	require.NoError(t, handlers.handleReserve(context.Background(), payload))
	assert.Equal(t, 6, products.product.StockQuantity)
	require.Len(t, publisher.reserved, 1)
	assert.True(t, publisher.reserved[0].Success)
}

func TestHandleReserveRejectsMalformedPayload(t *testing.T) {
	handlers, publisher, _ := newTestHandlers(nil)

	err := handlers.handleReserve(context.Background(), []byte("{not json"))
	assert.Error(t, err)
	// Nothing decodable, nothing to answer.
	assert.Empty(t, publisher.reserved)
}

func TestHandleReleaseRoundTrip(t *testing.T) {
	product := &domain.Product{ID: uuid.New(), SKU: "A-1", Name: "Alpha", StockQuantity: 10, IsActive: true}
	handlers, publisher, products := newTestHandlers(product)

	orderID := uuid.New()
	reservePayload, err := json.Marshal(kafka.ReserveStockCommand{
		OrderID: orderID,
		Items:   []kafka.OrderItem{{ProductID: product.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	require.NoError(t, handlers.handleReserve(context.Background(), reservePayload))
	require.Equal(t, 6, products.product.StockQuantity)

	releasePayload, err := json.Marshal(kafka.ReleaseStockCommand{
		OrderID: orderID,
		Reason:  "order-cancelled",
		Items:   []kafka.OrderItem{{ProductID: product.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	require.NoError(t, handlers.handleRelease(context.Background(), releasePayload))

	assert.Equal(t, 10, products.product.StockQuantity)
	require.Len(t, publisher.released, 1)
	assert.Len(t, publisher.released[0].ReleasedItems, 1)
}
