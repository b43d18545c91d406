package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/nexus-scm/scm-platform/internal/inventory/domain"
	"github.com/nexus-scm/scm-platform/kafka"
)

// fakeProductRepo is an in-memory ProductRepository. UpdateStockCAS honors
// the version check so the retry loop in the handlers is exercised for
// real; conflictsLeft injects version conflicts for contention tests and
// beforeUpdate lets a test interleave a competing write between a
// handler's load and its metadata save.
type fakeProductRepo struct {
	products      map[uuid.UUID]*domain.Product
	conflictsLeft int
	casCalls      int
	beforeUpdate  func()
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*domain.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(product *domain.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	for _, p := range r.products {
		if p.SKU == product.SKU {
			return domain.ErrSKUAlreadyExists
		}
	}
	stored := *product
	r.products[product.ID] = &stored
	return nil
}

func (r *fakeProductRepo) FindByID(id uuid.UUID) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProductRepo) FindBySKU(sku string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			copied := *p
			return &copied, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *fakeProductRepo) Search(filter domain.ProductFilter) ([]domain.Product, int64, error) {
	var out []domain.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) Update(product *domain.Product) error {
	if r.beforeUpdate != nil {
		hook := r.beforeUpdate
		r.beforeUpdate = nil
		hook()
	}
	p, ok := r.products[product.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	// Metadata only; the stock columns belong to UpdateStockCAS.
	stored := *product
	stored.StockQuantity = p.StockQuantity
	stored.Version = p.Version
	r.products[product.ID] = &stored
	return nil
}

func (r *fakeProductRepo) UpdateStockCAS(id uuid.UUID, expectedVersion int64, newStock int) error {
	r.casCalls++
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if r.conflictsLeft > 0 {
		r.conflictsLeft--
		p.Version++
		return domain.ErrVersionConflict
	}
	if p.Version != expectedVersion {
		return domain.ErrVersionConflict
	}
	p.StockQuantity = newStock
	p.Version++
	return nil
}

func (r *fakeProductRepo) Delete(id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Count() (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) stock(id uuid.UUID) int {
	return r.products[id].StockQuantity
}

type fakeMovementRepo struct {
	movements []domain.StockMovement
	createErr error
}

func (r *fakeMovementRepo) Create(movement *domain.StockMovement) error {
	if r.createErr != nil {
		return r.createErr
	}
	if movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *fakeMovementRepo) FindByProductID(productID uuid.UUID, limit, offset int) ([]domain.StockMovement, error) {
	var out []domain.StockMovement
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.movements[i].ProductID == productID {
			out = append(out, r.movements[i])
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) CountByProductID(productID uuid.UUID) (int64, error) {
	var count int64
	for _, m := range r.movements {
		if m.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (r *fakeMovementRepo) byProduct(productID uuid.UUID) []domain.StockMovement {
	var out []domain.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

type fakeAlertRepo struct {
	alerts []*domain.InventoryAlert
}

func (r *fakeAlertRepo) Create(alert *domain.InventoryAlert) error {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	stored := *alert
	r.alerts = append(r.alerts, &stored)
	return nil
}

func (r *fakeAlertRepo) FindOpenByProductAndType(productID uuid.UUID, alertType string) (*domain.InventoryAlert, error) {
	for _, a := range r.alerts {
		if a.ProductID == productID && a.AlertType == alertType && !a.IsResolved {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeAlertRepo) FindAll(filter domain.AlertFilter) ([]domain.InventoryAlert, error) {
	var out []domain.InventoryAlert
	for _, a := range r.alerts {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAlertRepo) Resolve(id uuid.UUID, resolvedBy string) error {
	for _, a := range r.alerts {
		if a.ID == id {
			a.IsResolved = true
			a.ResolvedBy = resolvedBy
			return nil
		}
	}
	return domain.ErrAlertNotFound
}

func (r *fakeAlertRepo) open(productID uuid.UUID, alertType string) []*domain.InventoryAlert {
	var out []*domain.InventoryAlert
	for _, a := range r.alerts {
		if a.ProductID == productID && a.AlertType == alertType && !a.IsResolved {
			out = append(out, a)
		}
	}
	return out
}

// fakeReservationRepo enforces the unique (order, product) pair on Create
// and the status predicate on Transition, matching the database semantics
// the handlers lean on. beforeTransition lets a test play the part of a
// competing delivery settling the row first.
type fakeReservationRepo struct {
	reservations     []*domain.Reservation
	beforeTransition func()
}

func (r *fakeReservationRepo) Create(reservation *domain.Reservation) error {
	for _, res := range r.reservations {
		if res.OrderID == reservation.OrderID && res.ProductID == reservation.ProductID {
			return domain.ErrReservationExists
		}
	}
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	stored := *reservation
	r.reservations = append(r.reservations, &stored)
	return nil
}

func (r *fakeReservationRepo) FindByOrderAndProduct(orderID, productID uuid.UUID) (*domain.Reservation, error) {
	for _, res := range r.reservations {
		if res.OrderID == orderID && res.ProductID == productID {
			copied := *res
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeReservationRepo) FindByOrder(orderID uuid.UUID) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, res := range r.reservations {
		if res.OrderID == orderID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) Transition(reservation *domain.Reservation, from string) (bool, error) {
	if r.beforeTransition != nil {
		hook := r.beforeTransition
		r.beforeTransition = nil
		hook()
	}
	for _, res := range r.reservations {
		if res.ID == reservation.ID {
			if res.Status != from {
				return false, nil
			}
			res.Status = reservation.Status
			res.Quantity = reservation.Quantity
			res.FailureReason = reservation.FailureReason
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReservationRepo) get(orderID, productID uuid.UUID) *domain.Reservation {
	for _, res := range r.reservations {
		if res.OrderID == orderID && res.ProductID == productID {
			return res
		}
	}
	return nil
}

type fakePublisher struct {
	updated  []kafka.StockUpdatedEvent
	reserved []kafka.StockReservedEvent
	released []kafka.StockReleasedEvent
	created  []kafka.ProductCreatedEvent
}

func (p *fakePublisher) PublishStockUpdated(ctx context.Context, event kafka.StockUpdatedEvent) error {
	p.updated = append(p.updated, event)
	return nil
}

func (p *fakePublisher) PublishStockReserved(ctx context.Context, event kafka.StockReservedEvent) error {
	p.reserved = append(p.reserved, event)
	return nil
}

func (p *fakePublisher) PublishStockReleased(ctx context.Context, event kafka.StockReleasedEvent) error {
	p.released = append(p.released, event)
	return nil
}

func (p *fakePublisher) PublishProductCreated(ctx context.Context, event kafka.ProductCreatedEvent) error {
	p.created = append(p.created, event)
	return nil
}
