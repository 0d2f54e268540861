package memstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
)

// LotStore é o acesso em memória aos lotes e ao estoque central.
type LotStore struct{ s *Store }

func (r *LotStore) Availability(_ context.Context, locationID, productID string) (domain.LotAvailability, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	av := domain.LotAvailability{LocationID: locationID, ProductID: productID, Lots: []domain.ShelfLot{}}
	for _, l := range r.s.lots {
		if l.LocationID == locationID && l.ProductID == productID && l.Sellable() {
			av.Lots = append(av.Lots, l)
			av.Total += l.Quantity
		}
	}
	sortLots(av.Lots)
	return av, nil
}

func (r *LotStore) ListActiveLots(ctx context.Context, locationID, productID string) ([]domain.ShelfLot, error) {
	av, err := r.Availability(ctx, locationID, productID)
	return av.Lots, err
}

func (r *LotStore) TotalAvailable(ctx context.Context, locationID, productID string) (int, error) {
	av, err := r.Availability(ctx, locationID, productID)
	return av.Total, err
}

func (r *LotStore) GetLot(_ context.Context, lotID string) (domain.ShelfLot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.lots[lotID]
	if !ok {
		return domain.ShelfLot{}, apperror.NewNotFoundError(fmt.Sprintf("Lote %s não encontrado.", lotID))
	}
	return l, nil
}

func (r *LotStore) DecrementLot(_ context.Context, lotID string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.decrementErr[lotID]; err != nil {
		return err
	}
	l, ok := r.s.lots[lotID]
	if !ok || l.Quantity < quantity {
		return apperror.NewConflictError(fmt.Sprintf("Saldo do lote %s não cobre a baixa de %d unidades.", lotID, quantity))
	}
	l.Quantity -= quantity
	l.Version++
	l.UpdatedAt = r.s.now()
	r.s.lots[lotID] = l
	return nil
}

func (r *LotStore) GetCentralStock(_ context.Context, productID string) (domain.CentralStock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	cs, ok := r.s.central[productID]
	if !ok {
		return domain.CentralStock{}, apperror.NewNotFoundError(fmt.Sprintf("Estoque central do produto %s não encontrado.", productID))
	}
	return cs, nil
}

func (r *LotStore) AddCentralStock(_ context.Context, productID string, quantity int) (domain.CentralStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cs, ok := r.s.central[productID]
	if !ok {
		cs = domain.CentralStock{ProductID: productID}
	}
	cs.Quantity += quantity
	cs.Version++
	cs.UpdatedAt = r.s.now()
	r.s.central[productID] = cs
	return cs, nil
}

func (r *LotStore) TransferFromCentral(_ context.Context, req domain.StockTransferRequest) (domain.ShelfLot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cs, ok := r.s.central[req.ProductID]
	if !ok {
		return domain.ShelfLot{}, apperror.NewValidationError("Produto sem estoque central para transferir.")
	}
	if cs.Quantity < req.Quantity {
		return domain.ShelfLot{}, apperror.NewValidationError(fmt.Sprintf("Estoque central insuficiente: %d disponível.", cs.Quantity))
	}

	now := r.s.now()
	cs.Quantity -= req.Quantity
	cs.Version++
	cs.UpdatedAt = now
	r.s.central[req.ProductID] = cs

	var target *domain.ShelfLot
	for _, l := range r.s.lots {
		if l.LocationID == req.LocationID && l.ProductID == req.ProductID && l.IsActive && l.Price.Equal(req.Price) {
			if target == nil || l.CreatedAt.Before(target.CreatedAt) {
				l := l
				target = &l
			}
		}
	}

	if target == nil {
		lot := domain.ShelfLot{
			ID:         uuid.New().String(),
			LocationID: req.LocationID,
			ProductID:  req.ProductID,
			Price:      req.Price,
			Quantity:   req.Quantity,
			IsActive:   true,
			Version:    1,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		r.s.lots[lot.ID] = lot
		return lot, nil
	}

	target.Quantity += req.Quantity
	target.Version++
	target.UpdatedAt = now
	r.s.lots[target.ID] = *target
	return *target, nil
}

func (r *LotStore) AdjustLot(_ context.Context, lotID string, quantity int) (domain.ShelfLot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.lots[lotID]
	if !ok {
		return domain.ShelfLot{}, apperror.NewNotFoundError(fmt.Sprintf("Lote %s não encontrado.", lotID))
	}
	l.Quantity = quantity
	l.Version++
	l.UpdatedAt = r.s.now()
	r.s.lots[lotID] = l
	return l, nil
}

func (r *LotStore) DeactivateLot(_ context.Context, lotID string) (domain.ShelfLot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.lots[lotID]
	if !ok {
		return domain.ShelfLot{}, apperror.NewNotFoundError(fmt.Sprintf("Lote %s não encontrado.", lotID))
	}
	l.IsActive = false
	l.Version++
	l.UpdatedAt = r.s.now()
	r.s.lots[lotID] = l
	return l, nil
}
