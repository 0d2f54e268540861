package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
)

// ProductStore é o catálogo em memória.
type ProductStore struct{ s *Store }

func (r *ProductStore) Save(_ context.Context, p domain.Product) (domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.products {
		if existing.Barcode == p.Barcode {
			return domain.Product{}, apperror.NewConflictError(fmt.Sprintf("Já existe produto com o código %s.", p.Barcode))
		}
	}
	r.s.products[p.ID] = p
	return p, nil
}

func (r *ProductStore) FindByID(_ context.Context, id string) (domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe na base de dados.", id))
	}
	return p, nil
}

func (r *ProductStore) FindByBarcode(_ context.Context, barcode string) (domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.products {
		if p.Barcode == barcode && p.IsActive {
			return p, nil
		}
	}
	return domain.Product{}, apperror.NewProductNotFoundError(barcode)
}

// PromotionStore guarda as promoções em ordem de criação.
type PromotionStore struct{ s *Store }

func (r *PromotionStore) Save(_ context.Context, p domain.Promotion) (domain.Promotion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.promotions = append(r.s.promotions, p)
	return p, nil
}

func (r *PromotionStore) ListActive(_ context.Context, now time.Time) ([]domain.Promotion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Promotion{}
	for _, p := range r.s.promotions {
		if p.CoversAt(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PromotionStore) ActiveFor(_ context.Context, productID string, now time.Time) ([]domain.Promotion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Promotion{}
	for _, p := range r.s.promotions {
		if p.CoversAt(now) && (p.IsGlobal() || *p.ProductID == productID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PromotionStore) Deactivate(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.promotions {
		if r.s.promotions[i].ID == id {
			r.s.promotions[i].IsActive = false
			return nil
		}
	}
	return apperror.NewNotFoundError(fmt.Sprintf("Promoção %s não encontrada.", id))
}

// PurchaseStore grava compras e linhas juntas, como a transação do PostgreSQL.
type PurchaseStore struct{ s *Store }

func (r *PurchaseStore) SavePurchase(_ context.Context, purchase domain.Purchase, lines []domain.PurchaseLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.purchaseErr != nil {
		return r.s.purchaseErr
	}
	r.s.purchases = append(r.s.purchases, purchase)
	saved := make([]domain.PurchaseLine, len(lines))
	copy(saved, lines)
	r.s.lines[purchase.ID] = saved
	return nil
}

// UserStore guarda os operadores indexados por e-mail.
type UserStore struct{ s *Store }

func (r *UserStore) Save(_ context.Context, u domain.User) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.users[u.Email]; exists {
		return domain.User{}, apperror.NewConflictError(fmt.Sprintf("O email '%s' já está em uso.", u.Email))
	}
	u.ID = uuid.NewString()
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.Email] = u
	return u, nil
}

func (r *UserStore) FindByEmail(_ context.Context, email string) (domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[email]
	if !ok {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email '%s' não encontrado", email))
	}
	return u, nil
}

// LocationStore guarda os locais.
type LocationStore struct{ s *Store }

func (r *LocationStore) Save(_ context.Context, l domain.Location) (domain.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	l.CreatedAt = r.s.now()
	l.UpdatedAt = l.CreatedAt
	r.s.locations[l.ID] = l
	return l, nil
}

func (r *LocationStore) FindByID(_ context.Context, id string) (domain.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.locations[id]
	if !ok {
		return domain.Location{}, apperror.NewNotFoundError(fmt.Sprintf("Local com ID %s não encontrado.", id))
	}
	return l, nil
}

func (r *LocationStore) FindAll(_ context.Context) ([]domain.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Location, 0, len(r.s.locations))
	for _, l := range r.s.locations {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *LocationStore) Update(_ context.Context, l domain.Location) (domain.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.locations[l.ID]
	if !ok {
		return domain.Location{}, apperror.NewNotFoundError(fmt.Sprintf("Local com ID %s não encontrado para atualização.", l.ID))
	}
	current.Name = l.Name
	current.IsActive = l.IsActive
	current.UpdatedAt = r.s.now()
	r.s.locations[l.ID] = current
	return current, nil
}
