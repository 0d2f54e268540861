// Package memstore guarda catálogo, estoque, promoções, compras, operadores e locais em memória.
// Cada sub-repositório (Lots, Products, ...) tem o mesmo contrato do repositório PostgreSQL correspondente.
package memstore

import (
	"sort"
	"sync"
	"time"

	"mercadinho/internal/domain"
)

// Store é o estado compartilhado por todos os sub-repositórios.
type Store struct {
	mu         sync.RWMutex
	products   map[string]domain.Product
	lots       map[string]domain.ShelfLot
	central    map[string]domain.CentralStock
	promotions []domain.Promotion
	purchases  []domain.Purchase
	lines      map[string][]domain.PurchaseLine
	users      map[string]domain.User // por e-mail
	locations  map[string]domain.Location

	// Falhas injetadas, para simular o banco fora do ar.
	purchaseErr  error
	decrementErr map[string]error

	now func() time.Time
}

// New cria um Store vazio.
func New() *Store {
	return &Store{
		products:     make(map[string]domain.Product),
		lots:         make(map[string]domain.ShelfLot),
		central:      make(map[string]domain.CentralStock),
		lines:        make(map[string][]domain.PurchaseLine),
		users:        make(map[string]domain.User),
		locations:    make(map[string]domain.Location),
		decrementErr: make(map[string]error),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Lots() *LotStore             { return &LotStore{s: s} }
func (s *Store) Products() *ProductStore     { return &ProductStore{s: s} }
func (s *Store) Promotions() *PromotionStore { return &PromotionStore{s: s} }
func (s *Store) Purchases() *PurchaseStore   { return &PurchaseStore{s: s} }
func (s *Store) Users() *UserStore           { return &UserStore{s: s} }
func (s *Store) Locations() *LocationStore   { return &LocationStore{s: s} }

// --- Fixtures ---

// PutProduct grava ou substitui um produto.
func (s *Store) PutProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// PutLot grava ou substitui um lote de prateleira.
func (s *Store) PutLot(l domain.ShelfLot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lots[l.ID] = l
}

// SetLotQuantity altera o saldo de um lote por fora, como faria outro tablet ou o admin.
func (s *Store) SetLotQuantity(lotID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.lots[lotID]
	l.Quantity = quantity
	s.lots[lotID] = l
}

// PutPromotion acrescenta uma promoção.
func (s *Store) PutPromotion(p domain.Promotion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promotions = append(s.promotions, p)
}

// FailPurchases faz SavePurchase devolver err até ser chamado com nil.
func (s *Store) FailPurchases(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purchaseErr = err
}

// FailDecrement faz DecrementLot do lote devolver err.
func (s *Store) FailDecrement(lotID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.decrementErr, lotID)
		return
	}
	s.decrementErr[lotID] = err
}

// Lot devolve o lote atual.
func (s *Store) Lot(lotID string) (domain.ShelfLot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lots[lotID]
	return l, ok
}

// SavedPurchases devolve as compras gravadas, na ordem.
func (s *Store) SavedPurchases() []domain.Purchase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Purchase, len(s.purchases))
	copy(out, s.purchases)
	return out
}

// SavedLines devolve as linhas gravadas de uma compra.
func (s *Store) SavedLines(purchaseID string) []domain.PurchaseLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PurchaseLine, len(s.lines[purchaseID]))
	copy(out, s.lines[purchaseID])
	return out
}

// sortLots ordena por preço crescente e, no empate, por id.
func sortLots(lots []domain.ShelfLot) {
	sort.SliceStable(lots, func(i, j int) bool {
		if c := lots[i].Price.Cmp(lots[j].Price); c != 0 {
			return c < 0
		}
		return lots[i].ID < lots[j].ID
	})
}

// Now é o relógio usado pelo Store.
func (s *Store) Now() time.Time { return s.now() }
