package checkoutservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
	"mercadinho/internal/pkg/logger"
)

// LotLedger lê e baixa o saldo dos lotes.
type LotLedger interface {
	GetLot(ctx context.Context, lotID string) (domain.ShelfLot, error)
	DecrementLot(ctx context.Context, lotID string, quantity int) error
}

// PurchaseWriter grava cabeçalho e linhas da compra de forma atômica.
type PurchaseWriter interface {
	SavePurchase(ctx context.Context, purchase domain.Purchase, lines []domain.PurchaseLine) error
}

// DriftReporter recebe as baixas de estoque que falharam depois da compra gravada.
type DriftReporter interface {
	ReportDrift(ctx context.Context, drift domain.StockDrift)
}

// Service finaliza carrinhos: revalida o estoque, grava a compra e baixa os lotes.
type Service struct {
	lots      LotLedger
	purchases PurchaseWriter
	drift     DriftReporter
	logger    logger.Logger
	now       func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Checkout.
func NewService(lots LotLedger, purchases PurchaseWriter, drift DriftReporter, logger logger.Logger) *Service {
	return &Service{
		lots:      lots,
		purchases: purchases,
		drift:     drift,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Checkout percorre Validating -> Committing -> Succeeded | PartiallyFailed.
// Falhas antes de gravar abortam sem deixar nada persistido. Depois de gravada, a compra é a
// fonte de verdade: baixas que falham viram divergência reportada, nunca erro.
func (s *Service) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResult, error) {
	s.logger.Debug("Iniciando checkout.", map[string]interface{}{
		"location_id":    req.LocationID,
		"payment_method": req.PaymentMethod,
		"lines":          len(req.Cart.Lines),
	})

	if err := validateRequest(&req); err != nil {
		s.logger.Warn("Pedido de checkout inválido.", map[string]interface{}{"error": err.Error()})
		return domain.CheckoutResult{}, err
	}

	s.transition(domain.CheckoutValidating, req.LocationID)
	if err := s.validateStock(ctx, req.LocationID, req.Cart); err != nil {
		return domain.CheckoutResult{}, err
	}

	s.transition(domain.CheckoutCommitting, req.LocationID)
	purchase, lines := s.buildPurchase(req)
	if err := s.purchases.SavePurchase(ctx, purchase, lines); err != nil {
		s.logger.Error("Falha ao gravar compra; nenhum estoque foi baixado.", err)
		return domain.CheckoutResult{}, apperror.NewSettlementFailedError("não foi possível gravar a compra", err)
	}

	// A compra já existe; um cancelamento do cliente não pode interromper as baixas.
	drifts := s.decrementLots(context.WithoutCancel(ctx), purchase.ID, req.Cart)

	result := domain.CheckoutResult{Purchase: purchase, Lines: lines, State: domain.CheckoutSucceeded, Drifts: drifts}
	if len(drifts) > 0 {
		result.State = domain.CheckoutPartiallyFailed
	}
	s.transition(result.State, req.LocationID)

	s.logger.Info("Checkout concluído.", map[string]interface{}{
		"purchase_id": purchase.ID,
		"total":       purchase.Total.String(),
		"state":       result.State,
		"drifts":      len(drifts),
	})
	return result, nil
}

func validateRequest(req *domain.CheckoutRequest) error {
	if req.Cart.IsEmpty() {
		return apperror.NewValidationError("O carrinho está vazio.")
	}
	if req.LocationID == "" {
		return apperror.NewValidationError("O local é obrigatório.")
	}
	if !req.PaymentMethod.Valid() {
		return apperror.NewValidationError("Forma de pagamento inválida. Use 'caderneta' ou 'pix'.")
	}
	if req.CustomerID != nil && strings.TrimSpace(*req.CustomerID) == "" {
		req.CustomerID = nil
	}
	if req.PaymentMethod == domain.PaymentCaderneta && req.CustomerID == nil {
		return apperror.NewValidationError("Compra na caderneta exige um cliente identificado.")
	}
	for i, l := range req.Cart.Lines {
		if l.ProductID == "" || l.LotID == "" || l.Quantity <= 0 || l.UnitPrice.IsNegative() {
			return apperror.NewValidationError(fmt.Sprintf("Linha do carrinho inválida na posição %d.", i))
		}
	}
	return nil
}

// validateStock relê cada lote reservado e compara com o total reservado nele por todas as linhas.
// O lote precisa ser do produto da linha e do local do checkout; o carrinho vem do tablet.
func (s *Service) validateStock(ctx context.Context, locationID string, cart domain.Cart) error {
	type reservation struct {
		lotID     string
		productID string
		name      string
		quantity  int
	}

	var order []string
	reserved := make(map[string]*reservation)
	for _, l := range cart.Lines {
		r, ok := reserved[l.LotID]
		if !ok {
			r = &reservation{lotID: l.LotID, productID: l.ProductID, name: l.Name}
			reserved[l.LotID] = r
			order = append(order, l.LotID)
		}
		if r.productID != l.ProductID {
			return lotMismatch(l.LotID, l.ProductID, locationID)
		}
		r.quantity += l.Quantity
	}

	for _, lotID := range order {
		r := reserved[lotID]
		lot, err := s.lots.GetLot(ctx, lotID)
		if err != nil {
			var notFound *apperror.NotFoundError
			if errors.As(err, &notFound) {
				s.logger.Warn("Lote reservado não existe mais.", map[string]interface{}{"lot_id": lotID})
				return apperror.NewStockChangedError(r.productID, r.name, lotID, r.quantity, 0)
			}
			s.logger.Error("Falha ao revalidar estoque do lote.", err)
			return apperror.NewSettlementFailedError("não foi possível revalidar o estoque", err)
		}

		if lot.ProductID != r.productID || lot.LocationID != locationID {
			s.logger.Warn("Lote do carrinho não pertence ao produto ou ao local.", map[string]interface{}{
				"lot_id":          lotID,
				"product_id":      r.productID,
				"location_id":     locationID,
				"lot_product_id":  lot.ProductID,
				"lot_location_id": lot.LocationID,
			})
			return lotMismatch(lotID, r.productID, locationID)
		}

		current := lot.Quantity
		if !lot.IsActive {
			current = 0
		}
		if current < r.quantity {
			s.logger.Warn("Estoque mudou desde a reserva.", map[string]interface{}{
				"lot_id":     lotID,
				"product_id": r.productID,
				"reserved":   r.quantity,
				"current":    current,
			})
			return apperror.NewStockChangedError(r.productID, r.name, lotID, r.quantity, current)
		}
	}
	return nil
}

func lotMismatch(lotID, productID, locationID string) error {
	return apperror.NewValidationError(fmt.Sprintf("O lote %s não é do produto %s no local %s.", lotID, productID, locationID))
}

// buildPurchase congela preços e quantidades das linhas; nada é recalculado.
func (s *Service) buildPurchase(req domain.CheckoutRequest) (domain.Purchase, []domain.PurchaseLine) {
	purchase := domain.Purchase{
		ID:            uuid.New().String(),
		CustomerID:    req.CustomerID,
		LocationID:    req.LocationID,
		PaymentMethod: req.PaymentMethod,
		Total:         req.Cart.Total(),
		CreatedAt:     s.now(),
	}

	lines := make([]domain.PurchaseLine, 0, len(req.Cart.Lines))
	for _, l := range req.Cart.Lines {
		lines = append(lines, domain.PurchaseLine{
			ID:            uuid.New().String(),
			PurchaseID:    purchase.ID,
			ProductID:     l.ProductID,
			LotID:         l.LotID,
			Name:          l.Name,
			UnitPrice:     l.UnitPrice,
			OriginalPrice: l.OriginalPrice,
			Quantity:      l.Quantity,
		})
	}
	return purchase, lines
}

// decrementLots baixa cada linha em sequência. Uma falha é reportada e a próxima linha segue.
func (s *Service) decrementLots(ctx context.Context, purchaseID string, cart domain.Cart) []domain.StockDrift {
	var drifts []domain.StockDrift
	for _, l := range cart.Lines {
		if err := s.lots.DecrementLot(ctx, l.LotID, l.Quantity); err != nil {
			drift := domain.StockDrift{
				PurchaseID: purchaseID,
				LotID:      l.LotID,
				ProductID:  l.ProductID,
				Quantity:   l.Quantity,
				Reason:     err.Error(),
				OccurredAt: s.now(),
			}
			s.logger.Warn("Baixa de estoque falhou após a compra gravada.", map[string]interface{}{
				"purchase_id": purchaseID,
				"lot_id":      l.LotID,
				"quantity":    l.Quantity,
				"error":       err.Error(),
			})
			s.drift.ReportDrift(ctx, drift)
			drifts = append(drifts, drift)
		}
	}
	return drifts
}

func (s *Service) transition(state domain.CheckoutState, locationID string) {
	s.logger.Debug("Checkout mudou de estado.", map[string]interface{}{"state": state, "location_id": locationID})
}
