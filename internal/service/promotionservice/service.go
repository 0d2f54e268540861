package promotionservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
	"mercadinho/internal/pkg/logger"
)

var hundred = decimal.NewFromInt(100)

// PromotionRepository define o contrato que o Serviço de Promoções espera da camada de Persistência.
type PromotionRepository interface {
	Save(ctx context.Context, p domain.Promotion) (domain.Promotion, error)
	ListActive(ctx context.Context, now time.Time) ([]domain.Promotion, error)
	ActiveFor(ctx context.Context, productID string, now time.Time) ([]domain.Promotion, error)
	Deactivate(ctx context.Context, id string) error
}

// Service precifica produtos com a promoção vigente e administra as promoções.
type Service struct {
	repo   PromotionRepository
	logger logger.Logger
	now    func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Promoções.
func NewService(repo PromotionRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// WithClock troca o relógio usado para decidir quais promoções estão vigentes.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Select escolhe a promoção aplicável ao produto em now: a primeira do próprio produto vence
// qualquer global; sem promoção do produto, vale a primeira global.
func Select(promotions []domain.Promotion, productID string, now time.Time) (domain.Promotion, bool) {
	var global *domain.Promotion
	for i := range promotions {
		p := promotions[i]
		if !p.CoversAt(now) {
			continue
		}
		if p.ProductID != nil && *p.ProductID == productID {
			return p, true
		}
		if p.IsGlobal() && global == nil {
			global = &promotions[i]
		}
	}
	if global != nil {
		return *global, true
	}
	return domain.Promotion{}, false
}

// ApplyDiscount calcula base x (100 - percent) / 100, arredondado a 2 casas.
func ApplyDiscount(base, percent decimal.Decimal) decimal.Decimal {
	return base.Mul(hundred.Sub(percent)).Div(hundred).Round(2)
}

// PriceFor devolve o preço final de um produto a partir do preço base do lote.
func (s *Service) PriceFor(ctx context.Context, productID string, base decimal.Decimal) (domain.PriceQuote, error) {
	now := s.now()
	quote := domain.PriceQuote{FinalPrice: base, BasePrice: base, Percent: decimal.Zero}

	promotions, err := s.repo.ActiveFor(ctx, productID, now)
	if err != nil {
		s.logger.Error("Falha ao buscar promoções vigentes.", err)
		return quote, err
	}

	promo, ok := Select(promotions, productID, now)
	if !ok {
		return quote, nil
	}

	quote.FinalPrice = ApplyDiscount(base, promo.Percent)
	quote.Discounted = true
	quote.Percent = promo.Percent
	quote.PromotionID = promo.ID
	s.logger.Debug("Promoção aplicada.", map[string]interface{}{"product_id": productID, "promotion_id": promo.ID, "percent": promo.Percent.String()})
	return quote, nil
}

// CreatePromotion valida e grava uma nova promoção. Sem início informado, começa agora.
func (s *Service) CreatePromotion(ctx context.Context, p domain.Promotion) (domain.Promotion, error) {
	s.logger.Debug("Iniciando criação de promoção no serviço.", map[string]interface{}{"description": p.Description})

	if err := s.validate(&p); err != nil {
		s.logger.Warn("Falha na validação da promoção.", map[string]interface{}{"error": err.Error()})
		return domain.Promotion{}, err
	}

	p.ID = uuid.New().String()
	p.IsActive = true
	p.CreatedAt = s.now().UTC()

	created, err := s.repo.Save(ctx, p)
	if err != nil {
		s.logger.Error("Falha ao salvar promoção no repositório.", err)
		return domain.Promotion{}, err
	}

	s.logger.Info("Promoção criada com sucesso.", map[string]interface{}{"promotion_id": created.ID})
	return created, nil
}

func (s *Service) validate(p *domain.Promotion) error {
	p.Description = strings.TrimSpace(p.Description)
	if p.Description == "" {
		return apperror.NewValidationError("A descrição da promoção é obrigatória.")
	}
	if !p.Percent.IsPositive() || p.Percent.GreaterThan(hundred) {
		return apperror.NewValidationError("O percentual deve ser maior que 0 e no máximo 100.")
	}
	if p.ProductID != nil && strings.TrimSpace(*p.ProductID) == "" {
		p.ProductID = nil
	}
	if p.StartsAt.IsZero() {
		p.StartsAt = s.now().UTC()
	}
	if p.EndsAt != nil && !p.EndsAt.After(p.StartsAt) {
		return apperror.NewValidationError("O fim da promoção deve ser posterior ao início.")
	}
	return nil
}

// ListActive lista as promoções vigentes agora.
func (s *Service) ListActive(ctx context.Context) ([]domain.Promotion, error) {
	promotions, err := s.repo.ListActive(ctx, s.now())
	if err != nil {
		s.logger.Error("Falha ao listar promoções vigentes.", err)
		return nil, err
	}
	return promotions, nil
}

// Deactivate encerra uma promoção.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	if id == "" {
		return apperror.NewValidationError("O ID da promoção é obrigatório.")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		var notFound *apperror.NotFoundError
		if !errors.As(err, &notFound) {
			s.logger.Error("Falha ao desativar promoção.", err)
		}
		return err
	}
	s.logger.Info("Promoção desativada.", map[string]interface{}{"promotion_id": id})
	return nil
}
