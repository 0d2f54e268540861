package cartservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
	"mercadinho/internal/pkg/barcode"
	"mercadinho/internal/pkg/logger"
	"mercadinho/internal/service/lotservice"
)

// Catalog resolve o código lido para um produto do catálogo.
type Catalog interface {
	FindByBarcode(ctx context.Context, barcode string) (domain.Product, error)
}

// Availability lê lotes e total de um (local, produto) numa única leitura,
// com os lotes já na ordem de alocação (lotservice.Service).
type Availability interface {
	Availability(ctx context.Context, locationID, productID string) (domain.LotAvailability, error)
}

// Pricer aplica a promoção vigente ao preço do lote.
type Pricer interface {
	PriceFor(ctx context.Context, productID string, base decimal.Decimal) (domain.PriceQuote, error)
}

// Outcome é o resultado tipado de uma ação no carrinho; a tela transforma em aviso e bipe.
type Outcome string

const (
	OutcomeAdded              Outcome = "added"
	OutcomeIncremented        Outcome = "incremented"
	OutcomeDecremented        Outcome = "decremented"
	OutcomeRemoved            Outcome = "removed"
	OutcomeProductNotFound    Outcome = "product_not_found"
	OutcomeOutOfStock         Outcome = "out_of_stock"
	OutcomeMaxQuantityReached Outcome = "max_quantity_reached"
	OutcomeFailed             Outcome = "failed"
)

// OutcomeOf traduz o erro de uma ação para o Outcome mostrado ao cliente.
func OutcomeOf(err error) Outcome {
	var (
		notFound *apperror.ProductNotFoundError
		outOf    *apperror.OutOfStockError
		maxQty   *apperror.MaxQuantityReachedError
	)
	switch {
	case errors.As(err, &notFound):
		return OutcomeProductNotFound
	case errors.As(err, &outOf):
		return OutcomeOutOfStock
	case errors.As(err, &maxQty):
		return OutcomeMaxQuantityReached
	default:
		return OutcomeFailed
	}
}

// Result é o novo carrinho depois de uma ação bem-sucedida.
type Result struct {
	Cart       domain.Cart     `json:"cart"`
	Outcome    Outcome         `json:"outcome"`
	Line       int             `json:"line"` // linha afetada; -1 quando a linha saiu do carrinho
	Total      decimal.Decimal `json:"total"`
	PriceFlags []bool          `json:"price_flags"`
}

func newResult(cart domain.Cart, outcome Outcome, line int) Result {
	return Result{Cart: cart, Outcome: outcome, Line: line, Total: cart.Total(), PriceFlags: cart.PriceFlags()}
}

// Service implementa as operações do carrinho. O carrinho é um valor mantido pelo tablet:
// cada chamada recebe o carrinho atual e devolve um novo, sem guardar reserva no servidor.
type Service struct {
	catalog Catalog
	lots    Availability
	pricer  Pricer
	logger  logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Carrinho.
func NewService(catalog Catalog, lots Availability, pricer Pricer, logger logger.Logger) *Service {
	return &Service{catalog: catalog, lots: lots, pricer: pricer, logger: logger}
}

// AddScan reserva uma unidade do produto lido no lote mais barato que ainda tem folga no carrinho.
func (s *Service) AddScan(ctx context.Context, cart domain.Cart, locationID, rawBarcode string) (Result, error) {
	code := barcode.Normalize(rawBarcode)
	s.logger.Debug("Leitura de código no carrinho.", map[string]interface{}{"barcode": code, "location_id": locationID})

	if locationID == "" {
		return Result{}, apperror.NewValidationError("O local é obrigatório.")
	}
	if code == "" {
		s.logger.Warn("Código de barras sem dígitos.", map[string]interface{}{"raw": rawBarcode})
		return Result{}, apperror.NewProductNotFoundError(rawBarcode)
	}

	product, err := s.catalog.FindByBarcode(ctx, code)
	if err != nil {
		return Result{}, err
	}

	av, err := s.lots.Availability(ctx, locationID, product.ID)
	if err != nil {
		s.logger.Error("Falha ao ler disponibilidade na leitura.", err)
		return Result{}, err
	}
	lots := av.Lots

	if av.Total == 0 || len(lots) == 0 {
		s.logger.Info("Produto sem estoque no local.", map[string]interface{}{"product_id": product.ID, "location_id": locationID})
		return Result{}, apperror.NewOutOfStockError(product.ID, product.Name)
	}

	if already := cart.QuantityOf(product.ID); already >= av.Total {
		s.logger.Info("Quantidade máxima atingida.", map[string]interface{}{"product_id": product.ID, "in_cart": already, "total": av.Total})
		return Result{}, apperror.NewMaxQuantityReachedError(product.ID, product.Name, av.Total)
	}

	lot, ok := lotservice.FirstWithHeadroom(lots, cart.ReservedPerLot(product.ID))
	if !ok {
		// Total e lotes vêm da mesma leitura; só chega aqui se o carrinho reservou em lotes que sumiram.
		s.logger.Warn("Nenhum lote com folga apesar do total disponível.", map[string]interface{}{"product_id": product.ID, "total": av.Total})
		return Result{}, apperror.NewOutOfStockError(product.ID, product.Name)
	}

	line := s.priceLine(ctx, domain.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Barcode:   product.Barcode,
	}, lot)

	next := cart.WithUnit(line)
	idx := next.IndexOf(line.ProductID, line.UnitPrice, line.LotID)
	s.logger.Info("Item adicionado ao carrinho.", map[string]interface{}{"product_id": product.ID, "lot_id": lot.ID, "unit_price": line.UnitPrice.String()})
	return newResult(next, OutcomeAdded, idx), nil
}

// Increment soma uma unidade à linha i. Cresce no próprio lote enquanto houver folga; esgotado,
// a unidade vai para o próximo lote mais barato com folga, numa linha nova.
func (s *Service) Increment(ctx context.Context, cart domain.Cart, locationID string, i int) (Result, error) {
	line, ok := cart.Line(i)
	if !ok {
		return Result{}, apperror.NewValidationError(fmt.Sprintf("Linha %d não existe no carrinho.", i))
	}
	if locationID == "" {
		return Result{}, apperror.NewValidationError("O local é obrigatório.")
	}

	av, err := s.lots.Availability(ctx, locationID, line.ProductID)
	if err != nil {
		s.logger.Error("Falha ao ler disponibilidade no incremento.", err)
		return Result{}, err
	}
	lots := av.Lots

	if cart.QuantityOf(line.ProductID) >= av.Total {
		s.logger.Info("Quantidade máxima atingida no incremento.", map[string]interface{}{"product_id": line.ProductID, "total": av.Total})
		return Result{}, apperror.NewMaxQuantityReachedError(line.ProductID, line.Name, av.Total)
	}

	reserved := cart.ReservedPerLot(line.ProductID)
	for _, l := range lots {
		if l.ID == line.LotID && lotservice.Headroom(l, reserved) > 0 {
			return newResult(cart.WithIncrementAt(i), OutcomeIncremented, i), nil
		}
	}

	lot, ok := lotservice.FirstWithHeadroom(lots, reserved)
	if !ok {
		s.logger.Warn("Nenhum lote com folga para o incremento.", map[string]interface{}{"product_id": line.ProductID, "total": av.Total})
		return Result{}, apperror.NewMaxQuantityReachedError(line.ProductID, line.Name, av.Total)
	}

	spill := s.priceLine(ctx, domain.CartLine{
		ProductID: line.ProductID,
		Name:      line.Name,
		Barcode:   line.Barcode,
	}, lot)

	next := cart.WithUnit(spill)
	idx := next.IndexOf(spill.ProductID, spill.UnitPrice, spill.LotID)
	s.logger.Info("Incremento redirecionado para outro lote.", map[string]interface{}{"product_id": line.ProductID, "from_lot": line.LotID, "to_lot": lot.ID})
	return newResult(next, OutcomeIncremented, idx), nil
}

// Decrement tira uma unidade da linha i; ao chegar a zero a linha sai. Não toca no estoque.
func (s *Service) Decrement(cart domain.Cart, i int) (Result, error) {
	line, ok := cart.Line(i)
	if !ok {
		return Result{}, apperror.NewValidationError(fmt.Sprintf("Linha %d não existe no carrinho.", i))
	}
	if line.Quantity <= 1 {
		return newResult(cart.WithoutLine(i), OutcomeRemoved, -1), nil
	}
	return newResult(cart.WithDecrementAt(i), OutcomeDecremented, i), nil
}

// Remove tira a linha i do carrinho. Não toca no estoque.
func (s *Service) Remove(cart domain.Cart, i int) (Result, error) {
	if _, ok := cart.Line(i); !ok {
		return Result{}, apperror.NewValidationError(fmt.Sprintf("Linha %d não existe no carrinho.", i))
	}
	return newResult(cart.WithoutLine(i), OutcomeRemoved, -1), nil
}

// priceLine completa a linha com o lote e o preço cobrado. Sem promoção legível, cobra o preço do lote.
func (s *Service) priceLine(ctx context.Context, line domain.CartLine, lot domain.ShelfLot) domain.CartLine {
	line.LotID = lot.ID
	line.UnitPrice = lot.Price

	quote, err := s.pricer.PriceFor(ctx, line.ProductID, lot.Price)
	if err != nil {
		s.logger.Warn("Promoções indisponíveis, usando preço do lote.", map[string]interface{}{"product_id": line.ProductID, "error": err.Error()})
		return line
	}
	if quote.Discounted {
		base := lot.Price
		line.UnitPrice = quote.FinalPrice
		line.OriginalPrice = &base
	}
	return line
}
