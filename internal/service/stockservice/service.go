package stockservice

import (
	"context"
	"errors"
	"fmt"

	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
	"mercadinho/internal/pkg/logger"
)

// StockRepository define o contrato que o Serviço de Estoque espera da camada de Persistência.
type StockRepository interface {
	GetCentralStock(ctx context.Context, productID string) (domain.CentralStock, error)
	AddCentralStock(ctx context.Context, productID string, quantity int) (domain.CentralStock, error)
	TransferFromCentral(ctx context.Context, req domain.StockTransferRequest) (domain.ShelfLot, error)
	AdjustLot(ctx context.Context, lotID string, quantity int) (domain.ShelfLot, error)
	DeactivateLot(ctx context.Context, lotID string) (domain.ShelfLot, error)
}

// ProductFinder confirma que o produto existe antes de movimentar estoque.
type ProductFinder interface {
	FindByID(ctx context.Context, id string) (domain.Product, error)
}

// LocationFinder confirma que o local de destino existe e está ativo.
type LocationFinder interface {
	FindByID(ctx context.Context, id string) (domain.Location, error)
}

// Service administra o estoque central e os lotes de prateleira.
type Service struct {
	repo      StockRepository
	products  ProductFinder
	locations LocationFinder
	logger    logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
func NewService(repo StockRepository, products ProductFinder, locations LocationFinder, logger logger.Logger) *Service {
	return &Service{repo: repo, products: products, locations: locations, logger: logger}
}

// AddEntry registra a entrada de mercadoria no estoque central.
func (s *Service) AddEntry(ctx context.Context, entry domain.StockEntryRequest) (domain.CentralStock, error) {
	s.logger.Debug("Iniciando entrada de estoque no serviço.", map[string]interface{}{
		"product_id": entry.ProductID,
		"quantity":   entry.Quantity,
	})

	if entry.Quantity <= 0 {
		return domain.CentralStock{}, apperror.NewValidationError("A quantidade da entrada deve ser positiva.")
	}
	if err := s.requireProduct(ctx, entry.ProductID); err != nil {
		return domain.CentralStock{}, err
	}

	stock, err := s.repo.AddCentralStock(ctx, entry.ProductID, entry.Quantity)
	if err != nil {
		return domain.CentralStock{}, s.translate("registrar entrada de estoque", err)
	}

	s.logger.Info("Entrada de estoque registrada.", map[string]interface{}{
		"product_id":   stock.ProductID,
		"new_quantity": stock.Quantity,
		"new_version":  stock.Version,
	})
	return stock, nil
}

// GetCentral devolve o saldo do estoque central do produto.
func (s *Service) GetCentral(ctx context.Context, productID string) (domain.CentralStock, error) {
	if productID == "" {
		return domain.CentralStock{}, apperror.NewValidationError("O ID do produto é obrigatório.")
	}
	return s.repo.GetCentralStock(ctx, productID)
}

// Transfer move unidades do estoque central para a prateleira de um local, ao preço informado.
// Um lote ativo com o mesmo preço é reaproveitado; senão um novo lote é criado.
func (s *Service) Transfer(ctx context.Context, req domain.StockTransferRequest) (domain.ShelfLot, error) {
	s.logger.Debug("Iniciando transferência para prateleira.", map[string]interface{}{
		"product_id":  req.ProductID,
		"location_id": req.LocationID,
		"quantity":    req.Quantity,
		"price":       req.Price.String(),
	})

	if req.Quantity <= 0 {
		return domain.ShelfLot{}, apperror.NewValidationError("A quantidade transferida deve ser positiva.")
	}
	if !req.Price.IsPositive() {
		return domain.ShelfLot{}, apperror.NewValidationError("O preço de venda do lote deve ser positivo.")
	}
	req.Price = req.Price.Round(2)

	if err := s.requireProduct(ctx, req.ProductID); err != nil {
		return domain.ShelfLot{}, err
	}
	if err := s.requireLocation(ctx, req.LocationID); err != nil {
		return domain.ShelfLot{}, err
	}

	lot, err := s.repo.TransferFromCentral(ctx, req)
	if err != nil {
		return domain.ShelfLot{}, s.translate("transferir estoque", err)
	}

	s.logger.Info("Transferência para prateleira concluída.", map[string]interface{}{
		"lot_id":       lot.ID,
		"location_id":  lot.LocationID,
		"new_quantity": lot.Quantity,
	})
	return lot, nil
}

// AdjustLot define a quantidade do lote após contagem física da prateleira.
func (s *Service) AdjustLot(ctx context.Context, lotID string, adjust domain.LotAdjustRequest) (domain.ShelfLot, error) {
	if lotID == "" {
		return domain.ShelfLot{}, apperror.NewValidationError("O ID do lote é obrigatório.")
	}
	if adjust.Quantity < 0 {
		return domain.ShelfLot{}, apperror.NewValidationError("A quantidade do lote não pode ser negativa.")
	}

	lot, err := s.repo.AdjustLot(ctx, lotID, adjust.Quantity)
	if err != nil {
		return domain.ShelfLot{}, s.translate("ajustar lote", err)
	}

	s.logger.Info("Lote ajustado.", map[string]interface{}{"lot_id": lot.ID, "new_quantity": lot.Quantity, "new_version": lot.Version})
	return lot, nil
}

// DeactivateLot tira o lote da venda. O saldo é preservado para auditoria.
func (s *Service) DeactivateLot(ctx context.Context, lotID string) (domain.ShelfLot, error) {
	if lotID == "" {
		return domain.ShelfLot{}, apperror.NewValidationError("O ID do lote é obrigatório.")
	}

	lot, err := s.repo.DeactivateLot(ctx, lotID)
	if err != nil {
		return domain.ShelfLot{}, s.translate("desativar lote", err)
	}

	s.logger.Info("Lote desativado.", map[string]interface{}{"lot_id": lot.ID})
	return lot, nil
}

func (s *Service) requireProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return apperror.NewValidationError("O ID do produto é obrigatório.")
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return s.translate("buscar produto", err)
	}
	if !product.IsActive {
		return apperror.NewValidationError(fmt.Sprintf("O produto %s está inativo.", product.Name))
	}
	return nil
}

func (s *Service) requireLocation(ctx context.Context, locationID string) error {
	if locationID == "" {
		return apperror.NewValidationError("O ID do local é obrigatório.")
	}
	location, err := s.locations.FindByID(ctx, locationID)
	if err != nil {
		return s.translate("buscar local", err)
	}
	if !location.IsActive {
		return apperror.NewValidationError(fmt.Sprintf("O local %s está inativo.", location.Name))
	}
	return nil
}

// translate preserva os erros de negócio do repositório e embrulha o resto como InternalError.
func (s *Service) translate(action string, err error) error {
	var appErr apperror.AppError
	if errors.As(err, &appErr) {
		var internal *apperror.InternalError
		if !errors.As(err, &internal) {
			return err
		}
	}
	s.logger.Error(fmt.Sprintf("Falha ao %s no repositório.", action), err)
	return apperror.NewInternalError(fmt.Sprintf("Falha interna ao %s.", action), err)
}
