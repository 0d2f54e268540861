package productservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
	"mercadinho/internal/pkg/barcode"
	"mercadinho/internal/pkg/logger"
)

// ProductRepository define o contrato (interface) que este Serviço espera
// da camada de Persistência (DB, Cache).
type ProductRepository interface {
	Save(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (domain.Product, error)
}

// Service é o serviço do catálogo de produtos.
type Service struct {
	repo   ProductRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo ProductRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateProduct valida e cadastra um produto. O código de barras é gravado já normalizado.
func (s *Service) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	product.Barcode = barcode.Normalize(product.Barcode)

	if product.Name == "" || product.Barcode == "" {
		return domain.Product{}, apperror.NewValidationError("Nome e código de barras são obrigatórios para o produto.")
	}
	if !product.SalePrice.IsPositive() {
		return domain.Product{}, apperror.NewValidationError("O preço de venda do produto deve ser positivo.")
	}
	if product.PurchasePrice.IsNegative() {
		return domain.Product{}, apperror.NewValidationError("O preço de compra não pode ser negativo.")
	}

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.IsActive = true
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	created, err := s.repo.Save(ctx, product)
	if err != nil {
		var conflict *apperror.ConflictError
		if errors.As(err, &conflict) {
			return domain.Product{}, err
		}
		s.logger.Error("Falha ao salvar produto no repositório.", err)
		return domain.Product{}, apperror.NewInternalError("Falha interna ao cadastrar produto.", err)
	}

	s.logger.Info("Produto cadastrado.", map[string]interface{}{"product_id": created.ID, "barcode": created.Barcode})
	return created, nil
}

// GetByBarcode busca o produto ativo pelo código lido no scanner.
func (s *Service) GetByBarcode(ctx context.Context, raw string) (domain.Product, error) {
	code := barcode.Normalize(raw)
	if code == "" {
		return domain.Product{}, apperror.NewProductNotFoundError(raw)
	}
	return s.repo.FindByBarcode(ctx, code)
}

// GetProductByID busca um produto pelo ID.
func (s *Service) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Product{}, apperror.NewValidationError("O ID do produto deve ser um UUID válido.")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %s não foi encontrado.", id))
		}
		return domain.Product{}, err
	}
	return product, nil
}
