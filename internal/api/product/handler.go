package product

import (
	"context"
	"net/http"

	"mercadinho/internal/api/response"
	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
	"mercadinho/internal/pkg/logger"
	"mercadinho/internal/pkg/middleware"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	GetByBarcode(ctx context.Context, raw string) (domain.Product, error)
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CreateProductHandler lida com a requisição POST /v1/products.
// @Summary Cadastra um produto
// @Description Cria um produto no catálogo. O código de barras é normalizado para apenas dígitos.
// @Tags products
// @Accept json
// @Produce json
// @Param product body domain.Product true "Dados do produto"
// @Success 201 {object} domain.Product "Produto criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Código de barras já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if claims, ok := middleware.GetUserClaimsFromContext(ctx); ok {
		h.Logger.Info("Tentativa de criação de produto por", map[string]interface{}{
			"user_id": claims.UserID,
			"role":    claims.Role,
		})
	}

	var p domain.Product
	if err := response.Decode(r, &p); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	created, err := h.Service.CreateProduct(ctx, p)
	response.Write(w, r, h.Logger, created, err, http.StatusCreated)
}

// GetByBarcodeHandler lida com a requisição GET /v1/products/barcode/{code}.
// @Summary Busca produto pelo código de barras
// @Description Consulta o catálogo pelo código lido no scanner ou na câmera.
// @Tags products
// @Produce json
// @Param code path string true "Código de barras"
// @Success 200 {object} domain.Product "Produto encontrado"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /products/barcode/{code} [get]
func (h *Handler) GetByBarcodeHandler(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		response.Write(w, r, h.Logger, nil, apperror.NewValidationError("Código de barras é obrigatório."), http.StatusOK)
		return
	}

	p, err := h.Service.GetByBarcode(r.Context(), code)
	response.Write(w, r, h.Logger, p, err, http.StatusOK)
}
