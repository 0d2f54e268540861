package promotion

import (
	"context"
	"net/http"

	"mercadinho/internal/api/response"
	"mercadinho/internal/domain"
	"mercadinho/internal/pkg/logger"
)

// PromotionService define o contrato de administração de promoções.
type PromotionService interface {
	CreatePromotion(ctx context.Context, p domain.Promotion) (domain.Promotion, error)
	ListActive(ctx context.Context) ([]domain.Promotion, error)
	Deactivate(ctx context.Context, id string) error
}

// Handler agrupa os handlers de promoções.
type Handler struct {
	Service PromotionService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc PromotionService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CreatePromotionHandler lida com a requisição POST /v1/promotions.
// @Summary Cria uma promoção
// @Description Desconto percentual global (sem product_id) ou de um produto. A do produto vence a global.
// @Tags promotions
// @Accept json
// @Produce json
// @Param promotion body domain.Promotion true "Dados da promoção"
// @Success 201 {object} domain.Promotion "Promoção criada"
// @Failure 400 {object} domain.ErrorResponse "Percentual ou período inválido"
// @Security ApiKeyAuth
// @Router /promotions [post]
func (h *Handler) CreatePromotionHandler(w http.ResponseWriter, r *http.Request) {
	var p domain.Promotion
	if err := response.Decode(r, &p); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	created, err := h.Service.CreatePromotion(r.Context(), p)
	response.Write(w, r, h.Logger, created, err, http.StatusCreated)
}

// ListActiveHandler lida com a requisição GET /v1/promotions/active.
// @Summary Lista as promoções vigentes
// @Tags promotions
// @Produce json
// @Success 200 {array} domain.Promotion "Promoções vigentes"
// @Security ApiKeyAuth
// @Router /promotions/active [get]
func (h *Handler) ListActiveHandler(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.Service.ListActive(r.Context())
	if promotions == nil {
		promotions = []domain.Promotion{}
	}
	response.Write(w, r, h.Logger, promotions, err, http.StatusOK)
}

// DeactivateHandler lida com a requisição POST /v1/promotions/{id}/deactivate.
// @Summary Encerra uma promoção
// @Tags promotions
// @Param id path string true "ID da promoção"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Promoção não encontrada"
// @Security ApiKeyAuth
// @Router /promotions/{id}/deactivate [post]
func (h *Handler) DeactivateHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Deactivate(r.Context(), r.PathValue("id"))
	response.Write(w, r, h.Logger, nil, err, http.StatusNoContent)
}
