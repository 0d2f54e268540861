package checkout

import (
	"context"
	"net/http"

	"mercadinho/internal/api/response"
	"mercadinho/internal/domain"
	"mercadinho/internal/pkg/logger"
	"mercadinho/internal/pkg/middleware"
)

// CheckoutService finaliza um carrinho.
type CheckoutService interface {
	Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResult, error)
}

// Handler expõe o checkout.
type Handler struct {
	Service CheckoutService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc CheckoutService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CheckoutHandler lida com a requisição POST /v1/checkout.
// @Summary Finaliza a compra
// @Description Revalida o estoque reservado, grava a compra e baixa os lotes. Uma baixa que falha depois da gravação não desfaz a compra: o estado volta como partially_failed.
// @Tags checkout
// @Accept json
// @Produce json
// @Param checkout body domain.CheckoutRequest true "Carrinho, local, cliente e forma de pagamento"
// @Success 201 {object} domain.CheckoutResult "Compra gravada"
// @Failure 400 {object} domain.ErrorResponse "Pedido inválido"
// @Failure 409 {object} domain.ErrorResponse "Estoque mudou desde a reserva"
// @Failure 503 {object} domain.ErrorResponse "Não foi possível gravar a compra"
// @Security ApiKeyAuth
// @Router /checkout [post]
func (h *Handler) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CheckoutRequest
	if err := response.Decode(r, &req); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	if claims, ok := middleware.GetUserClaimsFromContext(ctx); ok {
		h.Logger.Debug("Checkout solicitado por", map[string]interface{}{"user_id": claims.UserID, "role": claims.Role})
	}

	result, err := h.Service.Checkout(ctx, req)
	response.Write(w, r, h.Logger, result, err, http.StatusCreated)
}
