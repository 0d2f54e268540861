package cart

import (
	"context"
	"net/http"

	"mercadinho/internal/api/response"
	"mercadinho/internal/domain"
	"mercadinho/internal/pkg/logger"
	"mercadinho/internal/service/cartservice"
)

// CartService define as operações do carrinho mantido pelo tablet.
type CartService interface {
	AddScan(ctx context.Context, cart domain.Cart, locationID, rawBarcode string) (cartservice.Result, error)
	Increment(ctx context.Context, cart domain.Cart, locationID string, i int) (cartservice.Result, error)
	Decrement(cart domain.Cart, i int) (cartservice.Result, error)
	Remove(cart domain.Cart, i int) (cartservice.Result, error)
}

// ScanRequest é o payload de uma leitura de código de barras.
type ScanRequest struct {
	Cart       domain.Cart `json:"cart"`
	LocationID string      `json:"location_id"`
	Barcode    string      `json:"barcode"`
}

// LineRequest é o payload das ações sobre uma linha do carrinho.
type LineRequest struct {
	Cart       domain.Cart `json:"cart"`
	LocationID string      `json:"location_id"`
	Line       int         `json:"line"`
}

// ErrorResponse devolve o carrinho inalterado junto do erro, para a tela continuar de onde estava.
type ErrorResponse struct {
	domain.ErrorResponse
	Outcome cartservice.Outcome `json:"outcome"`
	Cart    domain.Cart         `json:"cart"`
}

// Handler agrupa os handlers do carrinho.
type Handler struct {
	Service CartService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc CartService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, cart domain.Cart, result cartservice.Result, err error) {
	if err == nil {
		response.Write(w, r, h.Logger, result, nil, http.StatusOK)
		return
	}
	response.WriteError(w, r, h.Logger, err, func(base domain.ErrorResponse) interface{} {
		return ErrorResponse{ErrorResponse: base, Outcome: cartservice.OutcomeOf(err), Cart: cart}
	})
}

// ScanHandler lida com a requisição POST /v1/cart/scan.
// @Summary Lê um código de barras
// @Description Reserva uma unidade no lote mais barato com folga. Sem estoque ou no limite, devolve o carrinho inalterado.
// @Tags cart
// @Accept json
// @Produce json
// @Param scan body ScanRequest true "Carrinho atual, local e código lido"
// @Success 200 {object} cartservice.Result "Novo carrinho"
// @Failure 404 {object} ErrorResponse "Produto não encontrado"
// @Failure 409 {object} ErrorResponse "Sem estoque ou quantidade máxima atingida"
// @Security ApiKeyAuth
// @Router /cart/scan [post]
func (h *Handler) ScanHandler(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := response.Decode(r, &req); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	result, err := h.Service.AddScan(r.Context(), req.Cart, req.LocationID, req.Barcode)
	h.respond(w, r, req.Cart, result, err)
}

// IncrementHandler lida com a requisição POST /v1/cart/increment.
// @Summary Soma uma unidade à linha
// @Tags cart
// @Accept json
// @Produce json
// @Param line body LineRequest true "Carrinho atual, local e linha"
// @Success 200 {object} cartservice.Result "Novo carrinho"
// @Failure 409 {object} ErrorResponse "Quantidade máxima atingida"
// @Security ApiKeyAuth
// @Router /cart/increment [post]
func (h *Handler) IncrementHandler(w http.ResponseWriter, r *http.Request) {
	var req LineRequest
	if err := response.Decode(r, &req); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	result, err := h.Service.Increment(r.Context(), req.Cart, req.LocationID, req.Line)
	h.respond(w, r, req.Cart, result, err)
}

// DecrementHandler lida com a requisição POST /v1/cart/decrement.
// @Summary Tira uma unidade da linha
// @Tags cart
// @Accept json
// @Produce json
// @Param line body LineRequest true "Carrinho atual e linha"
// @Success 200 {object} cartservice.Result "Novo carrinho"
// @Security ApiKeyAuth
// @Router /cart/decrement [post]
func (h *Handler) DecrementHandler(w http.ResponseWriter, r *http.Request) {
	var req LineRequest
	if err := response.Decode(r, &req); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	result, err := h.Service.Decrement(req.Cart, req.Line)
	h.respond(w, r, req.Cart, result, err)
}

// RemoveHandler lida com a requisição POST /v1/cart/remove.
// @Summary Remove a linha do carrinho
// @Tags cart
// @Accept json
// @Produce json
// @Param line body LineRequest true "Carrinho atual e linha"
// @Success 200 {object} cartservice.Result "Novo carrinho"
// @Security ApiKeyAuth
// @Router /cart/remove [post]
func (h *Handler) RemoveHandler(w http.ResponseWriter, r *http.Request) {
	var req LineRequest
	if err := response.Decode(r, &req); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	result, err := h.Service.Remove(req.Cart, req.Line)
	h.respond(w, r, req.Cart, result, err)
}
