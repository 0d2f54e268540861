package stock

import (
	"context"
	"net/http"

	"mercadinho/internal/api/response"
	"mercadinho/internal/domain"
	"mercadinho/internal/pkg/logger"
)

// StockService define o contrato que o Handler espera da camada de Serviço.
type StockService interface {
	AddEntry(ctx context.Context, entry domain.StockEntryRequest) (domain.CentralStock, error)
	GetCentral(ctx context.Context, productID string) (domain.CentralStock, error)
	Transfer(ctx context.Context, req domain.StockTransferRequest) (domain.ShelfLot, error)
	AdjustLot(ctx context.Context, lotID string, adjust domain.LotAdjustRequest) (domain.ShelfLot, error)
	DeactivateLot(ctx context.Context, lotID string) (domain.ShelfLot, error)
}

// LotReader lê a fotografia dos lotes de um produto num local.
type LotReader interface {
	Availability(ctx context.Context, locationID, productID string) (domain.LotAvailability, error)
}

// Handler agrupa todos os métodos de Handler de estoque.
type Handler struct {
	Service StockService
	Lots    LotReader
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando os Services e o Logger.
func NewHandler(svc StockService, lots LotReader, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Lots:    lots,
		Logger:  log,
	}
}

// AddEntryHandler lida com a requisição POST /v1/stock/entries.
// @Summary Entrada no estoque central
// @Tags stock
// @Accept json
// @Produce json
// @Param entry body domain.StockEntryRequest true "Produto e quantidade recebida"
// @Success 201 {object} domain.CentralStock "Saldo central atualizado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security ApiKeyAuth
// @Router /stock/entries [post]
func (h *Handler) AddEntryHandler(w http.ResponseWriter, r *http.Request) {
	var entry domain.StockEntryRequest
	if err := response.Decode(r, &entry); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	stock, err := h.Service.AddEntry(r.Context(), entry)
	response.Write(w, r, h.Logger, stock, err, http.StatusCreated)
}

// GetCentralHandler lida com a requisição GET /v1/stock/central/{product}.
// @Summary Saldo do estoque central
// @Tags stock
// @Produce json
// @Param product path string true "ID do produto"
// @Success 200 {object} domain.CentralStock "Saldo central"
// @Failure 404 {object} domain.ErrorResponse "Produto sem estoque central"
// @Security ApiKeyAuth
// @Router /stock/central/{product} [get]
func (h *Handler) GetCentralHandler(w http.ResponseWriter, r *http.Request) {
	stock, err := h.Service.GetCentral(r.Context(), r.PathValue("product"))
	response.Write(w, r, h.Logger, stock, err, http.StatusOK)
}

// TransferHandler lida com a requisição POST /v1/stock/transfers.
// @Summary Transfere do estoque central para a prateleira
// @Description Reaproveita o lote ativo com o mesmo preço no local ou cria um lote novo.
// @Tags stock
// @Accept json
// @Produce json
// @Param transfer body domain.StockTransferRequest true "Produto, local, quantidade e preço"
// @Success 201 {object} domain.ShelfLot "Lote de prateleira atualizado"
// @Failure 400 {object} domain.ErrorResponse "Estoque central insuficiente ou payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Conflito de concorrência"
// @Security ApiKeyAuth
// @Router /stock/transfers [post]
func (h *Handler) TransferHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.StockTransferRequest
	if err := response.Decode(r, &req); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	lot, err := h.Service.Transfer(r.Context(), req)
	response.Write(w, r, h.Logger, lot, err, http.StatusCreated)
}

// AdjustLotHandler lida com a requisição POST /v1/stock/lots/{lot}/adjust.
// @Summary Ajusta a quantidade de um lote
// @Tags stock
// @Accept json
// @Produce json
// @Param lot path string true "ID do lote"
// @Param adjust body domain.LotAdjustRequest true "Nova quantidade contada"
// @Success 200 {object} domain.ShelfLot "Lote ajustado"
// @Failure 404 {object} domain.ErrorResponse "Lote não encontrado"
// @Security ApiKeyAuth
// @Router /stock/lots/{lot}/adjust [post]
func (h *Handler) AdjustLotHandler(w http.ResponseWriter, r *http.Request) {
	var adjust domain.LotAdjustRequest
	if err := response.Decode(r, &adjust); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	lot, err := h.Service.AdjustLot(r.Context(), r.PathValue("lot"), adjust)
	response.Write(w, r, h.Logger, lot, err, http.StatusOK)
}

// DeactivateLotHandler lida com a requisição POST /v1/stock/lots/{lot}/deactivate.
// @Summary Desativa um lote
// @Tags stock
// @Produce json
// @Param lot path string true "ID do lote"
// @Success 200 {object} domain.ShelfLot "Lote desativado"
// @Failure 404 {object} domain.ErrorResponse "Lote não encontrado"
// @Security ApiKeyAuth
// @Router /stock/lots/{lot}/deactivate [post]
func (h *Handler) DeactivateLotHandler(w http.ResponseWriter, r *http.Request) {
	lot, err := h.Service.DeactivateLot(r.Context(), r.PathValue("lot"))
	response.Write(w, r, h.Logger, lot, err, http.StatusOK)
}

// LotsHandler lida com a requisição GET /v1/locations/{location}/products/{product}/lots.
// @Summary Lotes vendáveis de um produto no local
// @Description Lotes ativos com saldo, do mais barato ao mais caro, e o total disponível, numa única leitura.
// @Tags stock
// @Produce json
// @Param location path string true "ID do local"
// @Param product path string true "ID do produto"
// @Success 200 {object} domain.LotAvailability "Fotografia dos lotes"
// @Security ApiKeyAuth
// @Router /locations/{location}/products/{product}/lots [get]
func (h *Handler) LotsHandler(w http.ResponseWriter, r *http.Request) {
	av, err := h.Lots.Availability(r.Context(), r.PathValue("location"), r.PathValue("product"))
	response.Write(w, r, h.Logger, av, err, http.StatusOK)
}
