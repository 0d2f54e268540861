package location

import (
	"context"
	"net/http"

	"mercadinho/internal/api/response"
	"mercadinho/internal/domain"
	"mercadinho/internal/pkg/logger"
)

// LocationService define o contrato que o Handler espera da camada de Serviço.
type LocationService interface {
	CreateLocation(ctx context.Context, location domain.Location) (domain.Location, error)
	GetLocation(ctx context.Context, id string) (domain.Location, error)
	ListLocations(ctx context.Context) ([]domain.Location, error)
	UpdateLocation(ctx context.Context, location domain.Location) (domain.Location, error)
}

// Handler agrupa os handlers de pontos de venda.
type Handler struct {
	Service LocationService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc LocationService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CreateLocationHandler lida com a requisição POST /v1/locations.
// @Summary Cria um ponto de venda
// @Tags locations
// @Accept json
// @Produce json
// @Param location body domain.Location true "Dados do local para criação"
// @Success 201 {object} domain.Location "Local criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /locations [post]
func (h *Handler) CreateLocationHandler(w http.ResponseWriter, r *http.Request) {
	var location domain.Location
	if err := response.Decode(r, &location); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	created, err := h.Service.CreateLocation(r.Context(), location)
	response.Write(w, r, h.Logger, created, err, http.StatusCreated)
}

// GetLocationHandler lida com a requisição GET /v1/locations/{id}.
// @Summary Obtém um local por ID
// @Tags locations
// @Produce json
// @Param id path string true "ID do Local"
// @Success 200 {object} domain.Location "Local encontrado"
// @Failure 404 {object} domain.ErrorResponse "Local não encontrado"
// @Security ApiKeyAuth
// @Router /locations/{id} [get]
func (h *Handler) GetLocationHandler(w http.ResponseWriter, r *http.Request) {
	location, err := h.Service.GetLocation(r.Context(), r.PathValue("id"))
	response.Write(w, r, h.Logger, location, err, http.StatusOK)
}

// ListLocationsHandler lida com a requisição GET /v1/locations.
// @Summary Lista os pontos de venda
// @Tags locations
// @Produce json
// @Success 200 {array} domain.Location "Lista de locais"
// @Security ApiKeyAuth
// @Router /locations [get]
func (h *Handler) ListLocationsHandler(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Service.ListLocations(r.Context())
	if locations == nil {
		locations = []domain.Location{}
	}
	response.Write(w, r, h.Logger, locations, err, http.StatusOK)
}

// UpdateLocationHandler lida com a requisição PUT /v1/locations/{id}.
// @Summary Renomeia ou ativa/desativa um local
// @Tags locations
// @Accept json
// @Produce json
// @Param id path string true "ID do Local"
// @Param location body domain.Location true "Dados do local para atualização"
// @Success 200 {object} domain.Location "Local atualizado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Local não encontrado"
// @Security ApiKeyAuth
// @Router /locations/{id} [put]
func (h *Handler) UpdateLocationHandler(w http.ResponseWriter, r *http.Request) {
	var location domain.Location
	if err := response.Decode(r, &location); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}
	location.ID = r.PathValue("id") // o ID da URL prevalece sobre o do corpo

	updated, err := h.Service.UpdateLocation(r.Context(), location)
	response.Write(w, r, h.Logger, updated, err, http.StatusOK)
}
