package lotservice

import (
	"context"

	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
	"mercadinho/internal/pkg/logger"
)

// LotRepository define a leitura de lotes que o serviço espera da persistência.
type LotRepository interface {
	Availability(ctx context.Context, locationID, productID string) (domain.LotAvailability, error)
}

// Service expõe a leitura de disponibilidade já ordenada para a alocação.
type Service struct {
	repo   LotRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Lotes.
func NewService(repo LotRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Availability lê lotes e total de (local, produto) numa única consulta e garante a ordem de alocação.
// Nada é guardado entre chamadas: outros tablets podem ter vendido desde a última leitura.
func (s *Service) Availability(ctx context.Context, locationID, productID string) (domain.LotAvailability, error) {
	if locationID == "" || productID == "" {
		return domain.LotAvailability{}, apperror.NewValidationError("Local e produto são obrigatórios.")
	}

	av, err := s.repo.Availability(ctx, locationID, productID)
	if err != nil {
		s.logger.Error("Falha ao ler disponibilidade de lotes.", err)
		return domain.LotAvailability{}, err
	}

	av.Lots = Order(av.Lots)
	return av, nil
}
