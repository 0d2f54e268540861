package locationservice

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
	"mercadinho/internal/pkg/logger"
)

// LocationRepository define o contrato que o Serviço de Locais espera da camada de Persistência.
type LocationRepository interface {
	Save(ctx context.Context, location domain.Location) (domain.Location, error)
	FindByID(ctx context.Context, id string) (domain.Location, error)
	FindAll(ctx context.Context) ([]domain.Location, error)
	Update(ctx context.Context, location domain.Location) (domain.Location, error)
}

// Service administra os pontos de venda.
type Service struct {
	repo   LocationRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Locais.
func NewService(repo LocationRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateLocation cadastra um novo ponto de venda, ativo.
func (s *Service) CreateLocation(ctx context.Context, location domain.Location) (domain.Location, error) {
	s.logger.Debug("Iniciando criação de local no serviço.", map[string]interface{}{"name": location.Name})

	location.Name = strings.TrimSpace(location.Name)
	if err := validateName(location.Name); err != nil {
		s.logger.Warn("Falha na validação do nome do local.", map[string]interface{}{"name": location.Name, "error": err.Error()})
		return domain.Location{}, err
	}
	location.IsActive = true

	created, err := s.repo.Save(ctx, location)
	if err != nil {
		s.logger.Error("Falha ao criar local no repositório.", err)
		return domain.Location{}, apperror.NewInternalError("Falha interna ao criar local.", err)
	}

	s.logger.Info("Local criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// GetLocation busca um local pelo ID.
func (s *Service) GetLocation(ctx context.Context, id string) (domain.Location, error) {
	if _, err := uuid.Parse(id); err != nil {
		s.logger.Warn("ID de local inválido fornecido.", map[string]interface{}{"id": id, "error": err.Error()})
		return domain.Location{}, apperror.NewValidationError("O ID do local deve ser um UUID válido.")
	}

	location, err := s.repo.FindByID(ctx, id)
	if err != nil {
		// Erros do repositório já são NotFoundError ou DBError
		return domain.Location{}, err
	}
	return location, nil
}

// ListLocations devolve todos os locais.
func (s *Service) ListLocations(ctx context.Context) ([]domain.Location, error) {
	locations, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar locais no repositório.", err)
		return nil, apperror.NewInternalError("Falha interna ao buscar locais.", err)
	}

	s.logger.Debug("Locais encontrados.", map[string]interface{}{"count": len(locations)})
	return locations, nil
}

// UpdateLocation renomeia ou ativa/desativa um local existente.
func (s *Service) UpdateLocation(ctx context.Context, location domain.Location) (domain.Location, error) {
	if _, err := uuid.Parse(location.ID); err != nil {
		return domain.Location{}, apperror.NewValidationError("O ID do local deve ser um UUID válido.")
	}
	location.Name = strings.TrimSpace(location.Name)
	if err := validateName(location.Name); err != nil {
		return domain.Location{}, err
	}

	updated, err := s.repo.Update(ctx, location)
	if err != nil {
		return domain.Location{}, err
	}

	s.logger.Info("Local atualizado com sucesso.", map[string]interface{}{"id": updated.ID, "name": updated.Name, "is_active": updated.IsActive})
	return updated, nil
}

func validateName(name string) error {
	if name == "" {
		return apperror.NewValidationError("O nome do local não pode ser vazio.")
	}
	if n := utf8.RuneCountInString(name); n < 3 || n > 100 {
		return apperror.NewValidationError("O nome do local deve ter entre 3 e 100 caracteres.")
	}
	return nil
}
