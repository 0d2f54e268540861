package locationrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mercadinho/internal/domain"
	"mercadinho/internal/errors"
	"mercadinho/internal/pkg/logger"
)

// LocationRepository implementa as operações CRUD dos locais (locais).
type LocationRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewLocationRepository cria e retorna uma nova instância do Repositório de Locais.
func NewLocationRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *LocationRepository {
	return &LocationRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save insere um novo local.
func (r *LocationRepository) Save(ctx context.Context, location domain.Location) (domain.Location, error) {
	r.logger.Debug("Iniciando Save de local no repositório.", map[string]interface{}{"name": location.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	location.CreatedAt = now
	location.UpdatedAt = now

	query := `
        INSERT INTO locais (id, nome, ativo, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, nome, ativo, created_at, updated_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		location.ID, location.Name, location.IsActive, location.CreatedAt, location.UpdatedAt,
	).Scan(&location.ID, &location.Name, &location.IsActive, &location.CreatedAt, &location.UpdatedAt)
	if err != nil {
		r.logger.Error("Falha ao inserir local no DB.", err)
		return domain.Location{}, errors.NewDBError("Falha ao criar local", err)
	}

	r.logger.Info("Local criado com sucesso.", map[string]interface{}{"id": location.ID, "name": location.Name})
	return location, nil
}

// FindByID busca um local pelo ID.
func (r *LocationRepository) FindByID(ctx context.Context, id string) (domain.Location, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT id, nome, ativo, created_at, updated_at FROM locais WHERE id = $1`

	var location domain.Location
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&location.ID, &location.Name, &location.IsActive, &location.CreatedAt, &location.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		r.logger.Info("Local não encontrado.", map[string]interface{}{"id": id})
		return domain.Location{}, errors.NewNotFoundError(fmt.Sprintf("Local com ID %s não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar local no DB.", err)
		return domain.Location{}, errors.NewDBError("Falha ao buscar local", err)
	}

	return location, nil
}

// FindAll lista todos os locais por nome.
func (r *LocationRepository) FindAll(ctx context.Context) ([]domain.Location, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT id, nome, ativo, created_at, updated_at FROM locais ORDER BY nome`)
	if err != nil {
		r.logger.Error("Falha ao executar FindAll de locais.", err)
		return nil, errors.NewDBError("Falha ao buscar locais", err)
	}
	defer rows.Close()

	locations := []domain.Location{}
	for rows.Next() {
		var location domain.Location
		if err := rows.Scan(&location.ID, &location.Name, &location.IsActive, &location.CreatedAt, &location.UpdatedAt); err != nil {
			r.logger.Error("Falha ao mapear local.", err)
			return nil, errors.NewDBError("Falha ao mapear locais do DB", err)
		}
		locations = append(locations, location)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Erro após iteração das linhas de locais.", err)
		return nil, errors.NewDBError("Erro após iteração de locais", err)
	}

	return locations, nil
}

// Update altera nome e status de um local.
func (r *LocationRepository) Update(ctx context.Context, location domain.Location) (domain.Location, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	location.UpdatedAt = time.Now().UTC()

	query := `
        UPDATE locais
        SET nome = $1, ativo = $2, updated_at = $3
        WHERE id = $4
        RETURNING id, nome, ativo, created_at, updated_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		location.Name, location.IsActive, location.UpdatedAt, location.ID,
	).Scan(&location.ID, &location.Name, &location.IsActive, &location.CreatedAt, &location.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.Location{}, errors.NewNotFoundError(fmt.Sprintf("Local com ID %s não encontrado para atualização.", location.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar local no DB.", err)
		return domain.Location{}, errors.NewDBError("Falha ao atualizar local", err)
	}

	r.logger.Info("Local atualizado com sucesso.", map[string]interface{}{"id": location.ID, "name": location.Name})
	return location, nil
}
