package promotionrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mercadinho/internal/domain"
	"mercadinho/internal/errors"
	"mercadinho/internal/pkg/logger"
)

const promotionColumns = `id, descricao, percentual, produto_id, inicio, fim, ativo, created_at`

// PromotionRepository acessa as promoções (promocoes).
type PromotionRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewPromotionRepository cria e retorna uma nova instância do Repositório de Promoções.
func NewPromotionRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *PromotionRepository {
	return &PromotionRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// Save insere uma nova promoção.
func (r *PromotionRepository) Save(ctx context.Context, p domain.Promotion) (domain.Promotion, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctxTimeout,
		`INSERT INTO promocoes (`+promotionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Description, p.Percent, p.ProductID, p.StartsAt, p.EndsAt, p.IsActive, p.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir promoção no DB.", err)
		return domain.Promotion{}, errors.NewDBError("Falha ao inserir promoção", err)
	}

	r.logger.Info("Promoção salva.", map[string]interface{}{"promotion_id": p.ID, "global": p.IsGlobal()})
	return p, nil
}

// ListActive devolve as promoções que cobrem now, na ordem de criação.
func (r *PromotionRepository) ListActive(ctx context.Context, now time.Time) ([]domain.Promotion, error) {
	return r.query(ctx, `
        SELECT `+promotionColumns+`
        FROM promocoes
        WHERE ativo = TRUE AND inicio <= $1 AND (fim IS NULL OR fim > $1)
        ORDER BY created_at ASC, id ASC`, now)
}

// ActiveFor devolve as promoções que cobrem now e valem para o produto: as do próprio produto e as globais.
func (r *PromotionRepository) ActiveFor(ctx context.Context, productID string, now time.Time) ([]domain.Promotion, error) {
	return r.query(ctx, `
        SELECT `+promotionColumns+`
        FROM promocoes
        WHERE ativo = TRUE AND inicio <= $1 AND (fim IS NULL OR fim > $1)
          AND (produto_id = $2 OR produto_id IS NULL)
        ORDER BY created_at ASC, id ASC`, now, productID)
}

func (r *PromotionRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Promotion, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao consultar promoções ativas.", err)
		return nil, errors.NewDBError("Falha ao buscar promoções", err)
	}
	defer rows.Close()

	promotions := []domain.Promotion{}
	for rows.Next() {
		var (
			p         domain.Promotion
			productID sql.NullString
			endsAt    sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.Description, &p.Percent, &productID, &p.StartsAt, &endsAt, &p.IsActive, &p.CreatedAt); err != nil {
			r.logger.Error("Falha ao mapear promoção.", err)
			return nil, errors.NewDBError("Falha ao mapear promoções do DB", err)
		}
		if productID.Valid {
			p.ProductID = &productID.String
		}
		if endsAt.Valid {
			p.EndsAt = &endsAt.Time
		}
		promotions = append(promotions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de promoções", err)
	}
	return promotions, nil
}

// Deactivate encerra a promoção imediatamente.
func (r *PromotionRepository) Deactivate(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `UPDATE promocoes SET ativo = FALSE WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao desativar promoção.", err)
		return errors.NewDBError("Falha ao desativar promoção", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if n == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Promoção %s não encontrada.", id))
	}

	r.logger.Info("Promoção desativada.", map[string]interface{}{"promotion_id": id})
	return nil
}
