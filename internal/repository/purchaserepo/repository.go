package purchaserepo

import (
	"context"
	"database/sql"
	"time"

	"mercadinho/internal/domain"
	"mercadinho/internal/errors"
	"mercadinho/internal/pkg/logger"
)

// PurchaseRepository grava as compras (compras) e seus itens (itens_compra).
type PurchaseRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewPurchaseRepository cria e retorna uma nova instância do Repositório de Compras.
func NewPurchaseRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *PurchaseRepository {
	return &PurchaseRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// SavePurchase grava o cabeçalho e todas as linhas numa única transação: ou tudo, ou nada.
func (r *PurchaseRepository) SavePurchase(ctx context.Context, purchase domain.Purchase, lines []domain.PurchaseLine) error {
	r.logger.Debug("Gravando compra no repositório.", map[string]interface{}{"purchase_id": purchase.ID, "lines": len(lines)})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação da compra.", err)
		return errors.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctxTimeout, `
        INSERT INTO compras (id, cliente_id, local_id, metodo_pagamento, total, criado_em)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		purchase.ID, purchase.CustomerID, purchase.LocationID, string(purchase.PaymentMethod), purchase.Total, purchase.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir cabeçalho da compra.", err)
		return errors.NewDBError("Falha ao inserir compra", err)
	}

	const lineSQL = `
        INSERT INTO itens_compra (id, compra_id, produto_id, prateleira_id, nome, preco_unitario, preco_original, quantidade)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, l := range lines {
		var lotID sql.NullString
		if l.LotID != "" {
			lotID = sql.NullString{String: l.LotID, Valid: true}
		}
		_, err = tx.ExecContext(ctxTimeout, lineSQL,
			l.ID, l.PurchaseID, l.ProductID, lotID, l.Name, l.UnitPrice, l.OriginalPrice, l.Quantity,
		)
		if err != nil {
			r.logger.Error("Falha ao inserir item da compra.", err)
			return errors.NewDBError("Falha ao inserir itens da compra", err)
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar compra.", err)
		return errors.NewDBError("Falha ao commitar transação", err)
	}

	r.logger.Info("Compra gravada.", map[string]interface{}{"purchase_id": purchase.ID, "total": purchase.Total.String()})
	return nil
}
