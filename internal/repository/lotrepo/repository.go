package lotrepo

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

// LotRepository acessa os lotes de prateleira (prateleiras_produtos) e o estoque central.
// Não contém regra de negócio além da leitura e da atualização atômica de uma contagem.
type LotRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewLotRepository cria e retorna uma nova instância do Repositório de Lotes.
func NewLotRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *LotRepository {
	return &LotRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

const lotColumns = `id, local_id, produto_id, preco_venda, quantidade_prateleira, ativo, version, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLot(row rowScanner, extra ...interface{}) (domain.ShelfLot, error) {
	var l domain.ShelfLot
	dest := append([]interface{}{
		&l.ID, &l.LocationID, &l.ProductID, &l.Price, &l.Quantity, &l.IsActive, &l.Version, &l.CreatedAt, &l.UpdatedAt,
	}, extra...)
	err := row.Scan(dest...)
	return l, err
}

// Availability lê de uma vez os lotes vendáveis e o total disponível de (local, produto).
// O total vem de uma SUM de janela na mesma consulta, então lotes e total nunca divergem.
func (r *LotRepository) Availability(ctx context.Context, locationID, productID string) (domain.LotAvailability, error) {
	r.logger.Debug("Buscando disponibilidade no repositório.", map[string]interface{}{"location_id": locationID, "product_id": productID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT ` + lotColumns + `, SUM(quantidade_prateleira) OVER () AS total
        FROM prateleiras_produtos
        WHERE local_id = $1 AND produto_id = $2 AND ativo = TRUE AND quantidade_prateleira > 0
        ORDER BY preco_venda ASC, id ASC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, locationID, productID)
	if err != nil {
		r.logger.Error("Falha ao consultar lotes ativos no DB.", err)
		return domain.LotAvailability{}, errors.NewDBError("Falha ao buscar lotes ativos", err)
	}
	defer rows.Close()

	av := domain.LotAvailability{LocationID: locationID, ProductID: productID, Lots: []domain.ShelfLot{}}
	for rows.Next() {
		var total int
		lot, err := scanLot(rows, &total)
		if err != nil {
			r.logger.Error("Falha ao mapear lote.", err)
			return domain.LotAvailability{}, errors.NewDBError("Falha ao mapear lotes do DB", err)
		}
		av.Lots = append(av.Lots, lot)
		av.Total = total
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Erro após iteração dos lotes.", err)
		return domain.LotAvailability{}, errors.NewDBError("Erro após iteração de lotes", err)
	}

	r.logger.Debug("Disponibilidade encontrada.", map[string]interface{}{"product_id": productID, "lots": len(av.Lots), "total": av.Total})
	return av, nil
}

// ListActiveLots devolve os lotes ativos com saldo, por preço crescente e id.
// O carrinho lê por Availability, que traz lotes e total na mesma consulta.
func (r *LotRepository) ListActiveLots(ctx context.Context, locationID, productID string) ([]domain.ShelfLot, error) {
	av, err := r.Availability(ctx, locationID, productID)
	if err != nil {
		return nil, err
	}
	return av.Lots, nil
}

// TotalAvailable soma o saldo dos lotes ativos de (local, produto).
func (r *LotRepository) TotalAvailable(ctx context.Context, locationID, productID string) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT COALESCE(SUM(quantidade_prateleira), 0)
        FROM prateleiras_produtos
        WHERE local_id = $1 AND produto_id = $2 AND ativo = TRUE`

	var total int
	if err := r.DB.QueryRowContext(ctxTimeout, query, locationID, productID).Scan(&total); err != nil {
		r.logger.Error("Falha ao somar estoque de prateleira.", err)
		return 0, errors.NewDBError("Falha ao calcular total disponível", err)
	}
	return total, nil
}

// GetLot busca um lote pelo ID, ativo ou não.
func (r *LotRepository) GetLot(ctx context.Context, lotID string) (domain.ShelfLot, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + lotColumns + ` FROM prateleiras_produtos WHERE id = $1`

	lot, err := scanLot(r.DB.QueryRowContext(ctxTimeout, query, lotID))
	if err == sql.ErrNoRows {
		r.logger.Info("Lote não encontrado.", map[string]interface{}{"lot_id": lotID})
		return domain.ShelfLot{}, errors.NewNotFoundError(fmt.Sprintf("Lote %s não encontrado.", lotID))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar lote no DB.", err)
		return domain.ShelfLot{}, errors.NewDBError("Falha ao buscar lote", err)
	}
	return lot, nil
}

// DecrementLot baixa quantity unidades do lote numa única instrução.
// Se o saldo não cobre a baixa nada é alterado e um ConflictError é devolvido.
func (r *LotRepository) DecrementLot(ctx context.Context, lotID string, quantity int) error {
	r.logger.Debug("Baixando estoque do lote.", map[string]interface{}{"lot_id": lotID, "quantity": quantity})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE prateleiras_produtos
        SET quantidade_prateleira = quantidade_prateleira - $1, version = version + 1, updated_at = $2
        WHERE id = $3 AND quantidade_prateleira >= $1`

	result, err := r.DB.ExecContext(ctxTimeout, query, quantity, time.Now().UTC(), lotID)
	if err != nil {
		r.logger.Error("Falha ao baixar estoque do lote.", err)
		return errors.NewDBError("Falha ao baixar estoque do lote", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Falha ao verificar linhas afetadas após baixa de estoque.", err)
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Baixa de estoque rejeitada: saldo insuficiente ou lote inexistente.", map[string]interface{}{"lot_id": lotID, "quantity": quantity})
		return errors.NewConflictError(fmt.Sprintf("Saldo do lote %s não cobre a baixa de %d unidades.", lotID, quantity))
	}
	return nil
}

// GetCentralStock busca o estoque central de um produto.
func (r *LotRepository) GetCentralStock(ctx context.Context, productID string) (domain.CentralStock, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT produto_id, quantidade, version, updated_at FROM estoque_central WHERE produto_id = $1`

	var cs domain.CentralStock
	err := r.DB.QueryRowContext(ctxTimeout, query, productID).Scan(&cs.ProductID, &cs.Quantity, &cs.Version, &cs.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.CentralStock{}, errors.NewNotFoundError(fmt.Sprintf("Estoque central do produto %s não encontrado.", productID))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar estoque central.", err)
		return domain.CentralStock{}, errors.NewDBError("Falha ao buscar estoque central", err)
	}
	return cs, nil
}

// AddCentralStock soma unidades ao estoque central, criando o registro na primeira entrada.
func (r *LotRepository) AddCentralStock(ctx context.Context, productID string, quantity int) (domain.CentralStock, error) {
	r.logger.Debug("Iniciando entrada no estoque central.", map[string]interface{}{"product_id": productID, "quantity": quantity})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de entrada.", err)
		return domain.CentralStock{}, errors.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var cs domain.CentralStock
	err = tx.QueryRowContext(ctxTimeout,
		`SELECT produto_id, quantidade, version, updated_at FROM estoque_central WHERE produto_id = $1 FOR UPDATE`,
		productID,
	).Scan(&cs.ProductID, &cs.Quantity, &cs.Version, &cs.UpdatedAt)

	if err == sql.ErrNoRows {
		cs = domain.CentralStock{ProductID: productID, Quantity: quantity, Version: 1, UpdatedAt: now}
		_, err = tx.ExecContext(ctxTimeout,
			`INSERT INTO estoque_central (produto_id, quantidade, version, updated_at) VALUES ($1, $2, $3, $4)`,
			cs.ProductID, cs.Quantity, cs.Version, cs.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Falha ao inserir estoque central.", err)
			return domain.CentralStock{}, errors.NewDBError("Falha ao inserir estoque central", err)
		}
	} else if err != nil {
		r.logger.Error("Falha ao selecionar estoque central para atualização.", err)
		return domain.CentralStock{}, errors.NewDBError("Falha ao buscar estoque central", err)
	} else {
		if err := updateCentral(ctxTimeout, tx, &cs, cs.Quantity+quantity, now); err != nil {
			return domain.CentralStock{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar entrada no estoque central.", err)
		return domain.CentralStock{}, errors.NewDBError("Falha ao commitar transação", err)
	}

	r.logger.Info("Entrada no estoque central registrada.", map[string]interface{}{"product_id": productID, "quantity": cs.Quantity, "version": cs.Version})
	return cs, nil
}

// updateCentral grava a nova quantidade checando a versão lida (OCC).
func updateCentral(ctx context.Context, tx *sql.Tx, cs *domain.CentralStock, newQuantity int, now time.Time) error {
	result, err := tx.ExecContext(ctx, `
        UPDATE estoque_central
        SET quantidade = $1, version = $2, updated_at = $3
        WHERE produto_id = $4 AND version = $5`,
		newQuantity, cs.Version+1, now, cs.ProductID, cs.Version,
	)
	if err != nil {
		return errors.NewDBError("Falha ao atualizar estoque central", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	} else if n == 0 {
		return errors.NewConflictError("O estoque central foi modificado por outra operação. Tente novamente.")
	}

	cs.Quantity = newQuantity
	cs.Version++
	cs.UpdatedAt = now
	return nil
}

// TransferFromCentral move unidades do estoque central para a prateleira de um local.
// Reaproveita o lote ativo de mesmo (local, produto, preço) ou cria um lote novo.
func (r *LotRepository) TransferFromCentral(ctx context.Context, req domain.StockTransferRequest) (domain.ShelfLot, error) {
	r.logger.Debug("Iniciando transferência para prateleira.", map[string]interface{}{
		"product_id":  req.ProductID,
		"location_id": req.LocationID,
		"quantity":    req.Quantity,
		"price":       req.Price.String(),
	})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de transferência.", err)
		return domain.ShelfLot{}, errors.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	var cs domain.CentralStock
	err = tx.QueryRowContext(ctxTimeout,
		`SELECT produto_id, quantidade, version, updated_at FROM estoque_central WHERE produto_id = $1 FOR UPDATE`,
		req.ProductID,
	).Scan(&cs.ProductID, &cs.Quantity, &cs.Version, &cs.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.ShelfLot{}, errors.NewValidationError("Produto sem estoque central para transferir.")
	}
	if err != nil {
		r.logger.Error("Falha ao selecionar estoque central para transferência.", err)
		return domain.ShelfLot{}, errors.NewDBError("Falha ao buscar estoque central", err)
	}
	if cs.Quantity < req.Quantity {
		r.logger.Warn("Transferência maior que o estoque central.", map[string]interface{}{"product_id": req.ProductID, "central": cs.Quantity, "requested": req.Quantity})
		return domain.ShelfLot{}, errors.NewValidationError(fmt.Sprintf("Estoque central insuficiente: %d disponível.", cs.Quantity))
	}

	now := time.Now().UTC()
	if err := updateCentral(ctxTimeout, tx, &cs, cs.Quantity-req.Quantity, now); err != nil {
		r.logger.Warn("Falha ao debitar estoque central.", map[string]interface{}{"product_id": req.ProductID, "error": err.Error()})
		return domain.ShelfLot{}, err
	}

	lot, err := scanLot(tx.QueryRowContext(ctxTimeout, `
        SELECT `+lotColumns+`
        FROM prateleiras_produtos
        WHERE local_id = $1 AND produto_id = $2 AND preco_venda = $3 AND ativo = TRUE
        ORDER BY created_at ASC
        LIMIT 1 FOR UPDATE`,
		req.LocationID, req.ProductID, req.Price,
	))

	switch {
	case err == sql.ErrNoRows:
		lot = domain.ShelfLot{
			ID:         uuid.New().String(),
			LocationID: req.LocationID,
			ProductID:  req.ProductID,
			Price:      req.Price,
			Quantity:   req.Quantity,
			IsActive:   true,
			Version:    1,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		_, err = tx.ExecContext(ctxTimeout, `
            INSERT INTO prateleiras_produtos (`+lotColumns+`)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			lot.ID, lot.LocationID, lot.ProductID, lot.Price, lot.Quantity, lot.IsActive, lot.Version, lot.CreatedAt, lot.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Falha ao criar lote de prateleira.", err)
			return domain.ShelfLot{}, errors.NewDBError("Falha ao criar lote", err)
		}
	case err != nil:
		r.logger.Error("Falha ao buscar lote de mesmo preço.", err)
		return domain.ShelfLot{}, errors.NewDBError("Falha ao buscar lote", err)
	default:
		if err := updateLotQuantity(ctxTimeout, tx, &lot, lot.Quantity+req.Quantity, now); err != nil {
			return domain.ShelfLot{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar transferência.", err)
		return domain.ShelfLot{}, errors.NewDBError("Falha ao commitar transação", err)
	}

	r.logger.Info("Transferência para prateleira concluída.", map[string]interface{}{"lot_id": lot.ID, "quantity": lot.Quantity, "central": cs.Quantity})
	return lot, nil
}

// updateLotQuantity grava a nova quantidade do lote checando a versão lida (OCC).
func updateLotQuantity(ctx context.Context, tx *sql.Tx, lot *domain.ShelfLot, newQuantity int, now time.Time) error {
	result, err := tx.ExecContext(ctx, `
        UPDATE prateleiras_produtos
        SET quantidade_prateleira = $1, version = $2, updated_at = $3
        WHERE id = $4 AND version = $5`,
		newQuantity, lot.Version+1, now, lot.ID, lot.Version,
	)
	if err != nil {
		return errors.NewDBError("Falha ao atualizar lote", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	} else if n == 0 {
		return errors.NewConflictError("O lote foi modificado por outra operação. Tente novamente.")
	}

	lot.Quantity = newQuantity
	lot.Version++
	lot.UpdatedAt = now
	return nil
}

// AdjustLot define a quantidade do lote a partir de uma contagem manual.
func (r *LotRepository) AdjustLot(ctx context.Context, lotID string, quantity int) (domain.ShelfLot, error) {
	r.logger.Debug("Iniciando ajuste manual de lote.", map[string]interface{}{"lot_id": lotID, "quantity": quantity})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de ajuste.", err)
		return domain.ShelfLot{}, errors.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	lot, err := scanLot(tx.QueryRowContext(ctxTimeout,
		`SELECT `+lotColumns+` FROM prateleiras_produtos WHERE id = $1 FOR UPDATE`, lotID))
	if err == sql.ErrNoRows {
		return domain.ShelfLot{}, errors.NewNotFoundError(fmt.Sprintf("Lote %s não encontrado.", lotID))
	}
	if err != nil {
		r.logger.Error("Falha ao selecionar lote para ajuste.", err)
		return domain.ShelfLot{}, errors.NewDBError("Falha ao buscar lote", err)
	}

	if err := updateLotQuantity(ctxTimeout, tx, &lot, quantity, time.Now().UTC()); err != nil {
		r.logger.Warn("Falha ao ajustar lote.", map[string]interface{}{"lot_id": lotID, "error": err.Error()})
		return domain.ShelfLot{}, err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar ajuste de lote.", err)
		return domain.ShelfLot{}, errors.NewDBError("Falha ao commitar transação", err)
	}

	r.logger.Info("Lote ajustado.", map[string]interface{}{"lot_id": lotID, "quantity": lot.Quantity, "version": lot.Version})
	return lot, nil
}

// DeactivateLot tira o lote da venda. O registro e o saldo são mantidos.
func (r *LotRepository) DeactivateLot(ctx context.Context, lotID string) (domain.ShelfLot, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE prateleiras_produtos
        SET ativo = FALSE, version = version + 1, updated_at = $1
        WHERE id = $2
        RETURNING ` + lotColumns

	lot, err := scanLot(r.DB.QueryRowContext(ctxTimeout, query, time.Now().UTC(), lotID))
	if err == sql.ErrNoRows {
		return domain.ShelfLot{}, errors.NewNotFoundError(fmt.Sprintf("Lote %s não encontrado.", lotID))
	}
	if err != nil {
		r.logger.Error("Falha ao desativar lote.", err)
		return domain.ShelfLot{}, errors.NewDBError("Falha ao desativar lote", err)
	}

	r.logger.Info("Lote desativado.", map[string]interface{}{"lot_id": lotID})
	return lot, nil
}
