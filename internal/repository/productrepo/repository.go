package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"mercadinho/internal/domain"
	"mercadinho/internal/errors"
	"mercadinho/internal/pkg/cache"
	"mercadinho/internal/pkg/database"
	"mercadinho/internal/pkg/logger"
)

// Chave de cache do produto por código de barras.
const barcodeCacheKey = "produto:barcode:%s"

const productColumns = `id, nome, codigo_barras, preco_compra, preco_venda, ativo, created_at, updated_at`

// ProductRepository acessa o catálogo (produtos). A busca por código de barras usa Cache-Aside no Redis.
type ProductRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewProductRepository cria e retorna uma nova instância do Repositório.
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Save persiste um novo produto. Código de barras duplicado vira ConflictError.
func (r *ProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctxTimeout,
		`INSERT INTO produtos (`+productColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		product.ID, product.Name, product.Barcode, product.PurchasePrice, product.SalePrice,
		product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			r.logger.Warn("Código de barras já cadastrado.", map[string]interface{}{"barcode": product.Barcode})
			return domain.Product{}, errors.NewConflictError(fmt.Sprintf("Já existe produto com o código %s.", product.Barcode))
		}
		r.logger.Error("Falha ao inserir produto no DB.", err)
		return domain.Product{}, errors.NewDBError("Falha ao inserir produto", err)
	}

	// O código pode ter pertencido a um produto desativado que ainda está no cache.
	if err := r.Cache.Delete(ctxTimeout, fmt.Sprintf(barcodeCacheKey, product.Barcode)); err != nil {
		r.logger.Warn("Falha ao invalidar cache do produto.", map[string]interface{}{"barcode": product.Barcode, "error": err.Error()})
	}

	r.logger.Info("Produto salvo.", map[string]interface{}{"product_id": product.ID, "barcode": product.Barcode})
	return product, nil
}

// FindByID busca um produto pelo ID.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	product, err := scanProduct(r.DB.QueryRowContext(ctxTimeout, `SELECT `+productColumns+` FROM produtos WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe na base de dados.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar produto por ID no DB.", err)
		return domain.Product{}, errors.NewDBError("Falha ao buscar produto no DB", err)
	}
	return product, nil
}

// FindByBarcode busca um produto ativo pelo código de barras já normalizado, com Cache-Aside.
func (r *ProductRepository) FindByBarcode(ctx context.Context, barcode string) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(barcodeCacheKey, barcode)
	var product domain.Product

	cached, err := r.Cache.Get(ctxTimeout, key)
	if err == nil {
		if json.Unmarshal([]byte(cached), &product) == nil {
			r.logger.Debug("Produto encontrado no cache.", map[string]interface{}{"barcode": barcode})
			return product, nil
		}
		r.logger.Warn("Entrada de cache inválida, consultando o DB.", map[string]interface{}{"key": key})
	} else if err != cache.ErrCacheMiss {
		// Cache fora do ar não impede a venda.
		r.logger.Warn("Falha ao ler do cache.", map[string]interface{}{"key": key, "error": err.Error()})
	}

	product, err = scanProduct(r.DB.QueryRowContext(ctxTimeout,
		`SELECT `+productColumns+` FROM produtos WHERE codigo_barras = $1 AND ativo = TRUE`, barcode))
	if err == sql.ErrNoRows {
		return domain.Product{}, errors.NewProductNotFoundError(barcode)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar produto por código de barras no DB.", err)
		return domain.Product{}, errors.NewDBError("Falha ao buscar produto no DB", err)
	}

	if data, marshalErr := json.Marshal(product); marshalErr == nil {
		if setErr := r.Cache.Set(ctxTimeout, key, data, r.CacheTTL); setErr != nil {
			r.logger.Warn("Falha ao gravar produto no cache.", map[string]interface{}{"key": key, "error": setErr.Error()})
		}
	}

	return product, nil
}

func scanProduct(row *sql.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Barcode, &p.PurchasePrice, &p.SalePrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
