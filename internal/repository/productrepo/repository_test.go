package productrepo_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
	"mercadinho/internal/pkg/cache"
	"mercadinho/internal/pkg/logger"
	"mercadinho/internal/repository/productrepo"
)

var productCols = []string{"id", "nome", "codigo_barras", "preco_compra", "preco_venda", "ativo", "created_at", "updated_at"}

func newRepo(t *testing.T) (*productrepo.ProductRepository, sqlmock.Sqlmock, *cache.MemoryClient) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	c := cache.NewMemoryClient()
	return productrepo.NewProductRepository(db, c, time.Second, time.Minute, logger.NewLogger("error")), mock, c
}

func TestFindByBarcode_Success_PopulatesCache(t *testing.T) {
	repo, mock, c := newRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("WHERE codigo_barras = \\$1 AND ativo = TRUE").
		WithArgs("7891234567895").
		WillReturnRows(sqlmock.NewRows(productCols).AddRow("p1", "Café 500g", "7891234567895", "8.00", "12.90", true, now, now))

	product, err := repo.FindByBarcode(context.Background(), "7891234567895")
	require.NoError(t, err)
	assert.Equal(t, "Café 500g", product.Name)

	// Segunda leitura vem do cache, sem nova query.
	again, err := repo.FindByBarcode(context.Background(), "7891234567895")
	require.NoError(t, err)
	assert.Equal(t, product.ID, again.ID)
	assert.True(t, decimal.RequireFromString("12.90").Equal(again.SalePrice))
	assert.NoError(t, mock.ExpectationsWereMet())

	raw, err := c.Get(context.Background(), "produto:barcode:7891234567895")
	require.NoError(t, err)
	var cached domain.Product
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, "p1", cached.ID)
}

func TestFindByBarcode_Fail_NotFound(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectQuery("FROM produtos").
		WithArgs("000").
		WillReturnRows(sqlmock.NewRows(productCols))

	_, err := repo.FindByBarcode(context.Background(), "000")

	var notFound *apperror.ProductNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "000", notFound.Barcode)
}

func TestSave_Fail_DuplicateBarcode(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectExec("INSERT INTO produtos").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Save(context.Background(), domain.Product{ID: "p1", Name: "Café", Barcode: "789"})

	var conflict *apperror.ConflictError
	assert.True(t, errors.As(err, &conflict))
}

func TestSave_Success_InvalidatesCache(t *testing.T) {
	repo, mock, c := newRepo(t)
	require.NoError(t, c.Set(context.Background(), "produto:barcode:789", `{"id":"antigo"}`, 0))

	mock.ExpectExec("INSERT INTO produtos").
		WithArgs("p1", "Café", "789", sqlmock.AnyArg(), sqlmock.AnyArg(), true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.Save(context.Background(), domain.Product{ID: "p1", Name: "Café", Barcode: "789", IsActive: true})
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "produto:barcode:789")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}
