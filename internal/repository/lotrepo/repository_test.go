package lotrepo_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
	"mercadinho/internal/pkg/logger"
	"mercadinho/internal/repository/lotrepo"
)

var lotCols = []string{"id", "local_id", "produto_id", "preco_venda", "quantidade_prateleira", "ativo", "version", "created_at", "updated_at"}

func newRepo(t *testing.T) (*lotrepo.LotRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return lotrepo.NewLotRepository(db, time.Second, logger.NewLogger("error")), mock
}

func TestAvailability_Success(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows(append(lotCols, "total")).
		AddRow("l1", "loc", "p1", "2.00", 2, true, 1, now, now, 6).
		AddRow("l3", "loc", "p1", "3.50", 4, true, 1, now, now, 6)
	mock.ExpectQuery(regexp.QuoteMeta("SUM(quantidade_prateleira) OVER () AS total")).
		WithArgs("loc", "p1").
		WillReturnRows(rows)

	av, err := repo.Availability(context.Background(), "loc", "p1")

	require.NoError(t, err)
	assert.Equal(t, 6, av.Total)
	require.Len(t, av.Lots, 2)
	assert.Equal(t, "l1", av.Lots[0].ID)
	assert.True(t, decimal.RequireFromString("2").Equal(av.Lots[0].Price))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailability_Success_NoLots(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM prateleiras_produtos").
		WithArgs("loc", "p1").
		WillReturnRows(sqlmock.NewRows(append(lotCols, "total")))

	av, err := repo.Availability(context.Background(), "loc", "p1")

	require.NoError(t, err)
	assert.Equal(t, 0, av.Total)
	assert.Empty(t, av.Lots)
	assert.NotNil(t, av.Lots)
}

func TestTotalAvailable_Success(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(quantidade_prateleira), 0)")).
		WithArgs("loc", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(6))

	total, err := repo.TotalAvailable(context.Background(), "loc", "p1")

	require.NoError(t, err)
	assert.Equal(t, 6, total)
}

func TestGetLot_Fail_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM prateleiras_produtos WHERE id").
		WithArgs("l9").
		WillReturnRows(sqlmock.NewRows(lotCols))

	_, err := repo.GetLot(context.Background(), "l9")

	var notFound *apperror.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestDecrementLot_Success(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("quantidade_prateleira = quantidade_prateleira - $1")).
		WithArgs(3, sqlmock.AnyArg(), "l1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.DecrementLot(context.Background(), "l1", 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementLot_Fail_InsufficientStock(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("UPDATE prateleiras_produtos").
		WithArgs(3, sqlmock.AnyArg(), "l1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DecrementLot(context.Background(), "l1", 3)

	var conflict *apperror.ConflictError
	assert.True(t, errors.As(err, &conflict))
}

func TestAddCentralStock_Success_FirstEntry(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM estoque_central WHERE produto_id = \\$1 FOR UPDATE").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"produto_id", "quantidade", "version", "updated_at"}))
	mock.ExpectExec("INSERT INTO estoque_central").
		WithArgs("p1", 10, 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	cs, err := repo.AddCentralStock(context.Background(), "p1", 10)

	require.NoError(t, err)
	assert.Equal(t, 10, cs.Quantity)
	assert.Equal(t, 1, cs.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCentralStock_Fail_VersionConflict(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM estoque_central").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"produto_id", "quantidade", "version", "updated_at"}).AddRow("p1", 5, 3, time.Now()))
	mock.ExpectExec("UPDATE estoque_central").
		WithArgs(15, 4, sqlmock.AnyArg(), "p1", 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.AddCentralStock(context.Background(), "p1", 10)

	var conflict *apperror.ConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferFromCentral_Success_CreatesLot(t *testing.T) {
	repo, mock := newRepo(t)
	req := domain.StockTransferRequest{ProductID: "p1", LocationID: "loc", Quantity: 4, Price: decimal.RequireFromString("3.50")}

	mock.ExpectBegin()
	mock.ExpectQuery("FROM estoque_central").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"produto_id", "quantidade", "version", "updated_at"}).AddRow("p1", 10, 1, time.Now()))
	mock.ExpectExec("UPDATE estoque_central").
		WithArgs(6, 2, sqlmock.AnyArg(), "p1", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("preco_venda = \\$3 AND ativo = TRUE").
		WithArgs("loc", "p1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(lotCols))
	mock.ExpectExec("INSERT INTO prateleiras_produtos").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	lot, err := repo.TransferFromCentral(context.Background(), req)

	require.NoError(t, err)
	assert.NotEmpty(t, lot.ID)
	assert.Equal(t, 4, lot.Quantity)
	assert.True(t, lot.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferFromCentral_Success_ReusesSamePriceLot(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()
	req := domain.StockTransferRequest{ProductID: "p1", LocationID: "loc", Quantity: 4, Price: decimal.RequireFromString("3.50")}

	mock.ExpectBegin()
	mock.ExpectQuery("FROM estoque_central").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"produto_id", "quantidade", "version", "updated_at"}).AddRow("p1", 10, 1, now))
	mock.ExpectExec("UPDATE estoque_central").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("preco_venda = \\$3").
		WillReturnRows(sqlmock.NewRows(lotCols).AddRow("l1", "loc", "p1", "3.50", 2, true, 7, now, now))
	mock.ExpectExec("UPDATE prateleiras_produtos").
		WithArgs(6, 8, sqlmock.AnyArg(), "l1", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	lot, err := repo.TransferFromCentral(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "l1", lot.ID)
	assert.Equal(t, 6, lot.Quantity)
	assert.Equal(t, 8, lot.Version)
}

func TestTransferFromCentral_Fail_InsufficientCentral(t *testing.T) {
	repo, mock := newRepo(t)
	req := domain.StockTransferRequest{ProductID: "p1", LocationID: "loc", Quantity: 40, Price: decimal.NewFromInt(3)}

	mock.ExpectBegin()
	mock.ExpectQuery("FROM estoque_central").
		WillReturnRows(sqlmock.NewRows([]string{"produto_id", "quantidade", "version", "updated_at"}).AddRow("p1", 10, 1, time.Now()))
	mock.ExpectRollback()

	_, err := repo.TransferFromCentral(context.Background(), req)

	var validation *apperror.ValidationError
	assert.True(t, errors.As(err, &validation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateLot_Success(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery("SET ativo = FALSE").
		WithArgs(sqlmock.AnyArg(), "l1").
		WillReturnRows(sqlmock.NewRows(lotCols).AddRow("l1", "loc", "p1", "2.00", 3, false, 2, now, now))

	lot, err := repo.DeactivateLot(context.Background(), "l1")

	require.NoError(t, err)
	assert.False(t, lot.IsActive)
	assert.Equal(t, 3, lot.Quantity)
}
