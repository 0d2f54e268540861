package userrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
	"mercadinho/internal/pkg/logger"
	"mercadinho/internal/repository/userrepo"
)

func newRepo(t *testing.T) (*userrepo.UserRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return userrepo.NewUserRepository(db, time.Second, logger.NewLogger("error")), mock
}

func TestSave_Success(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("INSERT INTO usuarios").
		WithArgs(sqlmock.AnyArg(), "tablet@mercadinho.com", "hash", "kiosk", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := repo.Save(context.Background(), domain.User{Email: "tablet@mercadinho.com", PasswordHash: "hash", Role: domain.RoleKiosk})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_Fail_DuplicateEmail(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("INSERT INTO usuarios").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Save(context.Background(), domain.User{Email: "a@b.com", PasswordHash: "h", Role: domain.RoleAdmin})

	var conflict *apperror.ConflictError
	assert.True(t, errors.As(err, &conflict))
}

func TestFindByEmail_Success(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery("FROM usuarios WHERE email").
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "created_at", "updated_at"}).
			AddRow("u1", "a@b.com", "hash", "admin", now, now))

	user, err := repo.FindByEmail(context.Background(), "a@b.com")

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestFindByEmail_Fail_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM usuarios").
		WithArgs("x@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "created_at", "updated_at"}))

	_, err := repo.FindByEmail(context.Background(), "x@b.com")

	var notFound *apperror.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
