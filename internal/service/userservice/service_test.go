package userservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
	"mercadinho/internal/pkg/logger"
	"mercadinho/internal/service/userservice"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(userID string, userRole string) (string, error) {
	args := m.Called(userID, userRole)
	return args.String(0), args.Error(1)
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister_Success_HashesPasswordAndDefaultsRole(t *testing.T) {
	repo := new(MockUserRepository)
	svc := userservice.NewService(repo, new(MockTokenService), logger.NewLogger("error"))

	repo.On("Save", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "tablet1@mercadinho.com" &&
			u.Role == domain.RoleKiosk &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("segredo123")) == nil
	})).Return(domain.User{ID: "u1", Email: "tablet1@mercadinho.com", Role: domain.RoleKiosk}, nil)

	user, err := svc.Register(context.Background(), domain.UserRegistration{Email: " Tablet1@Mercadinho.com ", Password: "segredo123"})

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	repo.AssertExpectations(t)
}

func TestRegister_Fail_Validation(t *testing.T) {
	svc := userservice.NewService(new(MockUserRepository), new(MockTokenService), logger.NewLogger("error"))

	cases := map[string]domain.UserRegistration{
		"sem email":      {Password: "segredo123"},
		"email inválido": {Email: "sem-arroba", Password: "segredo123"},
		"senha curta":    {Email: "a@b.com", Password: "123"},
		"papel inválido": {Email: "a@b.com", Password: "segredo123", Role: "root"},
	}
	for name, reg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), reg)
			assert.IsType(t, &apperror.ValidationError{}, err)
		})
	}
}

func TestRegister_Fail_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := userservice.NewService(repo, new(MockTokenService), logger.NewLogger("error"))
	repo.On("Save", mock.Anything, mock.Anything).Return(domain.User{}, apperror.NewConflictError("O email 'a@b.com' já está em uso."))

	_, err := svc.Register(context.Background(), domain.UserRegistration{Email: "a@b.com", Password: "segredo123", Role: domain.RoleAdmin})

	assert.IsType(t, &apperror.ConflictError{}, err)
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockUserRepository)
	tokens := new(MockTokenService)
	svc := userservice.NewService(repo, tokens, logger.NewLogger("error"))

	repo.On("FindByEmail", mock.Anything, "admin@mercadinho.com").
		Return(domain.User{ID: "u1", Email: "admin@mercadinho.com", PasswordHash: hash(t, "segredo123"), Role: domain.RoleAdmin}, nil)
	tokens.On("GenerateToken", "u1", "admin").Return("jwt-token", nil)

	token, err := svc.Login(context.Background(), "admin@mercadinho.com", "segredo123")

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
}

func TestLogin_Fail_UnknownEmailIsUnauthorized(t *testing.T) {
	repo := new(MockUserRepository)
	svc := userservice.NewService(repo, new(MockTokenService), logger.NewLogger("error"))
	repo.On("FindByEmail", mock.Anything, "x@y.com").Return(domain.User{}, apperror.NewNotFoundError("x"))

	_, err := svc.Login(context.Background(), "x@y.com", "segredo123")

	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}

func TestLogin_Fail_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	tokens := new(MockTokenService)
	svc := userservice.NewService(repo, tokens, logger.NewLogger("error"))
	repo.On("FindByEmail", mock.Anything, "a@b.com").Return(domain.User{ID: "u1", PasswordHash: hash(t, "certa12345")}, nil)

	_, err := svc.Login(context.Background(), "a@b.com", "errada12345")

	assert.IsType(t, &apperror.UnauthorizedError{}, err)
	tokens.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestLogin_Fail_TokenError(t *testing.T) {
	repo := new(MockUserRepository)
	tokens := new(MockTokenService)
	svc := userservice.NewService(repo, tokens, logger.NewLogger("fatal"))
	repo.On("FindByEmail", mock.Anything, "a@b.com").Return(domain.User{ID: "u1", PasswordHash: hash(t, "certa12345"), Role: domain.RoleKiosk}, nil)
	tokens.On("GenerateToken", "u1", "kiosk").Return("", errors.New("sem chave"))

	_, err := svc.Login(context.Background(), "a@b.com", "certa12345")

	assert.IsType(t, &apperror.InternalError{}, err)
}
