package promotionservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
	"mercadinho/internal/pkg/logger"
	"mercadinho/internal/service/promotionservice"
)

type MockPromotionRepository struct {
	mock.Mock
}

func (m *MockPromotionRepository) Save(ctx context.Context, p domain.Promotion) (domain.Promotion, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) ListActive(ctx context.Context, now time.Time) ([]domain.Promotion, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) ActiveFor(ctx context.Context, productID string, now time.Time) ([]domain.Promotion, error) {
	args := m.Called(ctx, productID, now)
	return args.Get(0).([]domain.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) Deactivate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var fixedNow = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

func newService(repo *MockPromotionRepository) *promotionservice.Service {
	return promotionservice.NewService(repo, logger.NewLogger("debug")).WithClock(func() time.Time { return fixedNow })
}

func strPtr(s string) *string { return &s }

func TestPriceFor_Success_ProductPromotionBeatsGlobal(t *testing.T) {
	mockRepo := new(MockPromotionRepository)
	svc := newService(mockRepo)

	// A global vem primeiro na ordem da consulta e dá mais desconto; mesmo assim a do produto vence.
	mockRepo.On("ActiveFor", mock.Anything, "p1", fixedNow).Return([]domain.Promotion{
		{ID: "global", Percent: decimal.NewFromInt(50), StartsAt: fixedNow.Add(-time.Hour), IsActive: true},
		{ID: "cafe", Percent: decimal.NewFromInt(10), ProductID: strPtr("p1"), StartsAt: fixedNow.Add(-time.Hour), IsActive: true},
	}, nil)

	quote, err := svc.PriceFor(context.Background(), "p1", decimal.RequireFromString("10.00"))

	require.NoError(t, err)
	assert.True(t, quote.Discounted)
	assert.Equal(t, "cafe", quote.PromotionID)
	assert.True(t, decimal.NewFromInt(10).Equal(quote.Percent))
	assert.True(t, decimal.RequireFromString("9.00").Equal(quote.FinalPrice))
	mockRepo.AssertExpectations(t)
}

func TestPriceFor_Success_GlobalOnly(t *testing.T) {
	mockRepo := new(MockPromotionRepository)
	svc := newService(mockRepo)

	mockRepo.On("ActiveFor", mock.Anything, "p1", fixedNow).Return([]domain.Promotion{
		{ID: "global", Percent: decimal.NewFromInt(15), StartsAt: fixedNow.Add(-time.Hour), IsActive: true},
	}, nil)

	quote, err := svc.PriceFor(context.Background(), "p1", decimal.RequireFromString("3.99"))

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("3.39").Equal(quote.FinalPrice), quote.FinalPrice.String())
}

func TestPriceFor_Success_NoPromotion(t *testing.T) {
	mockRepo := new(MockPromotionRepository)
	svc := newService(mockRepo)

	mockRepo.On("ActiveFor", mock.Anything, "p1", fixedNow).Return([]domain.Promotion{}, nil)

	quote, err := svc.PriceFor(context.Background(), "p1", decimal.NewFromInt(5))

	require.NoError(t, err)
	assert.False(t, quote.Discounted)
	assert.True(t, decimal.NewFromInt(5).Equal(quote.FinalPrice))
}

func TestSelect_IgnoresExpiredAndOtherProducts(t *testing.T) {
	ended := fixedNow
	promos := []domain.Promotion{
		{ID: "expirada", ProductID: strPtr("p1"), Percent: decimal.NewFromInt(30), StartsAt: fixedNow.Add(-time.Hour), EndsAt: &ended, IsActive: true},
		{ID: "outro", ProductID: strPtr("p2"), Percent: decimal.NewFromInt(20), IsActive: true},
		{ID: "futura", Percent: decimal.NewFromInt(5), StartsAt: fixedNow.Add(time.Hour), IsActive: true},
	}

	_, ok := promotionservice.Select(promos, "p1", fixedNow)

	assert.False(t, ok)
}

func TestApplyDiscount_RoundsHalfUp(t *testing.T) {
	// 0.05 x 0.5 = 0.025 -> 0.03
	assert.Equal(t, "0.03", promotionservice.ApplyDiscount(decimal.RequireFromString("0.05"), decimal.NewFromInt(50)).StringFixed(2))
	assert.Equal(t, "0.00", promotionservice.ApplyDiscount(decimal.NewFromInt(7), decimal.NewFromInt(100)).StringFixed(2))
}

func TestCreatePromotion_Success_DefaultsStart(t *testing.T) {
	mockRepo := new(MockPromotionRepository)
	svc := newService(mockRepo)

	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(p domain.Promotion) bool {
		return p.ID != "" && p.IsActive && p.StartsAt.Equal(fixedNow) && p.ProductID == nil
	})).Return(domain.Promotion{ID: "novo"}, nil)

	created, err := svc.CreatePromotion(context.Background(), domain.Promotion{
		Description: "Semana do cliente", Percent: decimal.NewFromInt(10), ProductID: strPtr(" "),
	})

	require.NoError(t, err)
	assert.Equal(t, "novo", created.ID)
	mockRepo.AssertExpectations(t)
}

func TestCreatePromotion_Fail_Validation(t *testing.T) {
	end := fixedNow.Add(-time.Hour)
	cases := map[string]domain.Promotion{
		"sem descrição":   {Percent: decimal.NewFromInt(10)},
		"percentual zero": {Description: "x"},
		"acima de 100":    {Description: "x", Percent: decimal.NewFromInt(101)},
		"fim antes":       {Description: "x", Percent: decimal.NewFromInt(10), StartsAt: fixedNow, EndsAt: &end},
	}

	for name, promo := range cases {
		t.Run(name, func(t *testing.T) {
			mockRepo := new(MockPromotionRepository)
			_, err := newService(mockRepo).CreatePromotion(context.Background(), promo)

			var validation *apperror.ValidationError
			assert.True(t, errors.As(err, &validation))
			mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}
