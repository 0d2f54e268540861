package checkoutservice_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
	"mercadinho/internal/pkg/cache"
	"mercadinho/internal/pkg/logger"
	"mercadinho/internal/repository/memstore"
	"mercadinho/internal/service/checkoutservice"
)

type MockDriftReporter struct {
	mock.Mock
}

func (m *MockDriftReporter) ReportDrift(ctx context.Context, drift domain.StockDrift) {
	m.Called(ctx, drift)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixture(t *testing.T) (*memstore.Store, domain.CheckoutRequest) {
	t.Helper()
	store := memstore.New()
	store.PutLot(domain.ShelfLot{ID: "L1", LocationID: "loc", ProductID: "p1", Price: dec("2.00"), Quantity: 1, IsActive: true})
	store.PutLot(domain.ShelfLot{ID: "L2", LocationID: "loc", ProductID: "p1", Price: dec("3.00"), Quantity: 5, IsActive: true})
	store.PutLot(domain.ShelfLot{ID: "L3", LocationID: "loc", ProductID: "p2", Price: dec("9.90"), Quantity: 2, IsActive: true})

	original := dec("11.00")
	req := domain.CheckoutRequest{
		LocationID:    "loc",
		PaymentMethod: domain.PaymentPix,
		Cart: domain.Cart{Lines: []domain.CartLine{
			{ProductID: "p1", Name: "Leite", UnitPrice: dec("2.00"), Quantity: 1, LotID: "L1"},
			{ProductID: "p1", Name: "Leite", UnitPrice: dec("3.00"), Quantity: 4, LotID: "L2"},
			{ProductID: "p2", Name: "Café", UnitPrice: dec("9.90"), OriginalPrice: &original, Quantity: 2, LotID: "L3"},
		}},
	}
	return store, req
}

func newService(store *memstore.Store, drift checkoutservice.DriftReporter) *checkoutservice.Service {
	return checkoutservice.NewService(store.Lots(), store.Purchases(), drift, logger.NewLogger("error"))
}

func TestCheckout_Success_PersistsExactLinesAndDecrements(t *testing.T) {
	store, req := fixture(t)
	drift := new(MockDriftReporter)

	result, err := newService(store, drift).Checkout(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutSucceeded, result.State)
	assert.Empty(t, result.Drifts)
	assert.True(t, dec("33.80").Equal(result.Purchase.Total))

	saved := store.SavedPurchases()
	require.Len(t, saved, 1)
	lines := store.SavedLines(saved[0].ID)
	require.Len(t, lines, 3)
	for i, l := range lines {
		cartLine := req.Cart.Lines[i]
		assert.Equal(t, cartLine.ProductID, l.ProductID)
		assert.Equal(t, cartLine.LotID, l.LotID)
		assert.Equal(t, cartLine.Quantity, l.Quantity)
		assert.True(t, cartLine.UnitPrice.Equal(l.UnitPrice))
		assert.Equal(t, saved[0].ID, l.PurchaseID)
	}
	require.NotNil(t, lines[2].OriginalPrice)
	assert.True(t, dec("11.00").Equal(*lines[2].OriginalPrice))

	l1, _ := store.Lot("L1")
	l2, _ := store.Lot("L2")
	l3, _ := store.Lot("L3")
	assert.Equal(t, 0, l1.Quantity)
	assert.Equal(t, 1, l2.Quantity)
	assert.Equal(t, 0, l3.Quantity)
	drift.AssertNotCalled(t, "ReportDrift", mock.Anything, mock.Anything)
}

func TestCheckout_Fail_StockChanged_WritesNothing(t *testing.T) {
	store, req := fixture(t)
	store.SetLotQuantity("L2", 3) // carrinho reservou 4

	_, err := newService(store, new(MockDriftReporter)).Checkout(context.Background(), req)

	var changed *apperror.StockChangedError
	require.True(t, errors.As(err, &changed))
	assert.Equal(t, "p1", changed.ProductID)
	assert.Equal(t, "Leite", changed.Name)
	assert.Equal(t, 4, changed.Reserved)
	assert.Equal(t, 3, changed.Current)
	assert.Empty(t, store.SavedPurchases())

	l1, _ := store.Lot("L1")
	assert.Equal(t, 1, l1.Quantity, "nenhuma baixa antes da gravação")
}

func TestCheckout_Fail_StockChanged_AggregatesSameLot(t *testing.T) {
	store, req := fixture(t)
	// Duas linhas no mesmo lote (preço mudou por promoção no meio da sessão) somam 6 em L2.
	req.Cart.Lines = append(req.Cart.Lines, domain.CartLine{ProductID: "p1", Name: "Leite", UnitPrice: dec("2.70"), Quantity: 2, LotID: "L2"})

	_, err := newService(store, new(MockDriftReporter)).Checkout(context.Background(), req)

	var changed *apperror.StockChangedError
	require.True(t, errors.As(err, &changed))
	assert.Equal(t, "L2", changed.LotID)
	assert.Equal(t, 6, changed.Reserved)
}

func TestCheckout_Fail_StockChanged_LotDeactivated(t *testing.T) {
	store, req := fixture(t)
	_, err := store.Lots().DeactivateLot(context.Background(), "L3")
	require.NoError(t, err)

	_, err = newService(store, new(MockDriftReporter)).Checkout(context.Background(), req)

	var changed *apperror.StockChangedError
	require.True(t, errors.As(err, &changed))
	assert.Equal(t, "Café", changed.Name)
	assert.Equal(t, 0, changed.Current)
}

func TestCheckout_Fail_SettlementFailed_NoStockTouched(t *testing.T) {
	store, req := fixture(t)
	store.FailPurchases(errors.New("conexão recusada"))

	_, err := newService(store, new(MockDriftReporter)).Checkout(context.Background(), req)

	var settlement *apperror.SettlementFailedError
	require.True(t, errors.As(err, &settlement))
	l2, _ := store.Lot("L2")
	assert.Equal(t, 5, l2.Quantity)
}

func TestCheckout_PartiallyFailed_SkipsFailedDecrementAndReports(t *testing.T) {
	store, req := fixture(t)
	store.FailDecrement("L2", errors.New("timeout"))
	drift := new(MockDriftReporter)
	drift.On("ReportDrift", mock.Anything, mock.MatchedBy(func(d domain.StockDrift) bool {
		return d.LotID == "L2" && d.Quantity == 4 && d.Reason == "timeout"
	})).Once()

	result, err := newService(store, drift).Checkout(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutPartiallyFailed, result.State)
	require.Len(t, result.Drifts, 1)
	assert.Equal(t, result.Purchase.ID, result.Drifts[0].PurchaseID)
	assert.Len(t, store.SavedPurchases(), 1)

	// As outras linhas foram baixadas mesmo com a falha no meio.
	l3, _ := store.Lot("L3")
	assert.Equal(t, 0, l3.Quantity)
	drift.AssertExpectations(t)
}

func TestCheckout_Fail_Validation(t *testing.T) {
	store, req := fixture(t)
	svc := newService(store, new(MockDriftReporter))
	blank := " "

	cases := map[string]func(r *domain.CheckoutRequest){
		"carrinho vazio":         func(r *domain.CheckoutRequest) { r.Cart = domain.Cart{} },
		"sem local":              func(r *domain.CheckoutRequest) { r.LocationID = "" },
		"pagamento desconhecido": func(r *domain.CheckoutRequest) { r.PaymentMethod = "cartao" },
		"caderneta sem cliente":  func(r *domain.CheckoutRequest) { r.PaymentMethod = domain.PaymentCaderneta; r.CustomerID = &blank },
		"linha sem lote":         func(r *domain.CheckoutRequest) { r.Cart.Lines[0].LotID = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := req
			r.Cart = req.Cart.Clone()
			mutate(&r)

			_, err := svc.Checkout(context.Background(), r)

			var validation *apperror.ValidationError
			assert.True(t, errors.As(err, &validation))
		})
	}
	assert.Empty(t, store.SavedPurchases())
}

func TestCheckout_Fail_LotFromOtherProductOrLocation(t *testing.T) {
	cases := map[string]func(store *memstore.Store) domain.CartLine{
		"lote de outro produto em outro local": func(store *memstore.Store) domain.CartLine {
			store.PutLot(domain.ShelfLot{ID: "LX", LocationID: "outro-loc", ProductID: "p2", Price: dec("0.01"), Quantity: 5, IsActive: true})
			return domain.CartLine{ProductID: "p1", Name: "Leite", UnitPrice: dec("0.01"), Quantity: 3, LotID: "LX"}
		},
		"lote do mesmo produto em outro local": func(store *memstore.Store) domain.CartLine {
			store.PutLot(domain.ShelfLot{ID: "LX", LocationID: "outro-loc", ProductID: "p1", Price: dec("2.00"), Quantity: 5, IsActive: true})
			return domain.CartLine{ProductID: "p1", Name: "Leite", UnitPrice: dec("2.00"), Quantity: 3, LotID: "LX"}
		},
		"lote de outro produto no mesmo local": func(store *memstore.Store) domain.CartLine {
			return domain.CartLine{ProductID: "p1", Name: "Leite", UnitPrice: dec("9.90"), Quantity: 1, LotID: "L3"}
		},
	}

	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			store, req := fixture(t)
			req.Cart = domain.Cart{Lines: []domain.CartLine{build(store)}}

			_, err := newService(store, new(MockDriftReporter)).Checkout(context.Background(), req)

			var validation *apperror.ValidationError
			require.True(t, errors.As(err, &validation))
			assert.Empty(t, store.SavedPurchases())
			if lx, ok := store.Lot("LX"); ok {
				assert.Equal(t, 5, lx.Quantity)
			}
			l3, _ := store.Lot("L3")
			assert.Equal(t, 2, l3.Quantity)
		})
	}
}

func TestCheckout_Fail_SameLotClaimedByTwoProducts(t *testing.T) {
	store, req := fixture(t)
	req.Cart = domain.Cart{Lines: []domain.CartLine{
		{ProductID: "p2", Name: "Café", UnitPrice: dec("9.90"), Quantity: 1, LotID: "L3"},
		{ProductID: "p1", Name: "Leite", UnitPrice: dec("9.90"), Quantity: 1, LotID: "L3"},
	}}

	_, err := newService(store, new(MockDriftReporter)).Checkout(context.Background(), req)

	var validation *apperror.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Empty(t, store.SavedPurchases())
}

func TestCheckout_Success_CadernetaWithCustomer(t *testing.T) {
	store, req := fixture(t)
	customer := "cliente-42"
	req.PaymentMethod = domain.PaymentCaderneta
	req.CustomerID = &customer

	result, err := newService(store, new(MockDriftReporter)).Checkout(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, result.Purchase.CustomerID)
	assert.Equal(t, "cliente-42", *result.Purchase.CustomerID)
}

func TestCacheDriftReporter_PushesJSON(t *testing.T) {
	c := cache.NewMemoryClient()
	reporter := checkoutservice.NewCacheDriftReporter(c, logger.NewLogger("fatal"))

	reporter.ReportDrift(context.Background(), domain.StockDrift{PurchaseID: "c1", LotID: "L2", Quantity: 4, Reason: "timeout"})

	items := c.List(checkoutservice.DriftListKey)
	require.Len(t, items, 1)
	var got domain.StockDrift
	require.NoError(t, json.Unmarshal([]byte(items[0]), &got))
	assert.Equal(t, "L2", got.LotID)
	assert.Equal(t, 4, got.Quantity)
}
