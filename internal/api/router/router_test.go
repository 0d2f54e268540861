package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercadinho/internal/api/cart"
	"mercadinho/internal/api/checkout"
	"mercadinho/internal/api/location"
	"mercadinho/internal/api/product"
	"mercadinho/internal/api/promotion"
	"mercadinho/internal/api/router"
	"mercadinho/internal/api/stock"
	"mercadinho/internal/api/user"
	"mercadinho/internal/pkg/cache"
	"mercadinho/internal/pkg/logger"
	"mercadinho/internal/pkg/middleware"
	"mercadinho/internal/pkg/token"
	"mercadinho/internal/repository/memstore"
	"mercadinho/internal/service/cartservice"
	"mercadinho/internal/service/checkoutservice"
	"mercadinho/internal/service/locationservice"
	"mercadinho/internal/service/lotservice"
	"mercadinho/internal/service/productservice"
	"mercadinho/internal/service/promotionservice"
	"mercadinho/internal/service/stockservice"
	"mercadinho/internal/service/userservice"
)

func newRouter(t *testing.T, rate string) (http.Handler, *token.Service) {
	t.Helper()
	store := memstore.New()
	log := logger.NewLogger("fatal")
	tokens := token.NewService("segredo-de-teste", time.Hour)

	lots := lotservice.NewService(store.Lots(), log)
	promos := promotionservice.NewService(store.Promotions(), log)
	h := router.Handlers{
		Product:   product.NewHandler(productservice.NewService(store.Products(), log), log),
		User:      user.NewHandler(userservice.NewService(store.Users(), tokens, log), log),
		Cart:      cart.NewHandler(cartservice.NewService(store.Products(), lots, promos, log), log),
		Checkout:  checkout.NewHandler(checkoutservice.NewService(store.Lots(), store.Purchases(), checkoutservice.NewCacheDriftReporter(cache.NewMemoryClient(), log), log), log),
		Stock:     stock.NewHandler(stockservice.NewService(store.Lots(), store.Products(), store.Locations(), log), lots, log),
		Promotion: promotion.NewHandler(promos, log),
		Location:  location.NewHandler(locationservice.NewService(store.Locations(), log), log),
	}

	var limit func(http.Handler) http.Handler
	if rate != "" {
		var err error
		limit, err = middleware.NewRateLimiter(rate)
		require.NoError(t, err)
	}
	return router.NewRouter(h, tokens, limit), tokens
}

func call(r http.Handler, method, path, bearer, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Ping(t *testing.T) {
	r, _ := newRouter(t, "")

	rec := call(r, http.MethodGet, "/ping", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestRouter_Fail_NoToken(t *testing.T) {
	r, _ := newRouter(t, "")

	rec := call(r, http.MethodPost, "/v1/cart/scan", "", `{}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Fail_KioskCannotAdmin(t *testing.T) {
	r, tokens := newRouter(t, "")
	kiosk, err := tokens.GenerateToken("tablet-1", "kiosk")
	require.NoError(t, err)

	rec := call(r, http.MethodPost, "/v1/products", kiosk, `{"name":"x","barcode":"1","sale_price":"1"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_KioskCanScan(t *testing.T) {
	r, tokens := newRouter(t, "")
	kiosk, err := tokens.GenerateToken("tablet-1", "kiosk")
	require.NoError(t, err)

	rec := call(r, http.MethodPost, "/v1/cart/scan", kiosk, `{"location_id":"loc","barcode":"123"}`)

	// Catálogo vazio: a rota passou da autorização e chegou ao serviço.
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_AdminCreatesLocation(t *testing.T) {
	r, tokens := newRouter(t, "")
	admin, err := tokens.GenerateToken("adm", "admin")
	require.NoError(t, err)

	rec := call(r, http.MethodPost, "/v1/locations", admin, `{"name":"Portaria Norte"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r, _ := newRouter(t, "")

	rec := call(r, http.MethodGet, "/v1/checkout", "", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_RateLimited(t *testing.T) {
	r, _ := newRouter(t, "2-M")

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, call(r, http.MethodGet, "/ping", "", "").Code)
	}
	rec := call(r, http.MethodGet, "/ping", "", "")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
}
