package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"mercadinho/internal/api/cart"
	"mercadinho/internal/api/checkout"
	"mercadinho/internal/api/location"
	"mercadinho/internal/api/product"
	"mercadinho/internal/api/promotion"
	"mercadinho/internal/api/stock"
	"mercadinho/internal/api/user"
	"mercadinho/internal/domain"
	"mercadinho/internal/pkg/middleware"
)

// Handlers reúne os handlers já montados por injeção de dependências.
type Handlers struct {
	Product   *product.Handler
	User      *user.Handler
	Cart      *cart.Handler
	Checkout  *checkout.Handler
	Stock     *stock.Handler
	Promotion *promotion.Handler
	Location  *location.Handler
}

// NewRouter configura e retorna o roteador HTTP principal.
// rateLimit envolve o mux inteiro; nil desliga o limite.
func NewRouter(h Handlers, tokenSvc middleware.TokenService, rateLimit func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	auth := middleware.NewAuthMiddleware(tokenSvc)
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.PermissionMiddleware(domain.RoleAdmin)(next))
	}
	operator := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.PermissionMiddleware(domain.RoleAdmin, domain.RoleKiosk)(next))
	}

	// --- Health check e documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// --- Operadores ---
	mux.HandleFunc("POST /v1/login", h.User.LoginUserHandler)
	mux.HandleFunc("POST /v1/users", admin(h.User.RegisterUserHandler))

	// --- Catálogo ---
	mux.HandleFunc("GET /v1/products/barcode/{code}", operator(h.Product.GetByBarcodeHandler))
	mux.HandleFunc("POST /v1/products", admin(h.Product.CreateProductHandler))

	// --- Carrinho e checkout (tablets) ---
	mux.HandleFunc("POST /v1/cart/scan", operator(h.Cart.ScanHandler))
	mux.HandleFunc("POST /v1/cart/increment", operator(h.Cart.IncrementHandler))
	mux.HandleFunc("POST /v1/cart/decrement", operator(h.Cart.DecrementHandler))
	mux.HandleFunc("POST /v1/cart/remove", operator(h.Cart.RemoveHandler))
	mux.HandleFunc("POST /v1/checkout", operator(h.Checkout.CheckoutHandler))

	// --- Estoque ---
	mux.HandleFunc("GET /v1/locations/{location}/products/{product}/lots", admin(h.Stock.LotsHandler))
	mux.HandleFunc("POST /v1/stock/entries", admin(h.Stock.AddEntryHandler))
	mux.HandleFunc("GET /v1/stock/central/{product}", admin(h.Stock.GetCentralHandler))
	mux.HandleFunc("POST /v1/stock/transfers", admin(h.Stock.TransferHandler))
	mux.HandleFunc("POST /v1/stock/lots/{lot}/adjust", admin(h.Stock.AdjustLotHandler))
	mux.HandleFunc("POST /v1/stock/lots/{lot}/deactivate", admin(h.Stock.DeactivateLotHandler))

	// --- Promoções ---
	mux.HandleFunc("POST /v1/promotions", admin(h.Promotion.CreatePromotionHandler))
	mux.HandleFunc("GET /v1/promotions/active", operator(h.Promotion.ListActiveHandler))
	mux.HandleFunc("POST /v1/promotions/{id}/deactivate", admin(h.Promotion.DeactivateHandler))

	// --- Locais ---
	mux.HandleFunc("POST /v1/locations", admin(h.Location.CreateLocationHandler))
	mux.HandleFunc("GET /v1/locations", admin(h.Location.ListLocationsHandler))
	mux.HandleFunc("GET /v1/locations/{id}", admin(h.Location.GetLocationHandler))
	mux.HandleFunc("PUT /v1/locations/{id}", admin(h.Location.UpdateLocationHandler))

	if rateLimit == nil {
		return mux
	}
	return rateLimit(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
