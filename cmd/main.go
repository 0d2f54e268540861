package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Infraestrutura e utilitários
	"mercadinho/config"
	_ "mercadinho/docs" // Registra a documentação Swagger
	"mercadinho/internal/pkg/cache"
	"mercadinho/internal/pkg/database"
	"mercadinho/internal/pkg/logger"
	"mercadinho/internal/pkg/middleware"
	"mercadinho/internal/pkg/token"

	// Handlers
	"mercadinho/internal/api/cart"
	"mercadinho/internal/api/checkout"
	"mercadinho/internal/api/location"
	"mercadinho/internal/api/product"
	"mercadinho/internal/api/promotion"
	"mercadinho/internal/api/router"
	"mercadinho/internal/api/stock"
	"mercadinho/internal/api/user"
	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"

	// Acesso a dados
	"mercadinho/internal/repository/locationrepo"
	"mercadinho/internal/repository/lotrepo"
	"mercadinho/internal/repository/memstore"
	"mercadinho/internal/repository/productrepo"
	"mercadinho/internal/repository/promotionrepo"
	"mercadinho/internal/repository/purchaserepo"
	"mercadinho/internal/repository/userrepo"

	// Regras de negócio
	"mercadinho/internal/service/cartservice"
	"mercadinho/internal/service/checkoutservice"
	"mercadinho/internal/service/locationservice"
	"mercadinho/internal/service/lotservice"
	"mercadinho/internal/service/productservice"
	"mercadinho/internal/service/promotionservice"
	"mercadinho/internal/service/stockservice"
	"mercadinho/internal/service/userservice"
)

// @title           Mercadinho API
// @version         1.0
// @description     Autoatendimento de mercadinhos: carrinho com reserva por lote, checkout e back-office de estoque.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

// repositories agrupa os repositórios que cada serviço consome.
// Postgres e memstore implementam os mesmos contratos.
type repositories struct {
	lots interface {
		lotservice.LotRepository
		checkoutservice.LotLedger
		stockservice.StockRepository
	}
	products interface {
		productservice.ProductRepository
		cartservice.Catalog
	}
	promotions promotionservice.PromotionRepository
	purchases  checkoutservice.PurchaseWriter
	users      userservice.UserRepository
	locations  locationservice.LocationRepository
}

func main() {
	log.Println("⚡ Inicializando serviço Mercadinho...")
	// O .env é opcional: em container as variáveis já vêm do ambiente.
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Configurações carregadas.", map[string]interface{}{"storage": cfg.StorageDriver, "env": cfg.Environment})

	// 1. Cache (Redis). Sem Redis o serviço sobe com cache em memória.
	var cacheClient cache.Client
	redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		appLog.Warn("Redis indisponível, usando cache em memória.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
		cacheClient = cache.NewMemoryClient()
	} else {
		appLog.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
		cacheClient = redisClient
	}
	defer cacheClient.Close()

	// 2. Armazenamento
	var repos repositories
	switch cfg.StorageDriver {
	case config.StorageMemory:
		repos = memoryRepositories()
		appLog.Warn("Armazenamento em memória: os dados somem ao reiniciar.", nil)
	case config.StoragePostgres:
		db, err := database.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			appLog.Fatal("Falha ao conectar ao banco de dados.", err)
		}
		defer db.Close()
		appLog.Info("Conexão PostgreSQL estabelecida.", nil)
		repos = postgresRepositories(db, cacheClient, cfg, appLog)
	default:
		log.Fatalf("❌ Erro de Configuração: STORAGE_DRIVER %q desconhecido.", cfg.StorageDriver)
	}

	// 3. Injeção de dependências: Repository -> Service -> Handler
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	lotSvc := lotservice.NewService(repos.lots, appLog)
	promoSvc := promotionservice.NewService(repos.promotions, appLog)
	productSvc := productservice.NewService(repos.products, appLog)
	cartSvc := cartservice.NewService(repos.products, lotSvc, promoSvc, appLog)
	checkoutSvc := checkoutservice.NewService(repos.lots, repos.purchases, checkoutservice.NewCacheDriftReporter(cacheClient, appLog), appLog)
	stockSvc := stockservice.NewService(repos.lots, repos.products, repos.locations, appLog)
	userSvc := userservice.NewService(repos.users, tokenSvc, appLog)
	locationSvc := locationservice.NewService(repos.locations, appLog)
	appLog.Debug("Serviços inicializados.", nil)

	if cfg.AdminEmail != "" {
		bootstrapAdmin(userSvc, cfg, appLog)
	}

	handlers := router.Handlers{
		Product:   product.NewHandler(productSvc, appLog),
		User:      user.NewHandler(userSvc, appLog),
		Cart:      cart.NewHandler(cartSvc, appLog),
		Checkout:  checkout.NewHandler(checkoutSvc, appLog),
		Stock:     stock.NewHandler(stockSvc, lotSvc, appLog),
		Promotion: promotion.NewHandler(promoSvc, appLog),
		Location:  location.NewHandler(locationSvc, appLog),
	}

	rateLimit, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		appLog.Fatal("Configuração de rate limit inválida.", err)
	}

	// 4. Servidor
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(handlers, tokenSvc, rateLimit),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLog.Info("Servidor Mercadinho ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	// 5. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}

func postgresRepositories(db *sql.DB, cacheClient cache.Client, cfg *config.Config, appLog logger.Logger) repositories {
	return repositories{
		lots:       lotrepo.NewLotRepository(db, cfg.DBTimeout, appLog),
		products:   productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, appLog),
		promotions: promotionrepo.NewPromotionRepository(db, cfg.DBTimeout, appLog),
		purchases:  purchaserepo.NewPurchaseRepository(db, cfg.DBTimeout, appLog),
		users:      userrepo.NewUserRepository(db, cfg.DBTimeout, appLog),
		locations:  locationrepo.NewLocationRepository(db, cfg.DBTimeout, appLog),
	}
}

func memoryRepositories() repositories {
	store := memstore.New()
	return repositories{
		lots:       store.Lots(),
		products:   store.Products(),
		promotions: store.Promotions(),
		purchases:  store.Purchases(),
		users:      store.Users(),
		locations:  store.Locations(),
	}
}

// bootstrapAdmin garante um administrador para o primeiro acesso ao back-office.
func bootstrapAdmin(userSvc *userservice.UserService, cfg *config.Config, appLog logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
	defer cancel()

	_, err := userSvc.Register(ctx, domain.UserRegistration{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Role:     domain.RoleAdmin,
	})
	var conflict *apperror.ConflictError
	switch {
	case err == nil:
		appLog.Info("Administrador inicial criado.", map[string]interface{}{"email": cfg.AdminEmail})
	case errors.As(err, &conflict):
		appLog.Debug("Administrador inicial já existe.", map[string]interface{}{"email": cfg.AdminEmail})
	default:
		appLog.Fatal("Falha ao criar administrador inicial.", err)
	}
}
