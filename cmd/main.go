package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"sofadeal/config"
	"sofadeal/internal/api/contact"
	"sofadeal/internal/api/filters"
	"sofadeal/internal/api/order"
	"sofadeal/internal/api/product"
	"sofadeal/internal/api/router"
	"sofadeal/internal/api/searchadmin"
	"sofadeal/internal/api/session"
	"sofadeal/internal/api/shopper"
	"sofadeal/internal/pkg/cache"
	"sofadeal/internal/pkg/catalogapi"
	"sofadeal/internal/pkg/database"
	"sofadeal/internal/pkg/token"
	"sofadeal/internal/repository/productrepo"
	"sofadeal/internal/repository/searchrepo"
	"sofadeal/internal/repository/staffrepo"
	"sofadeal/internal/searchindex"
	"sofadeal/internal/service/catalogservice"
	"sofadeal/internal/service/contactservice"
	"sofadeal/internal/service/orderservice"
	"sofadeal/internal/service/sessionservice"
	"sofadeal/internal/service/shopperservice"

	applog "sofadeal/internal/pkg/logger"
)

// @title Sofa Deal Storefront API
// @version 1.0
// @description Catalog listing, filters, cart, wishlist and back-office endpoints of the Sofa Deal storefront.
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log.Println("Starting Sofa Deal storefront API...")
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, using the process environment")
	}

	cfg := config.LoadConfig()
	logg := applog.NewLogger(cfg.LogLevel)
	logg.Info("Configuration loaded.", map[string]interface{}{"env": cfg.Environment})

	// Infrastructure
	db, err := database.NewPostgresDB(cfg.DatabaseURL, cfg.DBTimeout, database.DefaultPoolConfig)
	if err != nil {
		logg.Fatal("Failed to connect to the database.", err)
	}
	defer db.Close()
	logg.Info("PostgreSQL connection established.", nil)

	var cacheClient cache.Client
	redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout)
	switch {
	case err == nil:
		defer redisClient.Close()
		cacheClient = redisClient
		logg.Info("Redis connection established.", nil)
	case cfg.IsProduction():
		logg.Fatal("Failed to connect to Redis.", err)
	default:
		redisClient.Close()
		logg.Warn("Redis unavailable, using the in-process cache.", map[string]interface{}{"error": err.Error()})
		cacheClient = cache.NewMemoryClient()
	}

	catalogClient, err := catalogapi.NewClient(catalogapi.ClientConfig{
		BaseURL: cfg.CatalogAPIURL,
		Token:   cfg.CatalogAPIToken,
		Timeout: cfg.CatalogAPITimeout,
		Strict:  cfg.StrictPayloads,
	}, logg)
	if err != nil {
		logg.Fatal("Invalid catalog API configuration.", err)
	}

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	// Repository -> Service -> Handler
	productRepo := productrepo.NewProductRepository(catalogClient, cacheClient, cfg.ProductCacheTTL, logg)
	snapshotRepo := searchrepo.NewSnapshotRepository(db, cfg.DBTimeout, logg)
	staffRepo := staffrepo.NewStaffRepository(db, cfg.DBTimeout, logg)

	index := searchindex.New(snapshotRepo, logg)

	shopperSvc := shopperservice.NewService(cacheClient, productRepo, cfg.ShopperDataTTL, logg)
	catalogSvc := catalogservice.NewService(productRepo, index, shopperSvc, cacheClient, logg)
	contactSvc := contactservice.NewService(catalogClient, logg)
	orderSvc := orderservice.NewService(catalogClient, logg)
	sessionSvc := sessionservice.NewService(staffRepo, tokenSvc, logg)
	logg.Debug("Services initialized.", nil)

	handler := router.NewRouter(router.Handlers{
		Product:     product.NewHandler(catalogSvc, logg),
		Filters:     filters.NewHandler(cfg.ListingBasePath, logg),
		Shopper:     shopper.NewHandler(shopperSvc, logg),
		Contact:     contact.NewHandler(contactSvc, logg),
		Order:       order.NewHandler(orderSvc, logg),
		Session:     session.NewHandler(sessionSvc, logg),
		SearchAdmin: searchadmin.NewHandler(index, logg),
	}, tokenSvc, cacheClient, router.RateLimit{
		Limit:  cfg.RateLimitMaxRequests,
		Window: cfg.RateLimitPeriod,
	}, logg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	go index.Run(bgCtx, cfg.SearchRefreshInterval)

	go func() {
		logg.Info("Server listening.", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("Server failed.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logg.Info("Shutdown signal received.", nil)
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logg.Error("Forced server shutdown.", err)
	}

	logg.Info("Server stopped.", nil)
}
