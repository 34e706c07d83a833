package app

import (
	"context"
	"fmt"
	"os"

	"electronics-store/config"
	"electronics-store/controllers"
	"electronics-store/libs"
	"electronics-store/middleware"
	"electronics-store/repositories"
	"electronics-store/routes"
	"electronics-store/services"
	"electronics-store/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App is the wired HTTP application with the resources it owns.
type App struct {
	Router *gin.Engine

	pool      *pgxpool.Pool
	redis     *redis.Client
	publisher *libs.EventPublisher
	logger    *zap.Logger
}

// New connects every backing service and builds the router.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	pool, err := config.ConnectDB(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	images, err := libs.NewImageStore(cfg, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}

	a := &App{pool: pool, logger: logger}
	a.redis = config.ConnectRedis(ctx, cfg, logger)
	cache := libs.NewCache(a.redis)

	var observers []services.OrderObserver
	if cfg.SMTP.Enabled() {
		observers = append(observers, libs.NewMailer(cfg.SMTP))
		logger.Info("Order confirmation emails enabled", zap.String("smtp_host", cfg.SMTP.Host))
	}
	if cfg.Kafka.Enabled() {
		a.publisher = libs.NewEventPublisher(cfg.Kafka)
		observers = append(observers, a.publisher)
		logger.Info("Order events enabled", zap.String("topic", cfg.Kafka.OrderTopic))
	}

	txm := repositories.NewTxManager(pool)
	productRepo := repositories.NewProductRepository(pool)
	cartRepo := repositories.NewCartRepository(pool)
	orderRepo := repositories.NewOrderRepository(pool)
	userRepo := repositories.NewUserRepository(pool)

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)

	catalogSvc := services.NewCatalogService(productRepo, cache, logger)
	cartSvc := services.NewCartService(cartRepo, productRepo, logger)
	orderSvc := services.NewOrderService(txm, cartRepo, orderRepo, logger, observers...)
	orderAdminSvc := services.NewOrderAdminService(orderRepo, logger)
	authSvc := services.NewAuthService(txm, userRepo, tokens, cache, logger)
	profileSvc := services.NewProfileService(txm, userRepo, images, logger)

	handlers := routes.Handlers{
		Auth:    controllers.NewAuthController(authSvc, logger),
		Product: controllers.NewProductController(catalogSvc, logger),
		Cart:    controllers.NewCartController(cartSvc, logger),
		Order:   controllers.NewOrderController(orderSvc, images, cfg.MaxUploadSize, logger),
		Profile: controllers.NewProfileController(profileSvc, images, cfg.MaxUploadSize, logger),
		Admin:   controllers.NewAdminController(catalogSvc, orderAdminSvc, cartSvc, logger),
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadSize
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.RequestLogger(logger),
		middleware.CORSMiddleware(cfg.OriginURL),
	)
	routes.SetupRoutes(router, handlers, authSvc, cfg.UploadDir)

	a.Router = router
	return a, nil
}

// Close releases the connections opened by New.
func (a *App) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("Failed to close event publisher", zap.Error(err))
		}
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	a.pool.Close()
}
