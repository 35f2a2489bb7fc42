package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/supfront/commerce-system/docs"
	"github.com/supfront/commerce-system/internal/api/handler"
	"github.com/supfront/commerce-system/internal/api/middleware"
	"github.com/supfront/commerce-system/internal/catalog"
	"github.com/supfront/commerce-system/internal/core/service"
	"github.com/supfront/commerce-system/internal/infrastructure/config"
	mongodb "github.com/supfront/commerce-system/internal/infrastructure/db/mongo"
	"github.com/supfront/commerce-system/internal/infrastructure/http/handlers"
	"github.com/supfront/commerce-system/internal/store"
	"github.com/supfront/commerce-system/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The partition store is created by the caller so its persist queue can be
// started and drained alongside the server lifecycle.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, st *store.Store) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("commerce"))

	// --- Dependencies ---
	products := catalog.New()
	userRepo := mongodb.NewUserRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)

	orderGateway := service.NewSimulatedOrderGateway(cfg.OrderSubmitDelay, log)
	profileGateway := service.NewSimulatedProfileGateway(cfg.OrderSubmitDelay, log)

	authService := service.NewAuthService(userRepo, st, cfg.JWTSecret, 24*time.Hour, log)
	cartService := service.NewCartService(st, products, log)
	checkoutService := service.NewCheckoutService(st, cartService, orderGateway, orderRepo, log)
	onboardingService := service.NewOnboardingService(st, profileGateway, log)

	authHandler := handler.NewAuthHandler(authService)
	cartHandler := handler.NewCartHandler(cartService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	onboardingHandler := handler.NewOnboardingHandler(onboardingService)
	catalogHandler := handler.NewCatalogHandler(products)
	orderHandler := handler.NewOrderHandler(orderRepo)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/v1/products", catalogHandler.List)
	e.GET("/v1/products/:id", catalogHandler.Get)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))

	v1.POST("/auth/logout", authHandler.Logout)
	v1.GET("/auth/session", authHandler.Session)

	v1.GET("/cart", cartHandler.Get)
	v1.POST("/cart/items", cartHandler.AddItem)
	v1.PUT("/cart/items/:id", cartHandler.UpdateQuantity)
	v1.DELETE("/cart/items/:id", cartHandler.RemoveItem)
	v1.DELETE("/cart", cartHandler.Clear)
	v1.POST("/cart/promo", cartHandler.ApplyPromo)
	v1.DELETE("/cart/promo", cartHandler.ClearPromo)

	v1.POST("/checkout", checkoutHandler.Start)
	v1.GET("/checkout", checkoutHandler.Get)
	v1.PUT("/checkout/shipping", checkoutHandler.UpdateShipping)
	v1.PUT("/checkout/payment", checkoutHandler.UpdatePayment)
	v1.POST("/checkout/next", checkoutHandler.Next)
	v1.POST("/checkout/back", checkoutHandler.Back)
	v1.POST("/checkout/order", checkoutHandler.PlaceOrder)

	v1.GET("/onboarding", onboardingHandler.Get)
	v1.PUT("/onboarding/basic-info", onboardingHandler.SetBasicInfo)
	v1.PUT("/onboarding/health-goals", onboardingHandler.SetHealthGoals)
	v1.PUT("/onboarding/lifestyle", onboardingHandler.SetLifestyle)
	v1.PUT("/onboarding/medical-history", onboardingHandler.SetMedicalHistory)
	v1.POST("/onboarding/complete", onboardingHandler.Complete)

	v1.GET("/orders", orderHandler.List)
	v1.GET("/orders/:number", orderHandler.Get)

	return e
}
