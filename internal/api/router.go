package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/petitmarche/catalog-api/docs"
	"github.com/petitmarche/catalog-api/internal/api/handler"
	"github.com/petitmarche/catalog-api/internal/api/middleware"
	"github.com/petitmarche/catalog-api/internal/core/domain"
	"github.com/petitmarche/catalog-api/internal/core/service"
	"github.com/petitmarche/catalog-api/internal/infrastructure/config"
	mongodb "github.com/petitmarche/catalog-api/internal/infrastructure/db/mongo"
)

// NewRouter builds the Echo instance with every route registered. All
// dependencies are constructed here from the explicit store handles;
// nothing is package-global.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	productRepo := mongodb.NewProductRepository(db)

	// --- Services ---
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, log)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, userRepo, log)
	productService := service.NewProductService(productRepo, categoryRepo, userRepo, log)
	userService := service.NewUserService(userRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService, productService)
	productHandler := handler.NewProductHandler(productService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authRequired := middleware.Auth(tokenService, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	// --- Categories ---
	categories := e.Group("/api/categories")
	categories.POST("", categoryHandler.Create, authRequired)
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
	categories.PUT("/:id", categoryHandler.Update, authRequired)
	categories.DELETE("/:id", categoryHandler.Delete, authRequired)
	categories.GET("/:id/products", categoryHandler.ListProducts)

	// --- Products ---
	products := e.Group("/api/products")
	products.POST("", productHandler.Create, authRequired)
	products.GET("", productHandler.List)
	products.GET("/my-products", productHandler.ListMine, authRequired)
	products.GET("/:id", productHandler.Get)
	products.PUT("/:id", productHandler.Update, authRequired)
	products.DELETE("/:id", productHandler.Delete, authRequired)

	// --- Users (admin only) ---
	users := e.Group("/api/users", authRequired, adminOnly)
	users.POST("", userHandler.Create)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
