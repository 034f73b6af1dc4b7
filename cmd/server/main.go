package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/gestion/backend/internal/application/catalog"
	docapp "github.com/gestion/backend/internal/application/document"
	"github.com/gestion/backend/internal/infrastructure/cache"
	"github.com/gestion/backend/internal/infrastructure/config"
	"github.com/gestion/backend/internal/infrastructure/logger"
	"github.com/gestion/backend/internal/infrastructure/persistence"
	"github.com/gestion/backend/internal/interfaces/http/handler"
	"github.com/gestion/backend/internal/interfaces/http/middleware"
	"github.com/gestion/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Gestion Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run schema migration", zap.Error(err))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)

	// Session store: Redis when enabled, in-memory otherwise
	sessionStore := cache.NewSessionStore(cfg, log)

	// Application services
	productService := catalogapp.NewProductService(productRepo, log)
	documentService := docapp.NewDocumentService(documentRepo, log)
	sessionService := docapp.NewEditingSessionService(documentRepo, productRepo, sessionStore, log)

	// HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	documentHandler := handler.NewDocumentHandler(documentService)
	sessionHandler := handler.NewSessionHandler(sessionService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Catalog domain (products, variants)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/sku/:sku", productHandler.GetBySKU)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.PUT("/products/:id/prices", productHandler.SetPrices)
	catalogRoutes.POST("/products/:id/variants", productHandler.AddVariant)
	catalogRoutes.POST("/products/:id/deactivate", productHandler.Deactivate)

	// Document domain (quotes, orders, delivery notes, invoices)
	documentRoutes := router.NewDomainGroup("documents", "/documents")
	documentRoutes.POST("", documentHandler.Create)
	documentRoutes.GET("", documentHandler.List)
	documentRoutes.GET("/number/:number", documentHandler.GetByNumber)
	documentRoutes.GET("/:id", documentHandler.GetByID)
	documentRoutes.DELETE("/:id", documentHandler.Delete)
	documentRoutes.POST("/:id/issue", documentHandler.Issue)
	documentRoutes.POST("/:id/cancel", documentHandler.Cancel)
	documentRoutes.POST("/:id/session", sessionHandler.Open)

	// Editing sessions (line grid operations)
	sessionRoutes := router.NewDomainGroup("sessions", "/sessions")
	sessionRoutes.GET("/:id", sessionHandler.Get)
	sessionRoutes.DELETE("/:id", sessionHandler.Close)
	sessionRoutes.POST("/:id/save", sessionHandler.Save)
	sessionRoutes.POST("/:id/keys", sessionHandler.KeyEvent)
	sessionRoutes.POST("/:id/lines", sessionHandler.AddLine)
	sessionRoutes.PATCH("/:id/lines/:index", sessionHandler.UpdateLine)
	sessionRoutes.DELETE("/:id/lines/:index", sessionHandler.RemoveLine)
	sessionRoutes.POST("/:id/lines/:index/duplicate", sessionHandler.DuplicateLine)
	sessionRoutes.POST("/:id/lines/:index/move", sessionHandler.MoveLine)
	sessionRoutes.POST("/:id/lines/:index/product", sessionHandler.BindProduct)
	sessionRoutes.POST("/:id/variant/confirm", sessionHandler.ConfirmVariant)
	sessionRoutes.POST("/:id/variant/cancel", sessionHandler.CancelVariant)

	r.Register(catalogRoutes).
		Register(documentRoutes).
		Register(sessionRoutes)

	r.Setup()

	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
