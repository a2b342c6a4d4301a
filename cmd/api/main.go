//	@title			Vendora Catalog API
//	@version		1.0
//	@description	Two-level catalog service: vendors own at most one firm, firms own products, images live in S3-compatible object storage.
//
//	@host		localhost:8080
//	@BasePath	/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: **Bearer {token}**

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/vendora/service/internal/config"
	"github.com/vendora/service/internal/db"
	"github.com/vendora/service/internal/firm"
	"github.com/vendora/service/internal/media"
	appMiddleware "github.com/vendora/service/internal/middleware"
	"github.com/vendora/service/internal/product"
	"github.com/vendora/service/internal/storage"
	"github.com/vendora/service/internal/vendor"

	_ "github.com/vendora/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}
	logger.Info("database ready")

	objectStore, err := storage.NewMinioStorage(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StoragePublicBase,
		cfg.StorageUseSSL,
	)
	if err != nil {
		logger.Fatal("object storage init failed", zap.Error(err))
	}
	mediaStore := media.NewStore(objectStore)

	// Wire dependencies: repository → service → handler
	vendorRepo := vendor.NewPostgresRepository(pool)
	vendorSvc := vendor.NewService(vendorRepo, cfg.JWTSecret)
	vendorHandler := vendor.NewHandler(vendorSvc)

	firmRepo := firm.NewPostgresRepository(pool)
	firmSvc := firm.NewService(firmRepo, vendorRepo, mediaStore, logger)
	firmHandler := firm.NewHandler(firmSvc)

	productRepo := product.NewPostgresRepository(pool)
	productSvc := product.NewService(productRepo, firmRepo, mediaStore, logger)
	productHandler := product.NewHandler(productSvc)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public vendor endpoints
		r.Route("/vendors", func(r chi.Router) {
			r.Post("/register", vendorHandler.Register)
			r.Post("/login", vendorHandler.Login)
			r.Get("/{vendorId}", vendorHandler.GetVendor)
		})

		r.Route("/firms", func(r chi.Router) {
			// Firm lifecycle requires an authenticated vendor
			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.RequireVendor(cfg.JWTSecret))
				r.Post("/", firmHandler.AddFirm)
				r.Delete("/{firmId}", firmHandler.DeleteFirm)
			})

			r.Post("/{firmId}/products", productHandler.AddProduct)
			r.Get("/{firmId}/products", productHandler.GetProductsByFirm)
		})

		r.Delete("/products/{productId}", productHandler.DeleteProduct)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
