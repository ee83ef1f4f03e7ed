package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	pricingapp "github.com/printworks/backend/internal/application/pricing"
	"github.com/printworks/backend/internal/domain/pricing"
	"github.com/printworks/backend/internal/domain/shared/valueobject"
	"github.com/printworks/backend/internal/infrastructure/config"
	currencyinfra "github.com/printworks/backend/internal/infrastructure/currency"
	"github.com/printworks/backend/internal/infrastructure/delivery"
	fulfillmentinfra "github.com/printworks/backend/internal/infrastructure/fulfillment"
	"github.com/printworks/backend/internal/infrastructure/logger"
	"github.com/printworks/backend/internal/infrastructure/telemetry"
	"github.com/printworks/backend/internal/interfaces/http/handler"
	"github.com/printworks/backend/internal/interfaces/http/middleware"
	"github.com/printworks/backend/internal/interfaces/http/router"
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
		_ = log.Sync()
	}()

	log.Info("Starting Printworks Pricing API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Print provider client (catalog, products, quotes)
	providerClient, err := fulfillmentinfra.NewClient(&fulfillmentinfra.Config{
		APIBaseURL:          cfg.Fulfillment.APIBaseURL,
		APIKey:              cfg.Fulfillment.APIKey,
		TimeoutSeconds:      cfg.Fulfillment.TimeoutSeconds,
		PlaceholderAssetURL: cfg.Fulfillment.PlaceholderAssetURL,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize fulfillment client", zap.Error(err))
	}

	// Exchange rate source with a Redis-backed cache when available,
	// in-memory otherwise
	rateSource, err := currencyinfra.NewHTTPRateSource(currencyinfra.RateSourceConfig{
		BaseURL:        cfg.Currency.RateSourceURL,
		Base:           valueobject.Currency(cfg.Currency.BaseCurrency),
		TimeoutSeconds: cfg.Currency.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("Failed to initialize rate source", zap.Error(err))
	}

	var rateCache currencyinfra.RateCache
	if cfg.Redis.Enabled {
		redisCache, err := currencyinfra.NewRedisRateCache(currencyinfra.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		rateCache = redisCache
		log.Info("Redis rate cache connected",
			zap.String("host", cfg.Redis.Host), zap.Int("port", cfg.Redis.Port))
	} else {
		rateCache = currencyinfra.NewMemoryRateCache()
	}

	converter := currencyinfra.NewConverter(rateSource, rateCache, cfg.Currency.CacheTTL, log)

	// Pricing pipeline
	aggregator := pricingapp.NewAggregator(providerClient, cfg.Pricing.QuoteTimeout, log)
	selector := pricing.NewSelector(pricing.SelectorConfig{
		DeliverySlackDays: cfg.Pricing.DeliverySlackDays,
	})
	pricingService := pricingapp.NewService(
		providerClient,
		providerClient,
		aggregator,
		converter,
		delivery.NewEstimator(),
		selector,
		decimal.NewFromFloat(cfg.Pricing.TaxRate),
		log,
	)

	// HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewPricingHandler(pricingService))
	r.Register(handler.NewSystemHandler())
	r.Setup()

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
