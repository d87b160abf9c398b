package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"raffle-tool-backend/internal/common/cache"
	"raffle-tool-backend/internal/common/config"
	"raffle-tool-backend/internal/common/logger"
	"raffle-tool-backend/internal/common/middleware"
	raffleHTTP "raffle-tool-backend/internal/features/raffle/delivery/http"
	raffleService "raffle-tool-backend/internal/features/raffle/service"
	"raffle-tool-backend/internal/features/raffle/txbuild"
	"raffle-tool-backend/internal/features/tokens"
	tokenHTTP "raffle-tool-backend/internal/features/tokens/delivery/http"
	walletHTTP "raffle-tool-backend/internal/features/wallet/delivery/http"
	walletService "raffle-tool-backend/internal/features/wallet/service"
	whitelistHTTP "raffle-tool-backend/internal/features/whitelist/delivery/http"
	whitelistService "raffle-tool-backend/internal/features/whitelist/service"
	"raffle-tool-backend/internal/platform/redis"
	"raffle-tool-backend/internal/platform/sui"
)

func main() {
	cfg := config.Load()

	logger.Init("raffle-tool-backend", cfg.Debug)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting Raffle Tool Backend",
		zap.Bool("debug", cfg.Debug),
		zap.String("rpc_url", cfg.Sui.RPCURL),
	)

	addrs, err := config.LoadDeployedAddresses(cfg.Sui.AddressesFile)
	if err != nil {
		zapLogger.Fatal("Failed to load deployed addresses", zap.Error(err))
	}

	zapLogger.Info("Deployed addresses loaded",
		zap.String("package_id", addrs.PackageID),
		zap.String("registry", addrs.WhitelistRegistry),
	)

	var redisClient *redis.Client
	if cfg.Redis.Disabled {
		zapLogger.Info("Redis disabled, reads go straight to the fullnode")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err = redis.Open(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		cancel()
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
	}

	cacheService := cache.NewCacheService(redisClient)
	chainClient := sui.NewClient(cfg.Sui.RPCURL)

	tokenRegistry := tokens.NewRegistry(cfg.Sui.UseMockTokens, addrs)
	var minter *tokens.MintBuilder
	if cfg.Sui.UseMockTokens {
		minter = tokens.NewMintBuilder(addrs)
	}

	walletSvc := walletService.NewService(chainClient, zapLogger)
	builder := txbuild.NewBuilder(addrs.PackageID, addrs.WhitelistRegistry, walletSvc)
	raffleSvc := raffleService.NewService(chainClient, cacheService, cfg.Sui.CacheTTL, cfg.Sui.SettleDelay, addrs.PackageID, zapLogger)
	whitelistSvc := whitelistService.NewService(chainClient, cacheService, cfg.Sui.CacheTTL, addrs.PackageID, addrs.WhitelistRegistry, zapLogger)

	zapLogger.Info("Services initialized")

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler(zapLogger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	raffleHTTP.NewRaffleHandler(raffleSvc, builder, zapLogger).RegisterRoutes(v1)
	walletHTTP.NewWalletHandler(walletSvc, zapLogger).RegisterRoutes(v1)
	whitelistHTTP.NewWhitelistHandler(whitelistSvc, zapLogger).RegisterRoutes(v1)
	tokenHTTP.NewTokenHandler(tokenRegistry, minter).RegisterRoutes(v1)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "raffle-tool-backend",
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := redisClient.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unavailable"})
				return
			}
		}
		c.Status(http.StatusOK)
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLogger.Info("Starting HTTP server", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}
