package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cryptochat-backend/internal/chat"
	"cryptochat-backend/internal/common/cache"
	"cryptochat-backend/internal/common/config"
	"cryptochat-backend/internal/common/logger"
	"cryptochat-backend/internal/common/middleware"
	channelhttp "cryptochat-backend/internal/features/channel/delivery/http"
	channelmodels "cryptochat-backend/internal/features/channel/models"
	channelmongo "cryptochat-backend/internal/features/channel/repository/mongo"
	channelservice "cryptochat-backend/internal/features/channel/service"
	messagehttp "cryptochat-backend/internal/features/message/delivery/http"
	messagemongo "cryptochat-backend/internal/features/message/repository/mongo"
	messageservice "cryptochat-backend/internal/features/message/service"
	rolehttp "cryptochat-backend/internal/features/role/delivery/http"
	rolemongo "cryptochat-backend/internal/features/role/repository/mongo"
	roleservice "cryptochat-backend/internal/features/role/service"
	statshttp "cryptochat-backend/internal/features/stats/delivery/http"
	statsservice "cryptochat-backend/internal/features/stats/service"
	userhttp "cryptochat-backend/internal/features/user/delivery/http"
	usermongo "cryptochat-backend/internal/features/user/repository/mongo"
	userservice "cryptochat-backend/internal/features/user/service"
	mongoplatform "cryptochat-backend/internal/platform/mongo"
	redisplatform "cryptochat-backend/internal/platform/redis"
)

func main() {
	cfg := config.Load()
	logger.Init("cryptochat-backend", cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := mongoplatform.Open(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		_ = mongoClient.Close(context.Background())
	}()
	logger.Info().Str("database", cfg.Mongo.Database).Msg("MongoDB connection established")

	var cacheService *cache.Service
	if cfg.Redis.Addr != "" {
		redisClient, err := redisplatform.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		cacheService = cache.NewService(redisClient)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("Redis cache enabled")
	} else {
		logger.Info().Msg("Redis cache disabled")
	}

	// Repositories.
	userRepo := usermongo.NewMongoRepository(mongoClient)
	channelRepo := channelmongo.NewMongoRepository(mongoClient)
	voiceRepo := channelmongo.NewVoiceMongoRepository(mongoClient)
	messageRepo := messagemongo.NewMongoRepository(mongoClient)
	roleRepo := rolemongo.NewMongoRepository(mongoClient)

	// Services.
	userSvc := userservice.NewUserService(userRepo, roleRepo)
	channelSvc := channelservice.NewChannelService(channelRepo, voiceRepo, messageRepo, cacheService)
	messageSvc := messageservice.NewMessageService(messageRepo)
	roleSvc := roleservice.NewRoleService(roleRepo)

	// Bootstrap: seed the fixed channel sets and reset stale presence. The
	// connection registry starts empty, so nobody can be online yet.
	if err := channelSvc.EnsureDefaults(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to seed default channels")
	}
	if err := userRepo.ResetPresence(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to reset user presence")
	}

	// Realtime core.
	registry := chat.NewRegistry()
	hub := chat.NewHub()
	coordinator := chat.NewCoordinator(registry, hub, userRepo, messageRepo, channelRepo, channelmodels.DefaultChannels)
	go hub.Run()

	statsSvc := statsservice.NewStatsService(userRepo, messageRepo, channelRepo, registry, cacheService)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	userhttp.NewUserHandler(userSvc).RegisterRoutes(api)
	channelhttp.NewChannelHandler(channelSvc).RegisterRoutes(api)
	messagehttp.NewMessageHandler(messageSvc).RegisterRoutes(api)
	rolehttp.NewRoleHandler(roleSvc).RegisterRoutes(api)
	statshttp.NewStatsHandler(statsSvc).RegisterRoutes(api)
	chat.NewHandler(hub, coordinator, cfg.Server.Origin).RegisterRoutes(router)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := hub.Shutdown(10 * time.Second); err != nil {
		logger.Error().Err(err).Msg("Hub shutdown timed out")
	}

	logger.Info().Msg("Server exited")
}
