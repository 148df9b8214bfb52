package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"duel-service/pkg/combat"
	"duel-service/pkg/config"
	"duel-service/pkg/logging"
	"duel-service/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.GinMode == gin.DebugMode)
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(logging.GinLogger(logger), gin.Recovery())

	// Global Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Next()
	})

	// Root Endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "online",
			"service": "Go Duel Service",
			"version": "1.0.0",
		})
	})

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	renderer := combat.NewRenderer(utils.NewAssets(cfg.AssetsPath))
	combat.NewHandler(renderer, logger.Named("duel"), cfg.MaxTurns).Register(r.Group("/api"))

	logger.Info("Go Service starting", zap.String("addr", cfg.Address()), zap.Int("max_turns", cfg.MaxTurns))
	if err := r.Run(cfg.Address()); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
