package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/starwall/starwall/internal/adapters/signal"
	"github.com/starwall/starwall/internal/app"
	"github.com/starwall/starwall/internal/config"
)

func SetupRouter(ctx context.Context, cfg *config.Config, orch *app.Orchestrator) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	ctrl := signal.NewStarWSController(orch, cfg)

	api := r.Group("/api")
	api.GET("/ws/stars", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Msg("ws stars endpoint hit")
		ctrl.HandleStars(ctx, c)
	})

	return r
}
