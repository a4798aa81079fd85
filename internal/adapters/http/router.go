// Package http is the local control plane for one call agent: the same
// four imperative actions the portal UI exposes, plus a state snapshot.
package http

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spherecorp-kr/drcall-callcore/internal/app/orch"
	"github.com/spherecorp-kr/drcall-callcore/internal/config"
)

func genClientToken() string {
	return uuid.NewString()
}

func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

// SetupRouter wires the control API. ctx bounds the lifetime of calls
// started through this router, not of individual requests: a join must
// outlive the request that triggered it.
func SetupRouter(ctx context.Context, cfg *config.Config, ctrl *orch.Controller) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("CallAgentSessions", store))
	r.Use(ClientTokenMiddleware())

	log.Info().Str("module", "adapters.http").Msg("router setup")

	api := r.Group("/api")
	api.POST("/call/join", func(c *gin.Context) { handleJoin(ctx, ctrl, c) })
	api.POST("/call/end", func(c *gin.Context) { handleEnd(ctx, ctrl, c) })
	api.POST("/call/camera", func(c *gin.Context) { handleToggleCamera(ctrl, c) })
	api.POST("/call/mic", func(c *gin.Context) { handleToggleMic(ctrl, c) })
	api.GET("/call/state", func(c *gin.Context) { handleState(ctrl, c) })

	return r
}
