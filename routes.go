package main

import (
	"github.com/consensuslabs/reelstream/backend/internal/analytics"
	"github.com/consensuslabs/reelstream/backend/internal/auth"
	"github.com/consensuslabs/reelstream/backend/internal/comment"
	"github.com/consensuslabs/reelstream/backend/internal/follow"
	"github.com/consensuslabs/reelstream/backend/internal/health"
	httpHandler "github.com/consensuslabs/reelstream/backend/internal/http"
	"github.com/consensuslabs/reelstream/backend/internal/http/middleware"
	"github.com/consensuslabs/reelstream/backend/internal/interaction"
	"github.com/consensuslabs/reelstream/backend/internal/user"
	"github.com/consensuslabs/reelstream/backend/internal/video"
	"github.com/gin-gonic/gin"
)

// setupRouter builds the gin engine with every API route under /api/v1
func (a *App) setupRouter() error {
	if !a.config.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	a.responseHandler = httpHandler.NewResponseHandler(a.logger)
	router := gin.New()
	router.Use(
		middleware.RequestLoggerMiddleware(a.logger),
		httpHandler.RecoveryMiddleware(a.responseHandler, a.logger),
		httpHandler.CORSMiddleware(),
	)

	healthHandler := health.NewHandler(a.responseHandler, map[string]health.Pinger{
		"postgres": a.dbService,
		"mongo":    a.mongoService,
		"redis":    a.cache,
	})
	router.GET("/health", healthHandler.HandleHealthCheck)

	if a.serveLocalMedia() {
		if err := httpHandler.ServeStaticFiles(router, []httpHandler.StaticFileConfig{
			{URLPath: a.config.Storage.MediaURL, FilePath: a.config.Storage.MediaRoot},
		}); err != nil {
			return err
		}
	}

	requireAuth := auth.AuthMiddleware(a.auth, a.responseHandler)
	optionalAuth := auth.OptionalAuthMiddleware(a.auth)

	api := router.Group("/api/v1")
	api.GET("/health", healthHandler.HandleHealthCheck)

	auth.NewHandler(a.auth, a.responseHandler).RegisterRoutes(api)
	user.NewHandler(a.users, a.responseHandler).RegisterRoutes(api, requireAuth)
	follow.NewHandler(a.follows, a.responseHandler).RegisterRoutes(api, requireAuth, optionalAuth)
	video.NewVideoHandler(a.videos, a.responseHandler).RegisterRoutes(api, requireAuth, optionalAuth)
	interaction.NewHandler(a.interaction, a.responseHandler).RegisterRoutes(api, requireAuth, optionalAuth)
	comment.NewHandler(a.comments, a.responseHandler).RegisterRoutes(api, requireAuth)
	analytics.NewHandler(a.analytics, a.responseHandler).RegisterRoutes(api, requireAuth)

	a.router = router
	return nil
}
