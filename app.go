package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/consensuslabs/reelstream/backend/internal/analytics"
	"github.com/consensuslabs/reelstream/backend/internal/auth"
	"github.com/consensuslabs/reelstream/backend/internal/cache"
	"github.com/consensuslabs/reelstream/backend/internal/comment"
	"github.com/consensuslabs/reelstream/backend/internal/config"
	"github.com/consensuslabs/reelstream/backend/internal/database"
	"github.com/consensuslabs/reelstream/backend/internal/follow"
	httpHandler "github.com/consensuslabs/reelstream/backend/internal/http"
	"github.com/consensuslabs/reelstream/backend/internal/interaction"
	"github.com/consensuslabs/reelstream/backend/internal/logger"
	"github.com/consensuslabs/reelstream/backend/internal/storage"
	"github.com/consensuslabs/reelstream/backend/internal/storage/local"
	"github.com/consensuslabs/reelstream/backend/internal/storage/s3"
	"github.com/consensuslabs/reelstream/backend/internal/user"
	"github.com/consensuslabs/reelstream/backend/internal/verification"
	"github.com/consensuslabs/reelstream/backend/internal/video"
	"github.com/consensuslabs/reelstream/backend/internal/video/ffmpeg"
	"github.com/consensuslabs/reelstream/backend/internal/video/tempfile"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const shutdownTimeout = 30 * time.Second

// App holds all application dependencies
type App struct {
	config *config.Config
	logger logger.Logger

	dbService    *database.DatabaseService
	db           *gorm.DB
	mongoService *database.MongoService
	mongo        *mongo.Database
	cache        *cache.RedisService
	store        storage.StorageService
	tempFiles    *tempfile.Manager

	responseHandler httpHandler.ResponseHandler
	router          *gin.Engine
	server          *http.Server

	recorder    *analytics.Recorder
	analytics   analytics.Service
	auth        *auth.Service
	users       user.Service
	follows     follow.Service
	comments    comment.Service
	interaction interaction.Service
	videos      video.Service
}

// NewApp connects every store and wires the services. On error everything
// opened so far is closed again.
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	app := &App{config: cfg, logger: log}

	if err := app.init(ctx); err != nil {
		app.closeAll(context.Background())
		return nil, err
	}
	return app, nil
}

func (a *App) init(ctx context.Context) error {
	if err := a.initStores(ctx); err != nil {
		return err
	}
	if err := a.initServices(); err != nil {
		return err
	}
	return a.setupRouter()
}

func (a *App) initStores(ctx context.Context) error {
	a.dbService = database.NewDatabaseService(&a.config.Database, a.config.Environment, a.logger)
	db, err := a.dbService.Connect()
	if err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}
	a.db = db

	a.mongoService = database.NewMongoService(&a.config.Mongo, a.logger)
	if a.mongo, err = a.mongoService.Connect(ctx); err != nil {
		return fmt.Errorf("failed to setup document store: %w", err)
	}
	if err = analytics.NewMongoRepository(a.mongo).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create analytics indexes: %w", err)
	}

	redis, err := cache.NewRedisService(&cache.Config{
		Addr:     a.config.Redis.Addr,
		Password: a.config.Redis.Password,
		DB:       a.config.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("failed to setup cache: %w", err)
	}
	a.cache = redis

	store, err := a.newStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to setup media storage: %w", err)
	}
	a.store = store

	tempFiles, err := tempfile.NewManager(&tempfile.Config{}, a.logger)
	if err != nil {
		return fmt.Errorf("failed to setup upload staging: %w", err)
	}
	a.tempFiles = tempFiles
	return nil
}

func (a *App) newStorage(ctx context.Context) (storage.StorageService, error) {
	switch a.config.Storage.Driver {
	case storage.DriverS3:
		store, err := s3.NewService(&a.config.Storage.S3, a.logger)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx, a.config.Storage.S3.Region); err != nil {
			return nil, err
		}
		return store, nil
	default:
		store, err := local.NewService(a.config.Storage.MediaRoot, a.config.Storage.MediaURL, a.logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

func (a *App) initServices() error {
	analyticsRepo := analytics.NewMongoRepository(a.mongo)
	a.recorder = analytics.NewRecorder(analyticsRepo, a.logger)

	videoRepo := video.NewRepository(a.db)
	userRepo := user.NewRepository(a.db)

	handles, err := user.NewSnowflakeHandles(a.config.Snowflake.Node)
	if err != nil {
		return fmt.Errorf("failed to create handle generator: %w", err)
	}

	a.analytics = analytics.NewService(analyticsRepo, analytics.NewHistoryRepository(a.db), videoRepo, a.logger)
	a.follows = follow.NewService(follow.NewRepository(a.db), a.recorder, a.store, a.logger)
	a.interaction = interaction.NewService(interaction.NewRepository(a.db), a.recorder, a.logger)
	a.comments = comment.NewService(comment.NewRepository(a.db), a.recorder, a.store, a.logger)
	a.users = user.NewService(userRepo, videoRepo, a.follows, a.store, a.config.Video.MaxImageSizeMB, a.logger)

	codes := verification.NewService(a.cache, verification.NewLogSender(a.logger), a.config.Auth.CodeTTL, a.logger)
	authConfig := auth.NewConfigFromAuthConfig(&a.config.Auth)
	a.auth = auth.NewService(userRepo, codes, auth.NewJWTService(authConfig), handles, authConfig, a.logger)

	a.videos = video.NewService(video.Deps{
		Repo:       videoRepo,
		Store:      a.store,
		Prober:     ffmpeg.NewService(&ffmpeg.Config{Timeout: a.config.Ffmpeg.Timeout}, a.logger),
		Stager:     a.tempFiles,
		Social:     a.follows,
		Engagement: a.interaction,
		Watched:    a.analytics,
		Activity:   a.recorder,
		Logger:     a.logger,
	}, video.Config{
		MaxVideoMB: a.config.Video.MaxSizeMB,
		MaxImageMB: a.config.Video.MaxImageSizeMB,
	})
	return nil
}

// Run serves HTTP until the server is shut down
func (a *App) Run() error {
	a.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.logger.LogInfo(fmt.Sprintf("Starting server on port %d", a.config.Server.Port), nil)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return a.logger.LogError(err, "server failed to start")
	}
	return nil
}

// Shutdown drains in-flight requests and closes every store
func (a *App) Shutdown() error {
	a.logger.LogInfo("Initiating graceful shutdown", nil)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error
	if a.server != nil {
		if err = a.server.Shutdown(ctx); err != nil {
			a.logger.LogWarn("Shutdown timed out", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	a.closeAll(ctx)

	a.logger.LogInfo("Application shutdown complete", nil)
	return err
}

func (a *App) closeAll(ctx context.Context) {
	warn := func(what string, err error) {
		if err != nil {
			a.logger.LogWarn("Error closing "+what, map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if a.tempFiles != nil {
		warn("upload staging", a.tempFiles.CleanupAll())
	}
	if a.store != nil {
		warn("media storage", a.store.Close())
	}
	if a.cache != nil {
		warn("cache connections", a.cache.Close())
	}
	if a.mongoService != nil {
		warn("document store", a.mongoService.Close(ctx))
	}
	if a.dbService != nil {
		warn("database connections", a.dbService.Close())
	}
}

// serveLocalMedia reports whether uploads are served by this process
func (a *App) serveLocalMedia() bool {
	return a.config.Storage.Driver != storage.DriverS3 && strings.HasPrefix(a.config.Storage.MediaURL, "/")
}
