package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"studiolens/api/internal/config"
	"studiolens/api/internal/conversions"
	"studiolens/api/internal/middleware"
	"studiolens/api/internal/notify"
	"studiolens/api/internal/repository"
	"studiolens/api/internal/service"
	"studiolens/api/internal/storage"
)

type HandlerSet struct {
	log           zerolog.Logger
	cfg           *config.AppConfig
	db            *pgxpool.Pool
	cache         *redis.Client
	gallery       *service.GalleryService
	sessionSvc    *service.SessionService
	notifications *repository.NotificationRepository
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	sessionRepo := repository.NewSessionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	notifier := notify.New(notificationRepo, cache, log)

	configCache := conversions.NewConfigCache(settingsRepo, conversions.Config{
		PixelID:     cfg.Conversions.PixelID,
		AccessToken: cfg.Conversions.AccessToken,
	}, cfg.Conversions.CacheTTL)
	publisher := conversions.NewClient(configCache, cfg.Conversions.APIVersion, cfg.Conversions.Timeout, log)

	gallery := service.NewGalleryService(sessionRepo, notifier, publisher, log)
	sessionSvc := service.NewSessionService(sessionRepo, store, log)

	return HandlerSet{
		log:           log,
		cfg:           cfg,
		db:            db,
		cache:         cache,
		gallery:       gallery,
		sessionSvc:    sessionSvc,
		notifications: notificationRepo,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	auth := router.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/verify", h.VerifyToken)

	client := router.Group("/client")
	client.POST("/verify-code", h.VerifyAccessCode)
	client.GET("/photos/:id", h.ClientGallery)
	client.PUT("/select/:id", h.SelectPhoto)
	client.POST("/submit-selection/:id", h.SubmitSelection)
	client.POST("/request-reopen/:id", h.RequestReopen)

	// Export authenticates via query token so it can be opened as a download
	// link; everything else admin-side goes through the bearer middleware.
	router.GET("/sessions/:id/export", h.ExportSelection)

	admin := router.Group("")
	admin.Use(middleware.Auth(h.cfg))
	{
		admin.GET("/sessions", h.ListSessions)
		admin.POST("/sessions", h.CreateSession)
		admin.PUT("/sessions/:id", h.UpdateSession)
		admin.DELETE("/sessions/:id", h.DeleteSession)
		admin.PUT("/sessions/:id/reopen", h.ReopenSelection)
		admin.PUT("/sessions/:id/deliver", h.DeliverSession)
		admin.POST("/sessions/:id/photos", h.UploadPhotos)
		admin.DELETE("/sessions/:id/photos/:photoId", h.RemovePhoto)

		admin.GET("/notifications", h.ListNotifications)
		admin.GET("/notifications/unread-count", h.UnreadNotificationCount)
		admin.PUT("/notifications/read-all", h.MarkNotificationsRead)
		admin.DELETE("/notifications/:id", h.DeleteNotification)
	}
}
