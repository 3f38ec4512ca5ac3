package bootstrap

import (
	"context"

	"foodshare/internal/config"
	"foodshare/internal/handlers"
	"foodshare/internal/middleware"
	"foodshare/internal/services"
	"foodshare/internal/utils"
)

// Container application wiring
type Container struct {
	Config *config.Config
	DB     *services.Database

	Auth   services.AuthServiceInterface
	Donor  services.DonorServiceInterface
	Images services.ImageServiceInterface

	// Storage is nil when object storage is disabled or unreachable at startup
	Storage services.StorageClient
	Hub     *handlers.MessageHub
	Reaper  *services.SessionReaper

	LoginLimiter    *middleware.IPRateLimiter
	RegisterLimiter *middleware.IPRateLimiter
}

// New builds the container. Migrations run first when auto_migrate is set.
func New(ctx context.Context, cfg *config.Config, db *services.Database) (*Container, error) {
	logger := utils.GetLogger()

	if cfg.Database.AutoMigrate {
		if err := services.RunMigrations(ctx, db.DB); err != nil {
			return nil, utils.WrapError(err, "run migrations")
		}
		logger.Info("database migrations applied")
	}

	userRepo := services.NewUserRepository(db)
	roleRepo := services.NewRoleRepository(db)
	sessionRepo := services.NewSessionRepository(db)
	donationRepo := services.NewDonationRepository(db)
	conversationRepo := services.NewConversationRepository(db)

	var storage services.StorageClient
	if cfg.MinIO.Enabled {
		storageService, err := services.NewStorageService(cfg)
		if err != nil {
			// uploads answer 503 until restarted with working storage
			logger.Warn("object storage unavailable, image uploads disabled", "error", err.Error())
		} else {
			storage = storageService
		}
	}

	hub := handlers.NewMessageHub(cfg.CORS.AllowOrigins)

	return &Container{
		Config:          cfg,
		DB:              db,
		Auth:            services.NewAuthService(userRepo, roleRepo, sessionRepo, cfg.Session.TTL),
		Donor:           services.NewDonorService(userRepo, donationRepo, conversationRepo, hub),
		Images:          services.NewImageService(storage, cfg.Assets.MaxImageEdge),
		Storage:         storage,
		Hub:             hub,
		Reaper:          services.NewSessionReaper(sessionRepo, cfg.Session.ReaperSchedule),
		LoginLimiter:    middleware.NewIPRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.Burst, 10000),
		RegisterLimiter: middleware.NewIPRateLimiter(cfg.RateLimit.RegisterPerMinute, cfg.RateLimit.Burst, 10000),
	}, nil
}

// Close stops background work and releases the database
func (c *Container) Close() error {
	if c.Reaper != nil {
		c.Reaper.Stop()
	}
	if c.Hub != nil {
		c.Hub.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
