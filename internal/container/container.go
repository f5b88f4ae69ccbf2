package container

import (
	"context"

	"padel-api/internal/config"
	"padel-api/internal/repository"
	"padel-api/internal/service"
	"padel-api/pkg/database"
	"padel-api/pkg/logger"
	"padel-api/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           *database.PostgresDB
	RedisClient  *redis.Client
	Repositories *repository.Repositories
	Services     *service.Services
	Cache        *service.CacheService
}

// New creates a new dependency injection container
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	log.Info("Database connection established")

	// Redis is optional; without it every service runs cache-free.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	repos := &repository.Repositories{
		User:     repository.NewUserRepository(db),
		Match:    repository.NewMatchRepository(db),
		Court:    repository.NewCourtRepository(db),
		Location: repository.NewLocationRepository(db),
		Scoring:  repository.NewScoringRepository(db),
	}

	cache := service.NewCacheService(redisClient, log)

	services := &service.Services{
		Auth:     service.NewAuthService(repos.User, cfg.JWTSecret, cfg.TokenTTL, log),
		Match:    service.NewMatchService(repos.Match, repos.Court, cache, log),
		Scoring:  service.NewScoringService(repos.Scoring, repos.Match, cache, log),
		Court:    service.NewCourtService(repos.Court, cache, log),
		Location: service.NewLocationService(repos.Location, cache, log),
	}

	return &Container{
		Config:       cfg,
		Logger:       log,
		DB:           db,
		RedisClient:  redisClient,
		Repositories: repos,
		Services:     services,
		Cache:        cache,
	}, nil
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// HasRedis returns true if a Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}

// Cleanup releases all held resources
func (c *Container) Cleanup() {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.WithError(err).Error("Failed to close Redis client")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
