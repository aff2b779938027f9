package container

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard-api/config"
	"github.com/oksasatya/jobboard-api/internal/application"
	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	repo "github.com/oksasatya/jobboard-api/internal/domain/repository"
	"github.com/oksasatya/jobboard-api/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/jobboard-api/internal/infrastructure/postgres"
	"github.com/oksasatya/jobboard-api/internal/infrastructure/search"
	gcsinfra "github.com/oksasatya/jobboard-api/internal/infrastructure/storage"
	"github.com/oksasatya/jobboard-api/pkg/helpers"
	mailtpl "github.com/oksasatya/jobboard-api/pkg/mailer/templates"
)

// Container holds the constructed components shared by the router modules.
// Publisher, JobIndex and ObjectStore stay nil when their backend is not configured.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	PG     *pgxpool.Pool
	Redis  *redis.Client
	JWT    *helpers.JWTManager

	Users        repo.UserRepository
	Jobs         repo.JobRepository
	Applications repo.ApplicationRepository
	Cache        repo.TokenCache

	Publisher   repo.Publisher
	JobIndex    repo.JobIndex
	ObjectStore repo.ObjectStore

	TokenService       *application.TokenService
	AuthService        *application.AuthService
	UserService        *application.UserService
	JobService         *application.JobService
	ApplicationService *application.ApplicationService

	rabbit *helpers.RabbitPublisher
	gcs    *storage.Client
}

// Secrets maps each role family to its signing secret.
func Secrets(cfg *config.Config) map[string]string {
	return map[string]string{
		string(entity.RoleAdmin):     cfg.AdminTokenSecret,
		string(entity.RoleCandidate): cfg.CandidateTokenSecret,
		string(entity.RoleRecruiter): cfg.RecruiterTokenSecret,
	}
}

// New connects Postgres and Redis, which are required, then the optional backends.
// A failing optional backend is logged and left out.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}

	c := &Container{
		Config:       cfg,
		Logger:       logger,
		PG:           pool,
		Redis:        rdb,
		JWT:          helpers.NewJWTManager(Secrets(cfg), cfg.TokenExpiry()),
		Users:        pginfra.NewUserRepository(pool),
		Jobs:         pginfra.NewJobRepository(pool),
		Applications: pginfra.NewApplicationRepository(pool),
		Cache:        cache.NewRedisCache(rdb),
	}
	if cfg.TokenExpiryMinutes <= 0 {
		logger.Warn("TOKEN_EXPIRY is unset or zero; every issued token is already expired")
	}
	c.connectOptional(ctx)
	c.buildServices()
	return c, nil
}

func (c *Container) connectOptional(ctx context.Context) {
	cfg := c.Config
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			c.Logger.WithError(err).Warn("rabbitmq unavailable; emails will not be queued")
		} else {
			c.rabbit = pub
			c.Publisher = pub
		}
	}
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := search.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			c.Logger.WithError(err).Warn("elasticsearch unavailable; job search uses postgres")
		} else {
			c.JobIndex = search.NewJobIndex(es, cfg.ESJobsIndex)
		}
	}
	if cfg.GCSBucket != "" {
		client, err := gcsinfra.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			c.Logger.WithError(err).Warn("gcs unavailable; resume upload disabled")
		} else {
			c.gcs = client
			c.ObjectStore = gcsinfra.NewObjectStore(client, cfg.GCSBucket)
		}
	}
}

func (c *Container) buildServices() {
	brand := mailtpl.Brand{
		AppName:     c.Config.AppName,
		CompanyName: c.Config.CompanyName,
		SupportURL:  c.Config.SupportURL,
	}
	c.TokenService = application.NewTokenService(c.JWT, c.Cache, c.Logger)
	c.AuthService = application.NewAuthService(c.Users, c.TokenService, c.Cache, c.Publisher, c.Logger, brand, c.Config.ResetCodeTTL)
	c.UserService = application.NewUserService(c.Users, c.ObjectStore, c.Logger)
	c.JobService = application.NewJobService(c.Jobs, c.JobIndex, c.Logger)
	c.ApplicationService = application.NewApplicationService(c.Applications, c.Jobs, c.Users, c.Publisher, c.Logger, brand)
}

// Close releases every connection opened by New.
func (c *Container) Close() {
	c.rabbit.Close()
	if c.gcs != nil {
		_ = c.gcs.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PG != nil {
		c.PG.Close()
	}
}
