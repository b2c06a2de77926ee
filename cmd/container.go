// container.go
package main

import (
	"context"
	"fmt"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/nexhire/nexhire/pkg/ats/candidate/candidateapi"
	"github.com/nexhire/nexhire/pkg/ats/candidate/candidateinfra"
	"github.com/nexhire/nexhire/pkg/ats/candidate/candidatesrv"
	"github.com/nexhire/nexhire/pkg/ats/report/reportapi"
	"github.com/nexhire/nexhire/pkg/ats/report/reportinfra"
	"github.com/nexhire/nexhire/pkg/ats/report/reportsrv"
	"github.com/nexhire/nexhire/pkg/ats/status/statusapi"
	"github.com/nexhire/nexhire/pkg/ats/status/statusinfra"
	"github.com/nexhire/nexhire/pkg/ats/status/statussrv"
	"github.com/nexhire/nexhire/pkg/ats/team/teamapi"
	"github.com/nexhire/nexhire/pkg/ats/team/teaminfra"
	"github.com/nexhire/nexhire/pkg/ats/team/teamsrv"
	"github.com/nexhire/nexhire/pkg/config"
	"github.com/nexhire/nexhire/pkg/fsx"
	"github.com/nexhire/nexhire/pkg/fsx/fsxlocal"
	"github.com/nexhire/nexhire/pkg/fsx/fsxs3"
	"github.com/nexhire/nexhire/pkg/iam/auth"
	"github.com/nexhire/nexhire/pkg/logx"
	"github.com/nexhire/nexhire/pkg/stream/streaminfra"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client
	Notifier   *streaminfra.RedisNotifier

	// Domain Services
	StatusService    *statussrv.StatusService
	CandidateService *candidatesrv.CandidateService
	TeamService      *teamsrv.TeamService
	ReportService    *reportsrv.ReportService
	TokenService     auth.TokenService

	// API Handlers
	StatusHandlers    *statusapi.StatusHandlers
	CandidateHandlers *candidateapi.CandidateHandlers
	TeamHandlers      *teamapi.TeamHandlers
	ReportHandlers    *reportapi.ReportHandlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware

	// Background Services
	CacheRefresher *statusinfra.CacheRefresher
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	logx.Info("🔧 Initializing dependency container...")

	c := &Container{
		Config: cfg,
	}

	c.initInfrastructure()
	c.initServices()

	logx.Info("✅ Container initialized successfully")
	return c
}

func (c *Container) initInfrastructure() {
	logx.Info("🏗️ Initializing infrastructure...")

	// 1. Database Connection
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Config.Database.Host,
		c.Config.Database.Port,
		c.Config.Database.User,
		c.Config.Database.Password,
		c.Config.Database.Name,
		c.Config.Database.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
	c.DB = db
	logx.Info("✅ Database connected")

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Address(),
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Fatalf("Failed to connect to Redis: %v (Redis is required for cache and change stream)", err)
	} else {
		logx.Info("✅ Redis connected")
	}

	// 3. Change Stream
	c.Notifier = streaminfra.NewRedisNotifier(c.Redis)

	// 4. Report Archive Storage (Local or S3)
	c.initFileStorage()

	logx.Info("✅ Infrastructure initialized")
}

func (c *Container) initFileStorage() {
	switch c.Config.Storage.Provider {
	case config.StorageProviderS3:
		awsCfg, err := awsConfig.LoadDefaultConfig(context.TODO(),
			awsConfig.WithRegion(c.Config.Storage.S3.Region))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config: %v", err)
		}
		c.S3Client = s3.NewFromConfig(awsCfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, c.Config.Storage.S3.Bucket, c.Config.Storage.S3.Prefix)
		logx.Infof("✅ S3 file system configured (bucket: %s, region: %s)",
			c.Config.Storage.S3.Bucket, c.Config.Storage.S3.Region)

	case config.StorageProviderLocal:
		localFS, err := fsxlocal.NewLocalFileSystem(c.Config.Storage.Local.BasePath)
		if err != nil {
			logx.Fatalf("Failed to initialize local file system: %v", err)
		}
		c.FileSystem = localFS
		logx.Infof("✅ Local file system configured (path: %s)", localFS.GetBasePath())

	default:
		logx.Fatalf("Unknown STORAGE_PROVIDER: %s (use 'local' or 's3')", c.Config.Storage.Provider)
	}
}

func (c *Container) initServices() {
	logx.Info("🗄️  Initializing repositories and services...")

	// --- Repositories ---
	statusRepo := statusinfra.NewPostgresStatusRepository(c.DB)
	candidateRepo := candidateinfra.NewPostgresCandidateRepository(c.DB)
	teamRepo := teaminfra.NewPostgresTeamRepository(c.DB)
	reportRepo := reportinfra.NewPostgresReportRepository(c.DB)

	// --- Caches ---
	taxonomyCache := statusinfra.NewRedisTaxonomyCache(c.Redis, c.Config.Redis.TaxonomyCacheTTL)

	// --- Token Service ---
	c.TokenService = auth.NewJWTServiceFromConfig(&c.Config.Auth.JWT)

	// --- Domain Services ---
	c.StatusService = statussrv.NewStatusService(statusRepo, taxonomyCache, c.Notifier)
	c.CandidateService = candidatesrv.NewCandidateService(candidateRepo, c.StatusService, c.Notifier)
	c.TeamService = teamsrv.NewTeamService(teamRepo, c.Notifier)
	c.ReportService = reportsrv.NewReportService(reportRepo, c.FileSystem)

	// --- API Handlers ---
	c.StatusHandlers = statusapi.NewStatusHandlers(c.StatusService)
	c.CandidateHandlers = candidateapi.NewCandidateHandlers(c.CandidateService)
	c.TeamHandlers = teamapi.NewTeamHandlers(c.TeamService)
	c.ReportHandlers = reportapi.NewReportHandlers(c.ReportService)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewTokenMiddleware(c.TokenService)

	// --- Background Services ---
	c.CacheRefresher = statusinfra.NewCacheRefresher(statusRepo, taxonomyCache, c.Notifier)

	logx.Info("✅ All services and handlers initialized")
}

// StartBackgroundServices starts background workers
func (c *Container) StartBackgroundServices(ctx context.Context) {
	logx.Info("🔄 Starting background services...")

	go c.CacheRefresher.Start(ctx)
	logx.Info("✅ Taxonomy cache refresher started")
}

// Cleanup closes all connections and stops workers
func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	// Close database connection
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("✅ Database connection closed")
		}
	}

	// Close Redis connection
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup completed")
}
