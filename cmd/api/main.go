package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/healthpoints/healthpoints-backend/internal/config"
	"github.com/healthpoints/healthpoints-backend/internal/handler"
	"github.com/healthpoints/healthpoints-backend/internal/middleware"
	"github.com/healthpoints/healthpoints-backend/internal/migration"
	"github.com/healthpoints/healthpoints-backend/internal/repository"
	"github.com/healthpoints/healthpoints-backend/internal/routes"
	"github.com/healthpoints/healthpoints-backend/internal/search"
	"github.com/healthpoints/healthpoints-backend/internal/service"
	pkges "github.com/healthpoints/healthpoints-backend/pkg/elasticsearch"
	"github.com/healthpoints/healthpoints-backend/pkg/jwt"
	pkglogger "github.com/healthpoints/healthpoints-backend/pkg/logger"
	pkgredis "github.com/healthpoints/healthpoints-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title           Healthpoints API
// @version         1.0
// @description     Daily wellness points tracking API
//
// @license.name    MIT
//
// @BasePath        /api
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.Init(env)
	log := pkglogger.GetLogger()
	log.Info().Str("env", env).Strs("env_files", dotenvFiles).Msg("starting healthpoints API")

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// MySQL
	db, err := initDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	log.Info().Msg("connected to MySQL")

	if err := migration.Run(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	// Redis (rate limiting only; the API works without it)
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to Redis (continuing without rate limiting)")
		redisClient = nil
	} else {
		log.Info().Msg("connected to Redis")
	}

	// Elasticsearch mirror
	var pointsIndex *search.PointsIndex
	if cfg.Elasticsearch.Enabled && len(cfg.Elasticsearch.Addresses) > 0 {
		esClient, esErr := pkges.NewClient(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Username, cfg.Elasticsearch.Password)
		if esErr != nil {
			log.Warn().Err(esErr).Msg("Elasticsearch connection failed (continuing without search)")
		} else {
			pointsIndex = search.NewPointsIndex(esClient)
		}
	}

	// JWT Manager
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS
	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		ExposeHeaders: []string{
			"X-Request-ID", "X-RateLimit-Remaining", "X-Total-Count", "Link",
			"Location", "X-healthpointsApp-alert", "X-healthpointsApp-params",
		},
		MaxAge: 86400 * time.Second,
	}))

	// Middleware
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	if redisClient != nil && !cfg.IsDevelopment() {
		router.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()))
	}

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "healthpoints-backend",
			"time":    time.Now().Unix(),
		})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Points API
	pointsRepo := repository.NewPointsRepository(db)
	userRepo := repository.NewUserRepository(db)

	var pointsService *service.PointsService
	if pointsIndex != nil {
		pointsService = service.NewPointsService(pointsRepo, userRepo, pointsIndex)
	} else {
		pointsService = service.NewPointsService(pointsRepo, userRepo, nil)
	}

	routes.Setup(router, handler.NewPointsHandler(pointsService), jwtManager)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Info().Str("addr", addr).Msg("listening")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	logMode := gormlogger.Warn
	if cfg.IsDevelopment() {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
