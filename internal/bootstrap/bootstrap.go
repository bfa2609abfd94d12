package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/web79/smiportal/internal/app/auth"
	appControllers "github.com/web79/smiportal/internal/app/controllers"
	appMigrations "github.com/web79/smiportal/internal/app/migrations"
	appRepos "github.com/web79/smiportal/internal/app/repositories"
	appRoutes "github.com/web79/smiportal/internal/app/routes"
	appServices "github.com/web79/smiportal/internal/app/services"
	"github.com/web79/smiportal/internal/config"
	"github.com/web79/smiportal/internal/db"
	appMiddleware "github.com/web79/smiportal/internal/middleware"
	pkgAuth "github.com/web79/smiportal/internal/pkg/auth"
	"github.com/web79/smiportal/internal/pkg/email"
	"github.com/web79/smiportal/internal/pkg/helpers"
	"github.com/web79/smiportal/internal/pkg/logger"
	"github.com/web79/smiportal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService       appServices.StudentService
	CourseService        appServices.CourseService
	UserService          appServices.UserService
	EvaluationService    appServices.EvaluationService
	AuthService          *appServices.AuthService
	AuthController       *appControllers.AuthController
	StudentController    *appControllers.StudentController
	CourseController     *appControllers.CourseController
	UserController       *appControllers.UserController
	EvaluationController *appControllers.EvaluationController
	HealthController     *appControllers.HealthController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Gate                 *appAuth.Gate
	Mailer               email.Mailer
	Logger               zerolog.Logger
}

// ConfigPath returns the YAML config location, overridable with CONFIG_PATH
func ConfigPath() string {
	return config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(ConfigPath())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	hostname, _ := os.Hostname()
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
		Rollbar: logger.RollbarConfig{
			Token:       cfg.Logging.RollbarToken,
			Environment: cfg.Logging.Environment,
			ServerHost:  hostname,
		},
	})

	lgr := log.Logger
	lgr.Info().
		Str("logLevel", string(logLevel)).
		Str("logFormat", cfg.Logging.Format).
		Bool("rollbar", cfg.Logging.RollbarToken != "").
		Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	sqlDB := stdlib.OpenDBFromPool(database.Pool)
	defer sqlDB.Close()

	if err := appMigrations.Run(ctx, sqlDB); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, pkgAuth.DefaultAccessTokenExp),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.Gate = appAuth.NewGate(deps.JWTService)

	mailer, err := email.NewMailer(email.Config{
		Provider: cfg.Mail.Provider,
		SMTP: email.SMTPConfig{
			Host:     cfg.Mail.SMTP.Host,
			Port:     cfg.Mail.SMTP.Port,
			Username: cfg.Mail.SMTP.Username,
			Password: cfg.Mail.SMTP.Password,
			UseTLS:   cfg.Mail.SMTP.UseTLS,
		},
		SendGridAPIKey: cfg.Mail.SendGrid.APIKey,
	}, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize mailer")
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}
	deps.Mailer = mailer

	if cfg.Mail.CompanyEmail == "" {
		lgr.Warn().Msg("MAIL_COMPANY_EMAIL not configured - evaluation reports will be rejected")
	}

	// Services
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, lgr)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, lgr)
	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.EvaluationService = appServices.NewEvaluationService(deps.Mailer, appServices.EvaluationConfig{
		From:         mail.Address{Name: cfg.Mail.FromName, Address: cfg.SenderEmail()},
		CompanyEmail: cfg.Mail.CompanyEmail,
	}, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Gate)

	// Controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.EvaluationController = appControllers.NewEvaluationController(deps.EvaluationService)
	deps.HealthController = appControllers.NewHealthController(database)

	return deps, nil
}

// SeedDefaults creates the configured super-admin account.
// Failures are logged and startup continues.
func SeedDefaults(ctx context.Context, cfg *config.Config, deps *Dependencies) {
	superAdmin := cfg.Seed.SuperAdmin
	if err := seed.CreateDefaultData(ctx, deps.UserService, seed.SuperAdmin{
		Email:    superAdmin.Email,
		Password: superAdmin.Password,
		FullName: superAdmin.FullName,
		Branch:   superAdmin.Branch,
	}, deps.Logger); err != nil {
		deps.Logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.SetupValidator(); err != nil {
		return nil, fmt.Errorf("failed to register validation rules: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := appMiddleware.NewHTTPMetrics(registry)

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr), metrics.Handler())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.CourseController,
		deps.UserController,
		deps.EvaluationController,
		deps.HealthController,
		deps.AuthMiddleware,
	)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success", "time": time.Now().UTC()})
	})

	return router, nil
}
