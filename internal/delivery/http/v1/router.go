package v1

import (
	"log/slog"

	"hireova-backend/config"
	"hireova-backend/internal/delivery/http/middleware"
	"hireova-backend/internal/domain"
	"hireova-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	OrganizationUC domain.OrganizationUsecase
	UserUC         domain.UserUsecase
	JobUC          domain.JobUsecase
	CandidateUC    domain.CandidateUsecase
	ApplicationUC  domain.ApplicationUsecase
	HealthUC       usecase.HealthUsecase
	// Sessions is nil for the in-memory store.
	Sessions middleware.SessionAcquirer
	// Redis backs the rate limiter when set.
	Redis  *goredis.Client
	Logger *slog.Logger
	Config *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(cfg.RateLimitPerMinute, deps.Redis)))

	// Swagger
	r.GET("/api/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	health := &HealthHandler{appName: cfg.AppName, healthUC: deps.HealthUC}
	probes := r.Group(cfg.APIPrefix)
	{
		probes.GET("/", health.Welcome)
		probes.GET("/health", health.Live)
		probes.GET("/health/ready", health.Ready)
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Timeout(cfg.RequestTimeout))
	if deps.Sessions != nil {
		api.Use(middleware.Session(deps.Sessions))
	}
	{
		NewOrganizationHandler(api, deps.OrganizationUC, deps.UserUC, deps.JobUC)
		NewUserHandler(api, deps.UserUC)
		NewJobHandler(api, deps.JobUC, deps.ApplicationUC)
		NewCandidateHandler(api, deps.CandidateUC, deps.ApplicationUC)
		NewApplicationHandler(api, deps.ApplicationUC)
	}

	return r
}
