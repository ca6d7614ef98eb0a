package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/election-result-api/api/swagger"
	"github.com/noah-isme/election-result-api/internal/handler"
	"github.com/noah-isme/election-result-api/internal/middleware"
	"github.com/noah-isme/election-result-api/internal/service"
	"github.com/noah-isme/election-result-api/pkg/config"
	"github.com/noah-isme/election-result-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/election-result-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/election-result-api/pkg/middleware/requestid"
)

// Dependencies bundles everything the HTTP layer needs.
type Dependencies struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *service.MetricsService
	Results *service.ElectionResultService
	Exports *service.ExportService
}

// New builds the gin engine with middleware and every route registered.
func New(deps Dependencies) *gin.Engine {
	if deps.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(corsmiddleware.New(deps.Config.CORS.AllowedOrigins))

	system := handler.NewMetricsHandler(deps.Metrics, deps.Results)
	r.GET("/health", system.Health)
	r.GET("/ready", system.Ready)
	r.GET("/metrics", system.Prometheus)

	results := handler.NewElectionResultHandler(deps.Results, deps.Exports)
	r.GET("/gettotal", results.Total)
	r.POST("/post-election", results.Create)
	r.GET("/results", results.List)
	r.GET("/results/export", results.Export)
	r.GET("/results/:stateId", results.Get)
	r.PUT("/rigged/:stateId", results.Rig)
	r.DELETE("/results/:stateId", results.Delete)

	if deps.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
