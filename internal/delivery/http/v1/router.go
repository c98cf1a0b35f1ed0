package v1

import (
	"net/http"

	"agentai-website-api/config"
	"agentai-website-api/internal/delivery/http/middleware"
	"agentai-website-api/internal/delivery/http/response"
	"agentai-website-api/internal/domain"
	"agentai-website-api/internal/usecase"
	"agentai-website-api/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		logger.Log.Warn("Invalid TRUSTED_PROXIES, trusting none", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.TrustedPlatform = deps.Config.TrustedPlatform

	// Global Middlewares
	r.Use(middleware.Recovery()) // outermost so a panic in any middleware becomes JSON
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, http.StatusMethodNotAllowed, "Method not allowed")
	})

	api := r.Group("/api")

	NewHealthHandler(api, deps.HealthUC)
	NewContactHandler(api, deps.ContactUC)

	if deps.Config.EnableSwagger {
		api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
