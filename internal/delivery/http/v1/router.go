package v1

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"davinci-contact-api/config"
	"davinci-contact-api/internal/delivery/http/middleware"
	"davinci-contact-api/internal/delivery/http/response"
	"davinci-contact-api/internal/domain"
	"davinci-contact-api/internal/usecase"
	"davinci-contact-api/pkg/apperror"
	"davinci-contact-api/pkg/logger"
	"davinci-contact-api/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// maxBodyBytes bounds a contact submission (message is capped at 5000 chars)
const maxBodyBytes = 64 << 10

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	Redis     *goredis.Client // optional, rate limit store
	Config    *config.Config
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config

	r := gin.New()
	r.HandleMethodNotAllowed = true

	// ClientIP keys the rate limiter; only listed proxies may set X-Forwarded-For
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Log.Error("Invalid trusted proxies, using socket address", "error", err)
		_ = r.SetTrustedProxies(nil)
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins, !cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler(cfg.ExposeErrors))

	r.NoMethod(methodNotAllowed(r))
	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("Not found"))
	})

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", deps.HealthUC.Check(c.Request.Context()))
	})

	// Public routes
	contactLimit := middleware.ContactRateLimitConfig(
		cfg.RateLimitContactThreshold,
		time.Duration(cfg.RateLimitWindowSeconds)*time.Second,
		deps.Redis,
	)
	NewContactHandler(api, deps.ContactUC,
		middleware.BodyLimit(maxBodyBytes),
		middleware.RateLimitMiddleware(contactLimit),
	)

	// Swagger
	if cfg.SwaggerEnabled {
		api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

// methodNotAllowed answers 405 with an Allow header listing the verbs
// registered for the requested path.
func methodNotAllowed(engine *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		var allowed []string
		for _, route := range engine.Routes() {
			if route.Path == path {
				allowed = append(allowed, route.Method)
			}
		}
		sort.Strings(allowed)
		if len(allowed) > 0 {
			c.Header("Allow", strings.Join(allowed, ", "))
		}
		_ = c.Error(apperror.MethodNotAllowed())
	}
}
