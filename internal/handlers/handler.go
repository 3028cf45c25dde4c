package handlers

import (
	"myblog/internal/logger"
	"myblog/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config carries the transport-level settings.
type Config struct {
	CookieName   string
	CookieMaxAge int // seconds
	CookieSecure bool
	UploadDir    string
}

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	cfg      Config
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, cfg Config, log *logger.Logger) *Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = "myblog.sid"
	}
	return &Handler{services: services, cfg: cfg, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Every page flow runs with a session and the generic fault path.
	web := router.Group("/", h.sessionMiddleware, h.faultMiddleware)
	{
		web.GET("/", h.home)
		web.GET("/posts", h.posts)
		web.GET("/signout", h.signOut)

		signup := web.Group("/signup", h.checkNotLogin)
		{
			signup.GET("", h.signupForm)
			signup.POST("", h.withUpload, h.signUp)
		}
	}

	return router
}
