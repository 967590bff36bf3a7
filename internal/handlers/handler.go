package handlers

import (
	"net/http"

	"greenhouse_control/internal/logger"
	"greenhouse_control/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	link     http.Handler
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies. link is the
// websocket endpoint of the mobile client and may be nil when WiFi is off.
func NewHandler(services *service.Service, link http.Handler, log *logger.Logger) *Handler {
	return &Handler{services: services, link: link, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// The mobile client speaks the frame protocol, not JWT.
	if h.link != nil {
		router.GET("/ws", gin.WrapH(h.link))
	}

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerGreenhouseRoutes(api)
		h.registerLogRoutes(api)
		h.registerReadingRoutes(api)
	}
}

func (h *Handler) registerGreenhouseRoutes(api *gin.RouterGroup) {
	greenhouse := api.Group("/greenhouse")
	{
		greenhouse.GET("/state", h.getState)
		greenhouse.POST("/enable", h.enable)
		greenhouse.POST("/disable", h.disable)
		// Body example: {"frame":"O20A"}
		greenhouse.POST("/command", h.sendCommand)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}

func (h *Handler) registerReadingRoutes(api *gin.RouterGroup) {
	readings := api.Group("/readings")
	{
		readings.GET("/", h.getReadings)
	}
}
