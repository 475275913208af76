package handlers

import (
	"chamber_dashboard/internal/logger"
	"chamber_dashboard/internal/service"
	"chamber_dashboard/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services, the page and logging.
type Handler struct {
	services *service.Service
	page     *view.Page
	gatherer prometheus.Gatherer
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
// A nil gatherer leaves /metrics unregistered.
func NewHandler(services *service.Service, page *view.Page, gatherer prometheus.Gatherer, log *logger.Logger) *Handler {
	return &Handler{services: services, page: page, gatherer: gatherer, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	if h.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}

	h.registerAPIRoutes(router)

	// Page stream for browsers, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/page", h.getPage)
		api.POST("/poll", h.poll)
		h.registerDeviceRoutes(api)
		h.registerLayoutRoutes(api)
		h.registerCommandRoutes(api)
	}
}

func (h *Handler) registerDeviceRoutes(api *gin.RouterGroup) {
	devices := api.Group("/devices/:id")
	{
		devices.GET("", h.getDevice)
		devices.PUT("", h.mountDevice)
		devices.DELETE("", h.unmountDevice)
		// Body example: {"temperature":"30","dry_time":"120"}
		devices.PUT("/inputs", h.setInputs)
		devices.POST("/profile", h.submitProfile)
		// Body example: {"status":1,"preset_id":4,"custom_preset":null}
		devices.POST("/status", h.sendStatus)
	}
}

func (h *Handler) registerLayoutRoutes(api *gin.RouterGroup) {
	layout := api.Group("/layout")
	{
		layout.GET("", h.getLayout)
		layout.POST("/init", h.initLayout)
		layout.POST("/pointer", h.pointer)
		layout.POST("/viewport", h.viewport)
	}
}

func (h *Handler) registerCommandRoutes(api *gin.RouterGroup) {
	commands := api.Group("/commands")
	{
		commands.GET("", h.getCommands)
	}
}
