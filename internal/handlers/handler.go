package handlers

import (
	"net/http"

	"linkfeed/internal/logger"
	"linkfeed/internal/pubsub"
	"linkfeed/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services, the event bus, and logging.
type Handler struct {
	services *service.Service
	bus      *pubsub.Bus
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, bus *pubsub.Bus, log *logger.Logger) *Handler {
	return &Handler{services: services, bus: bus, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints (anonymous)
	h.registerAuthRoutes(router)

	// Feed is public: anonymous callers may read it
	router.GET("/feed", h.getFeed)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Subscription gateway (HTTP upgrade) — same port
	router.GET("/ws", h.wsSubscribe)

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
	api := r.Group("/api/v1", h.callerIdentityMiddleware)
	{
		links := api.Group("/links")
		{
			links.POST("", h.postLink)
			links.GET("/:id", h.getLink)
			links.POST("/:id/vote", h.castVote)
		}
	}
}

const statusOK = "ok"

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}
