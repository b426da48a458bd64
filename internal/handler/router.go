package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"court-booking/internal/handler/api"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/handler/validation"
	"court-booking/internal/infra/ratelimit"
	"court-booking/internal/pkg/config"
)

const rateLimitGroupCreateReservation = "create_reservation"

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	resourceHandler *api.ResourceHandler,
	reservationHandler *api.ReservationHandler,
	limiter ratelimit.Limiter,
) {
	if err := validation.Register(); err != nil {
		slog.Error("failed to register request validators", "error", err)
	}
	setupMiddleware(engine, cfg)
	setupRoutes(engine, resourceHandler, reservationHandler, limiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	resourceHandler *api.ResourceHandler,
	reservationHandler *api.ReservationHandler,
	limiter ratelimit.Limiter,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		resources := apiGroup.Group("/resources")
		{
			addRoutes(resources, []route{
				{Method: http.MethodGet, Path: "", Handler: resourceHandler.ListResources},
				{Method: http.MethodGet, Path: "/:id", Handler: resourceHandler.GetResource},
				{Method: http.MethodGet, Path: "/:id/slots", Handler: resourceHandler.GetSlots},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: resourceHandler.GetAvailability},
				{Method: http.MethodGet, Path: "/:id/reservations", Handler: resourceHandler.ListResourceReservations},
			})
		}

		reservations := apiGroup.Group("/reservations")
		{
			addRoutes(reservations, []route{
				{
					Method:  http.MethodPost,
					Path:    "",
					Handler: reservationHandler.CreateReservation,
					Mw:      []gin.HandlerFunc{middleware.RateLimit(limiter, rateLimitGroupCreateReservation)},
				},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: reservationHandler.CancelReservation},
			})
		}

		users := apiGroup.Group("/users")
		{
			addRoutes(users, []route{
				{Method: http.MethodGet, Path: "/:id/reservations", Handler: reservationHandler.ListUserReservations},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
