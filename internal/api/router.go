package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	AllowedOrigins     []string
	RateLimitPerMinute int
	Production         bool
}

// NewRouter собирает gin engine со всеми маршрутами сайта
func NewRouter(h *Handler, cfg RouterConfig, logger *zap.Logger) *gin.Engine {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  originChecker(cfg.AllowedOrigins, logger),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(RateLimit(cfg.RateLimitPerMinute, logger))

	r.GET("/", h.Index)
	r.GET("/health", h.Health)

	clients := r.Group("/clients")
	{
		clients.GET("", h.ListClients)
		clients.POST("", h.RegisterClient)
		clients.GET("/search", h.SearchClient)
		clients.PUT("/:id", h.UpdateClient)
		clients.DELETE("/:id", h.DeleteClient)
		clients.GET("/:id/bookings", h.ClientBookings)
	}
	r.POST("/login", h.Login)
	r.POST("/find-or-create-client", h.FindOrCreateClient)
	r.GET("/check-duplicate-client", h.CheckDuplicateClient)

	bookings := r.Group("/bookings")
	{
		bookings.GET("", h.ListBookings)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id", h.UpdateBooking)
		bookings.DELETE("/:id", h.DeleteBooking)
	}

	comments := r.Group("/comments")
	{
		comments.GET("", h.ListComments)
		comments.POST("", h.CreateComment)
		comments.DELETE("/:id", h.DeleteComment)
	}

	r.GET("/all-bookings-by-service", h.AllBookingsByService)
	r.GET("/availability-by-date", h.AvailabilityByDate)
	r.GET("/check-availability", h.CheckAvailability)

	return r
}
